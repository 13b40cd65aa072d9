package compare

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/farepilot/farepilot/internal/capture"
	"github.com/farepilot/farepilot/internal/deeplink"
	"github.com/farepilot/farepilot/internal/drivers"
	"github.com/farepilot/farepilot/internal/fare"
	"github.com/farepilot/farepilot/internal/geodist"
	"github.com/farepilot/farepilot/pkg/eventbus"
	"github.com/farepilot/farepilot/pkg/logger"
	"github.com/farepilot/farepilot/pkg/tracing"
	"github.com/farepilot/farepilot/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// TariffSource provides the active tariff table.
type TariffSource interface {
	Tariffs(ctx context.Context) map[fare.Provider]fare.Tariff
}

// ObservedPriceSource reads prices captured from competitor apps.
type ObservedPriceSource interface {
	LatestObservedPrices(ctx context.Context) ([]capture.ObservedPrice, error)
	ClearObservedPrices(ctx context.Context) error
}

// DriverSource finds independent drivers near a pickup point.
type DriverSource interface {
	FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]drivers.Candidate, error)
}

// Publisher emits domain events. The NATS bus satisfies it; a nil-safe
// no-op is used when eventing is disabled.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Service orchestrates a comparison: trip geometry, formula estimates,
// concurrent collaborator reads, merge, rank.
type Service struct {
	tariffs        TariffSource
	observed       ObservedPriceSource
	driverSource   DriverSource
	resolver       *deeplink.Resolver
	publisher      Publisher
	searchRadiusKm float64
	lookupTimeout  time.Duration
	captureTimeout time.Duration
	now            func() time.Time
}

// NewService creates a comparison service. publisher may be nil.
func NewService(
	tariffs TariffSource,
	observed ObservedPriceSource,
	driverSource DriverSource,
	resolver *deeplink.Resolver,
	publisher Publisher,
	searchRadiusKm float64,
	lookupTimeout, captureTimeout time.Duration,
) *Service {
	if searchRadiusKm <= 0 {
		searchRadiusKm = 3.0
	}
	if lookupTimeout <= 0 {
		lookupTimeout = 2 * time.Second
	}
	if captureTimeout <= 0 {
		captureTimeout = 500 * time.Millisecond
	}
	return &Service{
		tariffs:        tariffs,
		observed:       observed,
		driverSource:   driverSource,
		resolver:       resolver,
		publisher:      publisher,
		searchRadiusKm: searchRadiusKm,
		lookupTimeout:  lookupTimeout,
		captureTimeout: captureTimeout,
		now:            time.Now,
	}
}

// Compare prices the trip across all providers and returns the ranked
// offer set. Collaborator failures degrade the result instead of
// failing it; only an invalid request is an error.
func (s *Service) Compare(ctx context.Context, trip TripRequest, policy SortPolicy) (*RankedOfferSet, error) {
	start := time.Now()
	ctx, span := tracing.Tracer("compare").Start(ctx, "compare.Compare")
	defer span.End()

	if err := validateTrip(trip); err != nil {
		return nil, err
	}

	at := trip.RequestedAt
	if at.IsZero() {
		at = s.now()
	}

	route := geodist.Calculate(
		trip.Origin.Lat, trip.Origin.Lng,
		trip.Destination.Lat, trip.Destination.Lng,
		at,
	)

	estimates := fare.EstimateAll(s.tariffs.Tariffs(ctx), route.DistanceKm, route.DurationMinutes, at)

	observed, candidates, degraded := s.gatherCollaborators(ctx, trip)

	quotes := Merge(MergeInput{
		Estimates:  estimates,
		Observed:   observed,
		Candidates: candidates,
		Degraded:   degraded,
	})
	ranked := Rank(quotes, policy)

	quality := QualityLive
	if degraded {
		quality = QualityFallback
	}

	result := &RankedOfferSet{
		Offers:          ranked,
		Policy:          policy,
		DataQuality:     quality,
		DistanceKm:      route.DistanceKm,
		DurationMinutes: route.DurationMinutes,
		GeneratedAt:     at,
	}

	span.SetAttributes(
		attribute.String("compare.policy", string(policy)),
		attribute.Int("compare.offers", len(ranked)),
		attribute.String("compare.data_quality", string(quality)),
	)
	comparisonsTotal.WithLabelValues(string(policy)).Inc()
	observedPriceQuotesTotal.Add(float64(len(observed)))
	compareDuration.Observe(time.Since(start).Seconds())

	s.publishCompareCompleted(ctx, trip, result, len(observed))

	return result, nil
}

// gatherCollaborators reads the capture store and the driver pool
// concurrently, each under its own deadline. A capture failure just
// means no observed prices; a driver lookup failure swaps in the
// placeholder roster and flags the result as degraded.
func (s *Service) gatherCollaborators(ctx context.Context, trip TripRequest) (map[fare.Provider]capture.ObservedPrice, []drivers.Candidate, bool) {
	var (
		wg         sync.WaitGroup
		observed   = make(map[fare.Provider]capture.ObservedPrice)
		candidates []drivers.Candidate
		degraded   bool
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		captureCtx, cancel := context.WithTimeout(ctx, s.captureTimeout)
		defer cancel()

		prices, err := s.observed.LatestObservedPrices(captureCtx)
		if err != nil {
			logger.WarnContext(ctx, "observed price read failed, using estimates only", zap.Error(err))
			return
		}
		for _, price := range prices {
			observed[price.Provider] = price
		}
	}()

	go func() {
		defer wg.Done()
		lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()

		found, err := s.driverSource.FindNearby(lookupCtx, trip.Origin.Lat, trip.Origin.Lng, s.searchRadiusKm)
		if err != nil {
			logger.WarnContext(ctx, "driver lookup failed, falling back to placeholder roster", zap.Error(err))
			driverLookupFallbackTotal.Inc()
			candidates = drivers.PlaceholderCandidates()
			degraded = true
			return
		}
		candidates = found
	}()

	wg.Wait()
	return observed, candidates, degraded
}

// Dispatch resolves the handoff action for a chosen provider.
func (s *Service) Dispatch(ctx context.Context, provider string, trip TripRequest) (*DeepLinkResponse, error) {
	if _, err := fare.ParseProvider(provider); err != nil {
		return nil, err
	}
	if err := validateTrip(trip); err != nil {
		return nil, err
	}

	action := s.resolver.Resolve(provider, deeplink.Trip{
		PickupLat:      trip.Origin.Lat,
		PickupLng:      trip.Origin.Lng,
		DropoffLat:     trip.Destination.Lat,
		DropoffLng:     trip.Destination.Lng,
		PickupAddress:  trip.PickupAddress,
		DropoffAddress: trip.DropoffAddress,
	})

	s.publishAsync(eventbus.SubjectOfferSelected, eventbus.OfferSelectedData{
		Provider:   provider,
		ActionType: string(action.Type),
		SelectedAt: s.now(),
	})

	return &DeepLinkResponse{Provider: provider, Action: action}, nil
}

// Providers lists the static provider descriptions from the tariff table.
func (s *Service) Providers(ctx context.Context) []ProviderInfo {
	tariffs := s.tariffs.Tariffs(ctx)
	infos := make([]ProviderInfo, 0, len(tariffs))
	for _, provider := range fare.AllProviders() {
		tariff, ok := tariffs[provider]
		if !ok {
			continue
		}
		infos = append(infos, ProviderInfo{
			Provider:      provider,
			Currency:      tariff.Currency,
			MinimumFare:   tariff.MinimumFare,
			ServiceRating: tariff.ServiceRating,
		})
	}
	return infos
}

// ClearObservedPrices drops all captured prices, forcing estimate-only
// quotes until the capture agent writes fresh ones.
func (s *Service) ClearObservedPrices(ctx context.Context) error {
	return s.observed.ClearObservedPrices(ctx)
}

func (s *Service) publishCompareCompleted(ctx context.Context, trip TripRequest, result *RankedOfferSet, observedCount int) {
	data := eventbus.CompareCompletedData{
		PickupLatitude:   trip.Origin.Lat,
		PickupLongitude:  trip.Origin.Lng,
		DropoffLatitude:  trip.Destination.Lat,
		DropoffLongitude: trip.Destination.Lng,
		DistanceKm:       result.DistanceKm,
		SortPolicy:       string(result.Policy),
		OfferCount:       len(result.Offers),
		ObservedCount:    observedCount,
		DataQuality:      string(result.DataQuality),
		CompletedAt:      s.now(),
	}
	if len(result.Offers) > 0 {
		data.BestProvider = result.Offers[0].Provider.String()
		data.BestPrice = result.Offers[0].Price
		data.Currency = result.Offers[0].Currency
	}
	s.publishAsync(eventbus.SubjectCompareCompleted, data)
}

// publishAsync fires an event without blocking the request path.
func (s *Service) publishAsync(subject string, data interface{}) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, subject, data); err != nil {
			logger.Warn("failed to publish event", zap.String("subject", subject), zap.Error(err))
		}
	}()
}

func validateTrip(trip TripRequest) error {
	if err := validation.ValidateStruct(trip.Origin); err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	if err := validation.ValidateStruct(trip.Destination); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	return nil
}
