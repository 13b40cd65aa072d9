package fare

import (
	"context"

	"github.com/farepilot/farepilot/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Repository loads provider tariffs from Postgres. Any failure degrades
// to the hardcoded defaults so a comparison can always proceed.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new tariff repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const tariffQuery = `
	SELECT provider, base_fare, per_km_rate, per_minute_rate, booking_fee,
	       minimum_fare, surge_damping, rounding_unit, currency,
	       typical_pickup_eta_min, service_rating
	FROM provider_tariffs
	WHERE is_active = true
`

// Tariffs returns the active tariff per provider. Providers missing from
// the table, and the whole table on query failure, fall back to defaults.
func (r *Repository) Tariffs(ctx context.Context) map[Provider]Tariff {
	tariffs := DefaultTariffs()

	if r.db == nil {
		return tariffs
	}

	rows, err := r.db.Query(ctx, tariffQuery)
	if err != nil {
		logger.WarnContext(ctx, "tariff query failed, using default tariffs", zap.Error(err))
		return tariffs
	}
	defer rows.Close()

	for rows.Next() {
		var t Tariff
		var rawProvider string
		if err := rows.Scan(
			&rawProvider,
			&t.BaseFare,
			&t.PerKmRate,
			&t.PerMinuteRate,
			&t.BookingFee,
			&t.MinimumFare,
			&t.SurgeDamping,
			&t.RoundingUnit,
			&t.Currency,
			&t.TypicalPickupETAMin,
			&t.ServiceRating,
		); err != nil {
			logger.WarnContext(ctx, "tariff row scan failed", zap.Error(err))
			continue
		}

		provider, err := ParseProvider(rawProvider)
		if err != nil {
			logger.WarnContext(ctx, "skipping tariff for unknown provider",
				zap.String("provider", rawProvider))
			continue
		}

		t.Provider = provider
		tariffs[provider] = t
	}

	if err := rows.Err(); err != nil {
		logger.WarnContext(ctx, "tariff rows iteration failed, result may be partial", zap.Error(err))
	}

	return tariffs
}
