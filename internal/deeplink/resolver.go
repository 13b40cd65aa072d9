package deeplink

import (
	"fmt"
	"net/url"
)

// ActionType tells the client how to hand the rider off to a provider.
type ActionType string

const (
	// ActionDeepLink opens the provider app pre-filled with the trip.
	ActionDeepLink ActionType = "deep_link"
	// ActionAppOpen opens the provider app without trip context.
	ActionAppOpen ActionType = "app_open"
)

// Trip carries the coordinates and display addresses a deep link embeds.
type Trip struct {
	PickupLat      float64
	PickupLng      float64
	DropoffLat     float64
	DropoffLng     float64
	PickupAddress  string
	DropoffAddress string
}

// Action is the handoff instruction for one provider.
type Action struct {
	Type       ActionType `json:"type"`
	URL        string     `json:"url"`
	AppPackage string     `json:"app_package,omitempty"`
}

var appPackages = map[string]string{
	"uber":     "com.ubercab",
	"careem":   "com.careem.acma",
	"bolt":     "ee.mtakso.client",
	"didi":     "com.sdu.didi.psnger",
	"indriver": "sinet.startup.inDriver",
}

// Resolver builds provider handoff actions. Resolution never fails:
// providers without a trip-parameter scheme get an app-open action,
// unknown providers get an empty deep link.
type Resolver struct{}

// NewResolver creates a deep link resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the handoff action for the given provider and trip.
func (r *Resolver) Resolve(provider string, trip Trip) Action {
	switch provider {
	case "uber":
		return Action{
			Type: ActionDeepLink,
			URL: fmt.Sprintf(
				"uber://?action=setPickup&pickup[latitude]=%f&pickup[longitude]=%f&pickup[formatted_address]=%s&dropoff[latitude]=%f&dropoff[longitude]=%f&dropoff[formatted_address]=%s",
				trip.PickupLat, trip.PickupLng, url.QueryEscape(trip.PickupAddress),
				trip.DropoffLat, trip.DropoffLng, url.QueryEscape(trip.DropoffAddress),
			),
			AppPackage: appPackages["uber"],
		}
	case "careem":
		return Action{
			Type: ActionDeepLink,
			URL: fmt.Sprintf(
				"careem://ride.careem.com/booking?pickup_latitude=%f&pickup_longitude=%f&dropoff_latitude=%f&dropoff_longitude=%f",
				trip.PickupLat, trip.PickupLng, trip.DropoffLat, trip.DropoffLng,
			),
			AppPackage: appPackages["careem"],
		}
	case "bolt":
		return Action{
			Type: ActionDeepLink,
			URL: fmt.Sprintf(
				"bolt://action/newOrder?pickup_lat=%f&pickup_lng=%f&destination_lat=%f&destination_lng=%f",
				trip.PickupLat, trip.PickupLng, trip.DropoffLat, trip.DropoffLng,
			),
			AppPackage: appPackages["bolt"],
		}
	case "didi", "indriver":
		// No public trip-parameter scheme; open the app.
		return Action{
			Type:       ActionAppOpen,
			URL:        provider + "://",
			AppPackage: appPackages[provider],
		}
	case "independent":
		// Independent drivers are dispatched in-app, not handed off.
		return Action{
			Type: ActionAppOpen,
			URL:  "",
		}
	default:
		return Action{
			Type: ActionAppOpen,
			URL:  "",
		}
	}
}
