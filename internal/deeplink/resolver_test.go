package deeplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTrip = Trip{
	PickupLat:      31.5102,
	PickupLng:      74.3441,
	DropoffLat:     31.5216,
	DropoffLng:     74.4036,
	PickupAddress:  "Liberty Market, Lahore",
	DropoffAddress: "Allama Iqbal Intl Airport",
}

func TestResolve_UberEmbedsTripParameters(t *testing.T) {
	action := NewResolver().Resolve("uber", testTrip)

	assert.Equal(t, ActionDeepLink, action.Type)
	assert.Contains(t, action.URL, "uber://?action=setPickup")
	assert.Contains(t, action.URL, "pickup[latitude]=31.510200")
	assert.Contains(t, action.URL, "dropoff[longitude]=74.403600")
	assert.Contains(t, action.URL, "Liberty+Market%2C+Lahore")
	assert.Equal(t, "com.ubercab", action.AppPackage)
}

func TestResolve_CareemUsesSnakeCaseParameters(t *testing.T) {
	action := NewResolver().Resolve("careem", testTrip)

	assert.Equal(t, ActionDeepLink, action.Type)
	assert.Contains(t, action.URL, "pickup_latitude=31.510200")
	assert.Contains(t, action.URL, "dropoff_longitude=74.403600")
	assert.Equal(t, "com.careem.acma", action.AppPackage)
}

func TestResolve_BoltParameters(t *testing.T) {
	action := NewResolver().Resolve("bolt", testTrip)

	assert.Equal(t, ActionDeepLink, action.Type)
	assert.Contains(t, action.URL, "bolt://action/newOrder")
	assert.Contains(t, action.URL, "destination_lat=31.521600")
	assert.Equal(t, "ee.mtakso.client", action.AppPackage)
}

func TestResolve_AppOpenProviders(t *testing.T) {
	tests := []struct {
		provider   string
		appPackage string
	}{
		{"didi", "com.sdu.didi.psnger"},
		{"indriver", "sinet.startup.inDriver"},
	}

	for _, tt := range tests {
		action := NewResolver().Resolve(tt.provider, testTrip)

		assert.Equal(t, ActionAppOpen, action.Type, tt.provider)
		assert.Equal(t, tt.appPackage, action.AppPackage, tt.provider)
	}
}

func TestResolve_IndependentHasNoHandoff(t *testing.T) {
	action := NewResolver().Resolve("independent", testTrip)

	assert.Equal(t, ActionAppOpen, action.Type)
	assert.Empty(t, action.URL)
	assert.Empty(t, action.AppPackage)
}

func TestResolve_UnknownProviderNeverErrors(t *testing.T) {
	action := NewResolver().Resolve("horsecart", testTrip)

	assert.Equal(t, ActionAppOpen, action.Type)
	assert.Empty(t, action.URL)
}
