// internal/carriers/registry_test.go
package carriers_test

import (
	"context"
	"testing"

	"rate-engine/internal/carriers"
	"rate-engine/internal/carriers/simulated"
	"rate-engine/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := carriers.NewRegistry()

	reg.Register(simulated.New("stg"))
	reg.Register(simulated.New("daylight"))

	a, ok := reg.Get("stg")
	assert.True(t, ok)
	assert.Equal(t, "stg", a.Name())

	_, ok = reg.Get("unknown-carrier")
	assert.False(t, ok)

	assert.Equal(t, []string{"daylight", "stg"}, reg.IDs())
}

func TestRegistry_ReplaceAdapter(t *testing.T) {
	reg := carriers.NewRegistry()

	first := simulated.New("stg").WithRates(models.CarrierRate{Service: "LTL Standard", Rate: models.RateBreakdown{Base: 100}})
	second := simulated.New("stg").WithRates(models.CarrierRate{Service: "LTL Guaranteed", Rate: models.RateBreakdown{Base: 200}})

	reg.Register(first)
	reg.Register(second)

	a, ok := reg.Get("stg")
	assert.True(t, ok)

	rates, err := a.Quote(context.Background(), models.CarrierConfig{CarrierID: "stg", Enabled: true}, models.ShipmentRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "LTL Guaranteed", rates[0].Service)
}
