// internal/units/convert_test.go
package units

import (
	"testing"

	"rate-engine/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestConvert_ImperialToMetric(t *testing.T) {
	piece := models.CargoPiece{
		Quantity:  1,
		WeightLbs: 500,
		LengthIn:  48,
		WidthIn:   40,
		HeightIn:  60,
	}

	got := Convert(piece, models.UnitImperial)

	assert.InDelta(t, 226.796, got.WeightKg, 0.001)
	assert.InDelta(t, 121.92, got.LengthCm, 0.001)
	assert.InDelta(t, 101.6, got.WidthCm, 0.001)
	assert.InDelta(t, 152.4, got.HeightCm, 0.001)

	// Imperial fields untouched.
	assert.Equal(t, 500.0, got.WeightLbs)
	assert.Equal(t, 48.0, got.LengthIn)
}

func TestConvert_MetricToImperial(t *testing.T) {
	piece := models.CargoPiece{
		Quantity: 2,
		WeightKg: 100,
		LengthCm: 120,
		WidthCm:  80,
		HeightCm: 100,
	}

	got := Convert(piece, models.UnitMetric)

	assert.InDelta(t, 220.462, got.WeightLbs, 0.01)
	assert.InDelta(t, 47.244, got.LengthIn, 0.01)
	assert.InDelta(t, 31.496, got.WidthIn, 0.01)
	assert.InDelta(t, 39.370, got.HeightIn, 0.01)
}

func TestConvert_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		piece models.CargoPiece
	}{
		{"pallet", models.CargoPiece{WeightLbs: 500, LengthIn: 48, WidthIn: 40, HeightIn: 60}},
		{"small box", models.CargoPiece{WeightLbs: 12.5, LengthIn: 10, WidthIn: 8, HeightIn: 6}},
		{"heavy crate", models.CargoPiece{WeightLbs: 2200, LengthIn: 96, WidthIn: 48, HeightIn: 48}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metric := Convert(tt.piece, models.UnitImperial)

			// Recompute imperial from the metric fields only.
			back := Convert(models.CargoPiece{
				WeightKg: metric.WeightKg,
				LengthCm: metric.LengthCm,
				WidthCm:  metric.WidthCm,
				HeightCm: metric.HeightCm,
			}, models.UnitMetric)

			assert.InDelta(t, tt.piece.WeightLbs, back.WeightLbs, 0.01)
			assert.InDelta(t, tt.piece.LengthIn, back.LengthIn, 0.01)
			assert.InDelta(t, tt.piece.WidthIn, back.WidthIn, 0.01)
			assert.InDelta(t, tt.piece.HeightIn, back.HeightIn, 0.01)
		})
	}
}

func TestConvertAll(t *testing.T) {
	req := models.ShipmentRequest{
		UnitSystem: models.UnitImperial,
		Pieces: []models.CargoPiece{
			{WeightLbs: 100, LengthIn: 12, WidthIn: 12, HeightIn: 12},
			{WeightLbs: 250, LengthIn: 48, WidthIn: 40, HeightIn: 40},
		},
	}

	got := ConvertAll(req)

	assert.Len(t, got.Pieces, 2)
	for _, p := range got.Pieces {
		assert.Greater(t, p.WeightKg, 0.0)
		assert.Greater(t, p.LengthCm, 0.0)
	}
}
