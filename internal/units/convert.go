// internal/units/convert.go

// Package units converts cargo piece dimensions and weights between imperial
// and metric. Conversion is pure: every returned piece carries both unit
// systems so adapters never re-derive values for the carrier they target.
package units

import "rate-engine/internal/models"

const (
	KgPerLb = 0.453592 // 1 lb = 0.453592 kg
	CmPerIn = 2.54     // 1 in = 2.54 cm
)

// Convert fills both unit systems on a piece from the fields of the given
// source system. Input validity (non-negative, numeric) is the caller's
// responsibility; Convert never fails.
func Convert(piece models.CargoPiece, from models.UnitSystem) models.CargoPiece {
	if from == models.UnitMetric {
		piece.WeightLbs = piece.WeightKg / KgPerLb
		piece.LengthIn = piece.LengthCm / CmPerIn
		piece.WidthIn = piece.WidthCm / CmPerIn
		piece.HeightIn = piece.HeightCm / CmPerIn
		return piece
	}
	piece.WeightKg = piece.WeightLbs * KgPerLb
	piece.LengthCm = piece.LengthIn * CmPerIn
	piece.WidthCm = piece.WidthIn * CmPerIn
	piece.HeightCm = piece.HeightIn * CmPerIn
	return piece
}

// ConvertAll converts every piece of a shipment in place and returns the
// shipment with both unit systems populated.
func ConvertAll(req models.ShipmentRequest) models.ShipmentRequest {
	pieces := make([]models.CargoPiece, len(req.Pieces))
	for i, p := range req.Pieces {
		pieces[i] = Convert(p, req.UnitSystem)
	}
	req.Pieces = pieces
	return req
}
