// Package validation checks inbound shipment requests before they reach the
// orchestrator. The quote-entry layer validates form fields; this is the last
// line of defense for the invariants the engine relies on.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"rate-engine/internal/common/errors"
	"rate-engine/internal/models"
)

// shipmentSchema describes the wire shape of a ShipmentRequest document.
const shipmentSchema = `{
	"type": "object",
	"required": ["pickupDate", "pieces"],
	"properties": {
		"originZip":     {"type": "string", "maxLength": 10},
		"originAirport": {"type": "string", "maxLength": 4},
		"destZip":       {"type": "string", "maxLength": 10},
		"destAirport":   {"type": "string", "maxLength": 4},
		"pickupDate":    {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"unitSystem":    {"type": "string", "enum": ["imperial", "metric"]},
		"insurance":     {"type": "boolean"},
		"insuranceValue": {"type": "number", "minimum": 0},
		"pieces": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"quantity":  {"type": "integer", "minimum": 1},
					"weightLbs": {"type": "number", "minimum": 0},
					"weightKg":  {"type": "number", "minimum": 0},
					"lengthIn":  {"type": "number", "minimum": 0},
					"widthIn":   {"type": "number", "minimum": 0},
					"heightIn":  {"type": "number", "minimum": 0}
				}
			}
		}
	}
}`

var shipmentSchemaLoader = gojsonschema.NewStringLoader(shipmentSchema)

// ValidateDocument validates a raw shipment request document against the
// JSON schema. Used at the HTTP boundary before unmarshalling.
func ValidateDocument(raw []byte) error {
	result, err := gojsonschema.Validate(shipmentSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errors.NewValidationFailedError(fmt.Sprintf("schema validation error: %v", err))
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return errors.NewValidationFailedError(strings.Join(msgs, "; "))
	}

	return nil
}

// ValidateShipment checks the engine invariants on a decoded request: a
// usable origin/destination pair and at least one piece with positive weight.
func ValidateShipment(req models.ShipmentRequest) error {
	if req.OriginZip == "" && req.OriginAirport == "" {
		return errors.NewValidationFailedError("origin is required (zip or airport code)")
	}
	if req.DestZip == "" && req.DestAirport == "" {
		return errors.NewValidationFailedError("destination is required (zip or airport code)")
	}
	if req.PickupDate == "" {
		return errors.NewValidationFailedError("pickupDate is required")
	}
	if len(req.Pieces) == 0 {
		return errors.NewValidationFailedError("at least one cargo piece is required")
	}

	hasWeight := false
	for i, p := range req.Pieces {
		if p.Quantity < 1 {
			return errors.NewValidationFailedError(fmt.Sprintf("pieces[%d].quantity must be at least 1", i))
		}
		if p.WeightLbs < 0 || p.WeightKg < 0 {
			return errors.NewValidationFailedError(fmt.Sprintf("pieces[%d] has a negative weight", i))
		}
		if p.WeightLbs > 0 || p.WeightKg > 0 {
			hasWeight = true
		}
	}
	if !hasWeight {
		return errors.NewValidationFailedError("at least one cargo piece must have a positive weight")
	}

	return nil
}
