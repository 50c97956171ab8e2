package prescription

import (
	"strconv"
	"strings"

	"github.com/ecemedico/ece/internal/platform/fhir"
)

// dosageSeparator joins dose, frequency, and duration into the single
// human-readable dosage text. The inbound split relies on the exact same
// literal, positionally; a dose that itself contains " - " will mis-map on
// the way back. That ambiguity is inherited from existing data and is left
// as is.
const dosageSeparator = " - "

// PackDosage renders "dose - frequency - duration".
func PackDosage(d *Drug) string {
	return d.Dose + dosageSeparator + d.Frequency + dosageSeparator + d.Duration
}

// SplitDosage recovers dose, frequency, and duration from packed dosage
// text. Missing trailing parts degrade to empty strings.
func SplitDosage(text string) (dose, frequency, duration string) {
	parts := strings.SplitN(text, dosageSeparator, 3)
	dose = parts[0]
	if len(parts) > 1 {
		frequency = parts[1]
	}
	if len(parts) > 2 {
		duration = parts[2]
	}
	return dose, frequency, duration
}

// DoseQuantity extracts a best-effort numeric quantity from a free-text
// dose. "400mg" yields 400/"mg", a bare number yields the placeholder unit
// "unidad", and a dose with no leading number yields nil (the dosage text
// still carries it verbatim).
func DoseQuantity(dose string) *fhir.Quantity {
	trimmed := strings.TrimSpace(dose)
	end := 0
	for end < len(trimmed) {
		c := trimmed[end]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		end++
	}
	if end == 0 {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed[:end], 64)
	if err != nil {
		return nil
	}
	unit := strings.TrimSpace(trimmed[end:])
	if unit == "" {
		unit = "unidad"
	}
	return &fhir.Quantity{Value: value, Unit: unit}
}
