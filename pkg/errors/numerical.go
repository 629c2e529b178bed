package errors

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// NumericalInstabilityError reports NaN or Inf values produced during an
// iterative computation. Gradient descent raises it when the parameter
// vector leaves the representable range.
type NumericalInstabilityError struct {
	Op     string
	Values []float64
	Epoch  int
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("regviz: %s: non-finite values at epoch %d: %v", e.Op, e.Epoch, e.Values)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("epoch", e.Epoch).
		Floats64("values", e.Values).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError creates a new NumericalInstabilityError with a
// stack trace attached.
func NewNumericalInstabilityError(op string, values []float64, epoch int) error {
	err := &NumericalInstabilityError{Op: op, Values: values, Epoch: epoch}
	return errors.WithStack(err)
}

// CheckValues returns an error if any value is NaN or Inf.
func CheckValues(op string, values []float64, epoch int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(op, values, epoch)
		}
	}
	return nil
}

// CheckScalar returns an error if a single value is NaN or Inf.
func CheckScalar(op string, value float64, epoch int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(op, []float64{value}, epoch)
	}
	return nil
}

// IsFinite reports whether every value is finite. It is the cheap variant of
// CheckValues for callers that do not need the error value.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
