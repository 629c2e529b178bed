// Package errors provides structured error handling for the regviz training
// core. Error types carry the failing operation and enough context to log as
// structured fields; stack traces come from cockroachdb/errors.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("regviz-warning: %v\n", w)
	}
)

// SetWarningHandler replaces the process-wide warning handler. Warnings are
// advisory conditions (for example a diverged training run) that do not fail
// the operation that raised them.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn raises a warning through the configured handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ConvergenceWarning is raised when a training run ends without converging,
// either by hitting the epoch limit or by numerical divergence.
type ConvergenceWarning struct {
	Algorithm string
	Epochs    int
	Message   string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s did not converge after %d epochs: %s", w.Algorithm, w.Epochs, w.Message)
	}
	return fmt.Sprintf("%s did not converge after %d epochs. Consider more epochs or a smaller learning rate.", w.Algorithm, w.Epochs)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("epochs", w.Epochs).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, epochs int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Epochs: epochs, Message: message}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ValueError reports an argument whose value is unusable for the operation,
// such as an empty data slice or a non-finite sample.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("regviz: %s: %s", e.Op, e.Message)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("message", e.Message).
		Str("type", "ValueError")
}

// NewValueError creates a new ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ValidationError reports a hyperparameter that failed validation before
// training started, such as a train ratio outside (0, 1).
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("regviz: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a new ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// DimensionError reports mismatched input lengths, for example x and y
// slices of different sizes.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("regviz: %s: length mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ComputationError reports a numeric computation that could not produce a
// usable result, such as prediction over malformed input.
type ComputationError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ComputationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("regviz: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("regviz: %s: %s", e.Op, e.Kind)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ComputationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("kind", e.Kind).
		Str("type", "ComputationError")
}

// NewComputationError creates a new ComputationError with a stack trace attached.
func NewComputationError(op, kind string, err error) error {
	compErr := &ComputationError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(compErr)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}
