package errors

import (
	"math"
	"strings"
	"testing"
)

func TestStructuredErrorsSurviveWrapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target interface{}
	}{
		{"ValueError", NewValueError("op", "bad value"), new(*ValueError)},
		{"ValidationError", NewValidationError("learning_rate", "must be positive", -0.1), new(*ValidationError)},
		{"DimensionError", NewDimensionError("op", 3, 2), new(*DimensionError)},
		{"ComputationError", NewComputationError("op", "singular matrix", nil), new(*ComputationError)},
		{"NumericalInstabilityError", NewNumericalInstabilityError("op", []float64{math.NaN()}, 7), new(*NumericalInstabilityError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, "outer context")
			if !As(wrapped, tt.target) {
				t.Errorf("As() failed to find %s through a wrap", tt.name)
			}
			if !strings.Contains(wrapped.Error(), "outer context") {
				t.Errorf("wrapped message lost the annotation: %q", wrapped.Error())
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	err := NewValidationError("train_ratio", "must be in (0, 1)", 1.5)
	want := "regviz: validation failed for parameter 'train_ratio': must be in (0, 1) (got: 1.5)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	dimErr := NewDimensionError("Model.New", 10, 8)
	if got := dimErr.Error(); !strings.Contains(got, "Expected 10, got 8") {
		t.Errorf("Error() = %q, want length mismatch detail", got)
	}
}

func TestCheckValues(t *testing.T) {
	if err := CheckValues("op", []float64{1, 2, 3}, 1); err != nil {
		t.Errorf("CheckValues() on finite input = %v, want nil", err)
	}

	err := CheckValues("op", []float64{1, math.Inf(1)}, 4)
	if err == nil {
		t.Fatal("CheckValues() with Inf should fail")
	}
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatal("error should be a NumericalInstabilityError")
	}
	if numErr.Epoch != 4 {
		t.Errorf("Epoch = %d, want 4", numErr.Epoch)
	}

	if err := CheckScalar("op", math.NaN(), 1); err == nil {
		t.Error("CheckScalar() with NaN should fail")
	}
	if err := CheckScalar("op", 0, 1); err != nil {
		t.Errorf("CheckScalar() on zero = %v, want nil", err)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(0, -1.5, 1e300) {
		t.Error("IsFinite() on finite values = false, want true")
	}
	if IsFinite(1, math.NaN()) {
		t.Error("IsFinite() with NaN = true, want false")
	}
	if IsFinite(math.Inf(-1)) {
		t.Error("IsFinite() with -Inf = true, want false")
	}
	if !IsFinite() {
		t.Error("IsFinite() with no values = false, want true")
	}
}

func TestSafeExecuteConvertsPanic(t *testing.T) {
	err := SafeExecute("risky", func() error {
		panic("boom")
	})
	if err == nil {
		t.Fatal("SafeExecute() should return the recovered panic as an error")
	}
	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("error = %T, want *PanicError", err)
	}
	if panicErr.Operation != "risky" {
		t.Errorf("Operation = %q, want %q", panicErr.Operation, "risky")
	}
	if panicErr.StackTrace == "" {
		t.Error("StackTrace should be captured")
	}
}

func TestSafeExecutePassesThrough(t *testing.T) {
	if err := SafeExecute("ok", func() error { return nil }); err != nil {
		t.Errorf("SafeExecute() = %v, want nil", err)
	}

	sentinel := New("expected failure")
	if err := SafeExecute("failing", func() error { return sentinel }); !Is(err, sentinel) {
		t.Errorf("SafeExecute() = %v, want the function's own error", err)
	}
}

func TestWarningHandler(t *testing.T) {
	var captured error
	prev := func(w error) {}
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(prev)

	w := NewConvergenceWarning("gradient_descent", 100, "hit the epoch limit")
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	var convWarn *ConvergenceWarning
	if !As(captured, &convWarn) {
		t.Fatalf("captured = %T, want *ConvergenceWarning", captured)
	}
	if convWarn.Epochs != 100 {
		t.Errorf("Epochs = %d, want 100", convWarn.Epochs)
	}
	if !strings.Contains(convWarn.Error(), "did not converge after 100 epochs") {
		t.Errorf("Error() = %q, want non-convergence message", convWarn.Error())
	}
}
