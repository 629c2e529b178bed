package regression

import (
	"github.com/gradientlab/regviz/pkg/errors"
)

// GradientDescent computes cost and gradients for the hypothesis
// h(x) = theta0 + theta1*x over a fixed, already normalized dataset.
// It holds no mutable state beyond the data reference; both methods are
// pure functions of (data, theta).
type GradientDescent struct {
	x []float64
	y []float64
	m int
}

// NewGradientDescent stores references to normalized 1-D x and y slices of
// equal length m >= 1. The implicit design matrix is [1, x].
func NewGradientDescent(x, y []float64) (*GradientDescent, error) {
	if len(x) == 0 {
		return nil, errors.NewValueError("NewGradientDescent", "empty training data")
	}
	if len(y) != len(x) {
		return nil, errors.NewDimensionError("NewGradientDescent", len(x), len(y))
	}
	return &GradientDescent{x: x, y: y, m: len(x)}, nil
}

// NumSamples returns the number of training samples.
func (g *GradientDescent) NumSamples() int {
	return g.m
}

// ComputeCost returns the mean squared cost J(θ) = (1/2m) Σ(h - y)².
func (g *GradientDescent) ComputeCost(theta0, theta1 float64) float64 {
	var sum float64
	for i := 0; i < g.m; i++ {
		diff := theta0 + theta1*g.x[i] - g.y[i]
		sum += diff * diff
	}
	return sum / (2.0 * float64(g.m))
}

// ComputeGradients returns the partial derivatives of the cost with respect
// to theta0 and theta1:
//
//	g0 = (1/m) Σ(h_i - y_i)
//	g1 = (1/m) Σ((h_i - y_i) * x_i)
func (g *GradientDescent) ComputeGradients(theta0, theta1 float64) (float64, float64) {
	var g0, g1 float64
	for i := 0; i < g.m; i++ {
		err := theta0 + theta1*g.x[i] - g.y[i]
		g0 += err
		g1 += err * g.x[i]
	}
	m := float64(g.m)
	return g0 / m, g1 / m
}
