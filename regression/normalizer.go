// Package regression implements univariate linear regression trained by
// gradient descent. Data is normalized to zero mean and unit variance before
// optimization; parameters and predictions are mapped back to the original
// measurement units so callers get interpretable results.
package regression

import (
	"gonum.org/v1/gonum/stat"

	"github.com/gradientlab/regviz/pkg/errors"
)

// Parameters holds a linear model's intercept and slope.
type Parameters struct {
	Theta0 float64 // intercept
	Theta1 float64 // slope
}

// NormalizationStats holds the frozen statistics of one dataset.
// Std fields are always > 0: a computed standard deviation of exactly 0 is
// replaced by 1.0 so constant features remain representable.
type NormalizationStats struct {
	XMean float64
	XStd  float64
	YMean float64
	YStd  float64
}

// Normalizer converts raw values to zero-mean/unit-variance form and maps
// fitted parameters and predictions back to the original scale. Statistics
// are computed once at construction and never mutated; new data gets a new
// Normalizer.
type Normalizer struct {
	stats NormalizationStats
}

// NewNormalizer computes and freezes the mean and population standard
// deviation of x and y.
func NewNormalizer(x, y []float64) (*Normalizer, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, errors.NewValueError("NewNormalizer", "x and y must be non-empty")
	}
	if !errors.IsFinite(x...) || !errors.IsFinite(y...) {
		return nil, errors.NewComputationError("NewNormalizer", "non-finite input values", nil)
	}

	s := NormalizationStats{
		XMean: stat.Mean(x, nil),
		XStd:  stat.PopStdDev(x, nil),
		YMean: stat.Mean(y, nil),
		YStd:  stat.PopStdDev(y, nil),
	}

	// Zero variance would divide by zero below.
	if s.XStd == 0 {
		s.XStd = 1.0
	}
	if s.YStd == 0 {
		s.YStd = 1.0
	}

	return &Normalizer{stats: s}, nil
}

// Stats returns the frozen normalization statistics.
func (n *Normalizer) Stats() NormalizationStats {
	return n.stats
}

// Normalize returns (x-mean)/std for both series using the stored statistics.
func (n *Normalizer) Normalize(x, y []float64) ([]float64, []float64, error) {
	xNorm, err := n.NormalizeInput(x)
	if err != nil {
		return nil, nil, err
	}
	if !errors.IsFinite(y...) {
		return nil, nil, errors.NewComputationError("Normalizer.Normalize", "non-finite y values", nil)
	}
	yNorm := make([]float64, len(y))
	for i, v := range y {
		yNorm[i] = (v - n.stats.YMean) / n.stats.YStd
	}
	return xNorm, yNorm, nil
}

// NormalizeInput normalizes new x values for prediction.
func (n *Normalizer) NormalizeInput(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, errors.NewValueError("Normalizer.NormalizeInput", "empty input")
	}
	if !errors.IsFinite(x...) {
		return nil, errors.NewComputationError("Normalizer.NormalizeInput", "non-finite x values", nil)
	}
	xNorm := make([]float64, len(x))
	for i, v := range x {
		xNorm[i] = (v - n.stats.XMean) / n.stats.XStd
	}
	return xNorm, nil
}

// DenormalizePredictions maps normalized predictions back to the original
// y scale.
func (n *Normalizer) DenormalizePredictions(predsNorm []float64) []float64 {
	preds := make([]float64, len(predsNorm))
	for i, v := range predsNorm {
		preds[i] = v*n.stats.YStd + n.stats.YMean
	}
	return preds
}

// OriginalScaleParameters converts normalized linear parameters to the
// original data scale:
//
//	theta1_orig = theta1_norm * (y_std / x_std)
//	theta0_orig = theta0_norm * y_std + y_mean - theta1_orig * x_mean
//
// theta1 must be computed first; theta0's formula depends on it.
func (n *Normalizer) OriginalScaleParameters(theta0Norm, theta1Norm float64) Parameters {
	theta1 := theta1Norm * (n.stats.YStd / n.stats.XStd)
	theta0 := theta0Norm*n.stats.YStd + n.stats.YMean - theta1*n.stats.XMean
	return Parameters{Theta0: theta0, Theta1: theta1}
}
