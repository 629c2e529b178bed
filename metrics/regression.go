// Package metrics provides regression evaluation metrics and a per-epoch
// tracker used to follow how a model improves during training.
package metrics

import (
	"math"

	"github.com/gradientlab/regviz/pkg/errors"
)

// MSE computes the mean squared error between true and predicted values.
func MSE(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty input")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("MSE", n, len(yPred))
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue[i] - yPred[i]
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty input")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("MAE", n, len(yPred))
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue[i] - yPred[i])
	}

	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination.
// A constant target (SS_tot == 0) yields 0.0 rather than an error, so that
// degenerate uploads remain representable.
func R2Score(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("R2Score", "empty input")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("R2Score", n, len(yPred))
	}

	var mean float64
	for _, v := range yTrue {
		mean += v
	}
	mean /= float64(n)

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		res := yTrue[i] - yPred[i]
		tot := yTrue[i] - mean
		ssRes += res * res
		ssTot += tot * tot
	}

	if ssTot == 0 {
		return 0.0, nil
	}
	return 1.0 - ssRes/ssTot, nil
}
