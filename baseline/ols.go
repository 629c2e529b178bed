// Package baseline fits a closed-form ordinary-least-squares line to a
// dataset. It is the reference model a gradient-descent run is compared
// against after training completes: a well-conditioned exact solution that
// validates what the iterative optimizer converged to.
package baseline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gradientlab/regviz/core/parallel"
	"github.com/gradientlab/regviz/metrics"
	"github.com/gradientlab/regviz/pkg/errors"
	"github.com/gradientlab/regviz/regression"
)

// Comparison holds the reference fit and its evaluation over the same data.
type Comparison struct {
	Intercept   float64
	Slope       float64
	Predictions []float64
	RMSE        float64
	MAE         float64
	R2          float64
	Equation    string
}

// Rows below this count are assembled sequentially.
const parallelThreshold = 1000

// Fit solves the normal equations w = (XᵀX)⁻¹Xᵀy for the univariate design
// matrix [1, x] and evaluates the resulting line over the full dataset.
func Fit(x, y []float64) (*Comparison, error) {
	n := len(x)
	if n == 0 {
		return nil, errors.NewValueError("baseline.Fit", "empty data")
	}
	if len(y) != n {
		return nil, errors.NewDimensionError("baseline.Fit", n, len(y))
	}

	// Design matrix with the intercept column.
	X := mat.NewDense(n, 2, nil)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			X.Set(i, 0, 1.0)
			X.Set(i, 1, x[i])
		}
	})
	yVec := mat.NewVecDense(n, append([]float64(nil), y...))

	var XT mat.Dense
	XT.CloneFrom(X.T())

	var XTX mat.Dense
	XTX.Mul(&XT, X)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return nil, errors.NewComputationError("baseline.Fit", "singular design matrix", err)
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	weights := mat.NewVecDense(2, nil)
	weights.MulVec(&XTXInv, &XTy)

	c := &Comparison{
		Intercept: weights.AtVec(0),
		Slope:     weights.AtVec(1),
	}

	c.Predictions = make([]float64, n)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			c.Predictions[i] = c.Intercept + c.Slope*x[i]
		}
	})

	var err error
	if c.RMSE, err = metrics.RMSE(y, c.Predictions); err != nil {
		return nil, err
	}
	if c.MAE, err = metrics.MAE(y, c.Predictions); err != nil {
		return nil, err
	}
	if c.R2, err = metrics.R2Score(y, c.Predictions); err != nil {
		return nil, err
	}
	c.Equation = regression.FormatEquation(regression.Parameters{Theta0: c.Intercept, Theta1: c.Slope})

	return c, nil
}
