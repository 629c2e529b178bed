package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradientlab/regviz/pkg/errors"
)

func TestFitExactLine(t *testing.T) {
	// y = 3 + 2x, no noise.
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 7, 9, 11, 13}

	c, err := Fit(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, c.Intercept, 1e-9)
	assert.InDelta(t, 2.0, c.Slope, 1e-9)
	assert.InDelta(t, 1.0, c.R2, 1e-12)
	assert.InDelta(t, 0.0, c.RMSE, 1e-9)
	assert.InDelta(t, 0.0, c.MAE, 1e-9)
	assert.Equal(t, "y = 3.0000 + 2.0000 * x", c.Equation)

	require.Len(t, c.Predictions, len(x))
	for i := range x {
		assert.InDelta(t, y[i], c.Predictions[i], 1e-9)
	}
}

func TestFitNoisyLine(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1.5, 1.5, 3.5, 3.5}

	// By hand: Sxy/Sxx = 4/5, intercept = 2.5 - 0.8*1.5.
	c, err := Fit(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.3, c.Intercept, 1e-9)
	assert.InDelta(t, 0.8, c.Slope, 1e-9)
	assert.Greater(t, c.RMSE, 0.0)
	assert.Less(t, c.R2, 1.0)
}

func TestFitValidation(t *testing.T) {
	_, err := Fit(nil, nil)
	var valErr *errors.ValueError
	require.Error(t, err)
	assert.True(t, errors.As(err, &valErr))

	_, err = Fit([]float64{1, 2, 3}, []float64{1, 2})
	var dimErr *errors.DimensionError
	require.Error(t, err)
	assert.True(t, errors.As(err, &dimErr))
}

func TestFitSingularDesign(t *testing.T) {
	// A constant feature makes the design matrix rank deficient.
	x := []float64{4, 4, 4, 4}
	y := []float64{1, 2, 3, 4}

	_, err := Fit(x, y)
	var compErr *errors.ComputationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &compErr))
}
