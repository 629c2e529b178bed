package regression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradientlab/regviz/pkg/errors"
)

func collect(t *testing.T, s *EpochStream) []EpochResult {
	t.Helper()
	var results []EpochResult
	for {
		r, ok := s.Next()
		if !ok {
			return results
		}
		results = append(results, r)
	}
}

func TestStreamBoundsAndOrdering(t *testing.T) {
	x, y := testData(50)
	m, err := New(x, y, WithSeed(1))
	require.NoError(t, err)

	stream, err := m.TrainEpochByEpoch(TrainConfig{
		LearningRate: 0.1,
		MaxEpochs:    40,
		Tolerance:    1e-15,
	})
	require.NoError(t, err)
	results := collect(t, stream)

	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 40)
	for i, r := range results {
		assert.Equal(t, i+1, r.Epoch, "epochs must ascend from 1 without gaps")
		assert.Equal(t, 40, r.MaxEpochs)
	}
	assert.True(t, results[len(results)-1].IsComplete, "last result must be complete")
	assert.Equal(t, OutcomeCompleted, stream.Outcome())
	assert.NoError(t, stream.Err())

	// Exhausted streams stay exhausted.
	_, ok := stream.Next()
	assert.False(t, ok)
}

func TestStreamCostNonIncreasing(t *testing.T) {
	// Well-conditioned synthetic data with a conservative learning rate.
	x, y := testData(50)
	m, err := New(x, y, WithSeed(2))
	require.NoError(t, err)

	stream, err := m.TrainEpochByEpoch(TrainConfig{
		LearningRate: 0.05,
		MaxEpochs:    100,
		Tolerance:    1e-15,
	})
	require.NoError(t, err)
	results := collect(t, stream)

	require.Greater(t, len(results), 1)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Cost, results[i-1].Cost+1e-12,
			"cost increased from epoch %d to %d", results[i-1].Epoch, results[i].Epoch)
	}
}

func TestStreamEarlyStoppingAtFifteenEpochs(t *testing.T) {
	x, y := testData(30)
	m, err := New(x, y, WithSeed(3))
	require.NoError(t, err)

	// A tolerance every epoch trivially satisfies. The first epoch never
	// counts (previous cost starts at +Inf); the counter then runs for 15
	// consecutive epochs and the run ends with the last reported epoch 15.
	stream, err := m.TrainEpochByEpoch(TrainConfig{
		LearningRate:  0.01,
		MaxEpochs:     1000,
		Tolerance:     1e9,
		EarlyStopping: true,
	})
	require.NoError(t, err)
	results := collect(t, stream)

	require.Len(t, results, 15)
	assert.Equal(t, 15, results[len(results)-1].Epoch)
	assert.True(t, results[len(results)-1].Converged)
	assert.True(t, results[len(results)-1].IsComplete)
	assert.Equal(t, OutcomeCompleted, stream.Outcome())
}

func TestStreamEarlyStoppingDisabledRunsToLimit(t *testing.T) {
	x, y := testData(30)
	m, err := New(x, y, WithSeed(3))
	require.NoError(t, err)

	stream, err := m.TrainEpochByEpoch(TrainConfig{
		LearningRate:  0.01,
		MaxEpochs:     40,
		Tolerance:     1e9,
		EarlyStopping: false,
	})
	require.NoError(t, err)
	results := collect(t, stream)

	assert.Len(t, results, 40, "without early stopping the convergence flag alone must not end the run")
}

func TestStreamDivergenceStopsSilently(t *testing.T) {
	x, y := testData(20)
	m, err := New(x, y, WithSeed(4))
	require.NoError(t, err)

	// An absurd learning rate blows the parameters up within a few epochs.
	stream, err := m.TrainEpochByEpoch(TrainConfig{
		LearningRate: 1e12,
		MaxEpochs:    200,
		Tolerance:    1e-12,
	})
	require.NoError(t, err)
	results := collect(t, stream)

	assert.Less(t, len(results), 200)
	assert.Equal(t, OutcomeDiverged, stream.Outcome())

	var numErr *errors.NumericalInstabilityError
	require.Error(t, stream.Err())
	assert.True(t, errors.As(stream.Err(), &numErr))

	// Every reported epoch carries finite parameters; the diverged epoch
	// itself was dropped.
	for _, r := range results {
		assert.True(t, errors.IsFinite(r.Theta0, r.Theta1), "epoch %d has non-finite theta", r.Epoch)
	}
}

func TestStreamRunsAreIndependent(t *testing.T) {
	x, y := testData(20)
	m, err := New(x, y, WithSeed(5))
	require.NoError(t, err)

	cfg := TrainConfig{LearningRate: 0.1, MaxEpochs: 10, Tolerance: 1e-15}
	first, err := m.TrainEpochByEpoch(cfg)
	require.NoError(t, err)
	firstResults := collect(t, first)
	require.Len(t, firstResults, 10)

	// A second run starts from the parameters the first one reached and
	// restarts the metrics history.
	second, err := m.TrainEpochByEpoch(cfg)
	require.NoError(t, err)
	secondResults := collect(t, second)
	require.Len(t, secondResults, 10)

	assert.Equal(t, 1, secondResults[0].Epoch)
	assert.Less(t, secondResults[0].Cost, firstResults[0].Cost,
		"the second run must continue from the trained parameters")

	latest, ok := m.LatestMetrics()
	require.True(t, ok)
	assert.Equal(t, 10, latest.Epoch, "metrics history belongs to the latest run")
}

func TestEndToEndExactLine(t *testing.T) {
	// y = 2x exactly.
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}

	m, err := New(x, y, WithSeed(6))
	require.NoError(t, err)
	split, err := m.TrainTestSplit(0.8)
	require.NoError(t, err)
	require.NoError(t, m.SetTrainingData(split.XTrain, split.YTrain))

	stream, err := m.TrainEpochByEpoch(TrainConfig{
		LearningRate:  0.1,
		MaxEpochs:     500,
		Tolerance:     1e-8,
		EarlyStopping: true,
	})
	require.NoError(t, err)
	results := collect(t, stream)
	require.NotEmpty(t, results)

	params := m.OriginalScaleParameters()
	assert.InDelta(t, 2.0, params.Theta1, 0.05)
	assert.InDelta(t, 0.0, params.Theta0, 0.05)

	latest, ok := m.LatestMetrics()
	require.True(t, ok)
	assert.InDelta(t, 1.0, latest.R2, 1e-3)

	history := m.CostHistory()
	assert.Len(t, history, len(results))
}
