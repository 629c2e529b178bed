package regression

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gradientlab/regviz/metrics"
	"github.com/gradientlab/regviz/pkg/errors"
	"github.com/gradientlab/regviz/pkg/log"
)

// Model is a univariate linear regression model trained epoch by epoch with
// gradient descent. It owns the original-scale data, a Normalizer frozen
// over that data, a GradientDescent engine over the normalized data, and the
// current normalized parameters.
type Model struct {
	xOriginal []float64
	yOriginal []float64

	normalizer *Normalizer
	gd         *GradientDescent
	tracker    *metrics.Tracker

	// Normalized-space parameters, mutated once per epoch.
	theta0 float64
	theta1 float64

	costHistory []float64

	rng    *rand.Rand
	logger *slog.Logger
}

// SplitResult holds the partitions produced by TrainTestSplit.
type SplitResult struct {
	XTrain []float64
	YTrain []float64
	XTest  []float64
	YTest  []float64
}

// New creates a Model over original-scale data. Parameters start at (0, 0).
func New(x, y []float64, opts ...Option) (*Model, error) {
	if err := validateDataset("regression.New", x, y); err != nil {
		return nil, err
	}

	m := &Model{
		xOriginal: append([]float64(nil), x...),
		yOriginal: append([]float64(nil), y...),
		tracker:   metrics.NewTracker(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		seed := uint64(time.Now().UnixNano())
		m.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}

	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

// rebuild recomputes the normalizer and gradient engine from the stored
// original-scale data. Parameters are left untouched.
func (m *Model) rebuild() error {
	normalizer, err := NewNormalizer(m.xOriginal, m.yOriginal)
	if err != nil {
		return err
	}
	xNorm, yNorm, err := normalizer.Normalize(m.xOriginal, m.yOriginal)
	if err != nil {
		return err
	}
	gd, err := NewGradientDescent(xNorm, yNorm)
	if err != nil {
		return err
	}
	m.normalizer = normalizer
	m.gd = gd
	return nil
}

// TrainTestSplit randomly permutes the sample indices and takes the first
// floor(n*trainRatio) as the training partition, the remainder as test.
func (m *Model) TrainTestSplit(trainRatio float64) (SplitResult, error) {
	if trainRatio <= 0.0 || trainRatio >= 1.0 {
		return SplitResult{}, errors.NewValidationError("train_ratio", "must be in the open interval (0, 1)", trainRatio)
	}

	n := len(m.xOriginal)
	nTrain := int(float64(n) * trainRatio)
	perm := m.rng.Perm(n)

	res := SplitResult{
		XTrain: make([]float64, 0, nTrain),
		YTrain: make([]float64, 0, nTrain),
		XTest:  make([]float64, 0, n-nTrain),
		YTest:  make([]float64, 0, n-nTrain),
	}
	for i, idx := range perm {
		if i < nTrain {
			res.XTrain = append(res.XTrain, m.xOriginal[idx])
			res.YTrain = append(res.YTrain, m.yOriginal[idx])
		} else {
			res.XTest = append(res.XTest, m.xOriginal[idx])
			res.YTest = append(res.YTest, m.yOriginal[idx])
		}
	}

	m.logger.Debug("train/test split",
		log.OperationKey, "split",
		log.TrainSamplesKey, len(res.XTrain),
		log.TestSamplesKey, len(res.XTest),
	)
	return res, nil
}

// SetTrainingData replaces the model's data wholesale and rebuilds the
// normalizer and gradient engine against it. Parameters are not reset;
// training continues from the current theta.
func (m *Model) SetTrainingData(x, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return errors.NewValueError("Model.SetTrainingData", "x and y must be non-empty")
	}
	if len(x) != len(y) {
		return errors.NewDimensionError("Model.SetTrainingData", len(x), len(y))
	}
	m.xOriginal = append([]float64(nil), x...)
	m.yOriginal = append([]float64(nil), y...)
	return m.rebuild()
}

// TrainEpochByEpoch validates the hyperparameters and returns a stream that
// produces one EpochResult per call to Next. Each call to this method is an
// independent run starting from the current parameters; the metrics history
// and cost history restart with it.
func (m *Model) TrainEpochByEpoch(cfg TrainConfig) (*EpochStream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m.tracker = metrics.NewTracker()
	m.costHistory = m.costHistory[:0]

	m.logger.Debug("training run starting",
		log.ModelNameKey, "LinearRegression",
		log.OperationKey, "fit",
		log.SamplesKey, m.gd.NumSamples(),
		"learning_rate", cfg.LearningRate,
		"max_epochs", cfg.MaxEpochs,
	)
	return newEpochStream(m, cfg), nil
}

// Predict returns original-scale predictions for original-scale x values.
// Inputs are normalized with the stored statistics, evaluated in normalized
// space, and the outputs denormalized.
func (m *Model) Predict(x []float64) ([]float64, error) {
	xNorm, err := m.normalizer.NormalizeInput(x)
	if err != nil {
		return nil, errors.Wrap(err, "prediction failed")
	}
	predsNorm := make([]float64, len(xNorm))
	for i, v := range xNorm {
		predsNorm[i] = m.theta0 + m.theta1*v
	}
	return m.normalizer.DenormalizePredictions(predsNorm), nil
}

// OriginalScaleParameters returns the current parameters converted to the
// original data scale.
func (m *Model) OriginalScaleParameters() Parameters {
	return m.normalizer.OriginalScaleParameters(m.theta0, m.theta1)
}

// NormalizedParameters returns the current normalized-space parameters.
func (m *Model) NormalizedParameters() Parameters {
	return Parameters{Theta0: m.theta0, Theta1: m.theta1}
}

// LatestMetrics returns the most recent per-epoch metrics of the current
// run. The second return value is false before the first recorded epoch.
func (m *Model) LatestMetrics() (metrics.Snapshot, bool) {
	return m.tracker.Latest()
}

// MetricsSummary returns min/max/current/improvement per metric for the
// current run.
func (m *Model) MetricsSummary() (metrics.Summary, bool) {
	return m.tracker.Summary()
}

// CostHistory returns a copy of the per-epoch normalized-space costs of the
// current run, ordered by epoch.
func (m *Model) CostHistory() []float64 {
	return append([]float64(nil), m.costHistory...)
}

// NumSamples returns the number of samples the model currently trains on.
func (m *Model) NumSamples() int {
	return len(m.xOriginal)
}

// ModelSummary is a read-only view of the model after (or during) training.
type ModelSummary struct {
	NormalizedTheta0   float64
	NormalizedTheta1   float64
	OriginalTheta0     float64
	OriginalTheta1     float64
	EquationNormalized string
	EquationOriginal   string
	TrainingExamples   int
	FinalCost          float64
	Metrics            metrics.Summary
}

// Summary returns the denormalized parameters, equation strings, and the
// metrics summary of the current run.
func (m *Model) Summary() ModelSummary {
	orig := m.OriginalScaleParameters()
	summary, _ := m.tracker.Summary()
	return ModelSummary{
		NormalizedTheta0:   m.theta0,
		NormalizedTheta1:   m.theta1,
		OriginalTheta0:     orig.Theta0,
		OriginalTheta1:     orig.Theta1,
		EquationNormalized: fmt.Sprintf("y_norm = %.4f + %.4f*x_norm", m.theta0, m.theta1),
		EquationOriginal:   FormatEquation(orig),
		TrainingExamples:   len(m.xOriginal),
		FinalCost:          m.gd.ComputeCost(m.theta0, m.theta1),
		Metrics:            summary,
	}
}

// FormatEquation renders original-scale parameters as a human-readable
// equation string.
func FormatEquation(p Parameters) string {
	return fmt.Sprintf("y = %.4f + %.4f * x", p.Theta0, p.Theta1)
}

func validateDataset(op string, x, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return errors.NewValueError(op, "x and y must be non-empty")
	}
	if len(x) != len(y) {
		return errors.NewDimensionError(op, len(x), len(y))
	}
	if !errors.IsFinite(x...) || !errors.IsFinite(y...) {
		return errors.NewValueError(op, "x and y must contain only finite values")
	}
	return nil
}
