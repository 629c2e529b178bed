package regression

import (
	"math"

	"github.com/gradientlab/regviz/metrics"
	"github.com/gradientlab/regviz/pkg/errors"
)

// noImprovementLimit is the number of consecutive low-improvement epochs
// after which an early-stopping run ends.
const noImprovementLimit = 15

// TrainConfig holds the hyperparameters of one training run.
type TrainConfig struct {
	LearningRate  float64
	MaxEpochs     int
	Tolerance     float64
	EarlyStopping bool
}

// Validate checks the hyperparameters before a run starts, so a bad value
// surfaces to the caller synchronously rather than mid-stream.
func (c TrainConfig) Validate() error {
	if c.LearningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be positive", c.LearningRate)
	}
	if c.MaxEpochs < 1 {
		return errors.NewValidationError("max_epochs", "must be at least 1", c.MaxEpochs)
	}
	if c.Tolerance < 0 {
		return errors.NewValidationError("tolerance", "must be non-negative", c.Tolerance)
	}
	return nil
}

// EpochResult is the immutable record of one completed epoch. Theta values
// are in normalized space; the metrics are computed on the original scale.
type EpochResult struct {
	Epoch      int
	MaxEpochs  int
	Theta0     float64
	Theta1     float64
	Cost       float64
	CostChange float64
	Converged  bool
	IsComplete bool
	RMSE       float64
	MAE        float64
	R2         float64
}

// Outcome tags how a finished stream ended, so callers can tell a diverged
// run from a normally completed one.
type Outcome int

const (
	// OutcomeRunning means the stream has not been exhausted yet.
	OutcomeRunning Outcome = iota
	// OutcomeCompleted means the run ended by epoch limit, convergence, or
	// early stopping.
	OutcomeCompleted
	// OutcomeDiverged means the parameters became non-finite and the run was
	// cut short. The epoch that diverged is not reported.
	OutcomeDiverged
	// OutcomeFailed means an internal computation failed.
	OutcomeFailed
)

// EpochStream produces EpochResults one at a time. It is finite and
// non-restartable; a new run needs a new stream from TrainEpochByEpoch.
// Results come in ascending epoch order, exactly once each.
type EpochStream struct {
	model *Model
	cfg   TrainConfig

	epoch     int
	prevCost  float64
	noImprove int

	outcome Outcome
	err     error
}

func newEpochStream(m *Model, cfg TrainConfig) *EpochStream {
	return &EpochStream{
		model: m,
		cfg:   cfg,
		// +Inf so the first epoch's cost change can never satisfy the
		// early-stopping tolerance.
		prevCost: math.Inf(1),
		outcome:  OutcomeRunning,
	}
}

// Next advances the run by one epoch and returns its result. The second
// return value is false once the stream is exhausted; Outcome then reports
// how the run ended.
func (s *EpochStream) Next() (EpochResult, bool) {
	if s.outcome != OutcomeRunning {
		return EpochResult{}, false
	}
	if s.epoch >= s.cfg.MaxEpochs {
		s.outcome = OutcomeCompleted
		return EpochResult{}, false
	}
	s.epoch++

	m := s.model
	cost := m.gd.ComputeCost(m.theta0, m.theta1)
	g0, g1 := m.gd.ComputeGradients(m.theta0, m.theta1)

	theta0 := m.theta0 - s.cfg.LearningRate*g0
	theta1 := m.theta1 - s.cfg.LearningRate*g1

	// Fail-safe against divergence: a non-finite parameter ends the run
	// without reporting the epoch that produced it.
	if !errors.IsFinite(theta0, theta1) {
		s.outcome = OutcomeDiverged
		s.err = errors.NewNumericalInstabilityError("EpochStream.Next", []float64{theta0, theta1}, s.epoch)
		errors.Warn(errors.NewConvergenceWarning("GradientDescent", s.epoch, "parameters diverged"))
		return EpochResult{}, false
	}
	m.theta0 = theta0
	m.theta1 = theta1

	costChange := math.Abs(s.prevCost - cost)
	converged := costChange < s.cfg.Tolerance

	if s.cfg.EarlyStopping && costChange < s.cfg.Tolerance {
		s.noImprove++
		if s.noImprove >= noImprovementLimit {
			// The run ends on the epoch that trips the counter; like the
			// divergence case, that epoch itself is not reported.
			s.outcome = OutcomeCompleted
			return EpochResult{}, false
		}
	} else {
		s.noImprove = 0
	}

	m.costHistory = append(m.costHistory, cost)

	// Fresh metrics on original-scale predictions over the full training
	// set. A metric failure is a graceful degradation, not a run failure.
	var recorded metrics.Result
	if preds, err := m.Predict(m.xOriginal); err == nil {
		if res, err := m.tracker.Record(m.yOriginal, preds, s.epoch); err == nil {
			recorded = res
		}
	}

	result := EpochResult{
		Epoch:      s.epoch,
		MaxEpochs:  s.cfg.MaxEpochs,
		Theta0:     m.theta0,
		Theta1:     m.theta1,
		Cost:       cost,
		CostChange: costChange,
		Converged:  converged,
		IsComplete: s.epoch >= s.cfg.MaxEpochs || converged,
		RMSE:       recorded.RMSE,
		MAE:        recorded.MAE,
		R2:         recorded.R2,
	}

	s.prevCost = cost
	if s.epoch >= s.cfg.MaxEpochs {
		s.outcome = OutcomeCompleted
	}
	return result, true
}

// Outcome reports how the run ended. It returns OutcomeRunning while the
// stream still has epochs to produce.
func (s *EpochStream) Outcome() Outcome {
	return s.outcome
}

// Err returns the diagnostic error for a diverged or failed run, nil
// otherwise.
func (s *EpochStream) Err() error {
	return s.err
}
