// Package session wraps a regression model with cooperative pause, resume,
// and stop control and paces epoch emission for live consumption. One
// session drives one training run at a time; updates flow to the consumer
// over a channel, one message per epoch plus one final summary.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/gradientlab/regviz/baseline"
	"github.com/gradientlab/regviz/metrics"
	"github.com/gradientlab/regviz/pkg/errors"
	"github.com/gradientlab/regviz/pkg/log"
	"github.com/gradientlab/regviz/regression"
)

// MinSamples is the smallest dataset a session accepts. Upstream cleaning
// guarantees at least this many rows; the session re-checks before training.
const MinSamples = 10

const defaultPausePoll = 500 * time.Millisecond

// Config holds the hyperparameters for one training run.
type Config struct {
	LearningRate  float64
	MaxEpochs     int
	Tolerance     float64
	EarlyStopping bool
	TrainSplit    float64
	Speed         Speed
}

// Session owns the control flags shared between the drive loop and external
// pause/resume/stop calls. The flags are the only cross-boundary mutable
// state; all access goes through the session's mutex.
type Session struct {
	mu     sync.RWMutex
	active bool
	paused bool

	model *regression.Model
	split regression.SplitResult
	xData []float64
	yData []float64
	cfg   Config

	pausePoll time.Duration
	logger    *slog.Logger
	modelOpts []regression.Option
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger the session emits to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithPausePollInterval overrides how often the drive loop re-checks the
// control flags while paused. Mainly useful in tests.
func WithPausePollInterval(d time.Duration) Option {
	return func(s *Session) {
		s.pausePoll = d
	}
}

// WithModelOptions forwards options to the model built by Start, such as
// regression.WithSeed for reproducible splits.
func WithModelOptions(opts ...regression.Option) Option {
	return func(s *Session) {
		s.modelOpts = append(s.modelOpts, opts...)
	}
}

// New creates an idle session.
func New(opts ...Option) *Session {
	s := &Session{
		pausePoll: defaultPausePoll,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates the cleaned dataset and hyperparameters, builds the model,
// performs the train/test split, and transitions the session to active.
// It fails if a run is already active or the dataset is unusable.
func (s *Session) Start(x, y []float64, cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return errors.NewValueError("Session.Start", "training already active")
	}
	if len(x) == 0 || len(y) == 0 {
		return errors.NewValueError("Session.Start", "no cleaned data available for training")
	}
	if len(x) != len(y) {
		return errors.NewDimensionError("Session.Start", len(x), len(y))
	}
	if len(x) < MinSamples {
		return errors.NewValidationError("dataset", "too few samples after cleaning", len(x))
	}
	trainCfg := regression.TrainConfig{
		LearningRate:  cfg.LearningRate,
		MaxEpochs:     cfg.MaxEpochs,
		Tolerance:     cfg.Tolerance,
		EarlyStopping: cfg.EarlyStopping,
	}
	if err := trainCfg.Validate(); err != nil {
		return err
	}

	opts := append([]regression.Option{regression.WithLogger(s.logger)}, s.modelOpts...)
	model, err := regression.New(x, y, opts...)
	if err != nil {
		return err
	}
	split, err := model.TrainTestSplit(cfg.TrainSplit)
	if err != nil {
		return err
	}
	if err := model.SetTrainingData(split.XTrain, split.YTrain); err != nil {
		return err
	}

	s.model = model
	s.split = split
	s.xData = append([]float64(nil), x...)
	s.yData = append([]float64(nil), y...)
	s.cfg = cfg
	s.active = true
	s.paused = false

	s.logger.Info("training session started",
		log.OperationKey, "fit",
		log.SamplesKey, len(x),
		log.TrainSamplesKey, len(split.XTrain),
		log.TestSamplesKey, len(split.XTest),
		"learning_rate", cfg.LearningRate,
		"max_epochs", cfg.MaxEpochs,
		"early_stopping", cfg.EarlyStopping,
	)
	return nil
}

// Pause suspends epoch emission. Idempotent; the returned string describes
// what happened.
func (s *Session) Pause() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.active && !s.paused:
		s.paused = true
		s.logger.Info("training paused")
		return "Training paused"
	case s.paused:
		return "Training already paused"
	default:
		return "No active training to pause"
	}
}

// Resume lifts a pause. Idempotent; the returned string describes what
// happened.
func (s *Session) Resume() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.active && s.paused:
		s.paused = false
		s.logger.Info("training resumed")
		return "Training resumed"
	case !s.paused:
		return "Training not paused"
	default:
		return "No active training to resume"
	}
}

// Stop requests a graceful end of the run. The drive loop honors it at the
// next pre-epoch check. Idempotent.
func (s *Session) Stop() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		s.active = false
		s.paused = false
		s.logger.Info("training stop requested")
		return "Training stop requested"
	}
	return "No active training to stop"
}

// Active reports whether a run is active.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Paused reports whether the run is paused.
func (s *Session) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

func (s *Session) flags() (active, paused bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.paused
}

// Model returns the model of the current or most recent run, nil before the
// first Start.
func (s *Session) Model() *regression.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Run drives the training run started by Start and returns the channel the
// updates arrive on. The channel carries one EpochUpdate per epoch and is
// closed after the FinalUpdate (or after one ErrorUpdate on failure). The
// control flags are reset on every exit path. Canceling the context
// abandons the run without a final message.
func (s *Session) Run(ctx context.Context) <-chan Update {
	updates := make(chan Update)
	go s.run(ctx, updates)
	return updates
}

func (s *Session) run(ctx context.Context, updates chan<- Update) {
	defer close(updates)
	defer s.cleanup()

	start := time.Now()
	err := errors.SafeExecute("session.run", func() error {
		return s.stream(ctx, updates)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Info("training stream abandoned", log.ErrAttr(err))
			return
		}
		s.logger.Error("training stream failed", log.ErrAttr(err))
		s.emit(ctx, updates, ErrorUpdate{Message: err.Error()})
		return
	}
	s.logger.Info("training stream completed",
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
}

// stream is the drive loop: check the stop flag, wait out a pause, request
// one epoch, emit it, pace, repeat. These are the only suspension points; an
// epoch in progress always completes and is emitted.
func (s *Session) stream(ctx context.Context, updates chan<- Update) error {
	stream, err := s.model.TrainEpochByEpoch(regression.TrainConfig{
		LearningRate:  s.cfg.LearningRate,
		MaxEpochs:     s.cfg.MaxEpochs,
		Tolerance:     s.cfg.Tolerance,
		EarlyStopping: s.cfg.EarlyStopping,
	})
	if err != nil {
		return err
	}
	delay := s.cfg.Speed.Delay()

	for {
		if !s.Active() {
			s.logger.Info("training stream stopped by request")
			break
		}
		if err := s.waitWhilePaused(ctx); err != nil {
			return err
		}

		result, ok := stream.Next()
		if !ok {
			if stream.Outcome() == regression.OutcomeDiverged {
				s.logger.Warn("training run diverged", log.ErrAttr(stream.Err()))
			}
			break
		}

		if err := s.emit(ctx, updates, s.epochUpdate(result)); err != nil {
			return err
		}

		if !result.IsComplete {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return s.emit(ctx, updates, s.finalUpdate())
}

// waitWhilePaused suspends until the run is resumed or stopped, re-checking
// the flags at the poll interval.
func (s *Session) waitWhilePaused(ctx context.Context) error {
	for {
		active, paused := s.flags()
		if !active || !paused {
			return nil
		}
		s.logger.Debug("training paused; waiting")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.pausePoll):
		}
	}
}

func (s *Session) emit(ctx context.Context, updates chan<- Update, u Update) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case updates <- u:
		return nil
	}
}

// epochUpdate converts an epoch result into the external message. Theta is
// reported on the original scale. The normalized-space cost stands in for
// the original-scale training MSE except on every 10th epoch and on the
// final one, where the real value is recomputed.
func (s *Session) epochUpdate(r regression.EpochResult) EpochUpdate {
	params := s.model.OriginalScaleParameters()

	cost := r.Cost
	if r.Epoch%10 == 0 || r.IsComplete {
		if preds, err := s.model.Predict(s.split.XTrain); err == nil {
			if mse, err := metrics.MSE(s.split.YTrain, preds); err == nil {
				cost = mse
			}
		}
	}

	return EpochUpdate{
		Epoch:      r.Epoch,
		MaxEpochs:  r.MaxEpochs,
		Theta0:     params.Theta0,
		Theta1:     params.Theta1,
		Cost:       cost,
		Converged:  r.Converged,
		IsComplete: r.IsComplete,
		RMSE:       r.RMSE,
		MAE:        r.MAE,
		R2:         r.R2,
	}
}

// finalUpdate assembles the terminating message: held-out evaluation,
// final parameters, data ranges, the metrics summary, and the reference
// comparison. A comparison failure is reported as a failed sub-result.
func (s *Session) finalUpdate() FinalUpdate {
	var testMSE, testR2 float64
	if preds, err := s.model.Predict(s.split.XTest); err == nil {
		if mse, err := metrics.MSE(s.split.YTest, preds); err == nil {
			testMSE = mse
		}
		if r2, err := metrics.R2Score(s.split.YTest, preds); err == nil {
			testR2 = r2
		}
	}

	params := s.model.OriginalScaleParameters()
	final := FinalUpdate{
		TrainingComplete: true,
		FinalTheta0:      params.Theta0,
		FinalTheta1:      params.Theta1,
		Equation:         regression.FormatEquation(params),
		TestMSE:          testMSE,
		TestR2:           testR2,
		XRange:           [2]float64{floats.Min(s.xData), floats.Max(s.xData)},
		YRange:           [2]float64{floats.Min(s.yData), floats.Max(s.yData)},
		Summary:          s.model.Summary(),
		ComparisonStatus: "failed",
	}
	if latest, ok := s.model.LatestMetrics(); ok {
		final.FinalRMSE = latest.RMSE
		final.FinalMAE = latest.MAE
		final.FinalR2 = latest.R2
	}

	// The reference fit runs over the full dataset, isolated so its failure
	// cannot abort the result that training already produced.
	var comp *baseline.Comparison
	err := errors.SafeExecute("baseline comparison", func() error {
		var err error
		comp, err = baseline.Fit(s.xData, s.yData)
		return err
	})
	if err != nil {
		s.logger.Warn("reference comparison failed", log.ErrAttr(err))
	} else {
		final.Comparison = comp
		final.ComparisonStatus = "success"
	}

	return final
}

// cleanup resets the control flags to idle.
func (s *Session) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.paused = false
	s.logger.Info("training state cleaned up")
}
