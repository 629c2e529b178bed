package session

import (
	"github.com/gradientlab/regviz/baseline"
	"github.com/gradientlab/regviz/regression"
)

// Update is one discrete message emitted by a running session. A run
// produces zero or more EpochUpdates followed by exactly one FinalUpdate,
// or a single ErrorUpdate if the stream fails.
type Update interface {
	isUpdate()
}

// EpochUpdate reports the state of the model after one epoch. Theta values
// are on the original data scale.
type EpochUpdate struct {
	Epoch      int
	MaxEpochs  int
	Theta0     float64
	Theta1     float64
	Cost       float64
	Converged  bool
	IsComplete bool
	RMSE       float64
	MAE        float64
	R2         float64
}

func (EpochUpdate) isUpdate() {}

// FinalUpdate is the single terminating message of a completed run.
type FinalUpdate struct {
	TrainingComplete bool
	FinalTheta0      float64
	FinalTheta1      float64
	Equation         string

	// Held-out evaluation.
	TestMSE float64
	TestR2  float64

	// Full-data ranges, for plotting the fitted line.
	XRange [2]float64
	YRange [2]float64

	FinalRMSE float64
	FinalMAE  float64
	FinalR2   float64

	Summary regression.ModelSummary

	// Reference-model comparison. Its failure does not fail the run;
	// ComparisonStatus is then "failed" and Comparison nil.
	Comparison       *baseline.Comparison
	ComparisonStatus string
}

func (FinalUpdate) isUpdate() {}

// ErrorUpdate converts an unexpected streaming failure into one in-band
// message. Nothing follows it.
type ErrorUpdate struct {
	Message string
}

func (ErrorUpdate) isUpdate() {}
