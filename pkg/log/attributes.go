// Standard attribute keys for training-related log records. Using the same
// keys everywhere keeps the JSON logs filterable across packages.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "split", "stream".
	OperationKey = "ml.operation"

	// SessionIDKey identifies the training session a record belongs to.
	SessionIDKey = "session.id"

	// PhaseKey indicates the lifecycle phase, e.g. "training", "comparison".
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of samples in the dataset.
	SamplesKey = "data.samples"

	// TrainSamplesKey is the number of samples in the training partition.
	TrainSamplesKey = "data.train_samples"

	// TestSamplesKey is the number of samples in the held-out partition.
	TestSamplesKey = "data.test_samples"
)

// Training progress and metrics.
const (
	// EpochKey is the current epoch number.
	EpochKey = "training.epoch"

	// LossKey is the cost value at the current epoch.
	LossKey = "metrics.loss"

	// R2ScoreKey is the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// RMSEKey is the root mean squared error.
	RMSEKey = "metrics.rmse"

	// DurationMsKey is the elapsed time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
