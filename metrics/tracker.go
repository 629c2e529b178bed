package metrics

// Result holds the three regression metrics computed for one epoch.
type Result struct {
	RMSE float64
	MAE  float64
	R2   float64
}

// Snapshot is a Result tagged with the epoch it was recorded at.
type Snapshot struct {
	Result
	Epoch int
}

// Stat summarizes one metric across the recorded history.
type Stat struct {
	Min         float64
	Max         float64
	Current     float64
	Improvement float64 // first recorded value minus last; 0 with fewer than two epochs
}

// Summary holds per-metric statistics over a full training run.
type Summary struct {
	RMSE Stat
	MAE  Stat
	R2   Stat
}

// Tracker accumulates regression metrics epoch by epoch. One Tracker serves
// one training run; a new run gets a new Tracker.
type Tracker struct {
	rmse   []float64
	mae    []float64
	r2     []float64
	epochs []int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record computes RMSE, MAE, and R² for the prediction pair and appends them
// to the history under the given epoch.
func (t *Tracker) Record(yTrue, yPred []float64, epoch int) (Result, error) {
	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		return Result{}, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Result{}, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return Result{}, err
	}

	t.rmse = append(t.rmse, rmse)
	t.mae = append(t.mae, mae)
	t.r2 = append(t.r2, r2)
	t.epochs = append(t.epochs, epoch)

	return Result{RMSE: rmse, MAE: mae, R2: r2}, nil
}

// Len returns the number of recorded epochs.
func (t *Tracker) Len() int {
	return len(t.epochs)
}

// Latest returns the most recently recorded metrics. The second return value
// is false if nothing has been recorded yet.
func (t *Tracker) Latest() (Snapshot, bool) {
	n := len(t.epochs)
	if n == 0 {
		return Snapshot{}, false
	}
	return Snapshot{
		Result: Result{RMSE: t.rmse[n-1], MAE: t.mae[n-1], R2: t.r2[n-1]},
		Epoch:  t.epochs[n-1],
	}, true
}

// Summary returns min/max/current/improvement for each metric. The second
// return value is false if nothing has been recorded yet.
func (t *Tracker) Summary() (Summary, bool) {
	if len(t.epochs) == 0 {
		return Summary{}, false
	}
	return Summary{
		RMSE: summarize(t.rmse),
		MAE:  summarize(t.mae),
		R2:   summarize(t.r2),
	}, true
}

// History returns copies of the recorded series, ordered by epoch.
func (t *Tracker) History() (rmse, mae, r2 []float64, epochs []int) {
	rmse = append(rmse, t.rmse...)
	mae = append(mae, t.mae...)
	r2 = append(r2, t.r2...)
	epochs = append(epochs, t.epochs...)
	return rmse, mae, r2, epochs
}

func summarize(vals []float64) Stat {
	s := Stat{Min: vals[0], Max: vals[0], Current: vals[len(vals)-1]}
	for _, v := range vals {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	if len(vals) > 1 {
		s.Improvement = vals[0] - vals[len(vals)-1]
	}
	return s
}
