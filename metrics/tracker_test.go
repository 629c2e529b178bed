package metrics

import (
	"math"
	"testing"
)

func TestTrackerEmpty(t *testing.T) {
	tr := NewTracker()

	if _, ok := tr.Latest(); ok {
		t.Error("Latest() on empty tracker should report no data")
	}
	if _, ok := tr.Summary(); ok {
		t.Error("Summary() on empty tracker should report no data")
	}
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tr.Len())
	}
}

func TestTrackerRecordAndLatest(t *testing.T) {
	tr := NewTracker()
	yTrue := []float64{1.0, 2.0, 3.0, 4.0}

	res, err := tr.Record(yTrue, []float64{3.0, 4.0, 5.0, 6.0}, 1)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if math.Abs(res.RMSE-2.0) > 1e-10 {
		t.Errorf("RMSE = %v, want 2.0", res.RMSE)
	}
	if math.Abs(res.MAE-2.0) > 1e-10 {
		t.Errorf("MAE = %v, want 2.0", res.MAE)
	}

	if _, err := tr.Record(yTrue, []float64{1.5, 2.5, 3.5, 4.5}, 2); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	latest, ok := tr.Latest()
	if !ok {
		t.Fatal("Latest() should report data after Record")
	}
	if latest.Epoch != 2 {
		t.Errorf("latest epoch = %d, want 2", latest.Epoch)
	}
	if math.Abs(latest.RMSE-0.5) > 1e-10 {
		t.Errorf("latest RMSE = %v, want 0.5", latest.RMSE)
	}
}

func TestTrackerRecordInvalidInput(t *testing.T) {
	tr := NewTracker()
	if _, err := tr.Record([]float64{1, 2, 3}, []float64{1, 2}, 1); err == nil {
		t.Error("Record() with mismatched lengths should fail")
	}
	if tr.Len() != 0 {
		t.Errorf("failed Record must not append to history, Len() = %d", tr.Len())
	}
}

func TestTrackerSummary(t *testing.T) {
	tr := NewTracker()
	yTrue := []float64{1.0, 2.0, 3.0, 4.0}

	// Error shrinks epoch over epoch.
	preds := [][]float64{
		{3.0, 4.0, 5.0, 6.0}, // rmse 2.0
		{2.0, 3.0, 4.0, 5.0}, // rmse 1.0
		{1.5, 2.5, 3.5, 4.5}, // rmse 0.5
	}
	for i, p := range preds {
		if _, err := tr.Record(yTrue, p, i+1); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	summary, ok := tr.Summary()
	if !ok {
		t.Fatal("Summary() should report data")
	}
	if math.Abs(summary.RMSE.Min-0.5) > 1e-10 {
		t.Errorf("RMSE min = %v, want 0.5", summary.RMSE.Min)
	}
	if math.Abs(summary.RMSE.Max-2.0) > 1e-10 {
		t.Errorf("RMSE max = %v, want 2.0", summary.RMSE.Max)
	}
	if math.Abs(summary.RMSE.Current-0.5) > 1e-10 {
		t.Errorf("RMSE current = %v, want 0.5", summary.RMSE.Current)
	}
	// improvement = first - last
	if math.Abs(summary.RMSE.Improvement-1.5) > 1e-10 {
		t.Errorf("RMSE improvement = %v, want 1.5", summary.RMSE.Improvement)
	}
}

func TestTrackerSummarySingleEpochImprovement(t *testing.T) {
	tr := NewTracker()
	if _, err := tr.Record([]float64{1, 2, 3}, []float64{1, 2, 3}, 1); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	summary, ok := tr.Summary()
	if !ok {
		t.Fatal("Summary() should report data")
	}
	if summary.RMSE.Improvement != 0.0 {
		t.Errorf("improvement with one epoch = %v, want 0.0", summary.RMSE.Improvement)
	}
}

func TestTrackerHistoryIsCopy(t *testing.T) {
	tr := NewTracker()
	if _, err := tr.Record([]float64{1, 2}, []float64{1, 2}, 1); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	rmse, _, _, epochs := tr.History()
	rmse[0] = 99
	epochs[0] = 99

	latest, _ := tr.Latest()
	if latest.RMSE == 99 || latest.Epoch == 99 {
		t.Error("History() must return copies, not internal slices")
	}
}
