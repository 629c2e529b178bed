// Package regviz implements the training core of a teaching tool that fits
// a univariate linear model with gradient descent and streams convergence
// progress in real time.
//
// The model normalizes data to zero mean and unit variance before
// optimizing, then converts parameters and predictions back to the original
// measurement units. Training runs one epoch at a time; a session wraps a
// run with cooperative pause/resume/stop control and paces epoch emission
// for live consumers.
//
// # Packages
//
//   - regression: Normalizer, gradient-descent engine, Model, EpochStream
//   - metrics: RMSE/MAE/R² and the per-epoch metrics Tracker
//   - session: pause/resume/stop control and the channel-based drive loop
//   - baseline: closed-form OLS reference fit for post-run comparison
//   - viz: PNG export of cost curves and fitted lines
//
// # Quick Start
//
//	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
//	y := []float64{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}
//
//	sess := session.New()
//	err := sess.Start(x, y, session.Config{
//	    LearningRate:  0.1,
//	    MaxEpochs:     500,
//	    Tolerance:     1e-8,
//	    EarlyStopping: true,
//	    TrainSplit:    0.8,
//	    Speed:         session.SpeedFastest,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for update := range sess.Run(context.Background()) {
//	    switch u := update.(type) {
//	    case session.EpochUpdate:
//	        fmt.Printf("epoch %d: cost=%.6f r2=%.4f\n", u.Epoch, u.Cost, u.R2)
//	    case session.FinalUpdate:
//	        fmt.Println(u.Equation)
//	    }
//	}
package regviz
