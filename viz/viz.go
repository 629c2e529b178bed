// Package viz renders training results as PNG charts: the per-epoch cost
// curve and the fitted line over the data. These are server-side exports of
// the convergence picture, not an interactive UI.
package viz

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gradientlab/regviz/pkg/errors"
	"github.com/gradientlab/regviz/regression"
)

// SaveCostCurve writes a line chart of cost against epoch.
func SaveCostCurve(costs []float64, path string) error {
	if len(costs) == 0 {
		return errors.NewValueError("viz.SaveCostCurve", "empty cost history")
	}

	xys := make(plotter.XYs, 0, len(costs))
	for i, c := range costs {
		xys = append(xys, plotter.XY{X: float64(i + 1), Y: c})
	}

	p := plot.New()
	p.Title.Text = "Gradient descent convergence"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "cost"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrap(err, "viz.SaveCostCurve")
	}
	line.Color = color.RGBA{R: 20, G: 80, B: 200, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrap(err, "viz.SaveCostCurve")
	}
	return nil
}

// SaveFitLine writes a scatter of the data with the fitted line drawn from
// the smallest to the largest x value.
func SaveFitLine(x, y []float64, params regression.Parameters, path string) error {
	if len(x) == 0 || len(x) != len(y) {
		return errors.NewValueError("viz.SaveFitLine", "x and y must be non-empty and equal length")
	}

	points := make(plotter.XYs, 0, len(x))
	xmin, xmax := x[0], x[0]
	for i := range x {
		points = append(points, plotter.XY{X: x[i], Y: y[i]})
		if x[i] < xmin {
			xmin = x[i]
		}
		if x[i] > xmax {
			xmax = x[i]
		}
	}

	p := plot.New()
	p.Title.Text = regression.FormatEquation(params)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return errors.Wrap(err, "viz.SaveFitLine")
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 120, G: 120, B: 120, A: 200}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)
	p.Legend.Add("data", scatter)

	fit := plotter.XYs{
		{X: xmin, Y: params.Theta0 + params.Theta1*xmin},
		{X: xmax, Y: params.Theta0 + params.Theta1*xmax},
	}
	line, err := plotter.NewLine(fit)
	if err != nil {
		return errors.Wrap(err, "viz.SaveFitLine")
	}
	line.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("fit", line)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrap(err, "viz.SaveFitLine")
	}
	return nil
}
