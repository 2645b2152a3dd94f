package evaluation

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveROCPlot renders the curve with the chance diagonal to a PNG.
func SaveROCPlot(points []ROCPoint, auc float64, path string) error {
	p := plot.New()
	p.Title.Text = "ROC Curve - Stacking Model"
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i].X = pt.FPR
		pts[i].Y = pt.TPR
	}

	curve, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build roc line: %w", err)
	}
	curve.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	curve.Width = vg.Points(1.5)

	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return fmt.Errorf("build diagonal: %w", err)
	}
	diagonal.Color = color.RGBA{B: 128, A: 255}
	diagonal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(curve, diagonal)
	p.Legend.Add(fmt.Sprintf("Stacking Model (AUC = %.2f)", auc), curve)
	p.Legend.Top = false
	p.Legend.Left = false

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save roc plot: %w", err)
	}

	return nil
}
