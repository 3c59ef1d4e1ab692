package output

import (
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/motiontree/motiontree/motionerr"
)

// denseGrid adapts a *mat.Dense to plotter.GridXYZ so the heat map plotter
// can read D0 directly without a copy into its own row/column format.
type denseGrid struct{ m *mat.Dense }

func (g denseGrid) Dims() (c, r int) {
	rows, cols := g.m.Dims()
	return cols, rows
}

func (g denseGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g denseGrid) X(c int) float64    { return float64(c) }
func (g denseGrid) Y(r int) float64    { return float64(r) }

// writeHeatmap renders D0 as diff_dist_mat.png: a diverging blue-red scale
// from 0 (identical in both conformations) to the matrix's largest entry.
func writeHeatmap(dir string, d0 *mat.Dense) error {
	grid := denseGrid{m: d0}

	colorMap := moreland.SmoothBlueRed()
	colorMap.SetMin(0)
	colorMap.SetMax(maxEntry(d0))

	pal, err := colorMap.Palette(256)
	if err != nil {
		return motionerr.Wrap(motionerr.IOFailure, "building heat map palette", err)
	}

	heat := plotter.NewHeatMap(grid, pal)

	p := plot.New()
	p.Title.Text = "distance-difference matrix"
	p.X.Label.Text = "residue index"
	p.Y.Label.Text = "residue index"
	p.Add(heat)

	n, _ := d0.Dims()
	side := vg.Length(6+n/20) * vg.Inch / 6
	if side < 4*vg.Inch {
		side = 4 * vg.Inch
	}

	path := filepath.Join(dir, "diff_dist_mat.png")
	if err := p.Save(side, side, path); err != nil {
		return motionerr.Wrap(motionerr.IOFailure, "writing diff_dist_mat.png", err)
	}
	return nil
}

func maxEntry(m *mat.Dense) float64 {
	rows, cols := m.Dims()
	max := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); v > max {
				max = v
			}
		}
	}
	return max
}
