package output

import (
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/motiontree/motiontree/cluster"
	"github.com/motiontree/motiontree/motionerr"
)

// dendrogramPlot draws a motion tree's merge sequence as a classic
// bracket dendrogram: two vertical strokes rising from each child's
// position to the merge height, joined by one horizontal stroke.
type dendrogramPlot struct {
	linkage []cluster.LinkageRow
	leaves  int
	x       map[int]float64 // cluster id -> plotted x position
	height  map[int]float64 // cluster id -> plotted y position (0 for leaves)
}

func newDendrogramPlot(linkage []cluster.LinkageRow, leaves int) *dendrogramPlot {
	x := make(map[int]float64, leaves)
	for i := 0; i < leaves; i++ {
		x[i] = float64(i)
	}
	return &dendrogramPlot{linkage: linkage, leaves: leaves, x: x, height: map[int]float64{}}
}

// Plot implements plot.Plotter, drawing every merge as a bracket and
// tracking each newly-formed cluster's midpoint x position so later
// merges can draw from it in turn.
func (d *dendrogramPlot) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	style := draw.LineStyle{Color: plotter.DefaultLineStyle.Color, Width: vg.Points(1)}

	nextID := d.leaves
	for _, row := range d.linkage {
		xa, ya := d.x[row.A], d.height[row.A]
		xb, yb := d.x[row.B], d.height[row.B]
		yMerge := row.Distance

		c.StrokeLine2(style, trX(xa), trY(ya), trX(xa), trY(yMerge))
		c.StrokeLine2(style, trX(xb), trY(yb), trX(xb), trY(yMerge))
		c.StrokeLine2(style, trX(xa), trY(yMerge), trX(xb), trY(yMerge))

		mid := (xa + xb) / 2
		d.x[nextID] = mid
		d.height[nextID] = yMerge
		nextID++
	}
}

// DataRange implements plot.DataRanger so the axes autoscale to the tree.
func (d *dendrogramPlot) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmax = float64(d.leaves - 1)
	for _, row := range d.linkage {
		if row.Distance > ymax {
			ymax = row.Distance
		}
	}
	return 0, xmax, 0, ymax
}

// writeDendrogram renders motion_tree.png: the merge tree with a
// horizontal threshold line at the magnitude gate mu, so an effective
// node's bracket crossing the line is visible at a glance.
func writeDendrogram(dir string, result cluster.Result, magnitude int) error {
	if len(result.Linkage) == 0 {
		return nil
	}
	leaves := leafCount(result.Linkage)

	p := plot.New()
	p.Title.Text = "motion tree"
	p.X.Label.Text = "residue cluster"
	p.Y.Label.Text = "merge distance"

	tree := newDendrogramPlot(result.Linkage, leaves)
	p.Add(tree)

	threshold, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: float64(magnitude)},
		{X: float64(leaves - 1), Y: float64(magnitude)},
	})
	if err != nil {
		return motionerr.Wrap(motionerr.IOFailure, "building threshold line", err)
	}
	threshold.Color = plotter.DefaultLineStyle.Color
	threshold.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(threshold)

	path := filepath.Join(dir, "motion_tree.png")
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return motionerr.Wrap(motionerr.IOFailure, "writing motion_tree.png", err)
	}
	return nil
}

// leafCount recovers the original residue count from a linkage matrix as
// len(linkage)+1: a complete merge sequence of N-1 rows started from N
// singleton leaves.
func leafCount(linkage []cluster.LinkageRow) int {
	return len(linkage) + 1
}
