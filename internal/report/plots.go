package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"smart-meter-exploration/internal/config"
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/pipeline"
)

// maxObservationLines caps the individual household traces drawn behind the
// cluster means.
const maxObservationLines = 300

// Plotter writes PNG (or any format gonum/plot infers from the suffix) files.
type Plotter struct {
	width  vg.Length
	height vg.Length
	suffix string
}

func NewPlotter(cfg config.PlotConfig) *Plotter {
	suffix := cfg.Suffix
	if suffix == "" {
		suffix = ".png"
	}
	return &Plotter{
		width:  vg.Length(cfg.Width) * vg.Inch,
		height: vg.Length(cfg.Height) * vg.Inch,
		suffix: suffix,
	}
}

// FileName returns <dir>/<variant>_<kind><suffix>.
func (p *Plotter) FileName(dir, variantName, kind string) string {
	return filepath.Join(dir, variantName+"_"+kind+p.suffix)
}

func (p *Plotter) save(pl *plot.Plot, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := pl.Save(p.width, p.height, path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// PlotOutcome writes the observation, count and, when registry is not nil,
// tariff and socio-economic group plots for one clustered variant.
func (p *Plotter) PlotOutcome(dir string, o *pipeline.Outcome, registry map[string]model.Household) ([]string, error) {
	var files []string
	obs, err := p.PlotObservations(dir, o)
	if err != nil {
		return nil, err
	}
	files = append(files, obs)

	counts, err := p.PlotCounts(dir, o)
	if err != nil {
		return nil, err
	}
	files = append(files, counts)

	if registry != nil {
		dist := NewDistribution(o.Result.Households, o.Result.Labels, o.Result.K, registry)
		more, err := p.PlotDistribution(dir, o.Variant.Name, dist)
		if err != nil {
			return nil, err
		}
		files = append(files, more...)
	}
	return files, nil
}

// PlotObservations draws every household's feature vector in grey with the
// cluster means on top.
func (p *Plotter) PlotObservations(dir string, o *pipeline.Outcome) (string, error) {
	table := o.Table
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s (k=%d)", o.Variant.Name, o.Result.K)
	pl.X.Label.Text = "Time of day"
	pl.Y.Label.Text = o.Variant.Display.YLabel
	pl.X.Tick.Marker = axisTicks(table.Axis)
	if d := o.Variant.Display; d.YMax > d.YMin {
		pl.Y.Min, pl.Y.Max = d.YMin, d.YMax
	}

	stride := 1
	if table.Len() > maxObservationLines {
		stride = table.Len()/maxObservationLines + 1
	}
	for i := 0; i < table.Len(); i += stride {
		line, err := plotter.NewLine(series(table.Rows[i]))
		if err != nil {
			return "", err
		}
		line.Color = color.Gray{Y: 200}
		line.Width = vg.Points(0.3)
		pl.Add(line)
	}

	colors := clusterColors(o.Result.K)
	sizes := o.Result.Sizes()
	for c, mean := range o.Result.ClusterMeans(table) {
		if mean == nil {
			continue
		}
		line, err := plotter.NewLine(series(mean))
		if err != nil {
			return "", err
		}
		line.Color = colors[c]
		line.Width = vg.Points(2)
		pl.Add(line)
		pl.Legend.Add(fmt.Sprintf("cluster %d (n=%d)", c, sizes[c]), line)
	}
	pl.Legend.Top = true

	return p.save(pl, p.FileName(dir, o.Variant.Name, "observations"))
}

// PlotCounts draws a bar per cluster with its household count.
func (p *Plotter) PlotCounts(dir string, o *pipeline.Outcome) (string, error) {
	sizes := o.Result.Sizes()
	values := make(plotter.Values, len(sizes))
	for c, n := range sizes {
		values[c] = float64(n)
	}

	pl := plot.New()
	pl.Title.Text = o.Variant.Name + ": households per cluster"
	pl.Y.Label.Text = "Households"
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return "", err
	}
	bars.Color = clusterColors(1)[0]
	bars.LineStyle.Width = 0
	pl.Add(bars)
	pl.NominalX(clusterNames(len(sizes))...)

	return p.save(pl, p.FileName(dir, o.Variant.Name, "counts"))
}

// PlotDistribution draws stacked tariff and socio-economic group shares per
// cluster and returns both file names.
func (p *Plotter) PlotDistribution(dir, variantName string, dist *Distribution) ([]string, error) {
	tariffNames := make([]string, len(model.Tariffs))
	for i, t := range model.Tariffs {
		tariffNames[i] = string(t)
	}
	groupNames := make([]string, len(model.SocioGroups))
	for i, g := range model.SocioGroups {
		groupNames[i] = string(g)
	}

	tariff, err := p.stackedShares(dir, variantName, "tariff", "Tariff type", tariffNames, dist.K, dist.TariffShares)
	if err != nil {
		return nil, err
	}
	group, err := p.stackedShares(dir, variantName, "acorn", "Acorn group", groupNames, dist.K, dist.GroupShares)
	if err != nil {
		return nil, err
	}
	return []string{tariff, group}, nil
}

func (p *Plotter) stackedShares(dir, variantName, kind, title string, categories []string, k int, sharesOf func(int) []float64) (string, error) {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s: %s by cluster", variantName, title)
	pl.Y.Label.Text = "Proportion"
	pl.Y.Min, pl.Y.Max = 0, 1

	perCluster := make([][]float64, k)
	for c := range perCluster {
		perCluster[c] = sharesOf(c)
	}

	colors := clusterColors(len(categories))
	var below *plotter.BarChart
	for i, name := range categories {
		values := make(plotter.Values, k)
		for c := 0; c < k; c++ {
			values[c] = perCluster[c][i]
		}
		bars, err := plotter.NewBarChart(values, vg.Points(30))
		if err != nil {
			return "", err
		}
		bars.Color = colors[i]
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		below = bars
		pl.Add(bars)
		pl.Legend.Add(name, bars)
	}
	pl.Legend.Top = true
	pl.NominalX(clusterNames(k)...)

	return p.save(pl, p.FileName(dir, variantName, kind))
}

// PlotInertia draws the elbow curve of one variant.
func (p *Plotter) PlotInertia(dir string, c pipeline.Curve) (string, error) {
	pts := make(plotter.XYs, len(c.Points))
	for i, pt := range c.Points {
		pts[i] = plotter.XY{X: float64(pt.K), Y: pt.Inertia}
	}

	pl := plot.New()
	pl.Title.Text = c.Variant + ": inertia"
	pl.X.Label.Text = "Number of clusters"
	pl.Y.Label.Text = "Inertia"
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return "", err
	}
	line.Color = clusterColors(1)[0]
	points.Color = line.Color
	pl.Add(line, points)

	return p.save(pl, p.FileName(dir, c.Variant, "inertia"))
}

func series(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	return pts
}

// axisTicks labels roughly a dozen evenly spaced positions of the axis.
func axisTicks(axis []string) plot.ConstantTicks {
	step := len(axis) / 12
	if step < 1 {
		step = 1
	}
	var ticks plot.ConstantTicks
	for i, label := range axis {
		if i%step == 0 {
			ticks = append(ticks, plot.Tick{Value: float64(i), Label: label})
		}
	}
	return ticks
}

func clusterNames(k int) []string {
	names := make([]string, k)
	for c := range names {
		names[c] = fmt.Sprintf("%d", c)
	}
	return names
}
