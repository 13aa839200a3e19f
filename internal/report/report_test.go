package report

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-meter-exploration/internal/cluster"
	"smart-meter-exploration/internal/config"
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
	"smart-meter-exploration/internal/pipeline"
	"smart-meter-exploration/internal/variant"
)

func init() {
	monitoring.SetLogger(nil)
}

func sampleOutcome() *pipeline.Outcome {
	table := &model.FeatureTable{
		Axis:       model.SlotLabels(),
		Households: []string{"A", "B", "C", "D"},
	}
	for i := range table.Households {
		row := make([]float64, model.SlotsPerDay)
		for s := range row {
			row[s] = float64(i%2) + 0.01*float64(s)
		}
		table.Rows = append(table.Rows, row)
	}
	return &pipeline.Outcome{
		RunID: "run-1",
		Variant: variant.Descriptor{
			Name:    "total_usage",
			K:       2,
			Spec:    variant.ProducerSpec{Kind: variant.KindAverage},
			Display: variant.Display{YLabel: "Electricity usage (kWh)", YMin: 0, YMax: 4},
		},
		Table: table,
		Result: &cluster.Result{
			K:           2,
			Households:  table.Households,
			Assignments: []int{0, 1, 0, 1},
			Labels:      map[string]int{"A": 0, "B": 1, "C": 0, "D": 1},
		},
	}
}

func sampleRegistry() map[string]model.Household {
	return map[string]model.Household{
		"A": {ID: "A", Tariff: model.TariffStandard, Group: model.GroupAffluent},
		"B": {ID: "B", Tariff: model.TariffTimeOfUse, Group: model.GroupAdversity},
		"C": {ID: "C", Tariff: model.TariffTimeOfUse, Group: model.GroupAffluent},
	}
}

func TestNewDistribution(t *testing.T) {
	o := sampleOutcome()
	d := NewDistribution(o.Result.Households, o.Result.Labels, 2, sampleRegistry())

	assert.Equal(t, []string{"D"}, d.Unmatched)
	assert.Equal(t, []int{1, 1}, d.Tariff[0])
	assert.Equal(t, []int{0, 1}, d.Tariff[1])
	assert.Equal(t, []float64{0.5, 0.5}, d.TariffShares(0))
	assert.Equal(t, []float64{0, 0, 1, 0}, d.GroupShares(0))
	assert.Equal(t, []float64{1, 0, 0, 0}, d.GroupShares(1))
}

func TestShares_EmptyCluster(t *testing.T) {
	assert.Equal(t, []float64{0, 0}, shares([]int{0, 0}))
}

func TestPlotter_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewPlotter(config.PlotConfig{Suffix: ".png", Width: 6, Height: 4})

	files, err := p.PlotOutcome(dir, sampleOutcome(), sampleRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "total_usage_observations.png"),
		filepath.Join(dir, "total_usage_counts.png"),
		filepath.Join(dir, "total_usage_tariff.png"),
		filepath.Join(dir, "total_usage_acorn.png"),
	}, files)
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), f)
	}

	inertia, err := p.PlotInertia(filepath.Join(dir, "inertia"), pipeline.Curve{
		Variant: "total_usage",
		Points:  []cluster.InertiaPoint{{K: 1, Inertia: 10}, {K: 2, Inertia: 4}, {K: 3, Inertia: 3}},
	})
	require.NoError(t, err)
	assert.FileExists(t, inertia)
}

func TestRenderVariantPage(t *testing.T) {
	o := sampleOutcome()
	var buf bytes.Buffer
	dist := NewDistribution(o.Result.Households, o.Result.Labels, 2, sampleRegistry())

	require.NoError(t, RenderVariantPage(&buf, o, dist))
	html := buf.String()
	assert.Contains(t, html, "total_usage")
	assert.Contains(t, html, "cluster 0")
	assert.Contains(t, html, "Acorn group by cluster")
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#ff0000", hexColor(color.RGBA{R: 255, A: 255}))
	assert.Len(t, clusterColors(5), 5)
	assert.Nil(t, clusterColors(0))
}
