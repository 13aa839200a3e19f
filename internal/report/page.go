package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/pipeline"
)

// RenderVariantPage writes an HTML page with the cluster mean curves, the
// cluster sizes and, when dist is not nil, the tariff and Acorn group mix.
func RenderVariantPage(w io.Writer, o *pipeline.Outcome, dist *Distribution) error {
	colors := clusterColors(o.Result.K)
	sizes := o.Result.Sizes()

	means := charts.NewLine()
	yAxis := opts.YAxis{Name: o.Variant.Display.YLabel, NameLocation: "middle", NameGap: 45}
	if d := o.Variant.Display; d.YMax > d.YMin {
		yAxis.Min, yAxis.Max = d.YMin, d.YMax
	}
	means.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: o.Variant.Name, Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    o.Variant.Name,
			Subtitle: fmt.Sprintf("%s, k=%d, %d households, inertia %.3f", o.Variant.Spec, o.Result.K, o.Table.Len(), o.Result.Inertia),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time of day"}),
		charts.WithYAxisOpts(yAxis),
	)
	means.SetXAxis(o.Table.Axis)
	for c, mean := range o.Result.ClusterMeans(o.Table) {
		data := make([]opts.LineData, len(mean))
		for i, v := range mean {
			data[i] = opts.LineData{Value: v}
		}
		means.AddSeries(fmt.Sprintf("cluster %d (n=%d)", c, sizes[c]), data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: hexColor(colors[c]), Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[c])}),
		)
	}

	counts := charts.NewBar()
	counts.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: "Households per cluster"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	countData := make([]opts.BarData, len(sizes))
	for c, n := range sizes {
		countData[c] = opts.BarData{Value: n, ItemStyle: &opts.ItemStyle{Color: hexColor(colors[c])}}
	}
	counts.SetXAxis(clusterNames(len(sizes))).
		AddSeries("households", countData,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.PageTitle = o.Variant.Name
	page.AddCharts(means, counts)

	if dist != nil {
		tariffNames := make([]string, len(model.Tariffs))
		for i, t := range model.Tariffs {
			tariffNames[i] = string(t)
		}
		groupNames := make([]string, len(model.SocioGroups))
		for i, g := range model.SocioGroups {
			groupNames[i] = string(g)
		}
		page.AddCharts(
			stackedBar("Tariff type by cluster", "tariff", tariffNames, dist.K, dist.TariffShares),
			stackedBar("Acorn group by cluster", "acorn", groupNames, dist.K, dist.GroupShares),
		)
	}
	return page.Render(w)
}

func stackedBar(title, stack string, categories []string, k int, sharesOf func(int) []float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1, Name: "Proportion"}),
	)
	bar.SetXAxis(clusterNames(k))

	perCluster := make([][]float64, k)
	for c := range perCluster {
		perCluster[c] = sharesOf(c)
	}
	for i, name := range categories {
		data := make([]opts.BarData, k)
		for c := 0; c < k; c++ {
			data[c] = opts.BarData{Value: perCluster[c][i]}
		}
		bar.AddSeries(name, data, charts.WithBarChartOpts(opts.BarChart{Stack: stack}))
	}
	return bar
}
