package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"smart-meter-exploration/internal/analysis"
	"smart-meter-exploration/internal/config"
	"smart-meter-exploration/internal/data"
	"smart-meter-exploration/internal/pipeline"
	"smart-meter-exploration/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "variants":
		cmdVariants(os.Args[2:])
	case "cluster":
		cmdCluster(os.Args[2:])
	case "run-all":
		cmdRunAll(os.Args[2:])
	case "inertia":
		cmdInertia(os.Args[2:])
	case "summary":
		cmdSummary(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli variants [--config config.yaml]")
	fmt.Println("  cli cluster --variant normalised_usage [--config config.yaml] [--no-plots]")
	fmt.Println("  cli run-all [--config config.yaml] [--no-plots]")
	fmt.Println("  cli inertia [--variant NAME] [--max-k 10] [--config config.yaml]")
	fmt.Println("  cli summary [--config config.yaml] [--top 10] [--out outputs/tables/summary.json]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - without --config the default input and output paths are used")
	fmt.Println("  - cluster and run-all write assignment/feature CSVs, PNG plots and an HTML page per variant")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	return cfg
}

func loadRunner(cfg *config.Config) (*data.Dataset, *pipeline.Runner) {
	dataset, err := data.LoadDataset(cfg.Data)
	if err != nil {
		fail(err)
	}
	runner, err := pipeline.FromConfig(dataset.Matrix, cfg)
	if err != nil {
		fail(err)
	}
	return dataset, runner
}

func cmdVariants(args []string) {
	fs := flag.NewFlagSet("variants", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	runner, err := pipeline.FromConfig(nil, cfg)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%-24s %-3s %s\n", "name", "k", "aggregation")
	for _, d := range runner.Registry().All() {
		fmt.Printf("%-24s %-3d %s\n", d.Name, d.K, d.Spec)
	}
}

func cmdCluster(args []string) {
	fs := flag.NewFlagSet("cluster", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	name := fs.String("variant", "", "Variant to cluster")
	noPlots := fs.Bool("no-plots", false, "Only write CSV tables")
	_ = fs.Parse(args)

	if *name == "" {
		fmt.Println("--variant is required")
		os.Exit(2)
	}

	cfg := loadConfig(*cfgPath)
	dataset, runner := loadRunner(cfg)
	o, err := runner.Run(*name)
	if err != nil {
		fail(err)
	}
	if err := writeOutcome(cfg, dataset, o, !*noPlots); err != nil {
		fail(err)
	}
}

func cmdRunAll(args []string) {
	fs := flag.NewFlagSet("run-all", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	noPlots := fs.Bool("no-plots", false, "Only write CSV tables")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	dataset, runner := loadRunner(cfg)

	failed := 0
	for _, o := range runner.RunAll() {
		if o.Err != nil {
			fmt.Printf("%-24s FAILED: %v\n", o.Variant.Name, o.Err)
			failed++
			continue
		}
		if err := writeOutcome(cfg, dataset, &o, !*noPlots); err != nil {
			fmt.Printf("%-24s FAILED writing outputs: %v\n", o.Variant.Name, err)
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d variants failed\n", failed, runner.Registry().Len())
		os.Exit(1)
	}
}

func cmdInertia(args []string) {
	fs := flag.NewFlagSet("inertia", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	name := fs.String("variant", "", "Optional: a single variant (default all)")
	maxK := fs.Int("max-k", 0, "Largest k to try (0 = clustering.max_k)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *maxK == 0 {
		*maxK = cfg.Clustering.MaxK
	}
	_, runner := loadRunner(cfg)

	var curves []pipeline.Curve
	if *name != "" {
		c, err := runner.InertiaCurve(*name, *maxK)
		if err != nil {
			fail(err)
		}
		curves = []pipeline.Curve{*c}
	} else {
		curves = runner.InertiaCurves(*maxK)
	}

	csvPath := filepath.Join(cfg.Output.TablesDir, "inertia.csv")
	if err := pipeline.WriteInertiaCSV(csvPath, curves); err != nil {
		fail(err)
	}
	plotter := report.NewPlotter(cfg.Plot)
	failed := 0
	for _, c := range curves {
		if c.Err != nil {
			fmt.Printf("%-24s FAILED: %v\n", c.Variant, c.Err)
			failed++
			continue
		}
		path, err := plotter.PlotInertia(cfg.Output.InertiaPlotDir, c)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%-24s k=1..%d -> %s\n", c.Variant, len(c.Points), path)
	}
	fmt.Printf("Wrote %s\n", csvPath)
	if failed > 0 {
		os.Exit(1)
	}
}

func cmdSummary(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Optional: write the summary as JSON")
	top := fs.Int("top", 10, "Number of highest-usage households to list (0=none)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	dataset, err := data.LoadDataset(cfg.Data)
	if err != nil {
		fail(err)
	}
	s := dataset.Summary
	fmt.Printf("source      %s\n", s.Source)
	fmt.Printf("households  %d (%d in household file)\n", s.Households, s.Registered)
	fmt.Printf("timestamps  %d\n", s.Timestamps)
	fmt.Printf("readings    %d (coverage %.1f%%)\n", s.Readings, 100*s.Coverage)
	if !s.Start.IsZero() {
		fmt.Printf("range       %s to %s\n", s.Start.Format(time.DateTime), s.End.Format(time.DateTime))
	}

	if *top > 0 {
		ranked := analysis.RankByDailyUsage(dataset.Matrix, dataset.Households)
		if *top < len(ranked) {
			ranked = ranked[:*top]
		}
		fmt.Println("")
		fmt.Printf("%-4s %-12s %-10s %-12s %-8s %-10s %-10s %-6s\n", "rank", "household", "tariff", "acorn", "count", "kWh/day", "p95-p05", "peak")
		for i, p := range ranked {
			fmt.Printf("%-4d %-12s %-10s %-12s %-8d %-10.2f %-10.3f %-6s\n",
				i+1, p.Household, p.Tariff, p.Group, p.Count, p.DailyKWh, p.Spread, p.PeakSlot)
		}
	}
	if *outPath != "" {
		if err := data.SaveSummary(s, *outPath); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %s\n", *outPath)
	}
}

// writeOutcome writes the CSV tables and, with plots, the PNG figures and the
// HTML page of one clustered variant.
func writeOutcome(cfg *config.Config, dataset *data.Dataset, o *pipeline.Outcome, plots bool) error {
	name := o.Variant.Name
	tables := cfg.Output.TablesDir
	if err := pipeline.WriteAssignmentsCSV(filepath.Join(tables, name+"_assignments.csv"), o); err != nil {
		return err
	}
	if err := pipeline.WriteFeatureTableCSV(filepath.Join(tables, name+"_features.csv"), o.Table); err != nil {
		return err
	}
	if err := pipeline.WriteExclusionsCSV(filepath.Join(tables, name+"_excluded.csv"), o); err != nil {
		return err
	}
	fmt.Printf("%-24s k=%d households=%d excluded=%d inertia=%.4f (%s)\n",
		name, o.Result.K, o.Table.Len(), len(o.Table.Excluded), o.Result.Inertia, o.Duration.Round(time.Millisecond))
	if !plots {
		return nil
	}

	files, err := report.NewPlotter(cfg.Plot).PlotOutcome(cfg.Output.ClusterPlotDir, o, dataset.Households)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}

	var dist *report.Distribution
	if dataset.Households != nil {
		dist = report.NewDistribution(o.Result.Households, o.Result.Labels, o.Result.K, dataset.Households)
	}
	if err := os.MkdirAll(cfg.Output.PagesDir, 0o755); err != nil {
		return err
	}
	pagePath := filepath.Join(cfg.Output.PagesDir, name+".html")
	f, err := os.Create(pagePath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := report.RenderVariantPage(f, o, dist); err != nil {
		return err
	}
	fmt.Printf("  %s\n", pagePath)
	return nil
}
