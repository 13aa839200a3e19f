package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"smart-meter-exploration/internal/cluster"
	"smart-meter-exploration/internal/config"
	"smart-meter-exploration/internal/data"
	"smart-meter-exploration/internal/pipeline"
	"smart-meter-exploration/internal/report"
	"smart-meter-exploration/internal/variant"
)

// Demo:
// - Generate a synthetic year of half-hourly readings from a few usage shapes
// - Run every default variant over it
// - Show how well each variant recovers the shapes
func main() {
	households := flag.Int("households", 40, "Number of synthetic households")
	days := flag.Int("days", 365, "Number of days of readings")
	archetypes := flag.Int("archetypes", 4, "Number of distinct usage shapes (1-4)")
	missing := flag.Float64("missing", 0.01, "Chance that a reading is absent")
	seed := flag.Uint64("seed", 42, "Random seed for data and clustering")
	outDir := flag.String("out", "", "Optional directory for CSV tables and plots")
	flag.Parse()

	opts := data.DefaultSyntheticOptions()
	opts.Households = *households
	opts.Days = *days
	opts.Archetypes = *archetypes
	opts.MissingRate = *missing
	opts.Seed = *seed
	synth, err := data.Synthetic(opts)
	if err != nil {
		panic(err)
	}

	s := data.Summarize("synthetic", synth.Matrix, synth.Households)
	fmt.Printf("Synthetic data: %d households x %d timestamps, coverage %.1f%%\n\n",
		s.Households, s.Timestamps, 100*s.Coverage)

	params := cluster.DefaultParams()
	params.Seed = *seed
	runner := pipeline.New(synth.Matrix, variant.Defaults(), cluster.New(params))

	fmt.Printf("%-24s %-3s %-10s %-10s %-8s %s\n", "variant", "k", "households", "inertia", "purity", "sizes")
	for _, o := range runner.RunAll() {
		if o.Err != nil {
			fmt.Printf("%-24s FAILED: %v\n", o.Variant.Name, o.Err)
			continue
		}
		fmt.Printf("%-24s %-3d %-10d %-10.4f %-8.2f %v\n",
			o.Variant.Name, o.Result.K, o.Table.Len(), o.Result.Inertia, purity(o.Result, synth.Archetype), o.Result.Sizes())

		if *outDir != "" {
			if err := writeOutputs(*outDir, &o, synth); err != nil {
				panic(err)
			}
		}
	}
	if *outDir != "" {
		fmt.Printf("\nWrote tables and plots under %s\n", *outDir)
	}
}

// purity is the share of households whose cluster's majority archetype is
// their own archetype.
func purity(res *cluster.Result, archetype map[string]int) float64 {
	if len(res.Households) == 0 {
		return 0
	}
	counts := make([]map[int]int, res.K)
	for c := range counts {
		counts[c] = map[int]int{}
	}
	for i, h := range res.Households {
		counts[res.Assignments[i]][archetype[h]]++
	}
	agree := 0
	for _, byArchetype := range counts {
		best := 0
		for _, n := range byArchetype {
			best = max(best, n)
		}
		agree += best
	}
	return float64(agree) / float64(len(res.Households))
}

func writeOutputs(dir string, o *pipeline.Outcome, synth *data.SyntheticData) error {
	name := o.Variant.Name
	if err := pipeline.WriteAssignmentsCSV(filepath.Join(dir, "tables", name+"_assignments.csv"), o); err != nil {
		return err
	}
	plotter := report.NewPlotter(config.Default().Plot)
	if _, err := plotter.PlotOutcome(filepath.Join(dir, "figures"), o, synth.Households); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "pages"), 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "pages", name+".html"))
	if err != nil {
		return err
	}
	defer f.Close()
	dist := report.NewDistribution(o.Result.Households, o.Result.Labels, o.Result.K, synth.Households)
	return report.RenderVariantPage(f, o, dist)
}
