package main

import (
	"flag"
	"fmt"
	"log"

	"smart-meter-exploration/internal/config"
	"smart-meter-exploration/internal/data"
)

func main() {
	var (
		inputDir   = flag.String("input", "inputs/data/halfhourly_dataset", "Directory of long-form block CSV files")
		outputPath = flag.String("output", "", "Output file path (default: data.meter_data_path from config)")
		cfgPath    = flag.String("config", "", "Path to YAML config (optional)")
	)
	flag.Parse()

	if *outputPath == "" {
		cfg := config.Default()
		if *cfgPath != "" {
			var err error
			if cfg, err = config.Load(*cfgPath); err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}
		}
		*outputPath = cfg.Data.MeterDataPath
	}

	paths, err := data.BlockFiles(*inputDir)
	if err != nil {
		log.Fatalf("Failed to list %s: %v", *inputDir, err)
	}
	if len(paths) == 0 {
		log.Fatalf("No .csv files found in %s", *inputDir)
	}
	fmt.Printf("Merging %d block files from %s\n", len(paths), *inputDir)

	m, err := data.MergeLongFiles(paths)
	if err != nil {
		log.Fatalf("Failed to merge meter data: %v", err)
	}
	if err := data.SaveWideCSV(*outputPath, m); err != nil {
		log.Fatalf("Failed to save merged data: %v", err)
	}

	s := data.Summarize(*outputPath, m, nil)
	fmt.Printf("Wrote %d households x %d timestamps (%d readings) to %s\n",
		s.Households, s.Timestamps, s.Readings, *outputPath)
}
