package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Output     OutputConfig     `yaml:"output"`
	Plot       PlotConfig       `yaml:"plot"`
	Clustering ClusteringConfig `yaml:"clustering"`

	// Optional: load variant declarations from a separate YAML file.
	// Variants declared inline replace file entries of the same name and
	// are appended otherwise.
	VariantsFile string          `yaml:"variants_file"`
	Variants     []VariantConfig `yaml:"variants"`
}

type DataConfig struct {
	MeterDataPath     string `yaml:"meter_data_path"`
	HouseholdDataPath string `yaml:"household_data_path"`
	// MeterFormat is "wide" (tstp + one column per household) or "long"
	// (LCLid, tstp, energy rows).
	MeterFormat string `yaml:"meter_format"`
}

type OutputConfig struct {
	ClusterPlotDir string `yaml:"cluster_plot_dir"`
	InertiaPlotDir string `yaml:"inertia_plot_dir"`
	TablesDir      string `yaml:"tables_dir"`
	PagesDir       string `yaml:"pages_dir"`
}

type PlotConfig struct {
	Suffix string `yaml:"suffix"`
	// Width and Height are in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ClusteringConfig struct {
	Seed     uint64 `yaml:"seed"`
	Restarts int    `yaml:"restarts"`
	MaxIter  int    `yaml:"max_iter"`
	MaxK     int    `yaml:"max_k"`
}

// VariantConfig declares one clustering variant.
type VariantConfig struct {
	Name string `yaml:"name"`
	K    int    `yaml:"k"`
	// Kind is one of average, daytype_contrast, season_contrast.
	Kind       string `yaml:"kind"`
	Normalised bool   `yaml:"normalised"`
	Cumulative bool   `yaml:"cumulative"`
	Mode       string `yaml:"mode"`
	Season1    string `yaml:"season_1"`
	Season2    string `yaml:"season_2"`

	YLabel string  `yaml:"ylabel"`
	YMin   float64 `yaml:"ymin"`
	YMax   float64 `yaml:"ymax"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			MeterDataPath:     "inputs/data/meter_data_merged.csv",
			HouseholdDataPath: "inputs/data/informations_households.csv",
			MeterFormat:       "wide",
		},
		Output: OutputConfig{
			ClusterPlotDir: "outputs/figures/clusters",
			InertiaPlotDir: "outputs/figures/inertia",
			TablesDir:      "outputs/tables",
			PagesDir:       "outputs/pages",
		},
		Plot: PlotConfig{Suffix: ".png", Width: 10, Height: 6},
		Clustering: ClusteringConfig{
			Seed:     42,
			Restarts: 10,
			MaxIter:  300,
			MaxK:     10,
		},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the file over Default() and merges the variants file,
// but does not validate the result.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.VariantsFile != "" {
		variantsPath := c.VariantsFile
		if !filepath.IsAbs(variantsPath) {
			// Prefer paths relative to the config file, falling back to cwd.
			cand := filepath.Join(filepath.Dir(path), variantsPath)
			if _, err := os.Stat(cand); err == nil {
				variantsPath = cand
			}
		}
		loaded, err := loadVariantsFile(variantsPath)
		if err != nil {
			return nil, err
		}
		c.Variants = MergeVariants(loaded, c.Variants)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Data.MeterDataPath == "" {
		return errors.New("data.meter_data_path is required")
	}
	switch c.Data.MeterFormat {
	case "wide", "long":
	default:
		return fmt.Errorf("data.meter_format must be wide or long, got %q", c.Data.MeterFormat)
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return fmt.Errorf("plot size must be positive, got %gx%g", c.Plot.Width, c.Plot.Height)
	}
	if c.Clustering.Restarts < 1 {
		return errors.New("clustering.restarts must be >= 1")
	}
	if c.Clustering.MaxIter < 1 {
		return errors.New("clustering.max_iter must be >= 1")
	}
	if c.Clustering.MaxK < 1 {
		return errors.New("clustering.max_k must be >= 1")
	}
	seen := make(map[string]bool, len(c.Variants))
	for i, v := range c.Variants {
		if v.Name == "" {
			return fmt.Errorf("variants[%d]: name is required", i)
		}
		if seen[v.Name] {
			return fmt.Errorf("variants[%d]: duplicate name %q", i, v.Name)
		}
		seen[v.Name] = true
		if v.K < 1 {
			return fmt.Errorf("variant %q: k must be >= 1", v.Name)
		}
	}
	return nil
}

type variantsFileWrapper struct {
	Variants []VariantConfig `yaml:"variants"`
}

func loadVariantsFile(path string) ([]VariantConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w variantsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Variants, nil
}

// MergeVariants overlays override onto base by name, keeping base order and
// appending new names in override order.
func MergeVariants(base, override []VariantConfig) []VariantConfig {
	out := append([]VariantConfig(nil), base...)
	index := make(map[string]int, len(out))
	for i, v := range out {
		index[v.Name] = i
	}
	for _, v := range override {
		if i, ok := index[v.Name]; ok {
			out[i] = v
			continue
		}
		index[v.Name] = len(out)
		out = append(out, v)
	}
	return out
}
