package data

import (
	"errors"
	"fmt"
	"os"

	"smart-meter-exploration/internal/config"
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
)

// Dataset is the meter matrix plus the optional household registry.
type Dataset struct {
	Matrix     *model.UsageMatrix
	Households map[string]model.Household
	Summary    Summary
}

// LoadDataset reads the files named by cfg. A missing household file is not
// an error: the dataset is returned without tariff or Acorn information.
func LoadDataset(cfg config.DataConfig) (*Dataset, error) {
	m, err := LoadMatrix(cfg.MeterDataPath, cfg.MeterFormat)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.MeterDataPath, err)
	}

	var households map[string]model.Household
	if cfg.HouseholdDataPath != "" {
		households, err = LoadHouseholds(cfg.HouseholdDataPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			monitoring.Logf("[data] household file %s not found, continuing without it", cfg.HouseholdDataPath)
		case err != nil:
			return nil, fmt.Errorf("load %s: %w", cfg.HouseholdDataPath, err)
		}
	}

	d := &Dataset{
		Matrix:     m,
		Households: households,
		Summary:    Summarize(cfg.MeterDataPath, m, households),
	}
	monitoring.Logf("[data] loaded %d households x %d timestamps from %s (coverage %.1f%%)",
		d.Summary.Households, d.Summary.Timestamps, cfg.MeterDataPath, 100*d.Summary.Coverage)
	return d, nil
}
