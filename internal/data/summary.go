package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"smart-meter-exploration/internal/model"
)

// Summary describes a loaded meter dataset.
type Summary struct {
	Source     string    `json:"source"`
	Households int       `json:"households"`
	Timestamps int       `json:"timestamps"`
	Readings   int       `json:"readings"`
	Coverage   float64   `json:"coverage"` // readings / (households * timestamps)
	Start      time.Time `json:"start,omitempty"`
	End        time.Time `json:"end,omitempty"`
	// Registered counts households that also appear in the household file.
	Registered int `json:"registered"`
}

// Summarize counts what m holds. households may be nil.
func Summarize(source string, m *model.UsageMatrix, households map[string]model.Household) Summary {
	s := Summary{
		Source:     source,
		Households: m.HouseholdCount(),
		Timestamps: m.Len(),
		Readings:   m.ReadingCount(),
	}
	if cells := s.Households * s.Timestamps; cells > 0 {
		s.Coverage = float64(s.Readings) / float64(cells)
	}
	if tr, ok := m.TimeRange(); ok {
		s.Start, s.End = tr.Start, tr.End
	}
	for _, id := range m.Households() {
		if _, ok := households[id]; ok {
			s.Registered++
		}
	}
	return s
}

// SaveSummary writes s as indented JSON, creating parent directories.
func SaveSummary(s Summary, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

// LoadSummary reads a summary written by SaveSummary.
func LoadSummary(filePath string) (*Summary, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary file: %w", err)
	}
	var s Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse summary file: %w", err)
	}
	return &s, nil
}
