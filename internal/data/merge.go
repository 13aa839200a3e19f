package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
)

// BlockFiles lists the .csv files directly under dir, sorted by name.
func BlockFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// MergeLongFiles reads every long-form block file into one matrix. Readings
// repeated across files are averaged like repeats within a file.
func MergeLongFiles(paths []string) (*model.UsageMatrix, error) {
	var readings []model.Reading
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		rs, err := readLongReadings(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		monitoring.Logf("[data] %s: %d readings", filepath.Base(p), len(rs))
		readings = append(readings, rs...)
	}
	return model.NewUsageMatrixFromReadings(readings)
}

// SaveWideCSV writes m in the wide format ReadWideCSV reads, creating parent
// directories.
func SaveWideCSV(path string, m *model.UsageMatrix) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWideCSV(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteWideCSV writes a tstp column followed by one column per household.
// Absent readings are left empty.
func WriteWideCSV(w io.Writer, m *model.UsageMatrix) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"tstp"}, m.Households()...)); err != nil {
		return err
	}
	row := make([]string, m.HouseholdCount()+1)
	for i := 0; i < m.Len(); i++ {
		row[0] = m.Timestamp(i).Format(timestampLayouts[0])
		for j := 0; j < m.HouseholdCount(); j++ {
			row[j+1] = ""
			if v, ok := m.Value(i, j); ok {
				row[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
