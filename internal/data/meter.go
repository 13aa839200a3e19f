package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"smart-meter-exploration/internal/model"
)

// Meter file formats.
const (
	FormatWide = "wide"
	FormatLong = "long"
)

// timestampLayouts are tried in order. The first is what the trial's
// half-hourly files use.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.0000000",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// parseReading returns false for an empty or Null cell.
func parseReading(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// LoadMatrix reads a meter file in the given format.
func LoadMatrix(path, format string) (*model.UsageMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open meter data: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatWide, "":
		return ReadWideCSV(f)
	case FormatLong:
		return ReadLongCSV(f)
	default:
		return nil, fmt.Errorf("unknown meter format %q", format)
	}
}

// ReadWideCSV reads a tstp column followed by one column per household.
func ReadWideCSV(r io.Reader) (*model.UsageMatrix, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 || strings.TrimSpace(header[0]) != "tstp" {
		return nil, errors.New("wide meter data must start with a tstp column")
	}
	households := make([]string, len(header)-1)
	for i, h := range header[1:] {
		households[i] = strings.TrimSpace(h)
	}

	var timestamps []time.Time
	var values [][]float64
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ts, err := parseTimestamp(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := make([]float64, len(households))
		for j, cell := range rec[1:] {
			v, ok, err := parseReading(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d, household %s: %w", line, households[j], err)
			}
			if !ok {
				v = math.NaN()
			}
			row[j] = v
		}
		timestamps = append(timestamps, ts)
		values = append(values, row)
	}
	return model.NewUsageMatrix(timestamps, households, values)
}

// ReadLongCSV reads LCLid,tstp,energy(kWh/hh) rows. Null readings are
// skipped and repeated (household, timestamp) pairs are averaged.
func ReadLongCSV(r io.Reader) (*model.UsageMatrix, error) {
	readings, err := readLongReadings(r)
	if err != nil {
		return nil, err
	}
	return model.NewUsageMatrixFromReadings(readings)
}

func readLongReadings(r io.Reader) ([]model.Reading, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idCol, tsCol, kwhCol := -1, -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "LCLid":
			idCol = i
		case "tstp":
			tsCol = i
		case "energy(kWh/hh)", "energy":
			kwhCol = i
		}
	}
	if idCol < 0 || tsCol < 0 || kwhCol < 0 {
		return nil, fmt.Errorf("long meter data needs LCLid, tstp and energy(kWh/hh) columns, got %v", header)
	}

	var readings []model.Reading
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		v, ok, err := parseReading(rec[kwhCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !ok {
			continue
		}
		ts, err := parseTimestamp(rec[tsCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		readings = append(readings, model.Reading{
			Household: strings.TrimSpace(rec[idCol]),
			Timestamp: ts,
			KWh:       v,
		})
	}
	return readings, nil
}
