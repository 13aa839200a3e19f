package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"smart-meter-exploration/internal/model"
)

// LoadHouseholds reads the trial's household information file.
func LoadHouseholds(path string) (map[string]model.Household, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open household data: %w", err)
	}
	defer f.Close()
	return ReadHouseholds(f)
}

// ReadHouseholds parses LCLid, stdorToU and Acorn_grouped columns; other
// columns are ignored.
func ReadHouseholds(r io.Reader) (map[string]model.Household, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idCol, tariffCol, groupCol := -1, -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "LCLid":
			idCol = i
		case "stdorToU":
			tariffCol = i
		case "Acorn_grouped":
			groupCol = i
		}
	}
	if idCol < 0 || tariffCol < 0 || groupCol < 0 {
		return nil, fmt.Errorf("household data needs LCLid, stdorToU and Acorn_grouped columns, got %v", header)
	}

	out := make(map[string]model.Household)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tariff, err := model.ParseTariff(rec[tariffCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		group, err := model.ParseSocioGroup(rec[groupCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		id := strings.TrimSpace(rec[idCol])
		if _, dup := out[id]; dup {
			return nil, fmt.Errorf("line %d: duplicate household %s", line, id)
		}
		out[id] = model.Household{ID: id, Tariff: tariff, Group: group}
	}
	return out, nil
}
