package pipeline

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"smart-meter-exploration/internal/model"
)

// WriteAssignmentsCSV writes one row per clustered household.
func WriteAssignmentsCSV(path string, o *Outcome) error {
	return writeFile(path, func(w io.Writer) error { return writeAssignments(w, o) })
}

// WriteFeatureTableCSV writes the table a variant was clustered on.
func WriteFeatureTableCSV(path string, table *model.FeatureTable) error {
	return writeFile(path, func(w io.Writer) error { return writeFeatureTable(w, table) })
}

// WriteInertiaCSV writes every successful curve point, one row per (variant, k).
func WriteInertiaCSV(path string, curves []Curve) error {
	return writeFile(path, func(w io.Writer) error { return writeInertia(w, curves) })
}

// WriteExclusionsCSV lists the households a variant dropped and why.
func WriteExclusionsCSV(path string, o *Outcome) error {
	return writeFile(path, func(w io.Writer) error { return writeExclusions(w, o) })
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeAssignments(out io.Writer, o *Outcome) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"run_id", "variant", "household", "cluster"}); err != nil {
		return err
	}
	for i, h := range o.Result.Households {
		row := []string{o.RunID, o.Variant.Name, h, strconv.Itoa(o.Result.Assignments[i])}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeFeatureTable(out io.Writer, table *model.FeatureTable) error {
	w := csv.NewWriter(out)
	header := append([]string{"household"}, table.Axis...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, h := range table.Households {
		row := make([]string, 0, len(header))
		row = append(row, h)
		for _, v := range table.Rows[i] {
			row = append(row, fmtFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeInertia(out io.Writer, curves []Curve) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"run_id", "variant", "k", "inertia"}); err != nil {
		return err
	}
	for _, c := range curves {
		if c.Err != nil {
			continue
		}
		for _, p := range c.Points {
			if err := w.Write([]string{c.RunID, c.Variant, strconv.Itoa(p.K), fmtFloat(p.Inertia)}); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func writeExclusions(out io.Writer, o *Outcome) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"variant", "household", "reason"}); err != nil {
		return err
	}
	for _, e := range o.Table.Excluded {
		if err := w.Write([]string{o.Variant.Name, e.Household, string(e.Reason)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
