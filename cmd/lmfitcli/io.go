package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// observations is the on-disk shape loaded from a CSV with header "x,y,sigma"
// (or "x,y" for unit sigma): a header row followed by numeric rows, one
// observation per row.
type observations struct {
	X, Y, Sigma []float64
}

// loadObservationsCSV reads path, expecting a header of "x,y,sigma" or
// "x,y" (unit sigma is assumed when the sigma column is absent).
func loadObservationsCSV(path string) (*observations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	hasSigma := len(header) >= 3
	if len(header) < 2 {
		return nil, fmt.Errorf("expected at least 2 columns (x,y), got %d", len(header))
	}

	obs := &observations{}
	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+2, err)
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}

		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse x at row %d: %w", row+2, err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parse y at row %d: %w", row+2, err)
		}
		sigma := 1.0
		if hasSigma {
			sigma, err = strconv.ParseFloat(record[2], 64)
			if err != nil {
				return nil, fmt.Errorf("parse sigma at row %d: %w", row+2, err)
			}
		}

		obs.X = append(obs.X, x)
		obs.Y = append(obs.Y, y)
		obs.Sigma = append(obs.Sigma, sigma)
		row++
	}

	if row == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}
	return obs, nil
}

// writeFitResultCSV writes one row per sample: x, y, the fitted y, and the
// residual.
func writeFitResultCSV(path string, obs *observations, fitted []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "fitted", "residual"}); err != nil {
		return err
	}
	for i := range obs.X {
		record := []string{
			fmt.Sprintf("%f", obs.X[i]),
			fmt.Sprintf("%f", obs.Y[i]),
			fmt.Sprintf("%f", fitted[i]),
			fmt.Sprintf("%f", obs.Y[i]-fitted[i]),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
