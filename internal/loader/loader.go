// Package loader reads the three source dataset families from CSV into the
// immutable data context. Loading happens once at startup; rows missing
// required fields (blank years, unparsable numbers) are skipped and counted
// rather than failing the dataset, mirroring the source report's
// drop-blank-year behavior.
package loader

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/embermetrics/fire-report-service/internal/config"
	"github.com/embermetrics/fire-report-service/internal/domain"
	"github.com/embermetrics/fire-report-service/internal/report"
)

// LoadAll reads every configured dataset and assembles the data context.
func LoadAll(cfg config.DataConfig, logger *slog.Logger) (*report.DataContext, error) {
	fires, err := LoadFireHistory(cfg.FiresPath)
	if err != nil {
		return nil, fmt.Errorf("load fire history: %w", err)
	}
	climate, err := LoadClimate(cfg.ClimateDir)
	if err != nil {
		return nil, fmt.Errorf("load climate observations: %w", err)
	}
	destroyed, err := LoadHomes(cfg.DestroyedPath)
	if err != nil {
		return nil, fmt.Errorf("load destroyed homes: %w", err)
	}
	recovered, err := LoadHomes(cfg.RecoveredPath)
	if err != nil {
		return nil, fmt.Errorf("load recovered homes: %w", err)
	}

	logger.Info("datasets loaded",
		"fires", len(fires),
		"climate_days", len(climate),
		"destroyed", len(destroyed),
		"recovered", len(recovered),
	)

	return &report.DataContext{
		Fires:     fires,
		Climate:   climate,
		Destroyed: destroyed,
		Recovered: recovered,
	}, nil
}

// LoadFireHistory reads the fire perimeter attribute export. Expected
// columns: YEAR_, CAUSE, GIS_ACRES (the FRAP attribute names). Rows with a
// blank or unparsable year are skipped.
func LoadFireHistory(path string) ([]domain.FireRecord, error) {
	rows, idx, err := readCSV(path, "YEAR_", "CAUSE", "GIS_ACRES")
	if err != nil {
		return nil, err
	}

	records := make([]domain.FireRecord, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		year, err := strconv.Atoi(strings.TrimSpace(row[idx["YEAR_"]]))
		if err != nil || year == 0 {
			skipped++
			continue
		}
		cause, _ := strconv.Atoi(strings.TrimSpace(row[idx["CAUSE"]]))
		acres, err := strconv.ParseFloat(strings.TrimSpace(row[idx["GIS_ACRES"]]), 64)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, domain.FireRecord{
			Year:        year,
			Cause:       domain.Cause(cause),
			BurnedAcres: acres,
		})
	}
	if skipped > 0 {
		slog.Debug("fire history rows skipped", "path", path, "skipped", skipped)
	}
	return records, nil
}

// LoadClimate reads every *.csv file in dir (one file per year in the
// source drop) with columns date, bi, fm100. Files are read in name order
// for reproducibility; the aggregator sorts by date regardless.
func LoadClimate(dir string) ([]domain.ClimateObservation, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no climate CSV files in %s", dir)
	}
	sort.Strings(paths)

	var obs []domain.ClimateObservation
	for _, path := range paths {
		rows, idx, err := readCSV(path, "date", "bi", "fm100")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, row := range rows {
			date, err := time.Parse("2006-01-02", strings.TrimSpace(row[idx["date"]]))
			if err != nil {
				continue
			}
			bi, errBI := strconv.ParseFloat(strings.TrimSpace(row[idx["bi"]]), 64)
			fm, errFM := strconv.ParseFloat(strings.TrimSpace(row[idx["fm100"]]), 64)
			if errBI != nil || errFM != nil {
				continue
			}
			obs = append(obs, domain.ClimateObservation{
				Date:             date.UTC(),
				BurnIndex:        bi,
				DeadFuelMoisture: fm,
			})
		}
	}
	return obs, nil
}

// LoadHomes reads a property CSV. The destroyed-homes file carries address,
// lat, lon and zestimate columns; the recovered-homes file carries only
// address, so the coordinate and value columns are optional here.
func LoadHomes(path string) ([]domain.PropertyRecord, error) {
	rows, idx, err := readCSV(path, "address")
	if err != nil {
		return nil, err
	}

	records := make([]domain.PropertyRecord, 0, len(rows))
	for _, row := range rows {
		addr := strings.TrimSpace(row[idx["address"]])
		if addr == "" {
			continue
		}
		rec := domain.PropertyRecord{Address: addr}
		if i, ok := idx["lat"]; ok {
			rec.Lat, _ = strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		}
		if i, ok := idx["lon"]; ok {
			rec.Lon, _ = strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		}
		if i, ok := idx["zestimate"]; ok {
			rec.AssessedValue, _ = strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		}
		records = append(records, rec)
	}
	return records, nil
}

// readCSV reads a whole CSV file and returns its data rows plus a
// header-name → column-index map. The required columns must all be present.
func readCSV(path string, required ...string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("%w: column %q", domain.ErrMissingField, col)
		}
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(rows[0]) {
			continue
		}
		data = append(data, row)
	}
	return data, idx, nil
}
