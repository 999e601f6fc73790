// Command genmock writes deterministic mock CSV fixtures for all three
// dataset families so the service and its tests can run without the real
// data drop: a fire history attribute export, per-year NFDRS climate files,
// and the destroyed/recovered homes pair.
//
// Usage:
//
//	go run ./cmd/genmock -out data -seed 1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "data", "output directory for mock CSV files")
	seed := flag.Int64("seed", 1, "random seed for reproducible fixtures")
	climateYears := flag.Int("climate-years", 5, "number of climate years starting at 1980")
	homes := flag.Int("homes", 200, "number of destroyed homes")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(filepath.Join(*outDir, "nfdrs"), 0o755); err != nil {
		return err
	}

	if err := writeFireHistory(filepath.Join(*outDir, "fire_history.csv"), rng); err != nil {
		return fmt.Errorf("fire history: %w", err)
	}
	if err := writeClimate(filepath.Join(*outDir, "nfdrs"), *climateYears, rng); err != nil {
		return fmt.Errorf("climate: %w", err)
	}
	if err := writeHomes(*outDir, *homes, rng); err != nil {
		return fmt.Errorf("homes: %w", err)
	}

	log.Printf("wrote mock fixtures to %s", *outDir)
	return nil
}

// writeFireHistory generates perimeter rows for 1900-2020 with growing
// annual burn totals, so the mock series is visibly non-stationary like the
// real one. A few rows get a blank year to exercise the loader's skip path.
func writeFireHistory(path string, rng *rand.Rand) error {
	causes := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 14, 18}

	rows := [][]string{{"YEAR_", "CAUSE", "GIS_ACRES"}}
	for year := 1900; year <= 2020; year++ {
		fires := 3 + rng.Intn(8)
		scale := 1 + float64(year-1900)/30
		for i := 0; i < fires; i++ {
			acres := rng.Float64() * 20000 * scale
			rows = append(rows, []string{
				strconv.Itoa(year),
				strconv.Itoa(causes[rng.Intn(len(causes))]),
				strconv.FormatFloat(acres, 'f', 2, 64),
			})
		}
	}
	for i := 0; i < 5; i++ {
		rows = append(rows, []string{"", strconv.Itoa(causes[rng.Intn(len(causes))]), "123.45"})
	}
	return writeCSV(path, rows)
}

// writeClimate generates one file per year from 1980, daily rows with a
// seasonal cycle plus a slow trend: burn index drifting up, fuel moisture
// drifting down.
func writeClimate(dir string, years int, rng *rand.Rand) error {
	for y := 0; y < years; y++ {
		year := 1980 + y
		rows := [][]string{{"date", "bi", "fm100"}}
		for d := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
			season := math.Sin(2 * math.Pi * float64(d.YearDay()) / 365)
			bi := 35 + 15*season + 0.3*float64(y) + rng.NormFloat64()*5
			fm := 13 - 3*season - 0.1*float64(y) + rng.NormFloat64()*1.5
			rows = append(rows, []string{
				d.Format("2006-01-02"),
				strconv.FormatFloat(bi, 'f', 2, 64),
				strconv.FormatFloat(fm, 'f', 2, 64),
			})
		}
		if err := writeCSV(filepath.Join(dir, fmt.Sprintf("%d.csv", year)), rows); err != nil {
			return err
		}
		log.Printf("%d: %d climate rows", year, len(rows)-1)
	}
	return nil
}

// writeHomes generates the destroyed set with coordinates around Santa Rosa
// and valuations, and marks roughly a third of the addresses recovered.
func writeHomes(dir string, count int, rng *rand.Rand) error {
	burnt := [][]string{{"address", "lat", "lon", "zestimate"}}
	recovered := [][]string{{"address"}}

	for i := 0; i < count; i++ {
		addr := fmt.Sprintf("%d Coffey Park Dr, Santa Rosa, CA", 1000+i)
		lat := 38.4354 + rng.NormFloat64()*0.02
		lon := -122.65 + rng.NormFloat64()*0.02
		value := 300000 + rng.Float64()*700000
		burnt = append(burnt, []string{
			addr,
			strconv.FormatFloat(lat, 'f', 5, 64),
			strconv.FormatFloat(lon, 'f', 5, 64),
			strconv.FormatFloat(value, 'f', 0, 64),
		})
		if rng.Float64() < 0.33 {
			recovered = append(recovered, []string{addr})
		}
	}

	if err := writeCSV(filepath.Join(dir, "burnt_homes.csv"), burnt); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "recovered_homes.csv"), recovered)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
