// Command validate performs data integrity checks across a report data
// directory: it loads all three dataset families, re-derives the aggregates
// independently, and verifies the conservation laws the charts depend on
// (aggregation sum conservation, strictly increasing keys, smoothing length
// preservation, left-join cardinality, valuation conservation).
//
// Usage:
//
//	go run ./cmd/validate -data-dir data
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/embermetrics/fire-report-service/internal/config"
	"github.com/embermetrics/fire-report-service/internal/domain"
	"github.com/embermetrics/fire-report-service/internal/loader"
	"github.com/embermetrics/fire-report-service/internal/observability"
	"github.com/embermetrics/fire-report-service/internal/report"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "data", "directory containing the report CSV datasets")
	flag.Parse()

	if code := run(*dataDir); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir string) int {
	logger := slog.Default()

	dataCfg := config.DataConfig{
		FiresPath:     filepath.Join(dataDir, "fire_history.csv"),
		ClimateDir:    filepath.Join(dataDir, "nfdrs"),
		DestroyedPath: filepath.Join(dataDir, "burnt_homes.csv"),
		RecoveredPath: filepath.Join(dataDir, "recovered_homes.csv"),
	}

	data, err := loader.LoadAll(dataCfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL load: %v\n", err)
		return 1
	}

	phases := []*phase{
		checkAggregation(data),
		checkSmoothing(data),
		checkJoin(data),
		checkPipelines(data),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if failed > 0 {
		return 1
	}
	fmt.Println("all phases passed")
	return 0
}

// checkAggregation re-derives per-year sums directly and compares them to
// the aggregator output, and verifies key ordering and uniqueness.
func checkAggregation(data *report.DataContext) *phase {
	p := &phase{name: "aggregation"}

	series := domain.AnnualBurnedAcres(data.Fires, 0)

	want := make(map[int]float64)
	for _, r := range data.Fires {
		if r.Year != 0 {
			want[r.Year] += r.BurnedAcres
		}
	}
	if len(series) != len(want) {
		p.errorf("distinct years: got %d, want %d", len(series), len(want))
	}
	for i, pt := range series {
		if i > 0 && !series[i-1].Time.Before(pt.Time) {
			p.errorf("keys not strictly increasing at index %d", i)
		}
		if w, ok := want[pt.Time.Year()]; !ok {
			p.errorf("unexpected year %d in output", pt.Time.Year())
		} else if math.Abs(w-pt.Value) > 1e-6 {
			p.errorf("year %d: sum %.4f, want %.4f", pt.Time.Year(), pt.Value, w)
		}
	}
	return p
}

// checkSmoothing verifies the zero-window identity and length preservation.
func checkSmoothing(data *report.DataContext) *phase {
	p := &phase{name: "smoothing"}

	series := domain.DailyClimate(data.Climate, domain.BurnIndex)
	identity := domain.Smooth(series, 0, 0)
	if len(identity) != len(series) {
		p.errorf("zero-window length: got %d, want %d", len(identity), len(series))
	}
	for i := range identity {
		if identity[i] != series[i] {
			p.errorf("zero-window changed point %d", i)
			break
		}
	}
	for _, w := range []int{1, 15, 200, len(series) + 1} {
		if got := len(domain.Smooth(series, w, w)); got != len(series) {
			p.errorf("window %d: length %d, want %d", w, got, len(series))
		}
	}
	return p
}

// checkJoin verifies left-join cardinality and valuation conservation, and
// reports duplicate destroyed addresses as a data-quality warning.
func checkJoin(data *report.DataContext) *phase {
	p := &phase{name: "recovery join"}

	joined := domain.JoinRecovery(data.Destroyed, data.Recovered)
	if len(joined) != len(data.Destroyed) {
		p.errorf("row count: got %d, want %d (destroyed set)", len(joined), len(data.Destroyed))
	}

	var wantTotal float64
	for _, d := range data.Destroyed {
		wantTotal += math.Round(d.AssessedValue)
	}
	sums := domain.SumByStatus(joined)
	total := sums[domain.StatusDestroyed] + sums[domain.StatusRecovered]
	if math.Abs(total-wantTotal) > 1e-6 {
		p.errorf("value conservation: %.0f + %.0f != %.0f",
			sums[domain.StatusDestroyed], sums[domain.StatusRecovered], wantTotal)
	}

	if err := domain.CheckUniqueAddresses(data.Destroyed); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			p.errorf("destroyed set: %v", err)
		} else {
			p.errorf("address check: %v", err)
		}
	}
	return p
}

// checkPipelines runs all three pipelines with default parameters through
// the engine and sanity-checks the outputs.
func checkPipelines(data *report.DataContext) *phase {
	p := &phase{name: "pipelines"}

	cfg, err := config.Load("")
	if err != nil {
		p.errorf("default config: %v", err)
		return p
	}
	engine := report.NewEngine(data, cfg.Report, cfg.Cache.MaxEntries,
		slog.Default(), observability.NewMetricsForTesting())

	fire := engine.Fire(report.FireParams{Cause: domain.CauseAll, Window: cfg.Report.AnnualWindow})
	if len(fire.Smoothed) != len(fire.Raw) {
		p.errorf("fire: smoothed length %d != raw length %d", len(fire.Smoothed), len(fire.Raw))
	}
	if fire.Narrative == "" {
		p.errorf("fire: empty narrative")
	}

	climate := engine.Climate(report.ClimateParams{Variable: domain.DeadFuelMoisture, Window: cfg.Report.ClimateWindow})
	if len(climate.Smoothed) != len(climate.Raw) {
		p.errorf("climate: smoothed length %d != raw length %d", len(climate.Smoothed), len(climate.Raw))
	}
	if climate.Range.Min >= climate.Range.Max {
		p.errorf("climate: bad display range [%v, %v]", climate.Range.Min, climate.Range.Max)
	}

	recovery := engine.Recovery()
	if recovery.DestroyedValue < 0 || recovery.RecoveredValue < 0 {
		p.errorf("recovery: negative valuation sums")
	}
	if recovery.RecoveredPct < 0 || recovery.RecoveredPct > 100 {
		p.errorf("recovery: percentage %v out of range", recovery.RecoveredPct)
	}
	return p
}
