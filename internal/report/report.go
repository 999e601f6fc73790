// Package report composes the domain derivation primitives into the three
// report pipelines: annual burned acreage (filter → aggregate → smooth →
// classify), daily climate (aggregate → smooth → clip), and property
// recovery (join → sum). Each pipeline is a pure function of the immutable
// data context and a parameter struct; a small LRU fronts the pipelines
// because every output is re-derivable.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/embermetrics/fire-report-service/internal/config"
	"github.com/embermetrics/fire-report-service/internal/domain"
	"github.com/embermetrics/fire-report-service/internal/observability"
)

// FireParams selects the annual burned-acreage derivation.
type FireParams struct {
	Cause  domain.Cause
	Window int // trailing moving-average window, years
}

// FireReport is the fire pipeline output: the raw and smoothed annual
// series plus the stationarity classification and its narrative sentence.
type FireReport struct {
	Cause        string                     `json:"cause"`
	Window       int                        `json:"window"`
	Raw          domain.Series              `json:"raw"`
	Smoothed     domain.Series              `json:"smoothed"`
	Stationarity *domain.StationarityResult `json:"stationarity,omitempty"`
	Narrative    string                     `json:"narrative"`
	ComputedAt   time.Time                  `json:"computed_at"`
}

// ClimateParams selects the daily climate derivation.
type ClimateParams struct {
	Variable domain.ClimateVariable
	Window   int  // symmetric moving-average window, days on either side
	ShowRaw  bool // wide display range with raw scatter points
}

// ClimateReport is the climate pipeline output. Range is the y-axis
// clipping pair the renderer should apply, chosen by variable and ShowRaw.
type ClimateReport struct {
	Variable   domain.ClimateVariable `json:"variable"`
	Window     int                    `json:"window"`
	ShowRaw    bool                   `json:"show_raw"`
	Raw        domain.Series          `json:"raw"`
	Smoothed   domain.Series          `json:"smoothed"`
	Range      config.DisplayRange    `json:"range"`
	ComputedAt time.Time              `json:"computed_at"`
}

// StatusColors are the render hints for the recovery map, RGB per status.
var StatusColors = map[domain.RecoveryStatus][3]uint8{
	domain.StatusDestroyed: {228, 87, 86},
	domain.StatusRecovered: {86, 228, 87},
}

// RecoveryReport is the recovery pipeline output: the joined point set for
// the map plus the valuation scalars behind the narrative.
type RecoveryReport struct {
	Points         []domain.JoinedProperty             `json:"points"`
	DestroyedValue int64                               `json:"destroyed_value"`
	RecoveredValue int64                               `json:"recovered_value"`
	RecoveredPct   float64                             `json:"recovered_pct"`
	RoughBuildings int                                 `json:"rough_buildings"`
	MapView        config.MapViewConfig                `json:"map_view"`
	StatusColors   map[domain.RecoveryStatus][3]uint8  `json:"status_colors"`
	ComputedAt     time.Time                           `json:"computed_at"`
}

// Engine runs the report pipelines against a fixed data context.
type Engine struct {
	data    *DataContext
	cfg     config.ReportConfig
	axis    domain.TestAxis
	logger  *slog.Logger
	metrics *observability.Metrics
	cache   *lruCache
}

// NewEngine creates an Engine over the loaded data context. The axis in cfg
// has already been validated by config.Validate.
func NewEngine(data *DataContext, cfg config.ReportConfig, cacheSize int, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	axis, err := domain.ParseTestAxis(cfg.StationarityAxis)
	if err != nil {
		axis = domain.AxisValues
	}
	return &Engine{
		data:    data,
		cfg:     cfg,
		axis:    axis,
		logger:  logger,
		metrics: metrics,
		cache:   newLRUCache(cacheSize),
	}
}

// CheckReadiness reports whether the engine has data to derive from.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if e.data.Empty() {
		return errors.New("source datasets are not loaded")
	}
	return nil
}

// Fire derives the annual burned-acreage report for the given cause filter
// and trailing window. An empty filtered series yields empty output series
// and a fallback narrative rather than an error.
func (e *Engine) Fire(p FireParams) FireReport {
	key := fmt.Sprintf("fire:%d|%d", p.Cause, p.Window)
	if cached, ok := e.lookup("fire", key); ok {
		return cached.(FireReport)
	}
	start := time.Now()

	filtered := domain.FilterByCause(e.data.Fires, p.Cause)
	raw := domain.AnnualBurnedAcres(filtered, e.cfg.MinYear)
	smoothed := domain.Smooth(raw, p.Window, 0)

	out := FireReport{
		Cause:      p.Cause.String(),
		Window:     p.Window,
		Raw:        raw,
		Smoothed:   smoothed,
		ComputedAt: domain.Now(),
	}

	result, err := domain.ClassifyStationarity(raw, e.cfg.Significance, e.axis)
	if err != nil {
		e.logger.Warn("stationarity test skipped", "cause", out.Cause, "points", len(raw), "error", err)
		out.Narrative = fmt.Sprintf(
			"The Augmented Dickey-Fuller test could not be computed for **%s**: the series has too few observations.",
			out.Cause,
		)
	} else {
		out.Stationarity = &result
		// The published report quoted round(1-p, 2) as the p-value; the
		// narrative keeps that figure so the wording matches.
		out.Narrative = fmt.Sprintf(
			"The time-series for acres burned from **%s** is **%s** at the %d-percent significance level (p-value = %.2g), according to the Augmented Dickey-Fuller test.",
			out.Cause,
			result.Label,
			int(math.Round(e.cfg.Significance*100)),
			math.Round((1-result.PValue)*100)/100,
		)
	}

	e.finish("fire", key, out, start)
	return out
}

// Climate derives the daily climate report for the given variable and
// symmetric window.
func (e *Engine) Climate(p ClimateParams) ClimateReport {
	key := fmt.Sprintf("climate:%s|%d|%t", p.Variable, p.Window, p.ShowRaw)
	if cached, ok := e.lookup("climate", key); ok {
		return cached.(ClimateReport)
	}
	start := time.Now()

	raw := domain.DailyClimate(e.data.Climate, p.Variable)
	out := ClimateReport{
		Variable:   p.Variable,
		Window:     p.Window,
		ShowRaw:    p.ShowRaw,
		Raw:        raw,
		Smoothed:   domain.Smooth(raw, p.Window, p.Window),
		Range:      e.cfg.Display.For(p.Variable, p.ShowRaw),
		ComputedAt: domain.Now(),
	}

	e.finish("climate", key, out, start)
	return out
}

// Recovery derives the destroyed/recovered property report. It takes no
// parameters; the output depends only on the data context.
func (e *Engine) Recovery() RecoveryReport {
	const key = "recovery"
	if cached, ok := e.lookup("recovery", key); ok {
		return cached.(RecoveryReport)
	}
	start := time.Now()

	joined := domain.JoinRecovery(e.data.Destroyed, e.data.Recovered)
	sums := domain.SumByStatus(joined)
	destroyed := sums[domain.StatusDestroyed]
	recovered := sums[domain.StatusRecovered]

	var pct float64
	if total := destroyed + recovered; total > 0 {
		pct = math.Round(recovered/total*1000) / 1000 * 100
	}

	out := RecoveryReport{
		Points:         joined,
		DestroyedValue: int64(destroyed),
		RecoveredValue: int64(recovered),
		RecoveredPct:   pct,
		RoughBuildings: int(math.Round(float64(len(joined))/10)) * 10,
		MapView:        e.cfg.Map,
		StatusColors:   StatusColors,
		ComputedAt:     domain.Now(),
	}

	e.finish("recovery", key, out, start)
	return out
}

func (e *Engine) lookup(pipeline, key string) (any, bool) {
	v, ok := e.cache.get(key)
	if ok {
		e.metrics.CacheLookups.WithLabelValues(pipeline, "hit").Inc()
	} else {
		e.metrics.CacheLookups.WithLabelValues(pipeline, "miss").Inc()
	}
	return v, ok
}

func (e *Engine) finish(pipeline, key string, out any, start time.Time) {
	e.cache.put(key, out)
	e.metrics.ReportsComputed.WithLabelValues(pipeline).Inc()
	e.metrics.ComputeDuration.WithLabelValues(pipeline).Observe(time.Since(start).Seconds())
}
