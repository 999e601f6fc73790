// Package domain models California wildfire history, gridded climate
// observations, and post-fire residential recovery data, and implements the
// pure derivation primitives behind the fire-insurance report: cause
// filtering, temporal aggregation, rolling means, a unit-root stationarity
// test, and the destroyed/recovered property join.
//
// # Data Sources
//
// Fire history comes from the multi-agency statewide fire perimeter database
// (CAL FIRE FRAP). For CAL FIRE, timber fires 10 acres or greater, brush
// fires 30 acres and greater, and grass fires 300 acres or greater are
// included; USFS fires have a 10 acre minimum since 1950. The dataset mixes
// wildfire history, prescribed burns and other fuel modification projects.
// Records before 1911 are sparse and unreliable and are cut from the annual
// series after aggregation.
//
// Climate observations are statewide daily aggregates of two gridded surface
// meteorology (gridMET) NFDRS fields, 1980 onward:
//
//	bi     National Fire Danger Rating System burning index
//	fm100  100-hour dead fuel moisture (percent)
//
// Recovery data covers residences destroyed in the 2017 Santa Rosa (Tubbs)
// fire: one CSV of destroyed homes with coordinates and pre-fire valuations,
// and one CSV of addresses that have since been rebuilt, permitted, or are
// under construction.
//
// # Cause Codes
//
// Fire causes use the FRAP numeric coding. The code space is not contiguous;
// see [CauseTable] for the thirteen causes carried here. Cause 0 is reserved
// as the "All" sentinel meaning no cause filter.
//
// # Derivations
//
// All derivation functions are pure: they take immutable inputs and return
// fresh slices. Aggregation only emits keys present in the input; timeline
// gaps are never backfilled with zeros. Rolling means clip their window to
// the available data, so output length always equals input length.
//
// The stationarity classifier runs an Augmented Dickey-Fuller test with
// constant-only regression and t-stat lag selection, and maps the MacKinnon
// p-value to a stationary/non-stationary label. The upstream report fed the
// date axis into the test rather than the measured values, which makes the
// result a statement about calendar ordering; both axes are supported via
// [TestAxis] and the caller chooses. See ClassifyStationarity.
package domain
