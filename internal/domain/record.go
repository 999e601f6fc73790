package domain

import (
	"fmt"
	"sort"
	"time"
)

// Cause is a FRAP numeric fire-cause code. The zero value is CauseAll,
// the sentinel meaning "no cause filter".
type Cause int

// CauseAll matches every record; it is never stored on a FireRecord.
const CauseAll Cause = 0

// CauseTable maps the FRAP cause names carried by the report to their
// numeric codes. The code space is not contiguous.
var CauseTable = map[string]Cause{
	"Lightning":               1,
	"Equipment Use":           2,
	"Smoking":                 3,
	"Campfire":                4,
	"Debris":                  5,
	"Railroad":                6,
	"Arson":                   7,
	"Playing with fire":       8,
	"Miscellaneous":           9,
	"Vehicle":                 10,
	"Powerline":               11,
	"Unknown / Unidentified":  14,
	"Escaped Prescribed Burn": 18,
}

var causeNames = func() map[Cause]string {
	m := make(map[Cause]string, len(CauseTable))
	for name, code := range CauseTable {
		m[code] = name
	}
	return m
}()

// ParseCause resolves a cause name to its code. "All" (or empty) resolves to
// CauseAll.
func ParseCause(name string) (Cause, error) {
	if name == "" || name == "All" {
		return CauseAll, nil
	}
	if code, ok := CauseTable[name]; ok {
		return code, nil
	}
	return CauseAll, fmt.Errorf("unknown fire cause %q", name)
}

// String returns the FRAP cause name, "All" for the sentinel, or the numeric
// code for causes outside the table.
func (c Cause) String() string {
	if c == CauseAll {
		return "All"
	}
	if name, ok := causeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cause(%d)", int(c))
}

// CauseNames returns the table's cause names sorted by code, the order the
// report presents them in.
func CauseNames() []string {
	names := make([]string, 0, len(CauseTable))
	for name := range CauseTable {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return CauseTable[names[i]] < CauseTable[names[j]]
	})
	return names
}

// FireRecord is one fire perimeter from the statewide fire history database.
// Year 0 means the source row had a blank or unparsable year; such records
// are excluded from aggregation.
type FireRecord struct {
	Year        int     `json:"year"`
	Cause       Cause   `json:"cause"`
	BurnedAcres float64 `json:"burned_acres"`
}

// ClimateVariable selects one of the two gridMET NFDRS fields.
type ClimateVariable string

const (
	BurnIndex        ClimateVariable = "bi"
	DeadFuelMoisture ClimateVariable = "fm100"
)

// ParseClimateVariable validates a variable name from the wire.
func ParseClimateVariable(s string) (ClimateVariable, error) {
	switch ClimateVariable(s) {
	case BurnIndex, DeadFuelMoisture:
		return ClimateVariable(s), nil
	default:
		return "", fmt.Errorf("unknown climate variable %q", s)
	}
}

// ClimateObservation is one statewide daily NFDRS aggregate. Source files
// are per-year CSVs and are not guaranteed date-ordered.
type ClimateObservation struct {
	Date             time.Time `json:"date"`
	BurnIndex        float64   `json:"bi"`
	DeadFuelMoisture float64   `json:"fm100"`
}

// Value returns the observation's reading for the selected variable.
func (o ClimateObservation) Value(v ClimateVariable) float64 {
	if v == DeadFuelMoisture {
		return o.DeadFuelMoisture
	}
	return o.BurnIndex
}

// RecoveryStatus labels a destroyed property's rebuild state.
type RecoveryStatus string

const (
	StatusDestroyed RecoveryStatus = "destroyed"
	StatusRecovered RecoveryStatus = "recovered"
)

// PropertyRecord is one residential parcel affected by the fire. Address is
// the join key between the destroyed and recovered sets.
type PropertyRecord struct {
	Address       string  `json:"address"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	AssessedValue float64 `json:"assessed_value"`
}

// JoinedProperty is a destroyed-set property with its derived recovery
// status. AssessedValue is rounded to the nearest whole dollar during the
// join; instances are never mutated afterwards.
type JoinedProperty struct {
	PropertyRecord
	Status RecoveryStatus `json:"status"`
}
