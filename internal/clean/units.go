package clean

import "strings"

// volumetricAliases are the unit tokens that all mean cubic meters.
// "M3 " (trailing space) is a real token observed from the source.
var volumetricAliases = map[string]bool{
	"M3":  true,
	"MTQ": true,
	"CBM": true,
	"M3 ": true,
}

// IsVolumetric reports whether a unit token is a cubic-meter alias.
func IsVolumetric(unit string) bool {
	return volumetricAliases[strings.ToUpper(unit)]
}

// ObservedUnits lists the distinct quantity-unit tokens of a record set
// in first-seen order. Empty tokens report as "Unknown".
func ObservedUnits(records []Record) []string {
	seen := make(map[string]bool)
	var units []string
	for _, r := range records {
		u := r.QuantityUnit
		if u == "" {
			u = "Unknown"
		}
		if !seen[u] {
			seen[u] = true
			units = append(units, u)
		}
	}
	return units
}

// SelectUnit picks the canonical analysis unit: requested when set,
// otherwise the first observed cubic-meter alias, otherwise the first
// observed unit. Quantities in different units must never be summed, so
// every volume aggregation downstream runs on one unit's records only.
func SelectUnit(records []Record, requested string) string {
	if requested != "" {
		return requested
	}
	units := ObservedUnits(records)
	for _, u := range units {
		if IsVolumetric(u) {
			return u
		}
	}
	if len(units) > 0 {
		return units[0]
	}
	return "Unknown"
}

// FilterByUnit keeps only records whose unit token matches exactly.
func FilterByUnit(records []Record, unit string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		u := r.QuantityUnit
		if u == "" {
			u = "Unknown"
		}
		if u == unit {
			out = append(out, r)
		}
	}
	return out
}
