// Package clean implements the classification and normalization engine
// that turns raw stored trade records into an analysis-ready set:
// species identification, wood-type consistency checks, unit
// harmonization, and price-outlier removal.
package clean

import (
	"strings"

	"github.com/timberintel/timberintel/internal/catalog"
)

// Sentinel species labels outside the keyword vocabulary.
const (
	SpeciesUnknown = "Unknown"
	SpeciesOther   = "Other"
)

// ClassifySpecies maps a free-text product description to the species
// vocabulary via an ordered, case-insensitive substring scan. The first
// label whose keyword list matches wins, so table order encodes
// priority. Empty input is Unknown; a description matching nothing is
// Other. Pure function: same input, same label.
func ClassifySpecies(description string) string {
	if strings.TrimSpace(description) == "" {
		return SpeciesUnknown
	}
	upper := strings.ToUpper(description)
	for _, entry := range catalog.SpeciesKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(upper, kw) {
				return entry.Label
			}
		}
	}
	return SpeciesOther
}
