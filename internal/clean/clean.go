package clean

import (
	"log/slog"

	"github.com/timberintel/timberintel/internal/catalog"
	"github.com/timberintel/timberintel/internal/store"
)

// Record is a stored trade record enriched with the derived columns the
// analysis layer consumes. Derived values are computed here and never
// persisted back.
type Record struct {
	store.TradeRecord

	Species     string           `json:"species"`
	WoodType    catalog.WoodType `json:"wood_type"`
	ProductForm string           `json:"product_form"`
	UnitPrice   float64          `json:"unit_price"`
	OriginName  string           `json:"origin_name"`
	DestName    string           `json:"dest_name"`
}

// Options selects and tunes the cleaning stages.
type Options struct {
	// HSPrefixes keeps only records whose HS code prefix-matches one of
	// the targets. Empty means no HS filtering.
	HSPrefixes []string

	// Species keeps only records classified to one of these labels.
	Species []string

	// TargetUnit forces the analysis unit; empty auto-selects per
	// SelectUnit.
	TargetUnit string

	// MinUnitPrice is the outlier floor; <= 0 disables price cleaning.
	MinUnitPrice float64

	// EnforceWoodType drops declared/observed wood-type contradictions.
	EnforceWoodType bool
}

// Result is a cleaned record set plus the per-stage removal counts the
// operator uses to gauge how aggressive the cleaning was.
type Result struct {
	Records []Record `json:"records"`

	Unit                   string `json:"unit"`
	TotalLoaded            int    `json:"total_loaded"`
	HSFiltered             int    `json:"hs_filtered"`
	WoodTypeContradictions int    `json:"wood_type_contradictions"`
	SpeciesFiltered        int    `json:"species_filtered"`
	UnitFiltered           int    `json:"unit_filtered"`
	PriceOutliers          int    `json:"price_outliers"`
}

// Pipeline runs the cleaning stages in a fixed order: enrich, HS
// filter, wood-type validation, species filter, unit selection, price
// floor.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline builds a cleaning pipeline.
func NewPipeline(logger *slog.Logger) *Pipeline {
	return &Pipeline{logger: logger.With("component", "clean")}
}

// Enrich computes the derived columns for one stored record.
func Enrich(rec store.TradeRecord) Record {
	woodType, form := catalog.ClassifyForm(rec.HSCode)
	rec.PortOfArrival = catalog.CleanPortName(rec.PortOfArrival)
	return Record{
		TradeRecord: rec,
		Species:     ClassifySpecies(rec.ProductDescText),
		WoodType:    woodType,
		ProductForm: form,
		UnitPrice:   UnitPrice(rec.TotalValueUSD, rec.Quantity),
		OriginName:  catalog.CountryName(rec.OriginCountryCode),
		DestName:    catalog.CountryName(rec.DestCountryCode),
	}
}

// Clean runs the full pipeline over a loaded record set.
func (p *Pipeline) Clean(records []store.TradeRecord, opts Options) *Result {
	result := &Result{TotalLoaded: len(records)}

	enriched := make([]Record, 0, len(records))
	for _, rec := range records {
		enriched = append(enriched, Enrich(rec))
	}

	if len(opts.HSPrefixes) > 0 {
		filtered := enriched[:0]
		for _, r := range enriched {
			if catalog.MatchesAny(r.HSCode, opts.HSPrefixes) {
				filtered = append(filtered, r)
			}
		}
		result.HSFiltered = len(enriched) - len(filtered)
		enriched = filtered
	}

	if opts.EnforceWoodType {
		filtered := enriched[:0]
		for _, r := range enriched {
			if ValidateWoodType(r.HSCode, r.Species) {
				filtered = append(filtered, r)
			}
		}
		result.WoodTypeContradictions = len(enriched) - len(filtered)
		enriched = filtered
	}

	if len(opts.Species) > 0 {
		want := make(map[string]bool, len(opts.Species))
		for _, s := range opts.Species {
			want[s] = true
		}
		filtered := enriched[:0]
		for _, r := range enriched {
			if want[r.Species] {
				filtered = append(filtered, r)
			}
		}
		result.SpeciesFiltered = len(enriched) - len(filtered)
		enriched = filtered
	}

	result.Unit = SelectUnit(enriched, opts.TargetUnit)
	unitClean := FilterByUnit(enriched, result.Unit)
	result.UnitFiltered = len(enriched) - len(unitClean)

	if opts.MinUnitPrice > 0 {
		var removed int
		unitClean, removed = FilterPriceOutliers(unitClean, opts.MinUnitPrice)
		result.PriceOutliers = removed
	}

	result.Records = unitClean
	p.logger.Info("cleaning complete",
		"loaded", result.TotalLoaded,
		"kept", len(result.Records),
		"unit", result.Unit,
		"hs_filtered", result.HSFiltered,
		"contradictions", result.WoodTypeContradictions,
		"unit_filtered", result.UnitFiltered,
		"price_outliers", result.PriceOutliers)
	return result
}
