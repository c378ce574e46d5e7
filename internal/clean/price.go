package clean

// DefaultMinUnitPrice is the empirical price floor for this commodity
// domain: no cubic meter of wood product plausibly trades under $5, so
// anything cheaper is almost certainly a mass value mislabeled as
// volume. Exposed as configuration, not hardcoded at call sites.
const DefaultMinUnitPrice = 5.0

// UnitPrice computes value per unit quantity, defined as 0 whenever
// quantity is not positive. Never divides by zero.
func UnitPrice(totalValueUSD, quantity float64) float64 {
	if quantity <= 0 {
		return 0
	}
	return totalValueUSD / quantity
}

// FilterPriceOutliers drops records whose implied unit price falls below
// the floor. A mislabeled unit (kilograms recorded as cubic meters)
// inflates quantity and craters unit price, so a floor catches the
// defect without ground-truth unit correction. Returns the surviving
// records and the removed count for operator visibility.
func FilterPriceOutliers(records []Record, minUnitPrice float64) (kept []Record, removed int) {
	kept = make([]Record, 0, len(records))
	for _, r := range records {
		if UnitPrice(r.TotalValueUSD, r.Quantity) >= minUnitPrice {
			kept = append(kept, r)
		} else {
			removed++
		}
	}
	return kept, removed
}
