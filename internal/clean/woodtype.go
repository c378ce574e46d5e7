package clean

import "github.com/timberintel/timberintel/internal/catalog"

// ValidateWoodType cross-checks the wood type an HS code declares
// against the wood type the classified species implies. It returns
// false only on a true contradiction: declared Softwood with an
// observed Hardwood species, or the reverse. A record with no declared
// category, or a species outside both membership sets (Other/Unknown),
// always passes; absence of evidence is not evidence of contradiction.
func ValidateWoodType(hsCode, species string) bool {
	declared, _ := catalog.ClassifyForm(hsCode)
	if declared == catalog.OtherWood {
		return true
	}
	observed := catalog.SpeciesWoodType(species)
	if observed == catalog.OtherWood {
		return true
	}
	return declared == observed
}
