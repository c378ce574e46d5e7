// Package catalog holds the read-only reference tables used across the
// ingestion and cleaning pipeline: the HS-code product taxonomy, the
// species keyword table, wood-type membership, country names and region
// groups, and the port coordinate library.
package catalog

import "strings"

// WoodType is the softwood/hardwood grouping derived from an HS category.
type WoodType string

const (
	Softwood  WoodType = "Softwood"
	Hardwood  WoodType = "Hardwood"
	OtherWood WoodType = "Other"
)

// Category is one entry of the HS-code product taxonomy. Prefix matching
// against Codes determines membership.
type Category struct {
	Name  string
	Codes []string
}

// Categories is the HS-code product taxonomy. Order matters: the first
// category whose code list prefix-matches a record's HS code wins.
var Categories = []Category{
	{"Softwood Lumber", []string{"440710", "440711", "440712", "440713", "440714", "440719"}},
	{"Softwood Logs", []string{"440320", "440321", "440322", "440323", "440324", "440325", "440326"}},
	{"Hardwood Logs", []string{
		"440391", "440393", "440394", "440395", "440396", "440397", "440398", "440399",
		"440341", "440342", "440349",
	}},
	{"Hardwood Lumber", []string{
		"440791", "440792", "440793", "440794", "440795", "440796", "440797", "440799",
		"440721", "440722", "440723", "440725", "440726", "440727", "440728", "440729",
	}},
	{"Wood Chips", []string{"440121", "440122"}},
	{"Wood Pulp", []string{"4701", "4702", "4703", "4704", "4705", "4706"}},
	{"Recovered Paper", []string{"4707"}},
	{"Veneer", []string{"4408"}},
	{"Plywood", []string{"4412"}},
	{"MDF/HDF", []string{"4411"}},
	{"Particle Board", []string{"4410"}},
	{"Other Products", []string{"4404", "4405", "4406", "4409", "4413", "4414", "4415", "4416", "4417", "4418", "4419", "4420", "4421"}},
}

// CategoryOf returns the taxonomy category name for an HS code, matched
// by string prefix, or "Other Products" when nothing matches.
func CategoryOf(hsCode string) string {
	for _, cat := range Categories {
		for _, code := range cat.Codes {
			if strings.HasPrefix(hsCode, code) {
				return cat.Name
			}
		}
	}
	return "Other Products"
}

// CategoryCodes returns the HS code list for a named category, or nil
// when the category is unknown.
func CategoryCodes(name string) []string {
	for _, cat := range Categories {
		if cat.Name == name {
			return cat.Codes
		}
	}
	return nil
}

// MatchesAny reports whether the HS code prefix-matches any of the given
// target codes. Used for client-side HS filtering after bulk reads.
func MatchesAny(hsCode string, targets []string) bool {
	for _, t := range targets {
		if strings.HasPrefix(hsCode, t) {
			return true
		}
	}
	return false
}

// ClassifyForm derives the declared wood type and product form from an
// HS code via the taxonomy. Codes outside the four log/lumber groups
// report ("Other", "Other").
func ClassifyForm(hsCode string) (woodType WoodType, form string) {
	switch CategoryOf(hsCode) {
	case "Softwood Logs":
		return Softwood, "Logs"
	case "Softwood Lumber":
		return Softwood, "Lumber"
	case "Hardwood Logs":
		return Hardwood, "Logs"
	case "Hardwood Lumber":
		return Hardwood, "Lumber"
	}
	return OtherWood, "Other"
}

// DeclaredWoodType reports the softwood/hardwood grouping an HS category
// name declares, or OtherWood for categories outside both groups.
func DeclaredWoodType(categoryName string) WoodType {
	switch {
	case strings.Contains(categoryName, "Softwood"):
		return Softwood
	case strings.Contains(categoryName, "Hardwood"):
		return Hardwood
	}
	return OtherWood
}

// SpeciesEntry is one row of the keyword classification table.
type SpeciesEntry struct {
	Label    string
	Keywords []string
}

// SpeciesKeywords maps description keywords to the species vocabulary.
// Order encodes matching priority and must be preserved: more specific
// labels (Radiata, Taeda) come before the generic pine fallback that
// would otherwise shadow them. Keywords carrying a trailing space
// ("FIR ", "ASH ") avoid false hits inside longer words.
var SpeciesKeywords = []SpeciesEntry{
	{"Radiata", []string{"RADIATA", "RAD PINE", "MONTEREY"}},
	{"Taeda", []string{"TAEDA", "LOBLOLLY", "ELLIOTII", "SOUTHERN YELLOW"}},
	{"Spruce", []string{"SPRUCE", "PICEA", "WHITEWOOD", "SPF"}},
	{"Fir", []string{"FIR ", "ABIES", "DOUGLAS", "HEMLOCK"}},
	{"Pine (Gen)", []string{"PINE", "PINUS"}},
	{"Larch", []string{"LARCH", "LARIX"}},
	{"Oak", []string{"OAK", "QUERCUS", "RED OAK", "WHITE OAK"}},
	{"Birch", []string{"BIRCH", "BETULA"}},
	{"Beech", []string{"BEECH", "FAGUS"}},
	{"Poplar", []string{"POPLAR", "POPULUS", "ASPEN"}},
	{"Eucalyptus", []string{"EUCALYPTUS", "EUCA", "GUM"}},
	{"Acacia", []string{"ACACIA", "MANGIUM"}},
	{"Rubberwood", []string{"RUBBERWOOD", "HEVEA"}},
	{"Teak", []string{"TEAK", "TECTONA"}},
	{"Ash", []string{"ASH ", "FRAXINUS"}},
	{"Maple", []string{"MAPLE", "ACER"}},
	{"Cherry", []string{"CHERRY", "PRUNUS"}},
	{"Walnut", []string{"WALNUT", "JUGLANS"}},
	{"Meranti", []string{"MERANTI", "LAUAN"}},
}

// SpeciesCategory maps wood types to the species labels that belong to
// them. Labels outside both lists (and the Other/Unknown sentinels)
// carry no wood-type evidence.
var SpeciesCategory = map[WoodType][]string{
	Softwood: {"Radiata", "Spruce", "Fir", "Pine (Gen)", "Larch", "Taeda"},
	Hardwood: {"Oak", "Birch", "Beech", "Poplar", "Eucalyptus", "Acacia", "Rubberwood", "Teak", "Ash", "Maple", "Cherry", "Walnut", "Meranti"},
}

// SpeciesWoodType reports which wood type a species label belongs to,
// or OtherWood when the label is in neither membership list.
func SpeciesWoodType(label string) WoodType {
	for wt, labels := range SpeciesCategory {
		for _, l := range labels {
			if l == label {
				return wt
			}
		}
	}
	return OtherWood
}

// CountryNames maps ISO-3 country codes to display names.
var CountryNames = map[string]string{
	"TZA": "Tanzania", "UGA": "Uganda", "KEN": "Kenya",
	"CRI": "Costa Rica", "PAN": "Panama", "ECU": "Ecuador", "GTM": "Guatemala",
	"CHN": "China", "IND": "India", "JPN": "Japan",
	"KOR": "South Korea", "TWN": "Taiwan", "VNM": "Vietnam",
	"THA": "Thailand", "MYS": "Malaysia", "KHM": "Cambodia",
	"LKA": "Sri Lanka", "ARE": "UAE", "SAU": "Saudi Arabia",
	"IDN": "Indonesia", "PHL": "Philippines",
	"ZAF": "South Africa", "MOZ": "Mozambique",
	"GAB": "Gabon", "CMR": "Cameroon", "COG": "Congo",
	"GNQ": "Eq. Guinea", "GHA": "Ghana", "NGA": "Nigeria",
	"BRA": "Brazil", "URY": "Uruguay", "ARG": "Argentina",
	"CHL": "Chile", "SUR": "Suriname",
	"GUY": "Guyana", "NZL": "New Zealand", "AUS": "Australia",
	"USA": "USA", "CAN": "Canada", "MEX": "Mexico",
	"RUS": "Russia", "DEU": "Germany", "SWE": "Sweden", "FIN": "Finland",
	"AUT": "Austria", "BEL": "Belgium", "FRA": "France", "ESP": "Spain",
	"ITA": "Italy", "POL": "Poland", "LVA": "Latvia", "EST": "Estonia",
	"LTU": "Lithuania", "CZE": "Czechia", "SVK": "Slovakia", "ROU": "Romania",
	"PRT": "Portugal", "IRL": "Ireland", "GBR": "UK", "NOR": "Norway",
	"NLD": "Netherlands", "SVN": "Slovenia", "HRV": "Croatia", "DNK": "Denmark",
}

// CountryName returns the display name for an ISO-3 code, falling back
// to the literal code for codes outside the table. Parenthetical
// qualifiers are stripped for display.
func CountryName(code string) string {
	name, ok := CountryNames[code]
	if !ok {
		if code == "" {
			return "Unknown"
		}
		return code
	}
	if i := strings.Index(name, " ("); i >= 0 {
		return name[:i]
	}
	return name
}

// RegionGroups are the quick-select country groupings used by batch
// download tasks.
var RegionGroups = map[string][]string{
	"asia":            {"CHN", "IND", "JPN", "KOR", "TWN", "VNM", "THA", "MYS", "KHM", "LKA", "IDN", "PHL", "ARE", "SAU"},
	"europe":          {"DEU", "SWE", "FIN", "AUT", "BEL", "FRA", "ESP", "ITA", "POL", "LVA", "EST", "LTU", "CZE", "SVK", "ROU", "PRT", "IRL", "GBR", "NOR", "NLD", "SVN", "HRV", "DNK"},
	"africa":          {"ZAF", "MOZ", "GAB", "CMR", "COG", "GNQ", "GHA", "NGA", "TZA", "UGA", "KEN"},
	"oceania":         {"NZL", "AUS", "PNG"},
	"north-america":   {"USA", "CAN"},
	"south-america":   {"BRA", "URY", "ARG", "CHL", "ECU", "SUR", "GUY"},
	"central-america": {"CRI", "PAN", "GTM"},
}
