package catalog

import "testing"

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name     string
		hsCode   string
		expected string
	}{
		{"Softwood lumber six digits", "440710", "Softwood Lumber"},
		{"Softwood lumber longer code", "44071100", "Softwood Lumber"},
		{"Softwood logs", "440320", "Softwood Logs"},
		{"Hardwood logs", "440391", "Hardwood Logs"},
		{"Hardwood lumber", "440791", "Hardwood Lumber"},
		{"Wood chips", "440122", "Wood Chips"},
		{"Wood pulp four digits", "470311", "Wood Pulp"},
		{"Plywood", "441231", "Plywood"},
		{"Unrelated code", "999999", "Other Products"},
		{"Other products group", "440410", "Other Products"},
		{"Empty code", "", "Other Products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryOf(tt.hsCode); got != tt.expected {
				t.Errorf("Expected category %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCategoryCodes(t *testing.T) {
	codes := CategoryCodes("Wood Chips")
	if len(codes) != 2 {
		t.Fatalf("Expected 2 codes for Wood Chips, got %d", len(codes))
	}
	if codes[0] != "440121" {
		t.Errorf("Expected first code '440121', got %q", codes[0])
	}

	if CategoryCodes("No Such Category") != nil {
		t.Error("Expected nil for unknown category")
	}
}

func TestMatchesAny(t *testing.T) {
	targets := []string{"4407", "440320"}
	if !MatchesAny("440710", targets) {
		t.Error("Expected 440710 to match prefix 4407")
	}
	if !MatchesAny("44032050", targets) {
		t.Error("Expected 44032050 to match prefix 440320")
	}
	if MatchesAny("440121", targets) {
		t.Error("Expected 440121 not to match")
	}
	if MatchesAny("440710", nil) {
		t.Error("Expected no match against empty targets")
	}
}

func TestClassifyForm(t *testing.T) {
	tests := []struct {
		name         string
		hsCode       string
		expectedType WoodType
		expectedForm string
	}{
		{"Softwood lumber", "440710", Softwood, "Lumber"},
		{"Softwood logs", "440320", Softwood, "Logs"},
		{"Hardwood logs", "440391", Hardwood, "Logs"},
		{"Hardwood lumber", "440721", Hardwood, "Lumber"},
		{"Plywood is other", "441231", OtherWood, "Other"},
		{"Unknown code is other", "123456", OtherWood, "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			woodType, form := ClassifyForm(tt.hsCode)
			if woodType != tt.expectedType {
				t.Errorf("Expected wood type %q, got %q", tt.expectedType, woodType)
			}
			if form != tt.expectedForm {
				t.Errorf("Expected form %q, got %q", tt.expectedForm, form)
			}
		})
	}
}

func TestSpeciesWoodType(t *testing.T) {
	if SpeciesWoodType("Radiata") != Softwood {
		t.Error("Expected Radiata to be softwood")
	}
	if SpeciesWoodType("Oak") != Hardwood {
		t.Error("Expected Oak to be hardwood")
	}
	if SpeciesWoodType("Unknown") != OtherWood {
		t.Error("Expected Unknown label to carry no wood-type evidence")
	}
}

func TestCountryName(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"Known code", "NZL", "New Zealand"},
		{"Unknown code falls back to code", "XYZ", "XYZ"},
		{"Empty code", "", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountryName(tt.code); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRegionGroups(t *testing.T) {
	oceania, ok := RegionGroups["oceania"]
	if !ok {
		t.Fatal("Expected oceania region group")
	}
	found := false
	for _, code := range oceania {
		if code == "NZL" {
			found = true
		}
	}
	if !found {
		t.Error("Expected NZL inside the oceania group")
	}
}
