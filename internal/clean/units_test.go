package clean

import (
	"testing"

	"github.com/timberintel/timberintel/internal/store"
)

func unitRecords(units ...string) []Record {
	records := make([]Record, len(units))
	for i, u := range units {
		records[i] = Record{TradeRecord: store.TradeRecord{QuantityUnit: u}}
	}
	return records
}

func TestIsVolumetric(t *testing.T) {
	tests := []struct {
		unit     string
		expected bool
	}{
		{"M3", true},
		{"m3", true},
		{"MTQ", true},
		{"CBM", true},
		{"M3 ", true},
		{"KG", false},
		{"PCS", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			if got := IsVolumetric(tt.unit); got != tt.expected {
				t.Errorf("IsVolumetric(%q): expected %v, got %v", tt.unit, tt.expected, got)
			}
		})
	}
}

func TestObservedUnits(t *testing.T) {
	records := unitRecords("KG", "M3", "KG", "", "M3")
	units := ObservedUnits(records)
	expected := []string{"KG", "M3", "Unknown"}
	if len(units) != len(expected) {
		t.Fatalf("Expected %d units, got %d: %v", len(expected), len(units), units)
	}
	for i := range units {
		if units[i] != expected[i] {
			t.Errorf("Unit %d: expected %q, got %q", i, expected[i], units[i])
		}
	}
}

func TestSelectUnit(t *testing.T) {
	tests := []struct {
		name      string
		units     []string
		requested string
		expected  string
	}{
		{"Requested wins", []string{"KG", "M3"}, "KG", "KG"},
		{"Volumetric preferred over earlier seen", []string{"KG", "M3"}, "", "M3"},
		{"MTQ alias counts as volumetric", []string{"PCS", "MTQ"}, "", "MTQ"},
		{"First observed when nothing volumetric", []string{"KG", "PCS"}, "", "KG"},
		{"Empty set", nil, "", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectUnit(unitRecords(tt.units...), tt.requested); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFilterByUnit(t *testing.T) {
	records := unitRecords("M3", "KG", "M3", "")
	kept := FilterByUnit(records, "M3")
	if len(kept) != 2 {
		t.Errorf("Expected 2 records in M3, got %d", len(kept))
	}

	// Empty tokens surface under the Unknown label.
	unknown := FilterByUnit(records, "Unknown")
	if len(unknown) != 1 {
		t.Errorf("Expected 1 record with unknown unit, got %d", len(unknown))
	}

	// Alias tokens do not cross-match: "M3 " is not "M3".
	padded := unitRecords("M3 ")
	if got := FilterByUnit(padded, "M3"); len(got) != 0 {
		t.Errorf("Expected padded token not to match M3, got %d", len(got))
	}
}
