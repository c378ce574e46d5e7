package catalog

import "testing"

func TestCleanPortName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"Empty becomes unknown", "", "Unknown"},
		{"Whitespace becomes unknown", "   ", "Unknown"},
		{"Plain name passes through", "MUNDRA", "MUNDRA"},
		{"Parenthesized code wins", "Jawaharlal Nehru (NHAVA SHEVA)", "NHAVA SHEVA"},
		{"Alias spelling repaired", "VIZAG", "Visakhapatnam"},
		{"Alias inside parentheses", "Visakhapatnam Port (VIZAG SEA)", "Visakhapatnam"},
		{"Goa alias", "GOA", "Mormugao (Goa)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanPortName(tt.raw); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPortCoords(t *testing.T) {
	c, ok := PortCoords("MUNDRA")
	if !ok {
		t.Fatal("Expected exact match for MUNDRA")
	}
	if c.Lat != 22.8396 {
		t.Errorf("Expected lat 22.8396, got %v", c.Lat)
	}

	// Containment match with a longer source string.
	if _, ok := PortCoords("mundra port terminal"); !ok {
		t.Error("Expected containment match for 'mundra port terminal'")
	}

	// Customs location codes resolve too.
	if _, ok := PortCoords("INNSA1"); !ok {
		t.Error("Expected customs code INNSA1 to resolve")
	}

	if _, ok := PortCoords("NOWHERE HARBOR"); ok {
		t.Error("Expected no match for unknown port")
	}
}
