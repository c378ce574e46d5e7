package tendata

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFlexStringUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"String value", `"40302"`, "40302"},
		{"Number value", `200`, "200"},
		{"Float value", `12.5`, "12.5"},
		{"Null value", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexString
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if string(f) != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, string(f))
			}
		})
	}
}

func TestFlexNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Plain number", `42.5`, 42.5},
		{"Numeric string", `"17.25"`, 17.25},
		{"Padded numeric string", `" 100 "`, 100},
		{"Null", `null`, 0},
		{"Garbage string", `"N/A"`, 0},
		{"Boolean coerces to zero", `true`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexNumber
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if float64(f) != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, float64(f))
			}
		})
	}
}

func TestStringOrListUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Scalar string", `"440710"`, []string{"440710"}},
		{"List of strings", `["440710","440711"]`, []string{"440710", "440711"}},
		{"Empty list", `[]`, []string{}},
		{"Null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringOrList
			if err := json.Unmarshal([]byte(tt.input), &s); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if len(s) != len(tt.expected) {
				t.Fatalf("Expected %d elements, got %d", len(tt.expected), len(s))
			}
			for i := range s {
				if s[i] != tt.expected[i] {
					t.Errorf("Element %d: expected %q, got %q", i, tt.expected[i], s[i])
				}
			}
		})
	}
}

func TestStringOrListFirstAndJoined(t *testing.T) {
	s := StringOrList{"440710", "440711"}
	if s.First() != "440710" {
		t.Errorf("Expected first element '440710', got %q", s.First())
	}
	if s.Joined() != "440710 440711" {
		t.Errorf("Expected joined '440710 440711', got %q", s.Joined())
	}

	var empty StringOrList
	if empty.First() != "" {
		t.Errorf("Expected empty first, got %q", empty.First())
	}
	if empty.Joined() != "" {
		t.Errorf("Expected empty joined, got %q", empty.Joined())
	}
}

func TestIsAuthExpired(t *testing.T) {
	expired := &APIError{Code: "40302", Msg: "token expired"}
	if !IsAuthExpired(expired) {
		t.Error("Expected 40302 to be recognized as expired credential")
	}

	other := &APIError{Code: "500", Msg: "internal"}
	if IsAuthExpired(other) {
		t.Error("Code 500 should not be treated as expired credential")
	}

	if IsAuthExpired(errors.New("network down")) {
		t.Error("Plain errors should not be treated as expired credential")
	}
}

func TestQueryResponseTotal(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int64
	}{
		{"Total field", `{"code":200,"data":{"total":120}}`, 120},
		{"TotalElements field", `{"code":200,"data":{"totalElements":75}}`, 75},
		{"Both fields prefers total", `{"code":200,"data":{"total":10,"totalElements":99}}`, 10},
		{"Neither field", `{"code":200,"data":{}}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp queryResponse
			if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if resp.total() != tt.expected {
				t.Errorf("Expected total %d, got %d", tt.expected, resp.total())
			}
		})
	}
}

func TestRawRecordDecodesMixedShapes(t *testing.T) {
	body := `{
		"uniqueRecordId": "REC-1",
		"transactionDate": "2024-03-15 00:00:00",
		"hsCode": ["440710", "440711"],
		"productDesc": "RADIATA PINE LUMBER",
		"quantity": "45.5",
		"valueUsd": 1200
	}`

	var rec RawRecord
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if rec.HSCode.First() != "440710" {
		t.Errorf("Expected HS code '440710', got %q", rec.HSCode.First())
	}
	if rec.ProductDesc.Joined() != "RADIATA PINE LUMBER" {
		t.Errorf("Expected joined description, got %q", rec.ProductDesc.Joined())
	}
	if float64(rec.Quantity) != 45.5 {
		t.Errorf("Expected quantity 45.5, got %v", float64(rec.Quantity))
	}
	if float64(rec.TotalValueUSD) != 1200 {
		t.Errorf("Expected value 1200, got %v", float64(rec.TotalValueUSD))
	}
}
