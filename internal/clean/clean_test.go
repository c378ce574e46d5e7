package clean

import (
	"io"
	"log/slog"
	"testing"

	"github.com/timberintel/timberintel/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnrich(t *testing.T) {
	rec := store.TradeRecord{
		UniqueRecordID:    "REC-1",
		HSCode:            "440710",
		ProductDescText:   "RADIATA PINE LUMBER KD",
		OriginCountryCode: "NZL",
		DestCountryCode:   "CHN",
		PortOfArrival:     "Jawaharlal Nehru (NHAVA SHEVA)",
		Quantity:          40,
		TotalValueUSD:     12000,
	}

	enriched := Enrich(rec)
	if enriched.Species != "Radiata" {
		t.Errorf("Expected species 'Radiata', got %q", enriched.Species)
	}
	if string(enriched.WoodType) != "Softwood" {
		t.Errorf("Expected wood type 'Softwood', got %q", enriched.WoodType)
	}
	if enriched.ProductForm != "Lumber" {
		t.Errorf("Expected form 'Lumber', got %q", enriched.ProductForm)
	}
	if enriched.UnitPrice != 300 {
		t.Errorf("Expected unit price 300, got %v", enriched.UnitPrice)
	}
	if enriched.OriginName != "New Zealand" {
		t.Errorf("Expected origin 'New Zealand', got %q", enriched.OriginName)
	}
	if enriched.DestName != "China" {
		t.Errorf("Expected destination 'China', got %q", enriched.DestName)
	}
	if enriched.PortOfArrival != "NHAVA SHEVA" {
		t.Errorf("Expected cleaned port 'NHAVA SHEVA', got %q", enriched.PortOfArrival)
	}
}

func pipelineFixture() []store.TradeRecord {
	return []store.TradeRecord{
		{UniqueRecordID: "r1", HSCode: "440710", ProductDescText: "RADIATA PINE LUMBER", QuantityUnit: "M3", Quantity: 40, TotalValueUSD: 12000},
		{UniqueRecordID: "r2", HSCode: "440710", ProductDescText: "OAK LUMBER", QuantityUnit: "M3", Quantity: 20, TotalValueUSD: 9000},
		{UniqueRecordID: "r3", HSCode: "440791", ProductDescText: "OAK LUMBER", QuantityUnit: "M3", Quantity: 25, TotalValueUSD: 11000},
		{UniqueRecordID: "r4", HSCode: "440121", ProductDescText: "EUCALYPTUS CHIPS", QuantityUnit: "KG", Quantity: 50000, TotalValueUSD: 4000},
		{UniqueRecordID: "r5", HSCode: "440710", ProductDescText: "RADIATA PINE", QuantityUnit: "M3", Quantity: 1000, TotalValueUSD: 500},
	}
}

func TestPipelineStageCounts(t *testing.T) {
	p := NewPipeline(testLogger())
	result := p.Clean(pipelineFixture(), Options{
		HSPrefixes:      []string{"4407"},
		EnforceWoodType: true,
		MinUnitPrice:    DefaultMinUnitPrice,
	})

	if result.TotalLoaded != 5 {
		t.Errorf("Expected 5 loaded, got %d", result.TotalLoaded)
	}
	// r4 is the only non-4407 record.
	if result.HSFiltered != 1 {
		t.Errorf("Expected 1 HS-filtered, got %d", result.HSFiltered)
	}
	// r2 declares softwood but describes oak.
	if result.WoodTypeContradictions != 1 {
		t.Errorf("Expected 1 contradiction, got %d", result.WoodTypeContradictions)
	}
	if result.Unit != "M3" {
		t.Errorf("Expected unit 'M3', got %q", result.Unit)
	}
	// r5 trades at 0.5/unit, under the floor.
	if result.PriceOutliers != 1 {
		t.Errorf("Expected 1 price outlier, got %d", result.PriceOutliers)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Expected 2 surviving records, got %d", len(result.Records))
	}
	for _, r := range result.Records {
		if r.UniqueRecordID != "r1" && r.UniqueRecordID != "r3" {
			t.Errorf("Unexpected survivor %q", r.UniqueRecordID)
		}
	}
}

func TestPipelineSpeciesFilter(t *testing.T) {
	p := NewPipeline(testLogger())
	result := p.Clean(pipelineFixture(), Options{
		Species: []string{"Oak"},
	})

	if result.SpeciesFiltered != 3 {
		t.Errorf("Expected 3 species-filtered, got %d", result.SpeciesFiltered)
	}
	for _, r := range result.Records {
		if r.Species != "Oak" {
			t.Errorf("Expected only oak records, got %q", r.Species)
		}
	}
}

func TestPipelineUnitSelection(t *testing.T) {
	p := NewPipeline(testLogger())

	// Without a requested unit the volumetric alias wins and the KG
	// record is excluded rather than summed in.
	result := p.Clean(pipelineFixture(), Options{})
	if result.Unit != "M3" {
		t.Errorf("Expected 'M3', got %q", result.Unit)
	}
	if result.UnitFiltered != 1 {
		t.Errorf("Expected 1 unit-filtered, got %d", result.UnitFiltered)
	}

	// A requested unit overrides the volumetric preference.
	result = p.Clean(pipelineFixture(), Options{TargetUnit: "KG"})
	if result.Unit != "KG" {
		t.Errorf("Expected 'KG', got %q", result.Unit)
	}
	if len(result.Records) != 1 {
		t.Errorf("Expected 1 KG record, got %d", len(result.Records))
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	p := NewPipeline(testLogger())
	result := p.Clean(nil, Options{HSPrefixes: []string{"4407"}, MinUnitPrice: DefaultMinUnitPrice})
	if result.TotalLoaded != 0 || len(result.Records) != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
	if result.Unit != "Unknown" {
		t.Errorf("Expected 'Unknown' unit for empty set, got %q", result.Unit)
	}
}
