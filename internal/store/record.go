// Package store persists canonical trade records to Postgres and serves
// the bulk and coverage reads the cleaning engine and scanners run
// against the local database instead of the remote API.
package store

import (
	"time"

	"github.com/timberintel/timberintel/internal/tendata"
)

// TradeRecord is one customs trade transaction in canonical form.
// UniqueRecordID is the natural key: re-ingesting a record with the same
// id overwrites in place, which keeps the whole pipeline re-runnable.
type TradeRecord struct {
	UniqueRecordID    string    `gorm:"column:unique_record_id;primaryKey" json:"unique_record_id"`
	TransactionDate   time.Time `gorm:"column:transaction_date;type:date;index" json:"transaction_date"`
	HSCode            string    `gorm:"column:hs_code;index" json:"hs_code"`
	ProductDescText   string    `gorm:"column:product_desc_text" json:"product_desc_text"`
	OriginCountryCode string    `gorm:"column:origin_country_code;index" json:"origin_country_code"`
	DestCountryCode   string    `gorm:"column:dest_country_code;index" json:"dest_country_code"`
	PortOfDeparture   string    `gorm:"column:port_of_departure" json:"port_of_departure"`
	PortOfArrival     string    `gorm:"column:port_of_arrival" json:"port_of_arrival"`
	ExporterName      string    `gorm:"column:exporter_name" json:"exporter_name"`
	ImporterName      string    `gorm:"column:importer_name" json:"importer_name"`
	Quantity          float64   `gorm:"column:quantity" json:"quantity"`
	QuantityUnit      string    `gorm:"column:quantity_unit" json:"quantity_unit"`
	TotalValueUSD     float64   `gorm:"column:total_value_usd" json:"total_value_usd"`
	InsertedAt        time.Time `gorm:"column:inserted_at;autoCreateTime" json:"inserted_at"`
}

func (TradeRecord) TableName() string {
	return "trade_records"
}

// FromRaw maps an API item into the canonical schema, absorbing the
// source quirks: list-shaped HS codes (first element authoritative),
// list-shaped descriptions (joined), and non-numeric measures (already
// coerced to 0 at the decode boundary). Returns false for items with no
// usable natural key.
func FromRaw(raw tendata.RawRecord) (TradeRecord, bool) {
	if raw.UniqueRecordID == "" {
		return TradeRecord{}, false
	}
	rec := TradeRecord{
		UniqueRecordID:    raw.UniqueRecordID,
		TransactionDate:   parseDate(raw.TransactionDate),
		HSCode:            raw.HSCode.First(),
		ProductDescText:   raw.ProductDesc.Joined(),
		OriginCountryCode: raw.OriginCountry,
		DestCountryCode:   raw.DestCountry,
		PortOfDeparture:   raw.PortOfDeparture,
		PortOfArrival:     raw.PortOfArrival,
		ExporterName:      raw.ExporterName,
		ImporterName:      raw.ImporterName,
		Quantity:          float64(raw.Quantity),
		QuantityUnit:      raw.QuantityUnit,
		TotalValueUSD:     float64(raw.TotalValueUSD),
	}
	if rec.Quantity < 0 {
		rec.Quantity = 0
	}
	if rec.TotalValueUSD < 0 {
		rec.TotalValueUSD = 0
	}
	return rec, true
}

// parseDate accepts the date shapes observed from the source: a plain
// calendar date, optionally with a trailing time component. Unparseable
// values become the zero time rather than failing the record.
func parseDate(s string) time.Time {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
