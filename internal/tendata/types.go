// Package tendata is the client for the Tendata trade-data API. It owns
// the token lifecycle, paginated trade queries, and the normalization of
// the API's loosely shaped JSON into typed values at the boundary.
package tendata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	codeOK          = "200"
	codeAuthExpired = "40302"
)

// APIError is a non-200 response code from the API, carried back to the
// caller as data rather than aborting a batch run.
type APIError struct {
	Code string
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tendata: code %s: %s", e.Code, e.Msg)
}

// IsAuthExpired reports whether err is the API's credential-invalid
// signal (code 40302), which is recoverable once via a forced refresh.
func IsAuthExpired(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == codeAuthExpired
}

// FlexString decodes a JSON value that may arrive as a string or a
// number into a string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// FlexNumber decodes a JSON value that may arrive as a number, a numeric
// string, or null/garbage. Non-numeric values coerce to 0; bad measures
// are a data anomaly, not a fatal condition.
type FlexNumber float64

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexNumber(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexNumber(v)
	return nil
}

// StringOrList decodes a field that the API returns sometimes as a
// scalar string and sometimes as a list of strings.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = nil
		return nil
	}
	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*s = []string{one}
	return nil
}

// First returns the first element, the authoritative one for list-shaped
// HS codes, or "" for an empty value.
func (s StringOrList) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Joined concatenates all elements with a space, the shape used for
// list-valued description fields.
func (s StringOrList) Joined() string {
	return strings.TrimSpace(strings.Join(s, " "))
}

// authResponse is the authentication endpoint envelope. ExpiresIn is
// kept raw because the API is inconsistent about its shape: a number is
// a token lifetime in seconds, a date-like string is the account
// membership expiry.
type authResponse struct {
	Code FlexString `json:"code"`
	Msg  string     `json:"msg"`
	Data struct {
		AccessToken string          `json:"accessToken"`
		ExpiresIn   json.RawMessage `json:"expiresIn"`
		Balance     FlexString      `json:"balance"`
	} `json:"data"`
}

// queryResponse is the trade-query endpoint envelope. The result total
// appears under either "total" or "totalElements" depending on the
// endpoint revision.
type queryResponse struct {
	Code FlexString `json:"code"`
	Msg  string     `json:"msg"`
	Data struct {
		Content       []RawRecord `json:"content"`
		Total         int64       `json:"total"`
		TotalElements int64       `json:"totalElements"`
	} `json:"data"`
}

func (r *queryResponse) total() int64 {
	if r.Data.Total != 0 {
		return r.Data.Total
	}
	return r.Data.TotalElements
}

// RawRecord is one trade transaction as returned by the API, before
// mapping into the canonical store schema.
type RawRecord struct {
	UniqueRecordID  string       `json:"uniqueRecordId"`
	TransactionDate string       `json:"transactionDate"`
	HSCode          StringOrList `json:"hsCode"`
	ProductDesc     StringOrList `json:"productDesc"`
	OriginCountry   string       `json:"countryOfOriginCode"`
	DestCountry     string       `json:"countryOfDestinationCode"`
	PortOfDeparture string       `json:"portOfDeparture"`
	PortOfArrival   string       `json:"portOfArrival"`
	ExporterName    string       `json:"exporterName"`
	ImporterName    string       `json:"importerName"`
	Quantity        FlexNumber   `json:"quantity"`
	QuantityUnit    string       `json:"quantityUnit"`
	TotalValueUSD   FlexNumber   `json:"valueUsd"`
}

// AccountInfo is the /v2/account payload surfaced on the account status
// endpoint. ExpiresIn here is always the membership expiry display
// string.
type AccountInfo struct {
	Balance   string `json:"balance"`
	ExpiresIn string `json:"expiresIn"`
}
