// Package models defines data structures for Shyft
package models

// EntityRecord is one known SEC registrant from the company tickers snapshot.
type EntityRecord struct {
	Name       string `json:"name"`
	Ticker     string `json:"ticker"`
	Identifier int64  `json:"cik"` // raw numeric CIK, unpadded
}

// EntitySnapshot is the full list of registrants loaded from a single fetch
// of the tickers document. It is never mutated after construction.
type EntitySnapshot []EntityRecord
