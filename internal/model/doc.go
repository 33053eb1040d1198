// Package model holds the fiscal document data model: parties, line items,
// taxes, payments, the bounded collections that hold them, and the receipt
// and correction aggregates with their derived totals.
//
// Entities validate on construction and on every setter; a failed call
// leaves the receiving object in its prior valid state. Serialization is a
// deterministic ordered-field JSON projection consumed by the transport
// layer. Instances are not safe for concurrent mutation; each document
// belongs to one construction flow.
package model

import "encoding/json"

// Serializable is the capability shared by every entity that projects
// itself onto the gateway wire format.
type Serializable interface {
	json.Marshaler
}

// Document is a complete fiscal document ready for submission. Serialize
// runs the lazy mandatory-field checks and returns the wire body.
type Document interface {
	Serializable
	Serialize() ([]byte, error)
}

var (
	_ Document = (*Receipt)(nil)
	_ Document = (*Correction)(nil)
)
