// Package models defines the data models of the invoice import pipeline:
// the transaction lifecycle, the invoice domain record and the messages
// crossing the WebSocket and audit-bus boundaries.
package models

import "fmt"

// Status is the lifecycle state of an import transaction. The underlying
// values are the fixed wire constants pushed to clients; only this package
// should construct them.
type Status string

const (
	StatusGenerated Status = "URL_GENERATED"
	StatusReceived  Status = "INVOICE_RECEIVED"
	StatusProcessed Status = "INVOICE_PROCESSED"
	StatusTimeout   Status = "TIMEOUT"
	StatusCanceled  Status = "INVOICE_CANCELED"
	StatusNonValid  Status = "NON_VALID_INVOICE_NUMBER"
	StatusNotFound  Status = "NOT_FOUND"
)

// ParseStatus converts a raw stored value into a Status. Values arriving
// from stream images are produced by this package in the first place, so
// anything unknown is an error, not a new state.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusGenerated, StatusReceived, StatusProcessed,
		StatusTimeout, StatusCanceled, StatusNonValid, StatusNotFound:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown transaction status %q", s)
}

// CanAdvanceTo reports whether the machine may move from s to next.
// Allowed transitions:
//
//	URL_GENERATED  -> INVOICE_RECEIVED | INVOICE_CANCELED
//	INVOICE_RECEIVED -> INVOICE_PROCESSED | NON_VALID_INVOICE_NUMBER
//
// TIMEOUT and NOT_FOUND are never persisted and therefore never valid
// update targets.
func (s Status) CanAdvanceTo(next Status) bool {
	switch s {
	case StatusGenerated:
		return next == StatusReceived || next == StatusCanceled
	case StatusReceived:
		return next == StatusProcessed || next == StatusNonValid
	}
	return false
}

// Terminal reports whether no further persisted transition may follow s.
func (s Status) Terminal() bool {
	switch s {
	case StatusProcessed, StatusCanceled, StatusNonValid:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }
