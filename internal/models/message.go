package models

// StatusMessage is pushed to the client on every transition.
type StatusMessage struct {
	TransactionID string `json:"transactionId"`
	Status        Status `json:"status"`
}

// SlotMessage answers a slot request with the upload credential.
type SlotMessage struct {
	URL           string `json:"url"`
	Expires       int64  `json:"expires"`
	TransactionID string `json:"transactionId"`
}

// CancelRequest is the body of a cancellation message from the client.
type CancelRequest struct {
	TransactionID string `json:"transactionId"`
}

// Audit error details published to the external bus.
const (
	AuditErrorTimeout         = "TIMEOUT"
	AuditErrorNoInvoiceNumber = "FAIL_NO_INVOICE_NUMBER"
)

// AuditEvent is a structured failure event for out-of-band alerting.
type AuditEvent struct {
	ErrorDetail   string         `json:"errorDetail"`
	TransactionID string         `json:"transactionId,omitempty"`
	Info          map[string]any `json:"info,omitempty"`
}
