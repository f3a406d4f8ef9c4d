package models

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/invoiceimport/internal/common"
)

// InvoicePKPrefix prefixes the partition key of invoice records,
// followed by the customer name.
const InvoicePKPrefix = "#invoice_"

// minInvoiceNumberLen is the business rule on document numbers.
const minInvoiceNumberLen = 5

// InvoiceFile is the payload schema of the uploaded object.
type InvoiceFile struct {
	CustomerName  string  `json:"customerName"`
	InvoiceNumber string  `json:"invoiceNumber"`
	TotalValue    float64 `json:"totalValue"`
	ProductID     string  `json:"productId"`
	Quantity      int64   `json:"quantity"`
}

// ParseInvoiceFile decodes the uploaded object body.
func ParseInvoiceFile(body []byte) (*InvoiceFile, error) {
	var f InvoiceFile
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("decoding invoice file: %w", err)
	}
	return &f, nil
}

// Validate applies the business rules required before an invoice may be
// ingested. Returns common.ErrValidation wrapped with detail on failure.
func (f *InvoiceFile) Validate() error {
	if len(f.InvoiceNumber) < minInvoiceNumberLen {
		return fmt.Errorf("%w: invoice number %q shorter than %d characters",
			common.ErrValidation, f.InvoiceNumber, minInvoiceNumberLen)
	}
	return nil
}

// Invoice is the domain record created once per successfully validated
// upload. It is keyed by customer and invoice number, not by transaction
// id; TransactionID is a non-owning back-reference.
type Invoice struct {
	PK            string  `dynamodbav:"pk"`
	SK            string  `dynamodbav:"sk"`
	TotalValue    float64 `dynamodbav:"totalValue"`
	ProductID     string  `dynamodbav:"productId"`
	Quantity      int64   `dynamodbav:"quantity"`
	TransactionID string  `dynamodbav:"transactionId"`
	TTL           int64   `dynamodbav:"ttl"`
	CreatedAt     int64   `dynamodbav:"createdAt"`
}

// NewInvoice builds the domain record for a validated invoice file.
func NewInvoice(f *InvoiceFile, transactionID string, createdAt int64) *Invoice {
	return &Invoice{
		PK:            InvoicePKPrefix + f.CustomerName,
		SK:            f.InvoiceNumber,
		TotalValue:    f.TotalValue,
		ProductID:     f.ProductID,
		Quantity:      f.Quantity,
		TransactionID: transactionID,
		TTL:           0,
		CreatedAt:     createdAt,
	}
}

// InvoiceEvent is an event-log record written when an invoice record
// appears on the store's change stream.
type InvoiceEvent struct {
	PK        string `dynamodbav:"pk"`
	SK        string `dynamodbav:"sk"`
	Email     string `dynamodbav:"email"`
	CreatedAt int64  `dynamodbav:"createdAt"`
	EventType string `dynamodbav:"eventType"`
	TTL       int64  `dynamodbav:"ttl"`

	Info InvoiceEventInfo `dynamodbav:"info"`
}

// InvoiceEventInfo carries denormalized invoice details inside an event record.
type InvoiceEventInfo struct {
	TransactionID string `dynamodbav:"transaction"`
	ProductID     string `dynamodbav:"productId"`
	Quantity      int64  `dynamodbav:"quantity"`
}
