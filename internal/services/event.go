package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/invoiceimport/internal/events"
	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

const invoiceCreatedEvent = "INVOICE_CREATED"

// eventTTL keeps event-log records around for an hour.
const eventTTL = time.Hour

// EventService appends to the invoice event log when new invoice records
// appear on the store's change stream.
type EventService struct {
	events events.Repository
	logger logging.Logger

	now func() time.Time
}

func NewEventService(er events.Repository, logger logging.Logger) *EventService {
	return &EventService{
		events: er,
		logger: logger.With("module", "event_service"),
		now:    time.Now,
	}
}

// RecordCreated writes an INVOICE_CREATED event for a freshly inserted
// invoice record.
func (s *EventService) RecordCreated(ctx context.Context, invoice *models.Invoice) error {
	now := s.now()
	timestamp := now.UnixMilli()

	event := &models.InvoiceEvent{
		PK:        models.InvoicePKPrefix + invoice.SK,
		SK:        fmt.Sprintf("%s#%d", invoiceCreatedEvent, timestamp),
		Email:     strings.TrimPrefix(invoice.PK, models.InvoicePKPrefix),
		CreatedAt: timestamp,
		EventType: invoiceCreatedEvent,
		TTL:       now.Add(eventTTL).Unix(),
		Info: models.InvoiceEventInfo{
			TransactionID: invoice.TransactionID,
			ProductID:     invoice.ProductID,
			Quantity:      invoice.Quantity,
		},
	}

	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("recording invoice event: %w", err)
	}

	s.logger.Info(ctx, "invoice event recorded", "invoice_number", invoice.SK, "transaction_id", invoice.TransactionID)
	return nil
}
