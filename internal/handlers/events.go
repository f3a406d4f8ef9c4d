package handlers

import (
	"context"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
	"github.com/dmitrijs2005/invoiceimport/internal/services"
)

// EventsHandler consumes the store's change stream. Removals of
// transaction records drive expiry reconciliation; insertions of invoice
// records feed the event log. Records are processed independently.
type EventsHandler struct {
	expiry *services.ExpiryService
	events *services.EventService
	logger logging.Logger
}

func NewEventsHandler(expiry *services.ExpiryService, es *services.EventService, logger logging.Logger) *EventsHandler {
	return &EventsHandler{expiry: expiry, events: es, logger: logger.With("handler", "invoiceevents")}
}

func (h *EventsHandler) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	var wg sync.WaitGroup

	for _, record := range event.Records {
		wg.Add(1)
		go func(r events.DynamoDBEventRecord) {
			defer wg.Done()
			h.processRecord(ctx, r)
		}(record)
	}

	wg.Wait()
	return nil
}

func (h *EventsHandler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) {
	switch record.EventName {
	case "INSERT":
		img := record.Change.NewImage
		if !strings.HasPrefix(stringAttr(img, "pk"), models.InvoicePKPrefix) {
			return
		}
		invoice := invoiceFromImage(img)
		if err := h.events.RecordCreated(ctx, invoice); err != nil {
			h.logger.Error(ctx, "invoice event failed",
				"invoice_number", invoice.SK, "error", err.Error())
		}

	case "REMOVE":
		img := record.Change.OldImage
		if stringAttr(img, "pk") != models.TransactionPK {
			return
		}
		tx, err := transactionFromImage(img)
		if err != nil {
			h.logger.Error(ctx, "unreadable transaction image", "error", err.Error())
			return
		}
		if err := h.expiry.HandleRemoved(ctx, tx); err != nil {
			h.logger.Error(ctx, "expiry reconciliation failed",
				"transaction_id", tx.ID, "error", err.Error())
		}
	}
}
