package events

import (
	"context"

	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

// Repository persists invoice event-log records.
type Repository interface {
	Create(ctx context.Context, event *models.InvoiceEvent) error
}
