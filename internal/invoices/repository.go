package invoices

import (
	"context"

	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

// Repository persists ingested invoice records. The pipeline only ever
// creates them; reads and mutations belong to other subsystems.
type Repository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
}
