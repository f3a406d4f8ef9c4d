package transactions

import (
	"context"

	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

// Repository is the durable store of in-flight transactions.
type Repository interface {
	// Create inserts the record unconditionally.
	Create(ctx context.Context, tx *models.Transaction) error

	// Get returns the transaction or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Transaction, error)

	// UpdateStatus sets the status only if the record still exists,
	// returning common.ErrPreconditionFailed when it vanished between
	// read and write. This is the sole concurrency-control primitive:
	// a late event can never resurrect an expired transaction.
	UpdateStatus(ctx context.Context, id string, status models.Status) error
}
