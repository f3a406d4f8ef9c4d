// Package audit publishes structured failure events to the external
// event bus for out-of-band alerting.
package audit

import (
	"context"

	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

// Emitter publishes audit events. Delivery is best-effort; the pipeline
// logs failures and moves on.
type Emitter interface {
	Emit(ctx context.Context, event *models.AuditEvent) error
}
