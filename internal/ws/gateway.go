// Package ws addresses a single remote WebSocket client through the
// push gateway's management API.
package ws

import (
	"context"

	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

// Gateway talks to one remote client identified by its opaque connection
// id. Every operation reports success as a boolean: a closed connection
// is not an error condition for the business logic, since the client may
// have legitimately gone away. Callers treat false as a no-op.
type Gateway interface {
	// SendData pushes a raw JSON payload to the connection.
	SendData(ctx context.Context, connectionID string, data []byte) bool

	// SendStatus pushes a transaction status message to the connection.
	SendStatus(ctx context.Context, transactionID, connectionID string, status models.Status) bool

	// Disconnect force-closes the connection.
	Disconnect(ctx context.Context, connectionID string) bool
}
