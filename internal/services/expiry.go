package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/invoiceimport/internal/audit"
	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
	"github.com/dmitrijs2005/invoiceimport/internal/ws"
)

// ExpiryService reconciles transactions the store removed on TTL expiry.
// It decides from the removal's prior image alone; the record is gone and
// is never re-read. This is the only place TIMEOUT is ever produced.
type ExpiryService struct {
	gateway ws.Gateway
	emitter audit.Emitter
	logger  logging.Logger
}

func NewExpiryService(gateway ws.Gateway, emitter audit.Emitter, logger logging.Logger) *ExpiryService {
	return &ExpiryService{
		gateway: gateway,
		emitter: emitter,
		logger:  logger.With("module", "expiry_service"),
	}
}

// HandleRemoved processes the prior image of one auto-removed transaction
// record. A PROCESSED image is the normal end of life; anything else was
// abandoned before completion and is reported as a timeout.
func (s *ExpiryService) HandleRemoved(ctx context.Context, tx *models.Transaction) error {
	log := s.logger.With("transaction_id", tx.ID, "connection_id", tx.ConnectionID)

	if tx.Status == models.StatusProcessed {
		log.Info(ctx, "transaction completed before expiry")
		return nil
	}

	log.Warn(ctx, "invoice import timed out", "status", tx.Status.String())

	var emitErr error
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		emitErr = s.emitter.Emit(ctx, &models.AuditEvent{
			ErrorDetail:   models.AuditErrorTimeout,
			TransactionID: tx.ID,
		})
	}()
	go func() {
		defer wg.Done()
		s.gateway.SendStatus(ctx, tx.ID, tx.ConnectionID, models.StatusTimeout)
	}()
	wg.Wait()

	s.gateway.Disconnect(ctx, tx.ConnectionID)

	if emitErr != nil {
		return fmt.Errorf("emitting timeout audit event: %w", emitErr)
	}
	return nil
}
