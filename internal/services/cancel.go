package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/invoiceimport/internal/common"
	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
	"github.com/dmitrijs2005/invoiceimport/internal/transactions"
	"github.com/dmitrijs2005/invoiceimport/internal/ws"
)

// CancelService handles client-initiated aborts of in-flight transactions.
type CancelService struct {
	transactions transactions.Repository
	gateway      ws.Gateway
	logger       logging.Logger
}

func NewCancelService(tr transactions.Repository, gateway ws.Gateway, logger logging.Logger) *CancelService {
	return &CancelService{
		transactions: tr,
		gateway:      gateway,
		logger:       logger.With("module", "cancel_service"),
	}
}

// Cancel aborts the transaction if it is still URL_GENERATED; otherwise it
// re-notifies the client of the actual status without mutating anything.
// A cancellation request always ends the connection, successful or not.
func (s *CancelService) Cancel(ctx context.Context, transactionID, connectionID string) error {
	log := s.logger.With("transaction_id", transactionID, "connection_id", connectionID)

	defer s.gateway.Disconnect(ctx, connectionID)

	tx, err := s.transactions.Get(ctx, transactionID)
	if err != nil {
		log.Warn(ctx, "transaction not found", "error", err.Error())
		s.gateway.SendStatus(ctx, transactionID, connectionID, models.StatusNotFound)
		return nil
	}

	if tx.Status != models.StatusGenerated {
		s.gateway.SendStatus(ctx, transactionID, connectionID, tx.Status)
		log.Warn(ctx, "cannot cancel an ongoing process", "status", tx.Status.String())
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.transactions.UpdateStatus(gctx, transactionID, models.StatusCanceled)
	})
	g.Go(func() error {
		s.gateway.SendStatus(gctx, transactionID, connectionID, models.StatusCanceled)
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, common.ErrPreconditionFailed) {
			log.Warn(ctx, "transaction vanished before cancel")
			return nil
		}
		return err
	}

	log.Info(ctx, "transaction canceled")
	return nil
}
