package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/invoiceimport/internal/audit"
	"github.com/dmitrijs2005/invoiceimport/internal/common"
	"github.com/dmitrijs2005/invoiceimport/internal/invoices"
	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
	"github.com/dmitrijs2005/invoiceimport/internal/objectstore"
	"github.com/dmitrijs2005/invoiceimport/internal/transactions"
	"github.com/dmitrijs2005/invoiceimport/internal/ws"
)

// ImportService drives a transaction through upload completion: it
// validates the uploaded payload and advances the record to a terminal
// state, creating the invoice domain record on success.
type ImportService struct {
	transactions transactions.Repository
	invoices     invoices.Repository
	store        objectstore.Store
	gateway      ws.Gateway
	emitter      audit.Emitter
	logger       logging.Logger

	now func() time.Time
}

func NewImportService(
	tr transactions.Repository,
	ir invoices.Repository,
	store objectstore.Store,
	gateway ws.Gateway,
	emitter audit.Emitter,
	logger logging.Logger,
) *ImportService {
	return &ImportService{
		transactions: tr,
		invoices:     ir,
		store:        store,
		gateway:      gateway,
		emitter:      emitter,
		logger:       logger.With("module", "import_service"),
		now:          time.Now,
	}
}

// ProcessRecord handles one "object created" trigger. The object key
// equals the transaction id. Duplicate or late triggers are absorbed:
// a record in any state other than URL_GENERATED is only re-notified,
// and a vanished record aborts the invocation.
func (s *ImportService) ProcessRecord(ctx context.Context, bucket, key string) error {
	log := s.logger.With("transaction_id", key, "bucket", bucket)

	tx, err := s.transactions.Get(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Late trigger after TTL expiry: no record, so no push address
			// to notify. Nothing left to do.
			log.Warn(ctx, "transaction not found")
			return nil
		}
		return fmt.Errorf("reading transaction: %w", err)
	}

	log = log.With("connection_id", tx.ConnectionID, "request_id", tx.RequestID)

	if tx.Status != models.StatusGenerated {
		s.gateway.SendStatus(ctx, key, tx.ConnectionID, tx.Status)
		log.Warn(ctx, "non valid transaction status", "status", tx.Status.String())
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.transactions.UpdateStatus(gctx, key, models.StatusReceived)
	})
	g.Go(func() error {
		s.gateway.SendStatus(gctx, key, tx.ConnectionID, models.StatusReceived)
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, common.ErrPreconditionFailed) {
			log.Warn(ctx, "transaction vanished before receive")
			return nil
		}
		return fmt.Errorf("advancing to received: %w", err)
	}

	body, err := s.store.Fetch(ctx, key)
	if err != nil {
		return fmt.Errorf("fetching uploaded object: %w", err)
	}

	file, err := models.ParseInvoiceFile(body)
	if err != nil {
		return err
	}

	if err := file.Validate(); err != nil {
		s.reject(ctx, log, tx, file)
		return err
	}

	s.complete(ctx, log, tx, file)
	return nil
}

// reject records the validation failure: NON_VALID status, client
// notification and audit event are dispatched together, and the
// connection is closed strictly after the notification was attempted.
func (s *ImportService) reject(ctx context.Context, log logging.Logger, tx *models.Transaction, file *models.InvoiceFile) {
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		err := s.transactions.UpdateStatus(ctx, tx.ID, models.StatusNonValid)
		if err != nil && !errors.Is(err, common.ErrPreconditionFailed) {
			log.Error(ctx, "status update failed", "error", err.Error())
		}
	}()
	go func() {
		defer wg.Done()
		s.gateway.SendStatus(ctx, tx.ID, tx.ConnectionID, models.StatusNonValid)
	}()
	go func() {
		defer wg.Done()
		err := s.emitter.Emit(ctx, &models.AuditEvent{
			ErrorDetail: models.AuditErrorNoInvoiceNumber,
			Info: map[string]any{
				"invoiceKey":   tx.ID,
				"customerName": file.CustomerName,
			},
		})
		if err != nil {
			log.Error(ctx, "audit emission failed", "error", err.Error())
		}
	}()
	wg.Wait()

	s.gateway.Disconnect(ctx, tx.ConnectionID)

	log.Warn(ctx, "invoice import failed, non valid invoice number")
}

// complete runs the success fan-out: domain record creation, object
// deletion, status update and notification fire together with no
// ordering or rollback among them. Individual failures are logged only.
func (s *ImportService) complete(ctx context.Context, log logging.Logger, tx *models.Transaction, file *models.InvoiceFile) {
	invoice := models.NewInvoice(file, tx.ID, s.now().UnixMilli())

	var wg sync.WaitGroup

	wg.Add(4)
	go func() {
		defer wg.Done()
		if err := s.invoices.Create(ctx, invoice); err != nil {
			log.Error(ctx, "invoice creation failed", "error", err.Error())
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.store.Delete(ctx, tx.ID); err != nil {
			log.Error(ctx, "object deletion failed", "error", err.Error())
		}
	}()
	go func() {
		defer wg.Done()
		err := s.transactions.UpdateStatus(ctx, tx.ID, models.StatusProcessed)
		if err != nil && !errors.Is(err, common.ErrPreconditionFailed) {
			log.Error(ctx, "status update failed", "error", err.Error())
		}
	}()
	go func() {
		defer wg.Done()
		s.gateway.SendStatus(ctx, tx.ID, tx.ConnectionID, models.StatusProcessed)
	}()
	wg.Wait()

	s.gateway.Disconnect(ctx, tx.ConnectionID)

	log.Info(ctx, "invoice imported", "invoice_number", file.InvoiceNumber, "customer", file.CustomerName)
}
