package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrijs2005/invoiceimport/internal/common"
	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

// -------- test fakes --------
//
// Side effects are dispatched from goroutines, so every fake guards its
// state with a mutex.

type fakeTransactions struct {
	mu sync.Mutex

	tx     *models.Transaction
	getErr error

	created   []*models.Transaction
	createErr error

	updates   []models.Status
	updateErr error
}

func (f *fakeTransactions) Create(ctx context.Context, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, tx)
	return nil
}

func (f *fakeTransactions) Get(ctx context.Context, id string) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.tx == nil || f.tx.ID != id {
		return nil, common.ErrNotFound
	}
	cp := *f.tx
	return &cp, nil
}

func (f *fakeTransactions) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, status)
	return nil
}

type fakeInvoices struct {
	mu        sync.Mutex
	created   []*models.Invoice
	createErr error
}

func (f *fakeInvoices) Create(ctx context.Context, invoice *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, invoice)
	return nil
}

type fakeEvents struct {
	mu        sync.Mutex
	created   []*models.InvoiceEvent
	createErr error
}

func (f *fakeEvents) Create(ctx context.Context, event *models.InvoiceEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, event)
	return nil
}

type fakeStore struct {
	mu sync.Mutex

	presignURL string
	presignErr error

	body     []byte
	fetchErr error

	deleted []string
	delErr  error
}

func (f *fakeStore) PresignUpload(ctx context.Context, key string, expires time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return f.presignURL, nil
}

func (f *fakeStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.body, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

type sentStatus struct {
	transactionID string
	connectionID  string
	status        models.Status
}

type fakeGateway struct {
	mu sync.Mutex

	sendOK bool
	data   [][]byte

	statuses     []sentStatus
	disconnected []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sendOK: true}
}

func (f *fakeGateway) SendData(ctx context.Context, connectionID string, data []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.sendOK {
		return false
	}
	f.data = append(f.data, data)
	return true
}

func (f *fakeGateway) SendStatus(ctx context.Context, transactionID, connectionID string, status models.Status) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.sendOK {
		return false
	}
	f.statuses = append(f.statuses, sentStatus{transactionID, connectionID, status})
	return true
}

func (f *fakeGateway) Disconnect(ctx context.Context, connectionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnected = append(f.disconnected, connectionID)
	return true
}

type fakeEmitter struct {
	mu      sync.Mutex
	emitted []*models.AuditEvent
	err     error
}

func (f *fakeEmitter) Emit(ctx context.Context, event *models.AuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.emitted = append(f.emitted, event)
	return nil
}

// -------- helpers --------

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.Default())
}

func generatedTx(id, connectionID string) *models.Transaction {
	return &models.Transaction{
		PK:           models.TransactionPK,
		ID:           id,
		Status:       models.StatusGenerated,
		ConnectionID: connectionID,
		RequestID:    "req-1",
	}
}
