package handlers

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

type fakeTransactions struct {
	mu      sync.Mutex
	records map[string]*models.Transaction
}

func newFakeTransactions(txs ...*models.Transaction) *fakeTransactions {
	f := &fakeTransactions{records: map[string]*models.Transaction{}}
	for _, tx := range txs {
		f.records[tx.ID] = tx
	}
	return f
}

func (f *fakeTransactions) Create(ctx context.Context, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[tx.ID] = tx
	return nil
}

func (f *fakeTransactions) Get(ctx context.Context, id string) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *tx
	return &cp, nil
}

func (f *fakeTransactions) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.records[id]
	if !ok {
		return common.ErrPreconditionFailed
	}
	tx.Status = status
	return nil
}

type fakeInvoices struct {
	mu      sync.Mutex
	created []*models.Invoice
}

func (f *fakeInvoices) Create(ctx context.Context, invoice *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, invoice)
	return nil
}

type fakeEvents struct {
	mu      sync.Mutex
	created []*models.InvoiceEvent
}

func (f *fakeEvents) Create(ctx context.Context, event *models.InvoiceEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, event)
	return nil
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) PresignUpload(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://bucket.example/" + key + "?sig=abc", nil
}

func (f *fakeStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.objects[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return body, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

type sentStatus struct {
	transactionID string
	connectionID  string
	status        models.Status
}

type fakeGateway struct {
	mu           sync.Mutex
	data         [][]byte
	statuses     []sentStatus
	disconnected []string
}

func (f *fakeGateway) SendData(ctx context.Context, connectionID string, data []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = append(f.data, data)
	return true
}

func (f *fakeGateway) SendStatus(ctx context.Context, transactionID, connectionID string, status models.Status) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
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
}

func (f *fakeEmitter) Emit(ctx context.Context, event *models.AuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emitted = append(f.emitted, event)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.Default())
}
