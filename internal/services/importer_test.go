package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/invoiceimport/internal/common"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

const validInvoice = `{"customerName":"Acme","invoiceNumber":"ABCDE","totalValue":10,"productId":"P1","quantity":2}`

func newImportService(tr *fakeTransactions, ir *fakeInvoices, store *fakeStore, gw *fakeGateway, em *fakeEmitter) *ImportService {
	return NewImportService(tr, ir, store, gw, em, testLogger())
}

func TestImportService_SuccessPath(t *testing.T) {
	tr := &fakeTransactions{tx: generatedTx("tx-1", "conn-1")}
	ir := &fakeInvoices{}
	store := &fakeStore{body: []byte(validInvoice)}
	gw := newFakeGateway()
	em := &fakeEmitter{}

	err := newImportService(tr, ir, store, gw, em).ProcessRecord(context.Background(), "invoices", "tx-1")
	require.NoError(t, err)

	// Forward-only: RECEIVED then PROCESSED.
	assert.Equal(t, []models.Status{models.StatusReceived, models.StatusProcessed}, tr.updates)

	require.Len(t, ir.created, 1)
	inv := ir.created[0]
	assert.Equal(t, "#invoice_Acme", inv.PK)
	assert.Equal(t, "ABCDE", inv.SK)
	assert.Equal(t, "tx-1", inv.TransactionID)

	assert.Equal(t, []string{"tx-1"}, store.deleted)

	require.Len(t, gw.statuses, 2)
	assert.Equal(t, models.StatusReceived, gw.statuses[0].status)
	assert.Equal(t, models.StatusProcessed, gw.statuses[1].status)
	assert.Equal(t, "conn-1", gw.statuses[1].connectionID)

	assert.Equal(t, []string{"conn-1"}, gw.disconnected)
	assert.Empty(t, em.emitted)
}

func TestImportService_NonValidInvoiceNumber(t *testing.T) {
	tr := &fakeTransactions{tx: generatedTx("tx-1", "conn-1")}
	ir := &fakeInvoices{}
	store := &fakeStore{body: []byte(`{"customerName":"Acme","invoiceNumber":"AB12"}`)}
	gw := newFakeGateway()
	em := &fakeEmitter{}

	err := newImportService(tr, ir, store, gw, em).ProcessRecord(context.Background(), "invoices", "tx-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))

	assert.Equal(t, []models.Status{models.StatusReceived, models.StatusNonValid}, tr.updates)
	assert.Empty(t, ir.created, "no domain record for an invalid payload")
	assert.Empty(t, store.deleted, "object kept for inspection")

	require.Len(t, gw.statuses, 2)
	assert.Equal(t, sentStatus{"tx-1", "conn-1", models.StatusNonValid}, gw.statuses[1])

	require.Len(t, em.emitted, 1)
	ev := em.emitted[0]
	assert.Equal(t, models.AuditErrorNoInvoiceNumber, ev.ErrorDetail)
	assert.Equal(t, "tx-1", ev.Info["invoiceKey"])
	assert.Equal(t, "Acme", ev.Info["customerName"])

	assert.Equal(t, []string{"conn-1"}, gw.disconnected)
}

func TestImportService_DuplicateTrigger_OnlyRenotifies(t *testing.T) {
	tx := generatedTx("tx-1", "conn-1")
	tx.Status = models.StatusProcessed
	tr := &fakeTransactions{tx: tx}
	ir := &fakeInvoices{}
	store := &fakeStore{body: []byte(validInvoice)}
	gw := newFakeGateway()
	em := &fakeEmitter{}

	err := newImportService(tr, ir, store, gw, em).ProcessRecord(context.Background(), "invoices", "tx-1")
	require.NoError(t, err)

	assert.Empty(t, tr.updates, "no mutation on duplicate trigger")
	assert.Empty(t, ir.created, "at most one domain record")
	require.Len(t, gw.statuses, 1)
	assert.Equal(t, models.StatusProcessed, gw.statuses[0].status, "re-notifies actual status")
	assert.Empty(t, gw.disconnected)
}

func TestImportService_TransactionNotFound(t *testing.T) {
	tr := &fakeTransactions{}
	ir := &fakeInvoices{}
	store := &fakeStore{body: []byte(validInvoice)}
	gw := newFakeGateway()
	em := &fakeEmitter{}

	err := newImportService(tr, ir, store, gw, em).ProcessRecord(context.Background(), "invoices", "ghost")

	assert.NoError(t, err, "late trigger after expiry is absorbed")
	assert.Empty(t, tr.updates)
	assert.Empty(t, gw.statuses, "no record, no push address")
	assert.Empty(t, ir.created)
}

func TestImportService_LostReceiveRace(t *testing.T) {
	tr := &fakeTransactions{
		tx:        generatedTx("tx-1", "conn-1"),
		updateErr: common.ErrPreconditionFailed,
	}
	ir := &fakeInvoices{}
	store := &fakeStore{body: []byte(validInvoice)}
	gw := newFakeGateway()
	em := &fakeEmitter{}

	err := newImportService(tr, ir, store, gw, em).ProcessRecord(context.Background(), "invoices", "tx-1")

	assert.NoError(t, err, "lost race is silently absorbed")
	assert.Empty(t, ir.created, "processing stops before validation")
	assert.Empty(t, store.deleted)
}

func TestImportService_FetchFault(t *testing.T) {
	tr := &fakeTransactions{tx: generatedTx("tx-1", "conn-1")}
	ir := &fakeInvoices{}
	store := &fakeStore{fetchErr: errors.New("object missing")}
	gw := newFakeGateway()
	em := &fakeEmitter{}

	err := newImportService(tr, ir, store, gw, em).ProcessRecord(context.Background(), "invoices", "tx-1")

	require.Error(t, err)
	assert.Equal(t, []models.Status{models.StatusReceived}, tr.updates, "stuck at RECEIVED until TTL")
	assert.Empty(t, ir.created)
}

func TestImportService_SuccessFanOut_NoRollback(t *testing.T) {
	// One failing effect must not prevent the others.
	tr := &fakeTransactions{tx: generatedTx("tx-1", "conn-1")}
	ir := &fakeInvoices{createErr: errors.New("table throttled")}
	store := &fakeStore{body: []byte(validInvoice)}
	gw := newFakeGateway()
	em := &fakeEmitter{}

	err := newImportService(tr, ir, store, gw, em).ProcessRecord(context.Background(), "invoices", "tx-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"tx-1"}, store.deleted, "deletion still ran")
	assert.Contains(t, tr.updates, models.StatusProcessed, "status update still ran")
	require.Len(t, gw.statuses, 2)
	assert.Equal(t, models.StatusProcessed, gw.statuses[1].status)
}
