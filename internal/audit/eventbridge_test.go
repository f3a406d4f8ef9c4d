package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

type fakeEventBridge struct {
	in     *eventbridge.PutEventsInput
	err    error
	failed int32
}

func (f *fakeEventBridge) PutEvents(ctx context.Context, in *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &eventbridge.PutEventsOutput{FailedEntryCount: f.failed}, nil
}

func TestEventBridgeEmitter_Emit(t *testing.T) {
	f := &fakeEventBridge{}
	e := NewEventBridgeEmitter(f, "audit-bus")

	err := e.Emit(context.Background(), &models.AuditEvent{
		ErrorDetail:   models.AuditErrorTimeout,
		TransactionID: "tx-1",
	})
	require.NoError(t, err)

	require.NotNil(t, f.in)
	require.Len(t, f.in.Entries, 1)
	entry := f.in.Entries[0]

	assert.Equal(t, "app.invoice", *entry.Source)
	assert.Equal(t, "invoice", *entry.DetailType)
	assert.Equal(t, "audit-bus", *entry.EventBusName)
	assert.JSONEq(t, `{"errorDetail":"TIMEOUT","transactionId":"tx-1"}`, *entry.Detail)
}

func TestEventBridgeEmitter_Emit_WithInfo(t *testing.T) {
	f := &fakeEventBridge{}
	e := NewEventBridgeEmitter(f, "audit-bus")

	err := e.Emit(context.Background(), &models.AuditEvent{
		ErrorDetail: models.AuditErrorNoInvoiceNumber,
		Info: map[string]any{
			"invoiceKey":   "tx-1",
			"customerName": "Acme",
		},
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"errorDetail":"FAIL_NO_INVOICE_NUMBER","info":{"invoiceKey":"tx-1","customerName":"Acme"}}`,
		*f.in.Entries[0].Detail)
}

func TestEventBridgeEmitter_Emit_Fault(t *testing.T) {
	e := NewEventBridgeEmitter(&fakeEventBridge{err: errors.New("bus down")}, "audit-bus")
	assert.Error(t, e.Emit(context.Background(), &models.AuditEvent{ErrorDetail: models.AuditErrorTimeout}))
}

func TestEventBridgeEmitter_Emit_RejectedEntry(t *testing.T) {
	e := NewEventBridgeEmitter(&fakeEventBridge{failed: 1}, "audit-bus")
	assert.Error(t, e.Emit(context.Background(), &models.AuditEvent{ErrorDetail: models.AuditErrorTimeout}))
}
