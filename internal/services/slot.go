// Package services implements the transaction state machine of the
// invoice import pipeline: slot issuance, upload completion,
// cancellation and expiry reconciliation. Each service is a stateless
// unit wired from narrow collaborator interfaces; all coordination
// between concurrent triggers happens through the transaction store's
// existence-conditional update.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
	"github.com/dmitrijs2005/invoiceimport/internal/objectstore"
	"github.com/dmitrijs2005/invoiceimport/internal/transactions"
	"github.com/dmitrijs2005/invoiceimport/internal/ws"
)

// SlotService issues one-time upload slots: a fresh transaction record
// plus a presigned upload URL pushed back over the requesting connection.
type SlotService struct {
	transactions transactions.Repository
	store        objectstore.Store
	gateway      ws.Gateway
	logger       logging.Logger

	endpoint       string
	uploadExpiry   time.Duration
	transactionTTL time.Duration

	now   func() time.Time
	newID func() string
}

func NewSlotService(
	tr transactions.Repository,
	store objectstore.Store,
	gateway ws.Gateway,
	logger logging.Logger,
	endpoint string,
	uploadExpiry, transactionTTL time.Duration,
) *SlotService {
	return &SlotService{
		transactions:   tr,
		store:          store,
		gateway:        gateway,
		logger:         logger.With("module", "slot_service"),
		endpoint:       endpoint,
		uploadExpiry:   uploadExpiry,
		transactionTTL: transactionTTL,
		now:            time.Now,
		newID:          func() string { return uuid.NewString() },
	}
}

// Issue generates a transaction id, requests an upload credential for it,
// persists the URL_GENERATED record and pushes the slot to the client.
func (s *SlotService) Issue(ctx context.Context, connectionID, requestID string) error {
	key := s.newID()

	log := s.logger.With("transaction_id", key, "connection_id", connectionID, "request_id", requestID)

	url, err := s.store.PresignUpload(ctx, key, s.uploadExpiry)
	if err != nil {
		return fmt.Errorf("issuing upload slot: %w", err)
	}

	now := s.now()
	expires := int64(s.uploadExpiry.Seconds())

	tx := &models.Transaction{
		ID:           key,
		Status:       models.StatusGenerated,
		CreatedAt:    now.UnixMilli(),
		ExpiresIn:    expires,
		TTL:          now.Add(s.transactionTTL).Unix(),
		ConnectionID: connectionID,
		RequestID:    requestID,
		Endpoint:     s.endpoint,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return fmt.Errorf("issuing upload slot: %w", err)
	}

	data, err := json.Marshal(models.SlotMessage{
		URL:           url,
		Expires:       expires,
		TransactionID: key,
	})
	if err != nil {
		return fmt.Errorf("marshaling slot message: %w", err)
	}

	// A dead connection is not an error; the record simply ages out.
	if !s.gateway.SendData(ctx, connectionID, data) {
		log.Warn(ctx, "slot push not delivered")
	}

	log.Info(ctx, "upload slot issued", "expires_in", expires)
	return nil
}
