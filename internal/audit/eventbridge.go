package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"

	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

const (
	eventSource     = "app.invoice"
	eventDetailType = "invoice"
)

// EventBridgeAPI is the subset of the EventBridge client the emitter uses.
type EventBridgeAPI interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// EventBridgeEmitter implements Emitter over an EventBridge bus.
type EventBridgeEmitter struct {
	client EventBridgeAPI
	bus    string
	now    func() time.Time
}

func NewEventBridgeEmitter(client EventBridgeAPI, bus string) *EventBridgeEmitter {
	return &EventBridgeEmitter{client: client, bus: bus, now: time.Now}
}

func (e *EventBridgeEmitter) Emit(ctx context.Context, event *models.AuditEvent) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling audit detail: %w", err)
	}

	out, err := e.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				Source:       aws.String(eventSource),
				DetailType:   aws.String(eventDetailType),
				EventBusName: aws.String(e.bus),
				Time:         aws.Time(e.now()),
				Detail:       aws.String(string(detail)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("putting audit event: %w", err)
	}
	if out.FailedEntryCount > 0 {
		return fmt.Errorf("audit event rejected by bus %s", e.bus)
	}
	return nil
}
