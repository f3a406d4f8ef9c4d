package handlers

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/services"
)

// SlotHandler serves the WebSocket route requesting a new upload slot.
type SlotHandler struct {
	slots  *services.SlotService
	logger logging.Logger
}

func NewSlotHandler(slots *services.SlotService, logger logging.Logger) *SlotHandler {
	return &SlotHandler{slots: slots, logger: logger.With("handler", "geturl")}
}

func (h *SlotHandler) Handle(ctx context.Context, req events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := req.RequestContext.ConnectionID
	requestID := invocationID(ctx, req.RequestContext.RequestID)

	h.logger.Info(ctx, "slot requested", "connection_id", connectionID, "request_id", requestID)

	if err := h.slots.Issue(ctx, connectionID, requestID); err != nil {
		h.logger.Error(ctx, "slot issuance failed", "connection_id", connectionID, "error", err.Error())
		return events.APIGatewayProxyResponse{StatusCode: 500, Body: "ERROR"}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: 200, Body: "OK"}, nil
}

// invocationID prefers the Lambda invocation's request id and falls back
// to the gateway's request id outside a Lambda context.
func invocationID(ctx context.Context, fallback string) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return fallback
}
