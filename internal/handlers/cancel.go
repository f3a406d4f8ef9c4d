package handlers

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
	"github.com/dmitrijs2005/invoiceimport/internal/services"
)

// CancelHandler serves the WebSocket route aborting an import.
type CancelHandler struct {
	cancels *services.CancelService
	logger  logging.Logger
}

func NewCancelHandler(cancels *services.CancelService, logger logging.Logger) *CancelHandler {
	return &CancelHandler{cancels: cancels, logger: logger.With("handler", "cancelimport")}
}

func (h *CancelHandler) Handle(ctx context.Context, req events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := req.RequestContext.ConnectionID

	var body models.CancelRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		h.logger.Warn(ctx, "malformed cancel request", "connection_id", connectionID, "error", err.Error())
		return events.APIGatewayProxyResponse{StatusCode: 400, Body: "BAD REQUEST"}, nil
	}

	if err := h.cancels.Cancel(ctx, body.TransactionID, connectionID); err != nil {
		h.logger.Error(ctx, "cancellation failed", "transaction_id", body.TransactionID, "error", err.Error())
		return events.APIGatewayProxyResponse{StatusCode: 500, Body: "ERROR"}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: 200, Body: "OK"}, nil
}
