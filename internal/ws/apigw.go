package ws

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"

	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

// ManagementAPI is the subset of the API Gateway Management client the
// gateway uses.
type ManagementAPI interface {
	GetConnection(ctx context.Context, params *apigatewaymanagementapi.GetConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.GetConnectionOutput, error)
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
	DeleteConnection(ctx context.Context, params *apigatewaymanagementapi.DeleteConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.DeleteConnectionOutput, error)
}

// APIGateway implements Gateway over the API Gateway Management API.
// Each action is preceded by a liveness probe of the connection.
type APIGateway struct {
	client ManagementAPI
	logger logging.Logger
}

func NewAPIGateway(client ManagementAPI, logger logging.Logger) *APIGateway {
	return &APIGateway{
		client: client,
		logger: logger.With("module", "ws_gateway"),
	}
}

func (g *APIGateway) SendData(ctx context.Context, connectionID string, data []byte) bool {
	if !g.probe(ctx, connectionID) {
		return false
	}

	_, err := g.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(connectionID),
		Data:         data,
	})
	if err != nil {
		g.logger.Warn(ctx, "post to connection failed", "connection_id", connectionID, "error", err.Error())
		return false
	}
	return true
}

func (g *APIGateway) SendStatus(ctx context.Context, transactionID, connectionID string, status models.Status) bool {
	data, err := json.Marshal(models.StatusMessage{
		TransactionID: transactionID,
		Status:        status,
	})
	if err != nil {
		g.logger.Error(ctx, "marshaling status message failed", "transaction_id", transactionID, "error", err.Error())
		return false
	}
	return g.SendData(ctx, connectionID, data)
}

func (g *APIGateway) Disconnect(ctx context.Context, connectionID string) bool {
	if !g.probe(ctx, connectionID) {
		return false
	}

	_, err := g.client.DeleteConnection(ctx, &apigatewaymanagementapi.DeleteConnectionInput{
		ConnectionId: aws.String(connectionID),
	})
	if err != nil {
		g.logger.Warn(ctx, "delete connection failed", "connection_id", connectionID, "error", err.Error())
		return false
	}
	return true
}

func (g *APIGateway) probe(ctx context.Context, connectionID string) bool {
	_, err := g.client.GetConnection(ctx, &apigatewaymanagementapi.GetConnectionInput{
		ConnectionId: aws.String(connectionID),
	})
	if err != nil {
		g.logger.Warn(ctx, "connection probe failed", "connection_id", connectionID, "error", err.Error())
		return false
	}
	return true
}
