// Package handlers adapts Lambda trigger events to the pipeline services:
// WebSocket routes, S3 object-created notifications and the store's
// change stream.
package handlers

import (
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

// transactionFromImage rebuilds a transaction from a change-stream image.
// Removal events carry the full prior image, which is the only view of a
// TTL-expired record the reconciler will ever get.
func transactionFromImage(img map[string]events.DynamoDBAttributeValue) (*models.Transaction, error) {
	status, err := models.ParseStatus(stringAttr(img, "transactionStatus"))
	if err != nil {
		return nil, fmt.Errorf("decoding transaction image: %w", err)
	}

	return &models.Transaction{
		PK:           stringAttr(img, "pk"),
		ID:           stringAttr(img, "sk"),
		Status:       status,
		CreatedAt:    intAttr(img, "timestamp"),
		ExpiresIn:    intAttr(img, "expiresIn"),
		TTL:          intAttr(img, "ttl"),
		ConnectionID: stringAttr(img, "connectionId"),
		RequestID:    stringAttr(img, "requestId"),
		Endpoint:     stringAttr(img, "endpoint"),
	}, nil
}

// invoiceFromImage rebuilds an invoice record from a change-stream image.
func invoiceFromImage(img map[string]events.DynamoDBAttributeValue) *models.Invoice {
	return &models.Invoice{
		PK:            stringAttr(img, "pk"),
		SK:            stringAttr(img, "sk"),
		TotalValue:    floatAttr(img, "totalValue"),
		ProductID:     stringAttr(img, "productId"),
		Quantity:      intAttr(img, "quantity"),
		TransactionID: stringAttr(img, "transactionId"),
		CreatedAt:     intAttr(img, "createdAt"),
	}
}

func stringAttr(img map[string]events.DynamoDBAttributeValue, key string) string {
	av, ok := img[key]
	if !ok || av.DataType() != events.DataTypeString {
		return ""
	}
	return av.String()
}

func intAttr(img map[string]events.DynamoDBAttributeValue, key string) int64 {
	av, ok := img[key]
	if !ok || av.DataType() != events.DataTypeNumber {
		return 0
	}
	n, err := av.Integer()
	if err != nil {
		return 0
	}
	return n
}

func floatAttr(img map[string]events.DynamoDBAttributeValue, key string) float64 {
	av, ok := img[key]
	if !ok || av.DataType() != events.DataTypeNumber {
		return 0
	}
	f, err := av.Float()
	if err != nil {
		return 0
	}
	return f
}
