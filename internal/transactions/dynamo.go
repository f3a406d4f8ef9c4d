// Package transactions provides the DynamoDB-backed store of import
// transactions. Records share a fixed partition key, carry a TTL
// attribute for native auto-expiry, and are only ever mutated through
// an existence-conditional status update.
package transactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dmitrijs2005/invoiceimport/internal/common"
	"github.com/dmitrijs2005/invoiceimport/internal/models"
)

// DynamoAPI is the subset of the DynamoDB client the repository uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoRepository implements Repository over a DynamoDB table.
type DynamoRepository struct {
	client DynamoAPI
	table  string
}

// NewDynamoRepository constructs a repository bound to the given table.
func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) Create(ctx context.Context, tx *models.Transaction) error {
	tx.PK = models.TransactionPK

	item, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return fmt.Errorf("marshaling transaction: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("creating transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (r *DynamoRepository) Get(ctx context.Context, id string) (*models.Transaction, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       transactionKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("getting transaction %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, common.ErrNotFound
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(out.Item, &tx); err != nil {
		return nil, fmt.Errorf("unmarshaling transaction %s: %w", id, err)
	}
	return &tx, nil
}

func (r *DynamoRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.table),
		Key:                 transactionKey(id),
		ConditionExpression: aws.String("attribute_exists(pk)"),
		UpdateExpression:    aws.String("SET transactionStatus = :s"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: status.String()},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return common.ErrPreconditionFailed
		}
		return fmt.Errorf("updating transaction %s: %w", id, err)
	}
	return nil
}

func transactionKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: models.TransactionPK},
		"sk": &types.AttributeValueMemberS{Value: id},
	}
}
