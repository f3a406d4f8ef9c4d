package models

// TransactionPK is the partition key shared by all transaction records.
const TransactionPK = "#transaction"

// Transaction tracks one upload-and-validate attempt. The record lives in
// the transactions table under the fixed partition key with the transaction
// id as sort key; the id doubles as the object-store key the client uploads
// to. The store auto-removes the record once TTL elapses.
type Transaction struct {
	// PK is always TransactionPK.
	PK string `dynamodbav:"pk"`
	// ID is the transaction id (sort key) and the upload object key.
	ID string `dynamodbav:"sk"`
	// Status is the current lifecycle state.
	Status Status `dynamodbav:"transactionStatus"`
	// CreatedAt is the creation timestamp in milliseconds.
	CreatedAt int64 `dynamodbav:"timestamp"`
	// ExpiresIn is the validity window (seconds) communicated to the client.
	ExpiresIn int64 `dynamodbav:"expiresIn"`
	// TTL is the absolute expiry instant (seconds since epoch) driving the
	// store's native auto-expiry.
	TTL int64 `dynamodbav:"ttl"`
	// ConnectionID addresses the originating push connection; valid only
	// while that connection is open.
	ConnectionID string `dynamodbav:"connectionId"`
	// RequestID correlates the record with the issuing invocation.
	RequestID string `dynamodbav:"requestId"`
	// Endpoint is the push-gateway endpoint the connection belongs to.
	Endpoint string `dynamodbav:"endpoint"`
}
