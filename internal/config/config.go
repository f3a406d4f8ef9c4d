// Package config handles configuration for the import pipeline functions,
// including defaults and an environment-variable overlay.
package config

import "time"

// Config holds runtime settings shared by the Lambda entrypoints.
//
// Fields:
//   - Bucket: S3 bucket clients upload invoice files to.
//   - TransactionsTable / InvoicesTable / EventsTable: DynamoDB table names.
//   - AuditBusName: EventBridge bus receiving audit events.
//   - WSAPIEndpoint: API Gateway Management endpoint of the WebSocket API
//     (scheme stripped, e.g. "abc123.execute-api.eu-west-1.amazonaws.com/prod").
//   - UploadExpiry: validity window of the presigned upload URL.
//   - TransactionTTL: how long a transaction record lives before the store
//     auto-removes it.
//   - S3Region / S3BaseEndpoint / S3RootUser / S3RootPassword: object storage
//     settings; endpoint and credentials are only set when pointing at an
//     S3-compatible backend (e.g. MinIO in development).
type Config struct {
	Bucket            string
	TransactionsTable string
	InvoicesTable     string
	EventsTable       string
	AuditBusName      string
	WSAPIEndpoint     string
	UploadExpiry      time.Duration
	TransactionTTL    time.Duration
	S3Region          string
	S3BaseEndpoint    string
	S3RootUser        string
	S3RootPassword    string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Bucket = "invoices"
	c.TransactionsTable = "invoices"
	c.InvoicesTable = "invoices"
	c.EventsTable = "events"
	c.AuditBusName = "audit-events"
	c.WSAPIEndpoint = "localhost:3001"
	c.UploadExpiry = 300 * time.Second
	c.TransactionTTL = 2 * time.Minute
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3RootUser = ""
	c.S3RootPassword = ""
}

// LoadConfig builds a Config by applying defaults and then overlaying
// values from environment variables.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}
