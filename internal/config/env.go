package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv populates selected Config fields from environment variables.
//
// Supported variables:
//
//	BUCKET_NAME           S3 bucket for uploaded invoice files
//	TRANSACTIONS_DB       DynamoDB transactions table name
//	INVOICES_DB           DynamoDB invoices table name
//	EVENTS_DB             DynamoDB events table name
//	AUDIT_BUS_NAME        EventBridge audit bus name
//	INVOICE_WSAPI_ENDPOINT WebSocket management endpoint; a leading
//	                      "wss://" or "https://" scheme is stripped
//	UPLOAD_EXPIRY_SECONDS presigned URL validity, seconds
//	TRANSACTION_TTL_SECONDS transaction record lifetime, seconds
//	S3_REGION, S3_BASE_ENDPOINT, S3_ROOT_USER, S3_ROOT_PASSWORD
func parseEnv(config *Config) {
	setString(&config.Bucket, "BUCKET_NAME")
	setString(&config.TransactionsTable, "TRANSACTIONS_DB")
	setString(&config.InvoicesTable, "INVOICES_DB")
	setString(&config.EventsTable, "EVENTS_DB")
	setString(&config.AuditBusName, "AUDIT_BUS_NAME")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")

	if v, ok := os.LookupEnv("INVOICE_WSAPI_ENDPOINT"); ok {
		config.WSAPIEndpoint = stripScheme(v)
	}

	setSeconds(&config.UploadExpiry, "UPLOAD_EXPIRY_SECONDS")
	setSeconds(&config.TransactionTTL, "TRANSACTION_TTL_SECONDS")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setSeconds(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = time.Duration(n) * time.Second
		}
	}
}

func stripScheme(endpoint string) string {
	for _, p := range []string{"wss://", "https://"} {
		if strings.HasPrefix(endpoint, p) {
			return strings.TrimPrefix(endpoint, p)
		}
	}
	return endpoint
}
