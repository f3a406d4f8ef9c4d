// Command importer is the Lambda entrypoint handling S3 "object created"
// notifications for uploaded invoice files.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/invoiceimport/internal/audit"
	"github.com/dmitrijs2005/invoiceimport/internal/awsx"
	"github.com/dmitrijs2005/invoiceimport/internal/config"
	"github.com/dmitrijs2005/invoiceimport/internal/handlers"
	"github.com/dmitrijs2005/invoiceimport/internal/invoices"
	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/objectstore"
	"github.com/dmitrijs2005/invoiceimport/internal/services"
	"github.com/dmitrijs2005/invoiceimport/internal/transactions"
	"github.com/dmitrijs2005/invoiceimport/internal/ws"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger()

	awsCfg, err := awsx.Load(ctx)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err.Error())
		os.Exit(1)
	}

	s3Client, err := objectstore.NewS3Client(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err.Error())
		os.Exit(1)
	}

	dynamo := awsx.NewDynamoClient(awsCfg)

	store := objectstore.NewS3Store(s3Client, s3.NewPresignClient(s3Client), cfg.Bucket)
	gateway := ws.NewAPIGateway(awsx.NewManagementClient(awsCfg, cfg.WSAPIEndpoint), logger)
	emitter := audit.NewEventBridgeEmitter(awsx.NewEventBridgeClient(awsCfg), cfg.AuditBusName)

	svc := services.NewImportService(
		transactions.NewDynamoRepository(dynamo, cfg.TransactionsTable),
		invoices.NewDynamoRepository(dynamo, cfg.InvoicesTable),
		store, gateway, emitter, logger)

	lambda.Start(handlers.NewImportHandler(svc, logger).Handle)
}
