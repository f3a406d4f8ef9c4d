// Command geturl is the Lambda entrypoint of the WebSocket route that
// issues one-time upload slots.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/invoiceimport/internal/awsx"
	"github.com/dmitrijs2005/invoiceimport/internal/config"
	"github.com/dmitrijs2005/invoiceimport/internal/handlers"
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

	store := objectstore.NewS3Store(s3Client, s3.NewPresignClient(s3Client), cfg.Bucket)
	gateway := ws.NewAPIGateway(awsx.NewManagementClient(awsCfg, cfg.WSAPIEndpoint), logger)
	repo := transactions.NewDynamoRepository(awsx.NewDynamoClient(awsCfg), cfg.TransactionsTable)

	svc := services.NewSlotService(repo, store, gateway, logger,
		cfg.WSAPIEndpoint, cfg.UploadExpiry, cfg.TransactionTTL)

	lambda.Start(handlers.NewSlotHandler(svc, logger).Handle)
}
