// Command cancelimport is the Lambda entrypoint of the WebSocket route
// aborting an in-flight import.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/dmitrijs2005/invoiceimport/internal/awsx"
	"github.com/dmitrijs2005/invoiceimport/internal/config"
	"github.com/dmitrijs2005/invoiceimport/internal/handlers"
	"github.com/dmitrijs2005/invoiceimport/internal/logging"
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

	gateway := ws.NewAPIGateway(awsx.NewManagementClient(awsCfg, cfg.WSAPIEndpoint), logger)
	repo := transactions.NewDynamoRepository(awsx.NewDynamoClient(awsCfg), cfg.TransactionsTable)

	svc := services.NewCancelService(repo, gateway, logger)

	lambda.Start(handlers.NewCancelHandler(svc, logger).Handle)
}
