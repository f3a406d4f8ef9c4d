// Command invoiceevents is the Lambda entrypoint consuming the store's
// change stream: it reconciles TTL-expired transactions and feeds the
// invoice event log.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/dmitrijs2005/invoiceimport/internal/audit"
	"github.com/dmitrijs2005/invoiceimport/internal/awsx"
	"github.com/dmitrijs2005/invoiceimport/internal/config"
	"github.com/dmitrijs2005/invoiceimport/internal/events"
	"github.com/dmitrijs2005/invoiceimport/internal/handlers"
	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/services"
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
	emitter := audit.NewEventBridgeEmitter(awsx.NewEventBridgeClient(awsCfg), cfg.AuditBusName)
	eventRepo := events.NewDynamoRepository(awsx.NewDynamoClient(awsCfg), cfg.EventsTable)

	expiry := services.NewExpiryService(gateway, emitter, logger)
	eventSvc := services.NewEventService(eventRepo, logger)

	lambda.Start(handlers.NewEventsHandler(expiry, eventSvc, logger).Handle)
}
