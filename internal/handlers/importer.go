package handlers

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dmitrijs2005/invoiceimport/internal/logging"
	"github.com/dmitrijs2005/invoiceimport/internal/services"
)

// ImportHandler consumes S3 "object created" notifications. Records of a
// batch are processed independently: one upload's failure never blocks
// the others, and the batch is not retried as a whole.
type ImportHandler struct {
	imports *services.ImportService
	logger  logging.Logger
}

func NewImportHandler(imports *services.ImportService, logger logging.Logger) *ImportHandler {
	return &ImportHandler{imports: imports, logger: logger.With("handler", "importer")}
}

func (h *ImportHandler) Handle(ctx context.Context, event events.S3Event) error {
	var wg sync.WaitGroup

	for _, record := range event.Records {
		wg.Add(1)
		go func(r events.S3EventRecord) {
			defer wg.Done()

			bucket := r.S3.Bucket.Name
			key := r.S3.Object.Key

			if err := h.imports.ProcessRecord(ctx, bucket, key); err != nil {
				h.logger.Error(ctx, "import record failed",
					"transaction_id", key, "bucket", bucket, "error", err.Error())
			}
		}(record)
	}

	wg.Wait()
	return nil
}
