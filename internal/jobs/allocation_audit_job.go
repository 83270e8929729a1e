package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// AllocationAuditJob periodically scans stored allocations for invariant
// violations and logs every finding. Runs every minute.
type AllocationAuditJob struct {
	handler queries.GetAllocationViolationsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAllocationAuditJob creates a new job for auditing allocations.
// Uses GetAllocationViolationsQueryHandler to detect inconsistent data every minute.
func NewAllocationAuditJob(handler queries.GetAllocationViolationsQueryHandler, logger *slog.Logger) *AllocationAuditJob {
	return &AllocationAuditJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "allocation_audit_job"),
	}
}

// Start begins the allocation audit job to run every minute.
func (j *AllocationAuditJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetAllocationViolationsQuery()

		violations, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Allocation audit job failed", "error", err)
			return
		}

		for _, violation := range violations {
			j.logger.WarnContext(ctx, "Allocation invariant violated",
				"kind", violation.Kind,
				"orderID", violation.OrderID,
				"orderLineID", violation.OrderLineID,
				"allocated", violation.Allocated,
				"ordered", violation.Ordered,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Allocation audit job started (running every minute)")
	return nil
}

// Stop stops the allocation audit job.
func (j *AllocationAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Allocation audit job stopped")
}
