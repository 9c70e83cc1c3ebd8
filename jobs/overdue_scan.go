package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/bonevet/inventory/internal/loans"
)

// TaskOverdueScan triggers the daily overdue loan sweep.
const TaskOverdueScan = "loans:overdue_scan"

// OverdueScanPayload carries scheduling metadata.
type OverdueScanPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewOverdueScanTask constructs the scan task.
func NewOverdueScanTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(OverdueScanPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOverdueScan, body, asynq.Queue(QueueDefault)), nil
}

// OverduePort lists loans past their due date.
type OverduePort interface {
	Overdue(ctx context.Context) ([]loans.Loan, error)
}

// EmailEnqueuer queues an email for delivery.
type EmailEnqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error)
}

// NewOverdueScanHandler returns the asynq handler for TaskOverdueScan.
// It mails one digest of all overdue loans to the operations address.
func NewOverdueScanHandler(overdue OverduePort, emails EmailEnqueuer, opsEmail string, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload OverdueScanPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}

		overdueLoans, err := overdue.Overdue(ctx)
		if err != nil {
			return err
		}
		if len(overdueLoans) == 0 {
			logger.Info("overdue scan clean")
			return nil
		}

		var body strings.Builder
		fmt.Fprintf(&body, "%d loan(s) are overdue:\n\n", len(overdueLoans))
		for _, loan := range overdueLoans {
			fmt.Fprintf(&body, "- %s, borrowed by %s, due %s\n",
				loan.ItemName, loan.Borrower, loan.DueAt.Format("2006-01-02"))
		}

		_, err = emails.EnqueueSendEmail(ctx, SendEmailPayload{
			To:      opsEmail,
			Subject: fmt.Sprintf("Overdue loans: %d item(s) need attention", len(overdueLoans)),
			Body:    body.String(),
		})
		if err != nil {
			return err
		}
		logger.Info("overdue scan queued digest", slog.Int("overdue", len(overdueLoans)))
		return nil
	}
}
