package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/bonevet/inventory/internal/loans"
	_ "github.com/bonevet/inventory/testing"
)

type stubOverdue struct {
	loans []loans.Loan
}

func (s stubOverdue) Overdue(ctx context.Context) ([]loans.Loan, error) {
	return s.loans, nil
}

type captureEnqueuer struct {
	sent []SendEmailPayload
}

func (c *captureEnqueuer) EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error) {
	c.sent = append(c.sent, payload)
	return &asynq.TaskInfo{}, nil
}

func TestOverdueScanQueuesDigest(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	overdue := stubOverdue{loans: []loans.Loan{
		{ItemName: "Laptop", Borrower: "Drita", DueAt: due},
		{ItemName: "Camera", Borrower: "Blerim", DueAt: due},
	}}
	emails := &captureEnqueuer{}
	handle := NewOverdueScanHandler(overdue, emails, "ops@bonevet.org", slog.Default())

	task, err := NewOverdueScanTask(time.Now())
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), task))

	require.Len(t, emails.sent, 1)
	require.Equal(t, "ops@bonevet.org", emails.sent[0].To)
	require.Contains(t, emails.sent[0].Subject, "2 item(s)")
	require.Contains(t, emails.sent[0].Body, "Laptop")
	require.Contains(t, emails.sent[0].Body, "Blerim")
	require.Contains(t, emails.sent[0].Body, "2026-03-01")
}

func TestOverdueScanCleanSkipsEmail(t *testing.T) {
	emails := &captureEnqueuer{}
	handle := NewOverdueScanHandler(stubOverdue{}, emails, "ops@bonevet.org", slog.Default())

	task, err := NewOverdueScanTask(time.Now())
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), task))
	require.Empty(t, emails.sent)
}

func TestOverdueScanBadPayload(t *testing.T) {
	handle := NewOverdueScanHandler(stubOverdue{}, &captureEnqueuer{}, "ops@bonevet.org", slog.Default())
	err := handle(context.Background(), asynq.NewTask(TaskOverdueScan, []byte("{broken")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}
