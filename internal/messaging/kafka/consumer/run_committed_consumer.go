package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"
	"go-payroll/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeRunCommitted drives payslip email delivery off committed
// payroll runs. Messages that fail to load run data are left
// uncommitted for redelivery; per-recipient failures are the
// notification service's problem and the message still commits.
func ConsumeRunCommitted(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications *notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.run_committed")
	log.Info("payroll run committed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll run committed consumer stopped")
				return
			}
			log.Error("fetch run committed message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunCommittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode run committed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifications.NotifyRunCommitted(ctx, event); err != nil {
			log.Error("notify run committed failed",
				zap.String("payroll_run_id", event.PayrollRunID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit run committed message failed", zap.Error(err))
			continue
		}

		log.Info("payslip notifications dispatched",
			zap.String("payroll_run_id", event.PayrollRunID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
