package core

import (
	"context"
	"errors"
	"log/slog"

	"github.com/adsabs/adsboost/internal/contract"
)

// RunWorker consumes inbound messages until ctx is cancelled.
// A message that fails processing is handed to the consumer's dead-letter path.
// It returns nil on cancellation and the consumer error otherwise.
func RunWorker(ctx context.Context, consumer contract.Consumer, proc *Processor, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("worker started", "run_id", proc.RunID())
	defer logger.Info("worker stopped", "run_id", proc.RunID())

	for {
		msg, err := consumer.Consume(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, contract.ErrNoMessage):
			continue
		case err != nil:
			return err
		}

		if _, err := proc.ProcessMessage(ctx, msg.Payload); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("processing failed", "message_id", msg.ID, "error", err)
			if failErr := consumer.Fail(ctx, msg, err); failErr != nil {
				logger.Error("dead-letter failed", "message_id", msg.ID, "error", failErr)
			}
		}
	}
}
