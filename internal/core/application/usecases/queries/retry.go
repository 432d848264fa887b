package queries

import (
	"context"
	"errors"
	"log/slog"

	"workorders/internal/pkg/errs"
)

// readAttempts bounds how often a failed read is tried.
const readAttempts = 2

// readWithRetry retries read once unless it failed with a domain error or the
// context is done.
func readWithRetry[T any](ctx context.Context, logger *slog.Logger, name string, read func() (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	for attempt := 1; attempt <= readAttempts; attempt++ {
		result, err = read()
		if err == nil || !retryable(ctx, err) {
			return result, err
		}
		logger.WarnContext(ctx, "read failed", "query", name, "attempt", attempt, "error", err)
	}
	return result, err
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return !errors.Is(err, errs.ErrObjectNotFound) &&
		!errors.Is(err, errs.ErrActorIsUnauthorized) &&
		!errs.IsValidation(err)
}
