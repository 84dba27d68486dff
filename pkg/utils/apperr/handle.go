package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle reports a terminal failure of the run. goerr values attached
// along the way are unpacked into structured fields.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)

	if goErr := goerr.Unwrap(err); goErr != nil {
		logger.Error("run failed", "error", err, "values", goErr.Values())
		return
	}
	logger.Error("run failed", "error", err)
}
