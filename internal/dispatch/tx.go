package dispatch

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/watchlist-cli/internal/gateway"
)

// runRecordTx scopes fn to one record transaction: begin, fn, commit. Any
// failure rolls back everything written for that record and leaves other
// records' committed transactions untouched.
func runRecordTx(ctx context.Context, gw gateway.Gateway, fn func(gateway.RecordTx) error) error {
	tx, err := gw.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "begin record transaction")
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			zap.L().Error("record rollback failed", zap.Error(rbErr))
		}
		return err
	}
	return tx.Commit(ctx)
}
