package gateway

import (
	"context"

	"github.com/rotisserie/eris"
)

// Open selects a gateway driver by name. The connection is the single shared
// one held for the whole run.
func Open(ctx context.Context, driver, url string) (Gateway, error) {
	switch driver {
	case "", "postgres":
		return NewPostgres(ctx, url)
	case "sqlite":
		return NewSQLite(url)
	default:
		return nil, eris.Errorf("gateway: unknown driver %q (valid: postgres, sqlite)", driver)
	}
}
