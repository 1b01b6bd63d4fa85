package repo_interfaces

import (
	"context"
	"database/sql"
)

// TxRunner runs fn inside one database transaction: commit when fn
// returns nil, rollback otherwise.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
