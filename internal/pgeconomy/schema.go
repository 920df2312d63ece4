package pgeconomy

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/go-petr/pet-vault/pkg/dbpkg"
)

//go:embed schema.sql
var schema string

// Migrate creates the player_accounts table if it does not exist.
func Migrate(ctx context.Context, db dbpkg.SQLInterface) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate player_accounts: %w", err)
	}

	return nil
}
