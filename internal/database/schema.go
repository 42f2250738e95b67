package database

import (
	"context"
	"fmt"
	"log/slog"
)

// EnsureSchema creates the products and buyers tables if they are absent.
//
// It is safe to call on every start; existing tables are left untouched.
// The application cannot run without the base schema, so callers treat an
// error here as fatal.
func EnsureSchema(ctx context.Context, p *Provider) error {
	conn, err := p.Open(ctx)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	defer conn.Close()

	for _, stmt := range p.dialect.SchemaStatements() {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	slog.Info("schema ready", "store", p.Target())
	return nil
}
