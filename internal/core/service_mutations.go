package core

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/JonMunkholm/inventory/internal/database"
)

const (
	insertProductSQL = `INSERT INTO products (name, category, price, quantity, description)
		VALUES (?, ?, ?, ?, ?) RETURNING id`
	insertBuyerSQL = `INSERT INTO buyers (name, email, phone, address)
		VALUES (?, ?, ?, ?) RETURNING id`
	deleteProductSQL = `DELETE FROM products WHERE id = ?`
)

// InsertProduct persists p and sets its ID. It returns the number of rows
// written: 1 on success, 0 if the store reported no new row.
func (s *Service) InsertProduct(ctx context.Context, p *Product) (int64, error) {
	if p.Persisted() {
		return 0, ErrAlreadyPersisted
	}

	conn, done, err := s.openForWrite(ctx, "insert product")
	if err != nil {
		return 0, err
	}
	defer done()

	var id int64
	err = conn.QueryRowContext(ctx, insertProductSQL,
		p.Name, p.Category, p.Price, p.Quantity, p.Description,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, storageFailure(ctx, "insert product", err)
	}

	p.ID = id
	slog.DebugContext(ctx, "product inserted", "id", id)
	return 1, nil
}

// InsertBuyer persists b and sets its ID.
func (s *Service) InsertBuyer(ctx context.Context, b *Buyer) (int64, error) {
	if b.Persisted() {
		return 0, ErrAlreadyPersisted
	}

	conn, done, err := s.openForWrite(ctx, "insert buyer")
	if err != nil {
		return 0, err
	}
	defer done()

	var id int64
	err = conn.QueryRowContext(ctx, insertBuyerSQL,
		b.Name, b.Email, b.Phone, b.Address,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, storageFailure(ctx, "insert buyer", err)
	}

	b.ID = id
	slog.DebugContext(ctx, "buyer inserted", "id", id)
	return 1, nil
}

// DeleteProduct removes the product with the given ID and returns the number
// of rows removed. Zero means the row did not exist, which is not an error.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	conn, done, err := s.openForWrite(ctx, "delete product")
	if err != nil {
		return 0, err
	}
	defer done()

	res, err := conn.ExecContext(ctx, deleteProductSQL, id)
	if err != nil {
		return 0, storageFailure(ctx, "delete product", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageFailure(ctx, "delete product", err)
	}

	if n > 0 {
		slog.InfoContext(ctx, "product deleted", append([]any{"id", id}, changeAttrs(ctx)...)...)
	} else {
		slog.DebugContext(ctx, "product delete matched no row", "id", id)
	}
	return n, nil
}

// openForWrite takes a write slot and opens a connection. done closes the
// connection and frees the slot.
func (s *Service) openForWrite(ctx context.Context, op string) (*database.Conn, func(), error) {
	if err := s.writes.Acquire(ctx); err != nil {
		slog.WarnContext(ctx, "write slot unavailable", "op", op, "error", err)
		return nil, nil, err
	}

	conn, err := s.provider.Open(ctx)
	if err != nil {
		s.writes.Release()
		return nil, nil, storageFailure(ctx, op, err)
	}
	return conn, func() {
		conn.Close()
		s.writes.Release()
	}, nil
}
