package core

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
)

const (
	listProductsSQL = `SELECT id, name, category, price, quantity, description
		FROM products ORDER BY name, id`
	filterProductsSQL = `SELECT id, name, category, price, quantity, description
		FROM products
		WHERE LOWER(name) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'
		ORDER BY name, id`
	countProductsSQL = `SELECT COUNT(*) FROM products`
	countBuyersSQL   = `SELECT COUNT(*) FROM buyers`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for filter.
func likePattern(filter string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(filter)) + "%"
}

// ListProducts returns products ordered by name. A blank filter returns every
// product; otherwise only products whose name or category contains the
// filter, ignoring case.
func (s *Service) ListProducts(ctx context.Context, filter string) ([]Product, error) {
	conn, err := s.provider.Open(ctx)
	if err != nil {
		return nil, storageFailure(ctx, "list products", err)
	}
	defer conn.Close()

	filter = strings.TrimSpace(filter)

	var rows *sql.Rows
	if filter == "" {
		rows, err = conn.QueryContext(ctx, listProductsSQL)
	} else {
		pattern := likePattern(filter)
		rows, err = conn.QueryContext(ctx, filterProductsSQL, pattern, pattern)
	}
	if err != nil {
		return nil, storageFailure(ctx, "list products", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var (
			p                     Product
			category, description sql.NullString
			price                 sql.NullFloat64
			quantity              sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &category, &price, &quantity, &description); err != nil {
			return nil, storageFailure(ctx, "list products", err)
		}
		p.Category = category.String
		p.Price = price.Float64
		p.Quantity = int(quantity.Int64)
		p.Description = description.String
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageFailure(ctx, "list products", err)
	}

	slog.DebugContext(ctx, "products listed", "filter", filter, "count", len(products))
	return products, nil
}

// CountProducts returns the number of stored products.
func (s *Service) CountProducts(ctx context.Context) (int64, error) {
	return s.count(ctx, "count products", countProductsSQL)
}

// CountBuyers returns the number of stored buyers.
func (s *Service) CountBuyers(ctx context.Context) (int64, error) {
	return s.count(ctx, "count buyers", countBuyersSQL)
}

// Stats returns the dashboard counts. Each count uses its own connection.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	products, err := s.CountProducts(ctx)
	if err != nil {
		return Stats{}, err
	}
	buyers, err := s.CountBuyers(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Products: products, Buyers: buyers}, nil
}

func (s *Service) count(ctx context.Context, op, query string) (int64, error) {
	conn, err := s.provider.Open(ctx)
	if err != nil {
		return 0, storageFailure(ctx, op, err)
	}
	defer conn.Close()

	var n int64
	if err := conn.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, storageFailure(ctx, op, err)
	}
	return n, nil
}
