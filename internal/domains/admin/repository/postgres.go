package repository

import (
	"context"
	"fmt"

	"agromap-backend/internal/domains/admin/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{Users: model.UserStats{ByRole: map[string]int{}}}

	// Step 1: totals in one round trip
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM users),
		       (SELECT COUNT(*) FROM markets),
		       (SELECT COUNT(*) FROM products),
		       (SELECT COUNT(*) FROM products WHERE status = 'AVAILABLE'),
		       (SELECT COUNT(*) FROM comments)`,
	).Scan(&stats.Users.Total, &stats.Markets.Total, &stats.Products.Total,
		&stats.Products.Available, &stats.Comments.Total)
	if err != nil {
		return nil, fmt.Errorf("count totals: %w", err)
	}
	stats.Products.Unavailable = stats.Products.Total - stats.Products.Available

	// Step 2: users by role
	rows, err := r.pool.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("scan role count: %w", err)
		}
		stats.Users.ByRole[role] = n
	}
	return stats, rows.Err()
}

func (r *postgresRepository) Markets(ctx context.Context, limit int) ([]model.MarketRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.name, m.province, m.municipality, u.id, u.name, u.username,
		       (SELECT COUNT(*) FROM products p WHERE p.market_id = m.id),
		       m.created_at
		FROM markets m
		JOIN users u ON u.id = m.manager_id
		ORDER BY m.created_at DESC`+limitClause(limit))
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.MarketRow, error) {
		var m model.MarketRow
		err := row.Scan(&m.ID, &m.Name, &m.Province, &m.Municipality,
			&m.Manager.ID, &m.Manager.Name, &m.Manager.Username, &m.ProductCount, &m.CreatedAt)
		return m, err
	})
}

func (r *postgresRepository) Products(ctx context.Context, limit int, newest bool) ([]model.ProductRow, error) {
	order := ` ORDER BY p.updated_at DESC`
	if newest {
		order = ` ORDER BY p.created_at DESC`
	}
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.status, p.product_type, p.quantity, COALESCE(p.unit, ''),
		       p.price, COALESCE(p.price_unit, ''), p.currency,
		       m.id, m.name, u.name, c.id, c.name, p.created_at, p.updated_at
		FROM products p
		JOIN markets m ON m.id = p.market_id
		JOIN users u ON u.id = m.manager_id
		JOIN categories c ON c.id = p.category_id`+order+limitClause(limit))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ProductRow, error) {
		var p model.ProductRow
		err := row.Scan(&p.ID, &p.Name, &p.Status, &p.ProductType, &p.Quantity, &p.Unit,
			&p.Price, &p.PriceUnit, &p.Currency,
			&p.Market.ID, &p.Market.Name, &p.ManagerName, &p.Category.ID, &p.Category.Name,
			&p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
}

func (r *postgresRepository) Comments(ctx context.Context, limit int) ([]model.CommentRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT cm.id, cm.text, cm.recommends, cm.likes, u.id, u.name, p.id, p.name, cm.created_at
		FROM comments cm
		JOIN users u ON u.id = cm.user_id
		JOIN products p ON p.id = cm.product_id
		ORDER BY cm.created_at DESC`+limitClause(limit))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.CommentRow, error) {
		var c model.CommentRow
		err := row.Scan(&c.ID, &c.Text, &c.Recommends, &c.Likes, &c.User.ID, &c.User.Name,
			&c.Product.ID, &c.Product.Name, &c.CreatedAt)
		return c, err
	})
}
