package repository

import (
	"context"
	"errors"
	"fmt"

	"agromap-backend/internal/domains/product/model"
	"agromap-backend/internal/shared/utils"
	"agromap-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const productColumns = `
	p.id, p.name, p.description, p.quantity, COALESCE(p.unit, ''), p.images, p.category_id,
	p.product_type, p.price, COALESCE(p.price_unit, ''), p.currency, p.status, p.market_id,
	p.created_at, p.updated_at`

func productFields(p *model.Product) []any {
	return []any{
		&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Unit, pq.Array(&p.Images), &p.CategoryID,
		&p.ProductType, &p.Price, &p.PriceUnit, &p.Currency, &p.Status, &p.MarketID,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.ProductListItem, error) {
	var where utils.WhereBuilder
	if filter.Province != nil {
		where.Add("m.province = ?", *filter.Province)
	}
	if filter.CategoryID != nil {
		where.Add("p.category_id = ?", *filter.CategoryID)
	}
	if filter.ProductType != nil {
		where.Add("p.product_type = ?", *filter.ProductType)
	}
	if filter.Status != nil {
		where.Add("p.status = ?", string(*filter.Status))
	}
	if filter.MarketID != nil {
		where.Add("p.market_id = ?", *filter.MarketID)
	}

	query := `SELECT ` + productColumns + `,
			m.id, m.name, m.province, m.municipality,
			c.id, c.name
		FROM products p
		JOIN markets m ON m.id = p.market_id
		JOIN categories c ON c.id = p.category_id` + where.SQL() + `
		ORDER BY p.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]model.ProductListItem, 0)
	for rows.Next() {
		var it model.ProductListItem
		dest := append(productFields(&it.Product),
			&it.Market.ID, &it.Market.Name, &it.Market.Province, &it.Market.Municipality,
			&it.Category.ID, &it.Category.Name,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id).
		Scan(productFields(&p)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error) {
	query := `SELECT ` + productColumns + `,
			m.id, m.name, m.province, m.municipality,
			u.id, u.name, u.username,
			c.id, c.name
		FROM products p
		JOIN markets m ON m.id = p.market_id
		JOIN users u ON u.id = m.manager_id
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`

	var d model.ProductDetail
	dest := append(productFields(&d.Product),
		&d.Market.ID, &d.Market.Name, &d.Market.Province, &d.Market.Municipality,
		&d.Market.Manager.ID, &d.Market.Manager.Name, &d.Market.Manager.Username,
		&d.Category.ID, &d.Category.Name,
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product detail: %w", err)
	}
	return &d, nil
}

func (r *postgresRepository) MarketManager(ctx context.Context, marketID uuid.UUID) (uuid.UUID, error) {
	var managerID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT manager_id FROM markets WHERE id = $1`, marketID).Scan(&managerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, model.ErrMarketNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get market manager: %w", err)
	}
	return managerID, nil
}

func (r *postgresRepository) MarketOf(ctx context.Context, managerID uuid.UUID) (uuid.UUID, error) {
	var marketID uuid.UUID
	err := r.pool.QueryRow(ctx, `
		SELECT id FROM markets WHERE manager_id = $1
		ORDER BY created_at LIMIT 1`, managerID).Scan(&marketID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, model.ErrNoMarket
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get manager market: %w", err)
	}
	return marketID, nil
}

func (r *postgresRepository) CategoryActive(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var active bool
	err := r.pool.QueryRow(ctx, `SELECT active FROM categories WHERE id = $1`, categoryID).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, model.ErrCategoryNotFound
	}
	if err != nil {
		return false, fmt.Errorf("get category: %w", err)
	}
	return active, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			name, description, quantity, unit, images, category_id, product_type,
			price, price_unit, currency, status, market_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Name, p.Description, p.Quantity, p.Unit, pq.Array(p.Images), p.CategoryID, p.ProductType,
		p.Price, p.PriceUnit, p.Currency, string(p.Status), p.MarketID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if database.IsForeignKeyViolation(err) {
		if database.ConstraintName(err) == "products_category_id_fkey" {
			return model.ErrCategoryNotFound
		}
		return model.ErrMarketNotFound
	}
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, quantity = $4, unit = $5, images = $6,
			category_id = $7, product_type = $8, price = $9, price_unit = $10,
			status = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Quantity, p.Unit, pq.Array(p.Images),
		p.CategoryID, p.ProductType, p.Price, p.PriceUnit, string(p.Status),
	).Scan(&p.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return model.ErrProductNotFound
	case database.IsForeignKeyViolation(err):
		return model.ErrCategoryNotFound
	case err != nil:
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes the product; its comments, likes and ratings cascade
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}
