package repository

import (
	"context"
	"errors"
	"fmt"

	"agromap-backend/internal/domains/category/model"
	"agromap-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const selectWithCounts = `
	SELECT c.id, c.name, c.description, c.active, c.created_at, c.updated_at,
	       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id),
	       (SELECT COUNT(*) FROM product_templates t WHERE t.category_id = c.id)
	FROM categories c`

func scanWithCounts(row pgx.Row) (*model.CategoryWithCounts, error) {
	var c model.CategoryWithCounts
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		&c.ProductCount, &c.TemplateCount)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context, activeOnly bool) ([]model.CategoryWithCounts, error) {
	query := selectWithCounts
	if activeOnly {
		query += ` WHERE c.active`
	}
	query += ` ORDER BY c.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.CategoryWithCounts, 0)
	for rows.Next() {
		c, err := scanWithCounts(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CategoryWithCounts, error) {
	c, err := scanWithCounts(r.pool.QueryRow(ctx, selectWithCounts+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Category) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, description, active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.Active,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return model.ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, c *model.Category) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE categories SET name = $2, description = $3, active = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID, c.Name, c.Description, c.Active,
	).Scan(&c.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return model.ErrCategoryNotFound
	case database.IsUniqueViolation(err):
		return model.ErrDuplicateName
	case err != nil:
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		// a product or template arrived after the service counted
		return model.ErrCategoryInUse
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) UpsertByName(ctx context.Context, name string, description *string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, updated_at = NOW()
		RETURNING id`, name, description).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert category %q: %w", name, err)
	}
	return id, nil
}
