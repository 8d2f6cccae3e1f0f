package repository

import (
	"context"
	"errors"
	"fmt"

	"agromap-backend/internal/domains/template/model"
	"agromap-backend/internal/shared/utils"
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

const selectTemplate = `
	SELECT t.id, t.name, t.description, t.image, t.category_id, c.name, t.created_at, t.updated_at
	FROM product_templates t
	JOIN categories c ON c.id = t.category_id`

func scanTemplate(row pgx.Row) (*model.Template, error) {
	var t model.Template
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Image, &t.CategoryID, &t.Category.Name,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Category.ID = t.CategoryID
	return &t, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Template, error) {
	var where utils.WhereBuilder
	if filter.CategoryID != nil {
		where.Add("t.category_id = ?", *filter.CategoryID)
	}

	rows, err := r.pool.Query(ctx, selectTemplate+where.SQL()+` ORDER BY t.name`, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]model.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	t, err := scanTemplate(r.pool.QueryRow(ctx, selectTemplate+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) Create(ctx context.Context, t *model.Template) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO product_templates (name, description, image, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		t.Name, t.Description, t.Image, t.CategoryID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return mapWriteError(err, "insert template")
}

func (r *postgresRepository) Update(ctx context.Context, t *model.Template) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE product_templates
		SET name = $2, description = $3, image = $4, category_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		t.ID, t.Name, t.Description, t.Image, t.CategoryID,
	).Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrTemplateNotFound
	}
	return mapWriteError(err, "update template")
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM product_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTemplateNotFound
	}
	return nil
}

func (r *postgresRepository) Upsert(ctx context.Context, t *model.Template) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO product_templates (name, description, image, category_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, category_id) DO UPDATE
		SET description = EXCLUDED.description,
		    image = COALESCE(EXCLUDED.image, product_templates.image),
		    updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		t.Name, t.Description, t.Image, t.CategoryID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return mapWriteError(err, "upsert template")
}

func mapWriteError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case database.IsForeignKeyViolation(err):
		return model.ErrCategoryNotFound
	case database.IsUniqueViolation(err):
		return model.ErrDuplicateName
	}
	return fmt.Errorf("%s: %w", op, err)
}
