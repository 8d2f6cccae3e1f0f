package repository

import (
	"context"
	"errors"
	"fmt"

	"agromap-backend/internal/domains/rating/model"
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

const viewSelect = `
	SELECT r.id, r.user_id, r.product_id, r.stars, r.created_at, r.updated_at,
	       u.id, u.name, u.image,
	       p.id, p.name
	FROM ratings r
	JOIN users u ON u.id = r.user_id
	JOIN products p ON p.id = r.product_id`

func scanView(row pgx.Row) (*model.RatingView, error) {
	var v model.RatingView
	err := row.Scan(
		&v.ID, &v.UserID, &v.ProductID, &v.Stars, &v.CreatedAt, &v.UpdatedAt,
		&v.User.ID, &v.User.Name, &v.User.Image,
		&v.Product.ID, &v.Product.Name,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepository) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return exists, nil
}

// Upsert is last-write-wins on the (user_id, product_id) key
func (r *postgresRepository) Upsert(ctx context.Context, userID, productID uuid.UUID, stars int) (uuid.UUID, error) {
	query := `
		INSERT INTO ratings (user_id, product_id, stars)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET stars = EXCLUDED.stars, updated_at = NOW()
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query, userID, productID, stars).Scan(&id)
	switch {
	case database.IsForeignKeyViolation(err):
		return uuid.Nil, model.ErrProductNotFound
	case database.PgErrorCode(err) == database.CheckViolation:
		return uuid.Nil, model.ErrInvalidRating
	case err != nil:
		return uuid.Nil, fmt.Errorf("upsert rating: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Rating, error) {
	var rt model.Rating
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, product_id, stars, created_at, updated_at
		FROM ratings WHERE id = $1`, id).
		Scan(&rt.ID, &rt.UserID, &rt.ProductID, &rt.Stars, &rt.CreatedAt, &rt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}
	return &rt, nil
}

func (r *postgresRepository) GetView(ctx context.Context, id uuid.UUID) (*model.RatingView, error) {
	v, err := scanView(r.pool.QueryRow(ctx, viewSelect+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rating view: %w", err)
	}
	return v, nil
}

func (r *postgresRepository) GetViewByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*model.RatingView, error) {
	v, err := scanView(r.pool.QueryRow(ctx, viewSelect+` WHERE r.user_id = $1 AND r.product_id = $2`, userID, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotRated
	}
	if err != nil {
		return nil, fmt.Errorf("get own rating: %w", err)
	}
	return v, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRatingNotFound
	}
	return nil
}

func (r *postgresRepository) CountByStars(ctx context.Context, productID uuid.UUID) (map[int]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT stars, COUNT(*)
		FROM ratings
		WHERE product_id = $1
		GROUP BY stars`, productID)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int, model.MaxStars)
	for rows.Next() {
		var stars, n int
		if err := rows.Scan(&stars, &n); err != nil {
			return nil, fmt.Errorf("scan rating count: %w", err)
		}
		counts[stars] = n
	}
	return counts, rows.Err()
}
