package repository

import (
	"context"
	"errors"
	"fmt"

	"agromap-backend/internal/domains/user/model"
	"agromap-backend/internal/shared/authz"
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

const userColumns = `id, name, username, password_hash, image, role, province, created_at, updated_at`

func scanUser(row pgx.Row, extra ...any) (*model.User, error) {
	var u model.User
	var role string
	dest := append([]any{&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Image, &role, &u.Province,
		&u.CreatedAt, &u.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	u.Role = authz.Role(role)
	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, username, password_hash, image, role, province)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		u.Name, u.Username, u.PasswordHash, u.Image, string(u.Role), u.Province,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return model.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) Update(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE users SET name = $2, province = $3, image = $4, password_hash = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		u.ID, u.Name, u.Province, u.Image, u.PasswordHash,
	).Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id uuid.UUID, role authz.Role) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns, id, string(role)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]string, error) {
		// Step 1: collect images owned through the user's markets before the cascade
		var images []string
		err := tx.QueryRow(ctx, `
			SELECT COALESCE(array_agg(img), '{}') FROM (
				SELECT image AS img FROM users WHERE id = $1 AND image IS NOT NULL
				UNION ALL
				SELECT unnest(m.images) FROM markets m WHERE m.manager_id = $1
				UNION ALL
				SELECT unnest(p.images) FROM products p
				JOIN markets m ON m.id = p.market_id
				WHERE m.manager_id = $1
			) owned`, id).Scan(pq.Array(&images))
		if err != nil {
			return nil, fmt.Errorf("collect user images: %w", err)
		}

		// Step 2: like counters of comments the user liked must drop with the ledger rows
		if _, err := tx.Exec(ctx, `
			UPDATE comments c SET likes = GREATEST(c.likes - 1, 0)
			FROM comment_likes l
			WHERE l.comment_id = c.id AND l.user_id = $1`, id); err != nil {
			return nil, fmt.Errorf("release likes: %w", err)
		}

		// Step 3: delete; markets, products, comments, ratings and likes cascade
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return nil, fmt.Errorf("delete user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrUserNotFound
		}
		return images, nil
	})
}

func (r *postgresRepository) List(ctx context.Context) ([]model.UserWithCounts, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`,
		       (SELECT COUNT(*) FROM markets m WHERE m.manager_id = users.id),
		       (SELECT COUNT(*) FROM comments c WHERE c.user_id = users.id)
		FROM users
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.UserWithCounts, 0)
	for rows.Next() {
		var markets, comments int
		u, err := scanUser(rows, &markets, &comments)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, model.UserWithCounts{User: *u, MarketCount: markets, CommentCount: comments})
	}
	return users, rows.Err()
}

func (r *postgresRepository) UpsertByUsername(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, username, password_hash, role, province)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE
		SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash,
		    role = EXCLUDED.role, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		u.Name, u.Username, u.PasswordHash, string(u.Role), u.Province,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert user %q: %w", u.Username, err)
	}
	return nil
}
