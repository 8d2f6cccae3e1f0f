package repository

import (
	"context"
	"errors"
	"fmt"

	"agromap-backend/internal/domains/comment/model"
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

// viewSelect projects a comment with its author. $1 is the viewer id, NULL for anonymous
// callers, in which case viewer_has_liked is always false.
const viewSelect = `
	SELECT c.id, c.user_id, c.product_id, c.text, c.recommends, c.likes, c.created_at, c.updated_at,
	       u.id, u.name, u.image,
	       EXISTS (
	           SELECT 1 FROM comment_likes cl
	           WHERE cl.comment_id = c.id AND cl.user_id = $1::uuid
	       ) AS viewer_has_liked
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func scanView(row pgx.Row) (*model.CommentView, error) {
	var v model.CommentView
	err := row.Scan(
		&v.ID, &v.UserID, &v.ProductID, &v.Text, &v.Recommends, &v.Likes, &v.CreatedAt, &v.UpdatedAt,
		&v.User.ID, &v.User.Name, &v.User.Image,
		&v.ViewerHasLiked,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func getView(ctx context.Context, q database.DBTX, id uuid.UUID, viewer *uuid.UUID) (*model.CommentView, error) {
	v, err := scanView(q.QueryRow(ctx, viewSelect+` WHERE c.id = $2`, viewer, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment view: %w", err)
	}
	return v, nil
}

func (r *postgresRepository) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (user_id, product_id, text, recommends)
		VALUES ($1, $2, $3, $4)
		RETURNING id, likes, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, c.UserID, c.ProductID, c.Text, c.Recommends).
		Scan(&c.ID, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
	switch {
	case database.IsUniqueViolation(err):
		return model.ErrDuplicateComment
	case database.IsForeignKeyViolation(err):
		if database.ConstraintName(err) == "comments_user_id_fkey" {
			return model.ErrUserGone
		}
		return model.ErrProductNotFound
	case err != nil:
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var c model.Comment
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, product_id, text, recommends, likes, created_at, updated_at
		FROM comments WHERE id = $1`, id).
		Scan(&c.ID, &c.UserID, &c.ProductID, &c.Text, &c.Recommends, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) GetView(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.CommentView, error) {
	return getView(ctx, r.pool, id, viewer)
}

func (r *postgresRepository) ListByProduct(ctx context.Context, productID uuid.UUID, viewer *uuid.UUID) ([]model.CommentView, error) {
	rows, err := r.pool.Query(ctx, viewSelect+`
		WHERE c.product_id = $2
		ORDER BY c.created_at DESC, c.id`, viewer, productID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.CommentView, 0)
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *v)
	}
	return comments, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, text *string, recommends *bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE comments
		SET text       = COALESCE($2, text),
		    recommends = COALESCE($3, recommends),
		    updated_at = NOW()
		WHERE id = $1`, id, text, recommends)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

// Delete removes the ledger rows and then the comment itself
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM comment_likes WHERE comment_id = $1`, id); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCommentNotFound
		}
		return nil
	})
}

// Like relies on the (user_id, comment_id) primary key to reject a second like,
// so two racing requests can never both increment the counter.
func (r *postgresRepository) Like(ctx context.Context, userID, commentID uuid.UUID) (*model.CommentView, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.CommentView, error) {
		// Step 1: ledger row
		_, err := tx.Exec(ctx, `INSERT INTO comment_likes (user_id, comment_id) VALUES ($1, $2)`, userID, commentID)
		switch {
		case database.IsUniqueViolation(err):
			return nil, model.ErrAlreadyLiked
		case database.IsForeignKeyViolation(err):
			if database.ConstraintName(err) == "comment_likes_user_id_fkey" {
				return nil, model.ErrUserGone
			}
			return nil, model.ErrCommentNotFound
		case err != nil:
			return nil, fmt.Errorf("insert like: %w", err)
		}

		// Step 2: counter
		tag, err := tx.Exec(ctx, `UPDATE comments SET likes = likes + 1 WHERE id = $1`, commentID)
		if err != nil {
			return nil, fmt.Errorf("increment likes: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrCommentNotFound
		}

		// Step 3: response payload
		return getView(ctx, tx, commentID, &userID)
	})
}

func (r *postgresRepository) Unlike(ctx context.Context, userID, commentID uuid.UUID) (*model.CommentView, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.CommentView, error) {
		// Step 1: the comment must exist
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`, commentID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check comment: %w", err)
		}
		if !exists {
			return nil, model.ErrCommentNotFound
		}

		// Step 2: ledger row
		tag, err := tx.Exec(ctx, `DELETE FROM comment_likes WHERE user_id = $1 AND comment_id = $2`, userID, commentID)
		if err != nil {
			return nil, fmt.Errorf("delete like: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrNotLiked
		}

		// Step 3: counter, never below zero
		if _, err := tx.Exec(ctx, `UPDATE comments SET likes = GREATEST(likes - 1, 0) WHERE id = $1`, commentID); err != nil {
			return nil, fmt.Errorf("decrement likes: %w", err)
		}

		return getView(ctx, tx, commentID, &userID)
	})
}
