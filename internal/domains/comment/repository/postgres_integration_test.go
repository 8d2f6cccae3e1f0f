//go:build integration

package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"agromap-backend/internal/domains/comment/model"
	"agromap-backend/internal/testhelpers"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	pool      *pgxpool.Pool
	repo      Repository
	authorID  uuid.UUID
	productID uuid.UUID
}

func setup(t *testing.T) fixture {
	pool := testhelpers.SetupPostgres(t)
	manager := testhelpers.InsertUser(t, pool, "manager", "MANAGER")
	market := testhelpers.InsertMarket(t, pool, manager)
	category := testhelpers.InsertCategory(t, pool, "Verduras")

	return fixture{
		pool:      pool,
		repo:      NewPostgresRepository(pool),
		authorID:  testhelpers.InsertUser(t, pool, "author", "REGULAR"),
		productID: testhelpers.InsertProduct(t, pool, market, category),
	}
}

func (f fixture) comment(t *testing.T) *model.Comment {
	c := &model.Comment{UserID: f.authorID, ProductID: f.productID, Text: "muy fresco", Recommends: true}
	require.NoError(t, f.repo.Create(context.Background(), c))
	return c
}

func TestCreate_DuplicateComment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.comment(t)

	err := f.repo.Create(ctx, &model.Comment{UserID: f.authorID, ProductID: f.productID, Text: "otra vez"})
	assert.ErrorIs(t, err, model.ErrDuplicateComment)

	err = f.repo.Create(ctx, &model.Comment{UserID: f.authorID, ProductID: uuid.New(), Text: "?"})
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestLikeLedger_ConcurrentLikes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.comment(t)

	const likers = 20
	users := make([]uuid.UUID, likers)
	for i := range users {
		users[i] = testhelpers.InsertUser(t, f.pool, fmt.Sprintf("liker%d", i), "REGULAR")
	}

	// Every user tries twice at the same time; exactly one attempt each must win
	var wg sync.WaitGroup
	errs := make(chan error, likers*2)
	for _, u := range users {
		for range 2 {
			wg.Add(1)
			go func(u uuid.UUID) {
				defer wg.Done()
				_, err := f.repo.Like(ctx, u, c.ID)
				errs <- err
			}(u)
		}
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, model.ErrAlreadyLiked):
			dup++
		}
	}
	assert.Equal(t, likers, ok)
	assert.Equal(t, likers, dup)

	got, err := f.repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, likers, got.Likes)
	assert.Zero(t, testhelpers.LedgerMismatches(t, f.pool))
}

func TestLikeUnlike(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.comment(t)
	liker := testhelpers.InsertUser(t, f.pool, "liker", "REGULAR")

	view, err := f.repo.Like(ctx, liker, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Likes)
	assert.True(t, view.ViewerHasLiked)

	_, err = f.repo.Unlike(ctx, f.authorID, c.ID)
	assert.ErrorIs(t, err, model.ErrNotLiked)

	view, err = f.repo.Unlike(ctx, liker, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Likes)
	assert.False(t, view.ViewerHasLiked)

	_, err = f.repo.Like(ctx, liker, uuid.New())
	assert.ErrorIs(t, err, model.ErrCommentNotFound)
	_, err = f.repo.Unlike(ctx, liker, uuid.New())
	assert.ErrorIs(t, err, model.ErrCommentNotFound)

	assert.Zero(t, testhelpers.LedgerMismatches(t, f.pool))
}

func TestListByProduct_ViewerHasLiked(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.comment(t)
	liker := testhelpers.InsertUser(t, f.pool, "liker", "REGULAR")
	_, err := f.repo.Like(ctx, liker, c.ID)
	require.NoError(t, err)

	list, err := f.repo.ListByProduct(ctx, f.productID, &liker)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].ViewerHasLiked)
	assert.Equal(t, "author", list[0].User.Name)

	list, err = f.repo.ListByProduct(ctx, f.productID, nil)
	require.NoError(t, err)
	assert.False(t, list[0].ViewerHasLiked)
}

func TestDelete_PurgesLedger(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.comment(t)
	liker := testhelpers.InsertUser(t, f.pool, "liker", "REGULAR")
	_, err := f.repo.Like(ctx, liker, c.ID)
	require.NoError(t, err)

	require.NoError(t, f.repo.Delete(ctx, c.ID))

	assert.Zero(t, testhelpers.Count(t, f.pool, "comment_likes"))
	assert.ErrorIs(t, f.repo.Delete(ctx, c.ID), model.ErrCommentNotFound)
}

func TestCascade_ProductDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.comment(t)
	liker := testhelpers.InsertUser(t, f.pool, "liker", "REGULAR")
	_, err := f.repo.Like(ctx, liker, c.ID)
	require.NoError(t, err)

	_, err = f.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, f.productID)
	require.NoError(t, err)

	assert.Zero(t, testhelpers.Count(t, f.pool, "comments"))
	assert.Zero(t, testhelpers.Count(t, f.pool, "comment_likes"))
}
