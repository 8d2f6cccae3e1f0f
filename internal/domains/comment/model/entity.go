package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is one user's opinion on one product.
// Likes mirrors the number of comment_likes rows for the comment.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	ProductID  uuid.UUID `json:"productId"`
	Text       string    `json:"text"`
	Recommends bool      `json:"recommends"`
	Likes      int       `json:"likes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Author is the public projection of the comment's user
type Author struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image *string   `json:"image"`
}

// CommentView is a comment as served to clients
type CommentView struct {
	Comment
	User           Author `json:"user"`
	ViewerHasLiked bool   `json:"viewerHasLiked"`
}
