package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateCommentRequest_Validate(t *testing.T) {
	req := CreateCommentRequest{ProductID: uuid.New(), Text: "   "}
	req.Normalize()
	assert.Error(t, req.Validate())

	req = CreateCommentRequest{Text: "Muy buenos tomates"}
	assert.Error(t, req.Validate(), "product is required")

	req = CreateCommentRequest{ProductID: uuid.New(), Text: "Muy buenos tomates"}
	assert.NoError(t, req.Validate())
	assert.True(t, req.RecommendsOrDefault())

	no := false
	req.Recommends = &no
	assert.False(t, req.RecommendsOrDefault())
}

func TestUpdateCommentRequest_Validate(t *testing.T) {
	assert.NoError(t, UpdateCommentRequest{}.Validate())

	blank := "  "
	req := UpdateCommentRequest{Text: &blank}
	req.Normalize()
	assert.Error(t, req.Validate())

	text := "Actualizado"
	assert.NoError(t, UpdateCommentRequest{Text: &text}.Validate())
}
