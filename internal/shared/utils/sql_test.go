package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w WhereBuilder
	assert.Equal(t, "", w.SQL())

	w.Add("m.province = ?", "Villa Clara")
	w.Add("p.status = ?", "AVAILABLE")
	w.Add("p.price BETWEEN ? AND ?", 1, 10)

	assert.Equal(t, " WHERE m.province = $1 AND p.status = $2 AND p.price BETWEEN $3 AND $4", w.SQL())
	assert.Equal(t, []any{"Villa Clara", "AVAILABLE", 1, 10}, w.Args())
}
