package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinClauses(t *testing.T) {
	assert.Equal(t, "a = $1 AND b = $2", JoinWithAnd([]string{"a = $1", "b = $2"}))
	assert.Equal(t, "a = $1 OR b = $2", JoinWithOr([]string{"a = $1", "b = $2"}))
	assert.Equal(t, "a = $1", JoinWithAnd([]string{"a = $1"}))
	assert.Equal(t, "", JoinWithAnd(nil))
}
