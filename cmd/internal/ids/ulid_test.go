package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestID(t *testing.T) {
	t.Parallel()

	prev := NewRequestID()
	assert.Len(t, prev, 26)
	assert.True(t, Valid(prev))

	for i := 0; i < 100; i++ {
		next := NewRequestID()
		assert.Less(t, prev, next, "ids must increase")
		prev = next
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.False(t, Valid(""))
	assert.False(t, Valid("not-a-ulid"))
	assert.False(t, Valid("01HZZZZZZZZZZZZZZZZZZZZZZZZ")) // 27 chars
	assert.True(t, Valid("01HZX3J4KQ8Z2V6N7M5P9R0S1T"))
}
