package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_AllowWithinBurst(t *testing.T) {
	rl := NewIPRateLimiter(0.0001, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "バースト内のリクエストは許可されるべき (request %d)", i)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "バーストを超えたリクエストは拒否されるべき")
}

func TestIPRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewIPRateLimiter(0.0001, 1)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// 別のIPは別のバケットを持つ
	assert.True(t, rl.Allow("10.0.0.2"))
}
