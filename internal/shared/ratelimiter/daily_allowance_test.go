package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyAllowance_EnforcesLimit(t *testing.T) {
	a := NewDailyAllowance()

	assert.True(t, a.Allow("u1", 2))
	assert.True(t, a.Allow("u1", 2))
	assert.False(t, a.Allow("u1", 2))

	// 拒否された呼び出しはカウントされない
	assert.False(t, a.Allow("u1", 2))
}

func TestDailyAllowance_KeysAreIndependent(t *testing.T) {
	a := NewDailyAllowance()

	assert.True(t, a.Allow("u1", 1))
	assert.False(t, a.Allow("u1", 1))
	assert.True(t, a.Allow("u2", 1))
}

func TestDailyAllowance_ZeroLimit(t *testing.T) {
	a := NewDailyAllowance()

	assert.False(t, a.Allow("u1", 0))
}

func TestDailyAllowance_ResetsOnNewDay(t *testing.T) {
	a := NewDailyAllowance()

	assert.True(t, a.Allow("u1", 1))
	assert.False(t, a.Allow("u1", 1))

	// 日付を昨日に巻き戻してリセットを誘発する
	a.mu.Lock()
	a.day = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	a.mu.Unlock()

	assert.True(t, a.Allow("u1", 1))
}

func TestDailyAllowance_Concurrent(t *testing.T) {
	a := NewDailyAllowance()

	const workers = 20
	allowed := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- a.Allow("u1", 5)
		}()
	}
	wg.Wait()
	close(allowed)

	granted := 0
	for ok := range allowed {
		if ok {
			granted++
		}
	}
	assert.Equal(t, 5, granted)
}
