package ratelimiter

import (
	"sync"
	"time"
)

// Allower は、キーごとの操作回数が上限内かどうかを判定するインターフェースです。
type Allower interface {
	Allow(key string, limit int) bool
}

// DailyAllowance はキーごとの呼び出し回数を日単位で制限します。
// AIアドバイザーのプラン別利用枠に使用されます。カウンタはプロセス内のみで、
// 日付が変わるとリセットされます。
type DailyAllowance struct {
	mu     sync.Mutex
	day    string // YYYY-MM-DD
	counts map[string]int
}

// NewDailyAllowance は新しいDailyAllowanceのインスタンスを生成します。
func NewDailyAllowance() *DailyAllowance {
	return &DailyAllowance{counts: map[string]int{}}
}

// Allow はキーの本日の呼び出し回数をインクリメントし、上限内ならtrueを返します。
// 上限に達している場合はカウントせずfalseを返します。
func (a *DailyAllowance) Allow(key string, limit int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	if today != a.day {
		a.day = today
		a.counts = map[string]int{}
	}

	if a.counts[key] >= limit {
		return false
	}
	a.counts[key]++
	return true
}
