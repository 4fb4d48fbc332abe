// Package clock 提供可替换的时间源，便于在测试中固定 created_at / updated_at。
package clock

import (
	"sync"
	"time"
)

// Clock 返回当前时间。
type Clock interface {
	Now() time.Time
}

// System 使用系统时间，统一转换为 UTC。
type System struct{}

// Now 返回当前 UTC 时间。
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fake 是测试用的固定时钟，可安全地被多个 goroutine 读取。
type Fake struct {
	mu      sync.Mutex
	current time.Time
}

// NewFake 创建一个停在 t 的时钟。
func NewFake(t time.Time) *Fake {
	return &Fake{current: t.UTC()}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Set 把时钟拨到 t。
func (c *Fake) Set(t time.Time) {
	c.mu.Lock()
	c.current = t.UTC()
	c.mu.Unlock()
}

// Advance 让时钟前进 d。
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}
