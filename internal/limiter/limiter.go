// Package limiter троттлит повторные запросы и попытки ввода кода
// на один email в пределах скользящего окна.
package limiter

import (
	"context"
	"sync"
	"time"
)

// AttemptLimiter — инжектируемый компонент: один счётчик на идентичность,
// общий для выдачи кода и проверок. Stop останавливает фоновую уборку.
type AttemptLimiter interface {
	// CheckAndIncrement — false, если лимит исчерпан (счётчик при этом не растёт).
	CheckAndIncrement(ctx context.Context, identity string) (bool, error)
	// Reset сбрасывает счётчик; зовём после успешной верификации.
	Reset(ctx context.Context, identity string) error
	Stop()
}

type entry struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter — нераспределённый вариант: процесс-локальная карта,
// сбрасывается при рестарте. Уборка стухших записей — фоновая горутина.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	maxAttempts int
	window      time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}

	now func() time.Time // подменяется в тестах
}

func NewMemoryLimiter(maxAttempts int, window, sweepInterval time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		entries:     make(map[string]*entry),
		maxAttempts: maxAttempts,
		window:      window,
		stopCh:      make(chan struct{}),
		now:         time.Now,
	}
	go l.sweepLoop(sweepInterval)
	return l
}

func (l *MemoryLimiter) CheckAndIncrement(_ context.Context, identity string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[identity]
	if !ok || now.Sub(e.windowStart) > l.window {
		// нет записи или окно истекло — новое окно, этот вызов уже считается
		l.entries[identity] = &entry{count: 1, windowStart: now}
		return true, nil
	}
	if e.count >= l.maxAttempts {
		return false, nil
	}
	e.count++
	return true, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, identity string) error {
	l.mu.Lock()
	delete(l.entries, identity)
	l.mu.Unlock()
	return nil
}

func (l *MemoryLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *MemoryLimiter) sweepLoop(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			l.sweep()
		case <-l.stopCh:
			return
		}
	}
}

// sweep убирает записи старше окна, ограничивая рост карты.
func (l *MemoryLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for k, e := range l.entries {
		if now.Sub(e.windowStart) > l.window {
			delete(l.entries, k)
		}
	}
}
