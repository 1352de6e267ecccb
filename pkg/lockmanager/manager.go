package lockmanager

import (
	"context"
	"sync"
)

// Manager выдает эксклюзивную блокировку на ключ (ID предложения).
// Все изменения одного предложения выполняются последовательно,
// разные предложения обрабатываются параллельно.
type Manager struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// New создает менеджер блокировок
func New() *Manager {
	return &Manager{locks: make(map[string]chan struct{})}
}

// Do выполняет fn, удерживая блокировку key.
// Ожидание блокировки прерывается отменой ctx.
func (m *Manager) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lock := m.lockFor(key)

	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-lock }()

	return fn(ctx)
}

func (m *Manager) lockFor(key string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[key]
	if !ok {
		lock = make(chan struct{}, 1)
		m.locks[key] = lock
	}
	return lock
}
