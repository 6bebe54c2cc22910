package memory

import (
	"context"
	"sync"
)

// Storage はプロセス内のみで値を保持するキーバリューストアです。
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStorage は空の Storage を生成します。
func NewStorage() *Storage {
	return &Storage{values: make(map[string]string)}
}

// Get は key の値を返します。
func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set は key の値を上書きします。
func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
