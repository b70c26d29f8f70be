package memory

import (
	"context"
	"sync"
)

// LocalStorageRepo хранит значения посетителей в памяти процесса.
// Используется для локального запуска (STORAGE_DRIVER=memory) и в тестах.
type LocalStorageRepo struct {
	mu    sync.RWMutex
	items map[string]map[string]string // visitorID -> key -> value
}

func NewLocalStorageRepo() *LocalStorageRepo {
	return &LocalStorageRepo{
		items: make(map[string]map[string]string),
	}
}

// GetItem возвращает значение ключа посетителя.
func (r *LocalStorageRepo) GetItem(ctx context.Context, visitorID, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.items[visitorID][key]
	return value, ok, nil
}

// SetItem записывает значение, перезаписывая предыдущее.
func (r *LocalStorageRepo) SetItem(ctx context.Context, visitorID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.items[visitorID]
	if !ok {
		bucket = make(map[string]string)
		r.items[visitorID] = bucket
	}
	bucket[key] = value

	return nil
}

// RemoveItem удаляет ключ. Отсутствующий ключ не считается ошибкой.
func (r *LocalStorageRepo) RemoveItem(ctx context.Context, visitorID, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(visitorID, key)
	return nil
}

// TakeItem атомарно читает и удаляет значение.
func (r *LocalStorageRepo) TakeItem(ctx context.Context, visitorID, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.items[visitorID][key]
	if ok {
		r.removeLocked(visitorID, key)
	}

	return value, ok, nil
}

func (r *LocalStorageRepo) removeLocked(visitorID, key string) {
	bucket, ok := r.items[visitorID]
	if !ok {
		return
	}

	delete(bucket, key)
	if len(bucket) == 0 {
		delete(r.items, visitorID)
	}
}
