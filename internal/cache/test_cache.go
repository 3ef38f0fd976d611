package cache

import (
	"encoding/json"
	"sync"
)

var _ Cache = (*TestCache)(nil)

// TestCache is a map backed Cache without expiry, used by handler tests.
type TestCache struct {
	mutex   sync.Mutex
	entries map[string][]byte
	Hits    int
	Deletes int
}

func NewTestCache() *TestCache {
	return &TestCache{
		entries: make(map[string][]byte),
	}
}

func (tc *TestCache) Get(key string, dest any) bool {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	raw, ok := tc.entries[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	tc.Hits++
	return true
}

func (tc *TestCache) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	tc.entries[key] = raw
	return nil
}

func (tc *TestCache) Delete(key string) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	delete(tc.entries, key)
	tc.Deletes++
}

func (tc *TestCache) Has(key string) bool {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()
	_, ok := tc.entries[key]
	return ok
}
