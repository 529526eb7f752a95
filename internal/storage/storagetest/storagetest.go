// Package storagetest provides an in-memory ObjectStorage for tests.
package storagetest

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrUploadFailed = errors.New("upload failed")

type Object struct {
	ContentType string
	Data        []byte
}

type Memory struct {
	mu      sync.Mutex
	Objects map[string]Object
	Deleted []string
	// FailAfter makes every upload after the first n fail; negative disables.
	FailAfter int
	uploads   int
}

func NewMemory() *Memory {
	return &Memory{Objects: map[string]Object{}, FailAfter: -1}
}

func (m *Memory) Upload(_ context.Context, key, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAfter >= 0 && m.uploads >= m.FailAfter {
		return "", ErrUploadFailed
	}
	m.uploads++
	m.Objects[key] = Object{ContentType: contentType, Data: append([]byte(nil), data...)}
	return m.PublicURL(key), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.Objects {
		if strings.HasPrefix(key, prefix) {
			delete(m.Objects, key)
			m.Deleted = append(m.Deleted, key)
		}
	}
	return nil
}

func (m *Memory) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}
