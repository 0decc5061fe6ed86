package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Memory — in-memory реализация Storage для дев-режима и тестов.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memoryObject)}
}

func (m *Memory) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	if size >= 0 && int64(buf.Len()) != size {
		return "", fmt.Errorf("size mismatch: got %d, want %d", buf.Len(), size)
	}
	m.mu.Lock()
	m.objects[objectName] = memoryObject{data: buf.Bytes(), contentType: contentType}
	m.mu.Unlock()
	return objectName, nil
}

func (m *Memory) GetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	// Возвращаем фиктивный URL
	return m.PublicURL(objectName) + fmt.Sprintf("?expires=%d", int(expiry.Seconds())), nil
}

func (m *Memory) PublicURL(objectName string) string {
	return joinURL("https://example.com", objectName)
}

// Object возвращает сохранённые данные объекта.
func (m *Memory) Object(objectName string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[objectName]
	return o.data, o.contentType, ok
}

// Len — количество сохранённых объектов.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ Storage = (*Memory)(nil)
