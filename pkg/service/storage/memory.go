package storage

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
)

// Object is a blob kept by Memory
type Object struct {
	ContentType string
	Data        []byte
}

// Memory keeps objects in process. It is used for development and tests.
type Memory struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]Object
}

var _ interfaces.ObjectStorage = &Memory{}

// NewMemory creates an in-process object storage serving URLs under baseURL
func NewMemory(baseURL string) *Memory {
	return &Memory{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]Object),
	}
}

func (m *Memory) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read object", goerr.V("object", name))
	}

	m.mu.Lock()
	m.objects[name] = Object{ContentType: contentType, Data: data}
	m.mu.Unlock()

	return publicURL(m.baseURL, name), nil
}

// Get returns a stored object
func (m *Memory) Get(name string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[name]
	return obj, ok
}
