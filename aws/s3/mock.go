package s3

import (
	"io"
	"io/ioutil"
	"sort"
	"strings"
	"sync"
)

// NewMockBasicClient returns an in-memory BasicClient for tests.
func NewMockBasicClient() *MockBasicClient {
	return &MockBasicClient{objects: make(map[string][]byte)}
}

type MockBasicClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	// FailOp forces the named operation to fail with a StorageError.
	FailOp string
}

func (m *MockBasicClient) List(key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailOp == "list" {
		return nil, &StorageError{Op: "list", Bucket: "mock", Key: key, Err: io.ErrUnexpectedEOF}
	}
	keys := make([]string, 0)
	for k := range m.objects {
		if strings.HasPrefix(k, key) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockBasicClient) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailOp == "get" {
		return nil, &StorageError{Op: "get", Bucket: "mock", Key: key, Err: io.ErrUnexpectedEOF}
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return data, nil
}

func (m *MockBasicClient) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailOp == "put" {
		return &StorageError{Op: "put", Bucket: "mock", Key: key, Err: io.ErrUnexpectedEOF}
	}
	m.objects[key] = data
	return nil
}

func (m *MockBasicClient) BufferPut(key string, buf io.ReadSeeker) error {
	data, err := ioutil.ReadAll(buf)
	if err != nil {
		return err
	}
	return m.Put(key, data)
}

func (m *MockBasicClient) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}
