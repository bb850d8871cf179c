package ssm

import "github.com/pkg/errors"

// NewMockParameterStore returns an in-memory ParameterStore for tests.
func NewMockParameterStore() *MockParameterStore {
	return &MockParameterStore{params: make(map[string]string)}
}

type MockParameterStore struct {
	params  map[string]string
	FailGet bool
	FailPut bool
}

func (m *MockParameterStore) Get(name string) (string, error) {
	if m.FailGet {
		return "", &ParameterError{Op: "get", Name: name, Err: errors.New("forced failure")}
	}
	v, ok := m.params[name]
	if !ok {
		return "", &ParameterError{Op: "get", Name: name, Err: errors.New("ParameterNotFound")}
	}
	return v, nil
}

func (m *MockParameterStore) Put(name string, value string) error {
	if m.FailPut {
		return &ParameterError{Op: "put", Name: name, Err: errors.New("forced failure")}
	}
	m.params[name] = value
	return nil
}
