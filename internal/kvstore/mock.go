package kvstore

// MockStore wraps a MemoryStore and fails selected operations on demand.
type MockStore struct {
	*MemoryStore

	// Error flags for testing error conditions
	GetError      error
	SetBatchError error
	DeleteError   error
	ClearError    error

	SetBatchCalls int
}

// NewMockStore returns a MockStore with no failures configured.
func NewMockStore() *MockStore {
	return &MockStore{MemoryStore: NewMemoryStore()}
}

func (m *MockStore) Get(key string) ([]byte, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.MemoryStore.Get(key)
}

func (m *MockStore) Set(key string, value []byte) error {
	return m.SetBatch([]Entry{{Key: key, Value: value}})
}

func (m *MockStore) SetBatch(entries []Entry) error {
	m.SetBatchCalls++
	if m.SetBatchError != nil {
		return m.SetBatchError
	}
	return m.MemoryStore.SetBatch(entries)
}

func (m *MockStore) Delete(key string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	return m.MemoryStore.Delete(key)
}

func (m *MockStore) Clear() error {
	if m.ClearError != nil {
		return m.ClearError
	}
	return m.MemoryStore.Clear()
}
