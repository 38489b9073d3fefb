package mocks

// MockPublisher is a mock implementation of ports.Publisher
type MockPublisher struct {
	PublishedMessages map[string][][]byte
	PublishFunc       func(subject string, data []byte) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		PublishedMessages: make(map[string][][]byte),
	}
}

func (m *MockPublisher) Publish(subject string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(subject, data)
	}
	m.PublishedMessages[subject] = append(m.PublishedMessages[subject], data)
	return nil
}
