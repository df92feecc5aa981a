package auth

// MockSessionStore keeps the session in memory
type MockSessionStore struct {
	Session *Session
	SaveErr error
}

func (m *MockSessionStore) Load() (*Session, error) {
	if m.Session == nil {
		return nil, nil
	}
	copied := *m.Session
	return &copied, nil
}

func (m *MockSessionStore) Save(session *Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	copied := *session
	m.Session = &copied
	return nil
}

func (m *MockSessionStore) Clear() error {
	m.Session = nil
	return nil
}
