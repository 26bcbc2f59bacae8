// internal/storefront/session.go
package storefront

import (
	"encoding/json"
)

const sessionStorageKey = "userInfo"

// SessionInfo is the persisted record of the signed-in user. The token is an
// opaque bearer credential; the server keeps no session record of its own.
type SessionInfo struct {
	UserID  uint   `json:"user_id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

// SessionStore owns the persisted session record. It is created on login or
// register, read on load, and destroyed on logout. The cached record is
// trusted locally; staleness only surfaces when the server rejects the token.
type SessionStore struct {
	storage Storage
	current *SessionInfo
}

// NewSessionStore creates a session store, restoring any persisted session.
// A missing or malformed record means signed out.
func NewSessionStore(storage Storage) *SessionStore {
	s := &SessionStore{storage: storage}

	data, err := storage.Read(sessionStorageKey)
	if err == nil {
		var info SessionInfo
		if json.Unmarshal(data, &info) == nil && info.Token != "" {
			s.current = &info
		}
	}

	return s
}

// Current returns the active session, or nil when signed out
func (s *SessionStore) Current() *SessionInfo {
	return s.current
}

// Set stores the session record for a freshly signed-in user
func (s *SessionStore) Set(info SessionInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	if err := s.storage.Write(sessionStorageKey, data); err != nil {
		return err
	}
	s.current = &info
	return nil
}

// Clear removes the persisted session record
func (s *SessionStore) Clear() error {
	s.current = nil
	return s.storage.Remove(sessionStorageKey)
}
