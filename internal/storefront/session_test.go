package storefront

import (
	"testing"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	storage := NewMemoryStorage()

	store := NewSessionStore(storage)
	if store.Current() != nil {
		t.Fatal("fresh store should be signed out")
	}

	info := SessionInfo{UserID: 7, Name: "Test User", IsAdmin: true, Token: "bearer-token"}
	if err := store.Set(info); err != nil {
		t.Fatalf("Set: %v", err)
	}

	restored := NewSessionStore(storage)
	got := restored.Current()
	if got == nil {
		t.Fatal("session not restored from storage")
	}
	if *got != info {
		t.Errorf("restored session = %+v, want %+v", *got, info)
	}
}

func TestSessionStore_ClearRemovesPersistedRecord(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewSessionStore(storage)

	if err := store.Set(SessionInfo{UserID: 1, Name: "Test User", Token: "tok"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if store.Current() != nil {
		t.Error("store still signed in after Clear")
	}
	if NewSessionStore(storage).Current() != nil {
		t.Error("persisted record survived Clear")
	}
}

func TestSessionStore_MalformedRecordMeansSignedOut(t *testing.T) {
	storage := NewMemoryStorage()
	if err := storage.Write("userInfo", []byte("not-json")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if NewSessionStore(storage).Current() != nil {
		t.Error("malformed record should read as signed out")
	}
}

func TestSessionStore_EmptyTokenMeansSignedOut(t *testing.T) {
	storage := NewMemoryStorage()
	if err := storage.Write("userInfo", []byte(`{"user_id":1,"name":"x","token":""}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if NewSessionStore(storage).Current() != nil {
		t.Error("record without token should read as signed out")
	}
}
