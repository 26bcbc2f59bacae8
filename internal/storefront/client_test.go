package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_LoginStoresSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["email"] != "admin@example.com" {
			t.Errorf("email = %q", body["email"])
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       1,
			"name":     "Admin User",
			"email":    "admin@example.com",
			"is_admin": true,
			"token":    "signed-token",
		})
	}))
	defer server.Close()

	sessions := NewSessionStore(NewMemoryStorage())
	client := NewClient(server.URL, sessions)

	info, err := client.Login("admin@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !info.IsAdmin || info.Token != "signed-token" {
		t.Errorf("session info = %+v", info)
	}
	if sessions.Current() == nil {
		t.Error("session not stored after login")
	}
}

func TestClient_LoginFailureLeavesSessionUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))
	defer server.Close()

	sessions := NewSessionStore(NewMemoryStorage())
	client := NewClient(server.URL, sessions)

	_, err := client.Login("admin@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login error")
	}
	if err.Error() != "Invalid email or password" {
		t.Errorf("error = %q, want server message verbatim", err.Error())
	}
	if sessions.Current() != nil {
		t.Error("session must remain unset after failed login")
	}
}

func TestClient_FetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "name": "Xiaomi Redmi 8 Original", "price": 35.0, "count_in_stock": 10},
			{"id": 2, "name": "Brown Winter Coat", "price": 75.0, "count_in_stock": 5},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, NewSessionStore(NewMemoryStorage()))

	products, err := client.FetchProducts()
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2", len(products))
	}
	if products[0].Name != "Xiaomi Redmi 8 Original" || products[0].Price != 35 {
		t.Errorf("first product = %+v", products[0])
	}
}

func TestClient_SendsBearerTokenWhenSignedIn(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Product{})
	}))
	defer server.Close()

	sessions := NewSessionStore(NewMemoryStorage())
	if err := sessions.Set(SessionInfo{UserID: 1, Name: "Test User", Token: "tok-123"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	client := NewClient(server.URL, sessions)
	if _, err := client.FetchProducts(); err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestClient_FetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/profile" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 1, "name": "Admin User", "email": "admin@example.com", "is_admin": true,
		})
	}))
	defer server.Close()

	sessions := NewSessionStore(NewMemoryStorage())
	if err := sessions.Set(SessionInfo{UserID: 1, Name: "Admin User", IsAdmin: true, Token: "tok"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	profile, err := NewClient(server.URL, sessions).FetchProfile()
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if profile.Email != "admin@example.com" || !profile.IsAdmin {
		t.Errorf("profile = %+v", profile)
	}
}

func TestClient_LogoutClearsSession(t *testing.T) {
	sessions := NewSessionStore(NewMemoryStorage())
	if err := sessions.Set(SessionInfo{UserID: 1, Name: "Test User", Token: "tok"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	client := NewClient("http://unused", sessions)
	if err := client.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if sessions.Current() != nil {
		t.Error("session survived logout")
	}
}
