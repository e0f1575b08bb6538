package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Julnar1/store-sentry-admin-dashboard/logging"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, logging.NewNop())
}

func TestLoginSuccess(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-a","refresh_token":"tok-r"}`))
	})

	res, err := client.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.AccessToken != "tok-a" || res.RefreshToken != "tok-r" {
		t.Errorf("Login = %+v; want both tokens", res)
	}
}

func TestLoginRejectedCarriesPlatformMessage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthorized","statusCode":401}`))
	})

	_, err := client.Login(context.Background(), "admin@example.com", "bad")
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("Login error = %v; want *APIError", err)
	}
	if ae.Status != 401 || ae.Message != "Unauthorized" {
		t.Errorf("APIError = %+v; want status 401 with the platform's message", ae)
	}
	if !IsAuth(err) {
		t.Error("IsAuth should report a 401 as an auth failure")
	}
}

func TestAPIErrorJoinsValidationMessages(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":["email must be an email","password should not be empty"]}`))
	})

	_, err := client.Login(context.Background(), "not-an-email", "")
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v; want *APIError", err)
	}
	want := "email must be an email; password should not be empty"
	if ae.Message != want {
		t.Errorf("Message = %q; want %q", ae.Message, want)
	}
}

func TestProfileSendsBearerToken(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-a" {
			t.Errorf("Authorization = %q; want Bearer tok-a", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"email":"admin@example.com","name":"Admin","role":"admin","avatar":""}`))
	})

	user, err := client.Profile(context.Background(), "tok-a")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if user.Role != "admin" || user.Email != "admin@example.com" {
		t.Errorf("Profile = %+v", user)
	}
}

func TestProductsPagination(t *testing.T) {
	var gotQuery string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	if _, err := client.Products(context.Background(), 10, 20); err != nil {
		t.Fatalf("Products failed: %v", err)
	}
	if gotQuery != "limit=10&offset=20" {
		t.Errorf("query = %q; want limit=10&offset=20", gotQuery)
	}

	// limit <= 0 fetches everything, with no pagination parameters.
	if _, err := client.Products(context.Background(), 0, 0); err != nil {
		t.Fatalf("Products failed: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q; want none", gotQuery)
	}
}

func TestDeleteCategoryUpgradesBareErrors(t *testing.T) {
	status := http.StatusBadRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})

	err := client.DeleteCategory(context.Background(), "tok", 7)
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v; want *APIError", err)
	}
	if ae.Message == http.StatusText(http.StatusBadRequest) {
		t.Errorf("bare 400 should get the associated-products message, got %q", ae.Message)
	}

	status = http.StatusForbidden
	err = client.DeleteCategory(context.Background(), "tok", 7)
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v; want *APIError", err)
	}
	if ae.Message != "Only admin users can delete categories." {
		t.Errorf("bare 403 message = %q", ae.Message)
	}
}

func TestDeleteCategoryKeepsPlatformMessage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Category is referenced by 12 products"}`))
	})

	err := client.DeleteCategory(context.Background(), "tok", 7)
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v; want *APIError", err)
	}
	if ae.Message != "Category is referenced by 12 products" {
		t.Errorf("a real platform message must not be rewritten, got %q", ae.Message)
	}
}
