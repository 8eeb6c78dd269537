package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreds struct {
	token       string
	invalidated int
}

func (f *fakeCreds) Token() string { return f.token }

func (f *fakeCreds) Invalidate(ctx context.Context) error {
	f.invalidated++
	f.token = ""
	return nil
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"f1","name":"Avena"}`))
	}))
	defer srv.Close()

	client := New(srv.URL+"/api", 5*time.Second)
	creds := &fakeCreds{token: "abc"}

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, client.Get(context.Background(), creds, "/foods/f1", nil, &out))

	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "/api/foods/f1", gotPath)
	assert.Equal(t, "Avena", out.Name)
}

func TestDoOmitsHeaderWithoutToken(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	require.NoError(t, client.Get(context.Background(), Anonymous, "/organization/config", nil, nil))
	assert.False(t, hadAuth)
}

func TestUnauthorizedInvalidatesCredentials(t *testing.T) {
	endpoints := []string{"/auth/me", "/diet", "/admin/users"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Token expirado"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	for _, path := range endpoints {
		t.Run(path, func(t *testing.T) {
			creds := &fakeCreds{token: "expired"}
			err := client.Get(context.Background(), creds, path, nil, nil)

			require.Error(t, err)
			assert.True(t, IsUnauthorized(err))
			assert.Equal(t, 1, creds.invalidated)
			assert.Empty(t, creds.Token())
			assert.Equal(t, "Token expirado", UserMessage(err, "generic"))
		})
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusConflict, KindValidation},
		{http.StatusNotFound, KindNotFound},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
			}))
			defer srv.Close()

			creds := &fakeCreds{token: "abc"}
			err := New(srv.URL, time.Second).Delete(context.Background(), creds, "/foods/1")

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "boom", apiErr.Message)
			assert.Equal(t, 0, creds.invalidated)
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url, time.Second).Get(context.Background(), nil, "/foods", nil, nil)
	assert.True(t, IsKind(err, KindNetwork))
	assert.Equal(t, "fallback", UserMessage(err, "fallback"))
}

func TestPostSendsJSONBody(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Post(context.Background(), &fakeCreds{token: "t"}, "exercises", map[string]string{"name": "Press"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Press", received["name"])
}
