package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mkim/storefront-client/internal/errors"
)

func setupClientTest(t *testing.T, handler http.Handler) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return client
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid",
			config: Config{BaseURL: "http://127.0.0.1:5000/api"},
		},
		{
			name:    "missing base URL",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "blank base URL",
			config:  Config{BaseURL: "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.True(t, apperrors.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewClient_RejectsEmptyBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestClient_StampsRequestID(t *testing.T) {
	var requestID string
	client := setupClientTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))

	_, err := client.ListStores(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	// A closed server guarantees a connection failure.
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.ListStores(context.Background())
	assert.True(t, apperrors.IsNetwork(err))
	assert.Equal(t, apperrors.NetworkUnavailable, apperrors.CodeOf(err))
}

func TestClient_NotFoundStatusMapping(t *testing.T) {
	client := setupClientTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no such product"}`))
	}))

	_, err := client.ProductStock(context.Background(), 1, 999)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "no such product")
}

func TestClient_ServerErrorCarriesMessage(t *testing.T) {
	client := setupClientTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "database unavailable"}`))
	}))

	_, err := client.ListStores(context.Background())
	assert.True(t, apperrors.IsNetwork(err))
	assert.Equal(t, apperrors.NetworkBadStatus, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestClient_MalformedBodyIsBadPayload(t *testing.T) {
	client := setupClientTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))

	_, err := client.ListStores(context.Background())
	assert.True(t, apperrors.IsNetwork(err))
	assert.Equal(t, apperrors.NetworkBadPayload, apperrors.CodeOf(err))
}

func TestClient_LoginUnauthorizedIsAuthError(t *testing.T) {
	client := setupClientTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid username or password"}`))
	}))

	_, err := client.Login(context.Background(), "alice", "wrong")
	assert.True(t, apperrors.IsAuth(err))
	assert.Equal(t, apperrors.AuthInvalidCredentials, apperrors.CodeOf(err))
}

func TestClient_RegisterConflictIsUserExists(t *testing.T) {
	client := setupClientTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "username already taken"}`))
	}))

	_, err := client.Register(context.Background(), "alice", "secret")
	assert.True(t, apperrors.IsAuth(err))
	assert.Equal(t, apperrors.AuthUserExists, apperrors.CodeOf(err))
}

func TestClient_CustomerInfoMissingIsNotAnError(t *testing.T) {
	client := setupClientTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no customer info"}`))
	}))

	customer, found, err := client.CustomerInfo(context.Background(), 42)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, customer)
}

func TestClient_ContextCancellation(t *testing.T) {
	client := setupClientTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ListStores(ctx)
	assert.True(t, apperrors.IsNetwork(err))
}
