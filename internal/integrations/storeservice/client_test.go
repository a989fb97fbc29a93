package storeservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, status int, body string) (*Client, uuid.UUID) {
	t.Helper()
	storeID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/stores/"+storeID.String(), r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, time.Second, nopLogger{}), storeID
}

func TestGetActiveStore(t *testing.T) {
	t.Run("active store", func(t *testing.T) {
		client, storeID := newTestClient(t, http.StatusOK, `{"name":"Ski Rent","currency":"EUR","is_active":true}`)

		store, err := client.GetActiveStore(context.Background(), storeID)
		require.NoError(t, err)
		assert.Equal(t, "Ski Rent", store.Name)
		assert.Equal(t, "EUR", store.Currency)
	})

	t.Run("inactive store", func(t *testing.T) {
		client, storeID := newTestClient(t, http.StatusOK, `{"name":"Closed","is_active":false}`)

		_, err := client.GetActiveStore(context.Background(), storeID)
		assert.ErrorIs(t, err, ErrStoreInactive)
	})

	t.Run("not found", func(t *testing.T) {
		client, storeID := newTestClient(t, http.StatusNotFound, `{"code":404,"message":"not found"}`)

		_, err := client.GetActiveStore(context.Background(), storeID)
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		client, storeID := newTestClient(t, http.StatusInternalServerError, `boom`)

		_, err := client.GetActiveStore(context.Background(), storeID)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("broken body", func(t *testing.T) {
		client, storeID := newTestClient(t, http.StatusOK, `{`)

		_, err := client.GetStore(context.Background(), storeID)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}
