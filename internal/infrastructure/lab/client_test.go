package lab

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukabook/backend/internal/infrastructure/config"
)

func newClient(baseURL string) *Client {
	return NewClient(config.WatchConfig{
		LabBaseURL: baseURL,
		LabTimeout: 2 * time.Second,
	})
}

func TestFetchResults(t *testing.T) {
	tenantID := uuid.New()
	visitID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := fmt.Sprintf("/tenants/%s/visits/%s/results", tenantID, visitID)
		assert.Equal(t, expected, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"results":[{"visit_id":%q,"test_name":"Malaria RDT","result":"NEGATIVE","completed_at":"2026-09-01T10:00:00Z"}]}`, visitID)
	}))
	defer srv.Close()

	results, err := newClient(srv.URL).FetchResults(context.Background(), tenantID, visitID)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Malaria RDT", results[0].TestName)
	assert.Equal(t, "NEGATIVE", results[0].Result)
}

func TestFetchResultsPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	results, err := newClient(srv.URL).FetchResults(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFetchResultsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchResults(context.Background(), uuid.New(), uuid.New())

	assert.ErrorContains(t, err, "status 500")
}
