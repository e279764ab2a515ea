package mirror

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrancor/contalocal/internal/store"
)

func testSnapshot() *store.Snapshot {
	return &store.Snapshot{
		CompanyID: "c1",
		Buckets: map[string][]json.RawMessage{
			store.BucketTransactions: {json.RawMessage(`{"id":"t1"}`)},
			store.BucketCompanies:    {json.RawMessage(`{"id":"c1"}`)},
		},
	}
}

func TestPush(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotAuth   string
		gotBody   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		Token:      "secret",
		CompanyKey: "acme-books",
	})

	sent, err := client.Push(testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/v1/blobs/acme-books", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, len(gotBody), sent)

	var decoded store.Snapshot
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "c1", decoded.CompanyID)
}

func TestPushErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"bad token"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, CompanyKey: "acme-books"})

	_, err := client.Push(testSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
	assert.Contains(t, err.Error(), "bad token")
}

func TestPushPlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, CompanyKey: "acme-books"})

	_, err := client.Push(testSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "upstream unavailable")
}
