package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Transfer(t *testing.T) {
	var got transferRequest
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transfers", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	c := NewClient(gateway.URL)
	defer c.Close()

	err := c.Transfer("seller-1", 50)
	require.NoError(t, err)

	assert.Equal(t, "seller-1", got.To)
	assert.Equal(t, uint64(50), got.Amount)
	assert.NotEmpty(t, got.Reference, "each transfer carries a reference id")
}

func TestClient_TransferGatewayError(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer gateway.Close()

	c := NewClient(gateway.URL)
	defer c.Close()

	err := c.Transfer("seller-1", 50)
	assert.Error(t, err)
}

func TestClient_TransferFreshReferences(t *testing.T) {
	refs := map[string]bool{}
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req transferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		refs[req.Reference] = true
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	c := NewClient(gateway.URL)
	defer c.Close()

	require.NoError(t, c.Transfer("seller-1", 10))
	require.NoError(t, c.Transfer("seller-1", 10))

	assert.Len(t, refs, 2, "identical transfers still get distinct references")
}
