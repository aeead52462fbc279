package resthttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-1", r.Header.Get(headerKeyRequestID))
		assert.Equal(t, http.MethodPost, r.Method)

		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"value":7}`))
		case "/bad-json":
			_, _ = w.Write([]byte(`{"value":`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	var resp struct {
		Value int `json:"value"`
	}
	require.NoError(t, Post(WithRequestID(ctx, "req-1"), srv.URL+"/ok", map[string]string{"q": "x"}, &resp))
	assert.Equal(t, 7, resp.Value)

	err := Post(WithRequestID(ctx, "req-1"), srv.URL+"/down", nil, &resp)
	assert.ErrorIs(t, err, ErrBadStatus)
	assert.Contains(t, err.Error(), "upstream down")

	err = Post(WithRequestID(ctx, "req-1"), srv.URL+"/bad-json", nil, &resp)
	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrBadStatus)
}
