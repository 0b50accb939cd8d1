package strapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w-h-a/ragserver/tools"
)

func TestForward(t *testing.T) {
	t.Run("posts the note with bearer auth and returns the record id", func(t *testing.T) {
		var auth string
		var got struct {
			Data struct {
				Content string `json:"content"`
			} `json:"data"`
		}

		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data":{"id":17}}`))
		}))
		defer upstream.Close()

		f := NewForwarder()
		id, err := f.Forward(context.Background(), tools.Request{
			Target:  upstream.URL,
			Token:   "secret-token",
			Payload: "remember to rotate the keys",
		})

		require.NoError(t, err)
		assert.Equal(t, "17", id)
		assert.Equal(t, "Bearer secret-token", auth)
		assert.Equal(t, "remember to rotate the keys", got.Data.Content)
	})

	t.Run("surfaces upstream failure detail", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid token", http.StatusUnauthorized)
		}))
		defer upstream.Close()

		f := NewForwarder()
		_, err := f.Forward(context.Background(), tools.Request{Target: upstream.URL, Token: "bad", Payload: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "invalid token")
	})

	t.Run("truncated upstream body is an error", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "100")
			w.Write([]byte(`{"da`))
		}))
		defer upstream.Close()

		f := NewForwarder()
		_, err := f.Forward(context.Background(), tools.Request{Target: upstream.URL, Token: "t", Payload: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read strapi response")
	})

	t.Run("malformed upstream body is an error", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer upstream.Close()

		f := NewForwarder()
		_, err := f.Forward(context.Background(), tools.Request{Target: upstream.URL, Token: "t", Payload: "x"})
		assert.Error(t, err)
	})
}
