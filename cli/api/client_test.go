package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/compozy/products/pkg/config"
	"github.com/compozy/products/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := config.Default()
	cfg.API.BaseURL = server.URL + "/api"
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("Should create client with the configured base URL", func(t *testing.T) {
		cfg := config.Default()
		cfg.API.BaseURL = "http://localhost:3000/api/"

		client, err := NewClient(cfg)

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000/api", client.BaseURL())
	})

	t.Run("Should require configuration", func(t *testing.T) {
		_, err := NewClient(nil)

		require.Error(t, err)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("Should decode products with string and numeric fields", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/products", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `[
				{"id": 1, "type": "Electronics", "name": "Widget", "price": 9.99},
				{"id": "b2", "type": "Books", "name": "Go", "price": "25"}
			]`)
		})

		products, err := client.ListProducts(t.Context())

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, Product{ID: "1", Type: "Electronics", Name: "Widget", Price: "9.99"}, products[0])
		assert.Equal(t, Product{ID: "b2", Type: "Books", Name: "Go", Price: "25"}, products[1])
	})

	t.Run("Should return an empty slice for an empty array", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[]`)
		})

		products, err := client.ListProducts(t.Context())

		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("Should classify server errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"message":"database unavailable"}`)
		})

		_, err := client.ListProducts(t.Context())

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ActionList, apiErr.Action)
		assert.Equal(t, KindServer, apiErr.Kind)
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.Equal(t, "database unavailable", apiErr.Message)
	})

	t.Run("Should classify malformed bodies as server errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"not":"an array"}`)
		})

		_, err := client.ListProducts(t.Context())

		assert.Equal(t, KindServer, KindOf(err))
	})

	t.Run("Should not retry failed requests", func(t *testing.T) {
		attempts := 0
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			attempts++
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.ListProducts(t.Context())

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Should embed the id in the path", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/product/42", r.URL.Path)
			_, _ = io.WriteString(w, `{"id":42,"type":"Electronics","name":"Widget","price":"9.99"}`)
		})

		product, err := client.GetProduct(t.Context(), "42")

		require.NoError(t, err)
		assert.Equal(t, Flex("42"), product.ID)
		assert.Equal(t, "$9.99", product.FormatPrice())
	})

	t.Run("Should report not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"Product not found"}`)
		})

		_, err := client.GetProduct(t.Context(), "404")

		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Contains(t, err.Error(), "get not_found (status 404): Product not found")
	})

	t.Run("Should send the raw id path-escaped", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/product/a%20b", r.URL.EscapedPath())
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetProduct(t.Context(), "a b")

		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestListProductTypes(t *testing.T) {
	t.Run("Should decode type labels", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/productTypes", r.URL.Path)
			_, _ = io.WriteString(w, `["Electronics","Books"]`)
		})

		types, err := client.ListProductTypes(t.Context())

		require.NoError(t, err)
		assert.Equal(t, []string{"Electronics", "Books"}, types)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("Should post the draft exactly as typed", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/product", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"type": "Electronics", "name": "Widget", "price": "9.99"}, body)
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `created`)
		})

		err := client.CreateProduct(t.Context(), NewProduct{Type: "Electronics", Name: "Widget", Price: "9.99"})

		require.NoError(t, err)
	})

	t.Run("Should classify client errors as validation errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"message":"price must be a number"}`)
		})

		err := client.CreateProduct(t.Context(), NewProduct{})

		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Should issue a DELETE for the id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/product/7", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, client.DeleteProduct(t.Context(), "7"))
	})
}

func TestTransportErrors(t *testing.T) {
	t.Run("Should classify unreachable servers as network errors", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		cfg := config.Default()
		cfg.API.BaseURL = server.URL + "/api"
		server.Close()
		client, err := NewClient(cfg)
		require.NoError(t, err)

		_, err = client.ListProducts(t.Context())

		assert.Equal(t, KindNetwork, KindOf(err))
	})

	t.Run("Should classify canceled contexts", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[]`)
		})
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := client.ListProducts(ctx)

		assert.Equal(t, KindCanceled, KindOf(err))
	})

	t.Run("Should honor the configured timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			<-release
			_, _ = io.WriteString(w, `[]`)
		}))
		t.Cleanup(server.Close)
		t.Cleanup(func() { close(release) })
		cfg := config.Default()
		cfg.API.BaseURL = server.URL + "/api"
		cfg.API.Timeout = 50 * time.Millisecond
		client, err := NewClient(cfg)
		require.NoError(t, err)

		_, err = client.ListProducts(t.Context())

		assert.Equal(t, KindNetwork, KindOf(err))
	})
}

func TestClientDebugTrace(t *testing.T) {
	t.Run("Should write request dumps to the given logger", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[]`)
		}))
		t.Cleanup(server.Close)
		cfg := config.Default()
		cfg.API.BaseURL = server.URL + "/api"
		cfg.API.Debug = true
		client, err := NewClient(cfg)
		require.NoError(t, err)
		var buf bytes.Buffer
		client.SetLogger(logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Output: &buf, TimeFormat: "15:04:05"}))

		_, err = client.ListProducts(t.Context())

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "REQUEST")
		assert.Contains(t, buf.String(), "/api/products")
	})
}
