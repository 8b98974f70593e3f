package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/compozy/products/pkg/config"
	"github.com/compozy/products/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	productsPath     = "/products"
	productPath      = "/product"
	productByIDPath  = "/product/{id}"
	productTypesPath = "/productTypes"

	// RequestIDHeader carries a per-request identifier for server side correlation.
	RequestIDHeader = "X-Request-ID"
)

// ProductClient is the HTTP collaborator of the products view.
type ProductClient interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProductTypes(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, product NewProduct) error
	DeleteProduct(ctx context.Context, id string) error
}

// Client implements ProductClient on top of resty.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a client for the API described by cfg.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	baseURL := strings.TrimRight(cfg.API.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	return &Client{
		http:    buildHTTPClient(baseURL, cfg.API.Timeout, cfg.API.Debug),
		baseURL: baseURL,
	}, nil
}

// buildHTTPClient creates and configures the HTTP client. Requests are never retried.
func buildHTTPClient(baseURL string, timeout time.Duration, debug bool) *resty.Client {
	client := resty.New().
		SetLogger(restyLogger{log: logger.GetDefault()}).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if debug {
		client.SetDebug(true)
	}
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(RequestIDHeader) == "" {
			req.SetHeader(RequestIDHeader, uuid.NewString())
		}
		return nil
	})
	return client
}

// SetLogger routes HTTP debug traces and transport warnings to log.
func (c *Client) SetLogger(log logger.Logger) *Client {
	c.http.SetLogger(restyLogger{log: log})
	return c
}

// BaseURL returns the API root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListProducts fetches every product.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, ActionList, http.MethodGet, productsPath, nil, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// GetProduct fetches one product. The id is embedded in the path as given.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	params := map[string]string{"id": id}
	if err := c.do(ctx, ActionGet, http.MethodGet, productByIDPath, params, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProductTypes fetches the product type labels.
func (c *Client) ListProductTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.do(ctx, ActionTypes, http.MethodGet, productTypesPath, nil, nil, &types); err != nil {
		return nil, err
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}

// CreateProduct posts a new product. The response body is ignored.
func (c *Client) CreateProduct(ctx context.Context, product NewProduct) error {
	return c.do(ctx, ActionAdd, http.MethodPost, productPath, nil, product, nil)
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	params := map[string]string{"id": id}
	return c.do(ctx, ActionDelete, http.MethodDelete, productByIDPath, params, nil, nil)
}

// do performs one request and decodes a 2xx body into result when non-nil.
func (c *Client) do(
	ctx context.Context,
	action Action,
	method, path string,
	pathParams map[string]string,
	body any,
	result any,
) error {
	log := logger.FromContext(ctx)
	req := c.http.R().SetContext(ctx)
	if pathParams != nil {
		req.SetPathParams(pathParams)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		apiErr := transportError(action, err)
		log.Debug("API request failed", "action", action, "method", method, "path", path, "kind", apiErr.Kind)
		return apiErr
	}
	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		apiErr := statusError(action, status, resp.Body())
		log.Debug("API request rejected", "action", action, "method", method, "path", path, "status", status)
		return apiErr
	}
	if result != nil {
		if err := json.Unmarshal(resp.Body(), result); err != nil {
			return decodeError(action, status, err)
		}
	}
	log.Debug("API request completed", "action", action, "method", method, "path", path, "status", status)
	return nil
}
