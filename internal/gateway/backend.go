package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vitrinebr/vitrine/internal/domain"
)

// Backend is the client interface to the external order backend.
// Implementations must distinguish a transport failure (no response
// obtained, reported as a domain EUNAVAILABLE error) from an application
// rejection (*StatusError: a response with a non-2xx status).
type Backend interface {
	CreateOrder(ctx context.Context, payload CreateOrderPayload) (*domain.BackendOrder, error)
	ListOrders(ctx context.Context, id, email string) (json.RawMessage, error)
	GetOrder(ctx context.Context, id string) (json.RawMessage, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (json.RawMessage, error)
	DeleteOrder(ctx context.Context, id string) error
}

// CreateOrderPayload is the order document forwarded to the backend:
// the validated submission plus the authoritative totals computed here.
type CreateOrderPayload struct {
	Items           []domain.OrderItem     `json:"items"`
	DeliveryAddress domain.DeliveryAddress `json:"delivery_address"`
	Payment         domain.Payment         `json:"payment"`
	Shipping        float64                `json:"shipping"`
	Tax             float64                `json:"tax"`
	Subtotal        float64                `json:"subtotal"`
}

// StatusError carries a backend rejection so handlers can relay the
// original status code and message.
type StatusError struct {
	StatusCode int
	Message    string
	Body       json.RawMessage
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order backend responded with status %d: %s", e.StatusCode, e.Message)
}

// HTTPBackend talks to the order backend over HTTP/JSON.
type HTTPBackend struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPBackend creates a backend client for the given base URL.
func NewHTTPBackend(baseURL string, httpClient *http.Client) *HTTPBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPBackend{baseURL: baseURL, httpClient: httpClient}
}

// CreateOrder posts a new order to the backend.
func (b *HTTPBackend) CreateOrder(ctx context.Context, payload CreateOrderPayload) (*domain.BackendOrder, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.Internal(err, "backend.create", "failed to encode order payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/v1/orders/", bytes.NewReader(body))
	if err != nil {
		return nil, domain.Internal(err, "backend.create", "failed to build order request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, domain.Unavailable(err, "backend.create", "Não foi possível conectar com o servidor de pedidos")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Internal(err, "backend.create", "failed to read backend response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    rejectionMessage(resp.StatusCode, respBody),
			Body:       respBody,
		}
	}

	var order domain.BackendOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, domain.Internal(err, "backend.create", "failed to decode backend order")
	}
	return &order, nil
}

// ListOrders queries orders by ID or customer email and returns the
// backend body verbatim.
func (b *HTTPBackend) ListOrders(ctx context.Context, id, email string) (json.RawMessage, error) {
	endpoint := b.baseURL + "/api/v1/orders/"
	if id != "" {
		endpoint += url.PathEscape(id)
	} else if email != "" {
		endpoint += "?email=" + url.QueryEscape(email)
	}
	return b.getRaw(ctx, endpoint, "backend.list")
}

// GetOrder fetches a single order and returns the backend body verbatim.
func (b *HTTPBackend) GetOrder(ctx context.Context, id string) (json.RawMessage, error) {
	return b.getRaw(ctx, b.baseURL+"/api/v1/orders/"+url.PathEscape(id), "backend.get")
}

// UpdateOrderStatus changes an order's status and returns the updated
// order as the backend serialized it.
func (b *HTTPBackend) UpdateOrderStatus(ctx context.Context, id, status string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return nil, domain.Internal(err, "backend.update", "failed to encode status payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.baseURL+"/api/v1/orders/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return nil, domain.Internal(err, "backend.update", "failed to build update request")
	}
	req.Header.Set("Content-Type", "application/json")

	return b.doRaw(req, "backend.update")
}

// DeleteOrder removes an order.
func (b *HTTPBackend) DeleteOrder(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.baseURL+"/api/v1/orders/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Internal(err, "backend.delete", "failed to build delete request")
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = b.doRaw(req, "backend.delete")
	return err
}

func (b *HTTPBackend) getRaw(ctx context.Context, endpoint, op string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to build backend request")
	}
	req.Header.Set("Accept", "application/json")

	return b.doRaw(req, op)
}

func (b *HTTPBackend) doRaw(req *http.Request, op string) (json.RawMessage, error) {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, domain.Unavailable(err, op, "Não foi possível conectar com o servidor de pedidos")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to read backend response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    rejectionMessage(resp.StatusCode, body),
			Body:       body,
		}
	}
	return body, nil
}

// rejectionMessage extracts the user-facing message from a backend error
// body. An unparseable or empty body falls back to a generic message keyed
// by status-code class.
func rejectionMessage(status int, body []byte) string {
	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}

	switch {
	case status == http.StatusNotFound:
		return "Serviço temporariamente indisponível"
	default:
		return "Erro interno do servidor"
	}
}
