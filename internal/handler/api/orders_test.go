package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrinebr/vitrine/internal/gateway"
	"github.com/vitrinebr/vitrine/internal/handler/api"
	"github.com/vitrinebr/vitrine/internal/router"
	"github.com/vitrinebr/vitrine/internal/routes"
)

// newOrderRouter wires the order routes against the given backend URL,
// the way main does.
func newOrderRouter(backendURL string, client *http.Client) *router.Router {
	backend := gateway.NewHTTPBackend(backendURL, client)
	svc := gateway.NewService(backend, nil)

	r := router.New()
	routes.RegisterAPIRoutes(r, routes.APIDeps{OrderHandler: api.NewOrderHandler(svc, nil)})
	return r
}

// unreachableRouter points at a server that is already closed.
func unreachableRouter(t *testing.T) *router.Router {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return newOrderRouter(srv.URL, srv.Client())
}

const validOrderBody = `{
	"items": [{"product_id": 1, "product_title": "Mochila", "product_price": 100, "quantity": 3}],
	"delivery_address": {
		"delivery_address": "Avenida Paulista, 1000",
		"delivery_city": "São Paulo",
		"delivery_state": "SP",
		"delivery_zipcode": "01310-100",
		"email": "ana@exemplo.com",
		"first_name": "Ana",
		"last_name": "Souza",
		"phone": "(11) 98888-7777"
	},
	"payment": {"method": "credit_card", "amount": 330}
}`

func TestCreateOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/orders/", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 300.0, payload["subtotal"])
		assert.Equal(t, 0.0, payload["shipping"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 42, "total_amount": 330, "status": "pending", "created_at": "2026-01-02T03:04:05Z",
			"delivery_address": "Avenida Paulista, 1000", "delivery_city": "São Paulo", "delivery_state": "SP",
			"delivery_zipcode": "01310-100", "email": "ana@exemplo.com", "first_name": "Ana", "last_name": "Souza",
			"phone": "(11) 98888-7777"}`))
	}))
	defer srv.Close()

	r := newOrderRouter(srv.URL, srv.Client())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(validOrderBody)))

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Order   struct {
			ID           int `json:"id"`
			CustomerInfo struct {
				Name string `json:"name"`
			} `json:"customer_info"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Pedido criado com sucesso!", body.Message)
	assert.Equal(t, 42, body.Order.ID)
	assert.Equal(t, "Ana Souza", body.Order.CustomerInfo.Name)
}

func TestCreateOrder_ValidationError(t *testing.T) {
	r := unreachableRouter(t) // validation fails before the backend is contacted

	body := strings.Replace(validOrderBody, `"quantity": 3`, `"quantity": 0`, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Quantidade deve ser maior que zero para o produto 1"}`, w.Body.String())
}

func TestCreateOrder_BackendRejectionRelayed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "Estoque insuficiente"}`))
	}))
	defer srv.Close()

	r := newOrderRouter(srv.URL, srv.Client())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(validOrderBody)))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error": "Estoque insuficiente"}`, w.Body.String())
}

func TestCreateOrder_UnparseableNotFoundBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	r := newOrderRouter(srv.URL, srv.Client())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(validOrderBody)))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Serviço temporariamente indisponível"}`, w.Body.String())
}

func TestCreateOrder_BackendUnreachable(t *testing.T) {
	r := unreachableRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(validOrderBody)))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Serviço temporariamente indisponível. Tente novamente em alguns minutos.", body["error"])
	assert.Equal(t, "Não foi possível conectar com o servidor de pedidos", body["details"])
}

func TestListOrders_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/99", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := newOrderRouter(srv.URL, srv.Client())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order?id=99", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Pedido não encontrado"}`, w.Body.String())
}

func TestGetOrder_UnreachableServesMock(t *testing.T) {
	r := unreachableRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order/55", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local", w.Header().Get(api.SyncHeader))

	var body struct {
		ID          int     `json:"id"`
		TotalAmount float64 `json:"total_amount"`
		Status      string  `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 55, body.ID)
	assert.Equal(t, 299.99, body.TotalAmount)
	assert.Equal(t, "pending", body.Status)
}

func TestUpdateOrder_RequiresStatus(t *testing.T) {
	r := unreachableRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/order/12", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Status é obrigatório"}`, w.Body.String())
}

func TestUpdateOrder_UnreachableFabricatesLocalSuccess(t *testing.T) {
	r := unreachableRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/order/12", strings.NewReader(`{"status": "shipped"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local", w.Header().Get(api.SyncHeader))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 12.0, body["id"])
	assert.Equal(t, "shipped", body["status"])
	assert.Equal(t, "Status atualizado localmente (backend indisponível)", body["message"])
}

func TestDeleteOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/orders/33", r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	r := newOrderRouter(srv.URL, srv.Client())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/order/33", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "applied", w.Header().Get(api.SyncHeader))
	assert.JSONEq(t, `{"message": "Pedido excluído com sucesso", "id": 33}`, w.Body.String())
}

func TestDeleteOrder_UnreachableFabricatesLocalSuccess(t *testing.T) {
	r := unreachableRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/order/33", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local", w.Header().Get(api.SyncHeader))
	assert.JSONEq(t, `{"message": "Pedido excluído localmente (backend indisponível)", "id": 33}`, w.Body.String())
}
