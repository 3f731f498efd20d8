// Package gateway implements the order gateway: it validates inbound
// order submissions, prices them authoritatively, forwards them to the
// external order backend and normalizes the responses. Read, update and
// delete degrade to locally fabricated payloads when the backend is
// unreachable; the Outcome value tells callers which happened.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/vitrinebr/vitrine/internal/domain"
	"github.com/vitrinebr/vitrine/internal/pricing"
)

// Outcome reports whether an operation reached the backend or was
// resolved locally in degraded mode.
type Outcome string

const (
	// OutcomeApplied means the backend processed the operation.
	OutcomeApplied Outcome = "applied"

	// OutcomeAppliedLocally means the backend was unreachable and the
	// response was fabricated locally. The caller cannot assume the
	// backend ever saw the operation.
	OutcomeAppliedLocally Outcome = "applied_locally"
)

// CreatedOrder is the normalized create response: the backend order
// regrouped into delivery and customer blocks.
type CreatedOrder struct {
	ID           int          `json:"id"`
	TotalAmount  float64      `json:"total_amount"`
	Status       string       `json:"status"`
	CreatedAt    string       `json:"created_at"`
	DeliveryInfo DeliveryInfo `json:"delivery_info"`
	CustomerInfo CustomerInfo `json:"customer_info"`
}

// DeliveryInfo is the delivery block of a normalized create response.
type DeliveryInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

// CustomerInfo is the customer block of a normalized create response.
type CustomerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Localized names for the required delivery fields, used to build the
// per-field validation messages. Keys are the DeliveryAddress field names;
// validation reports the first failing field in struct order.
var deliveryFieldNames = map[string]string{
	"Address":   "Endereço de entrega",
	"City":      "Cidade",
	"State":     "Estado",
	"Zipcode":   "CEP",
	"Email":     "Email",
	"FirstName": "Nome",
	"LastName":  "Sobrenome",
	"Phone":     "Telefone",
}

// Service is the order gateway.
type Service struct {
	backend  Backend
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates an order gateway over the given backend client.
func NewService(backend Backend, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Service{
		backend:  backend,
		logger:   logger,
		validate: v,
		now:      time.Now,
	}
}

// CreateOrder validates a submission, recomputes the totals from the item
// list (client-supplied totals are ignored), forwards it to the backend
// and normalizes the response. Validation failures and backend errors are
// returned as-is for the handler to map.
func (s *Service) CreateOrder(ctx context.Context, req domain.OrderRequest) (*CreatedOrder, error) {
	if err := s.validateOrder(req); err != nil {
		return nil, err
	}

	quote := pricing.ForItems(req.Items)

	payment := req.Payment
	if payment.Installments <= 0 {
		payment.Installments = 1
	}
	payment.CardNumber = stripWhitespace(payment.CardNumber)

	payload := CreateOrderPayload{
		Items:           req.Items,
		DeliveryAddress: req.DeliveryAddress,
		Payment:         payment,
		Shipping:        quote.Shipping,
		Tax:             quote.Tax,
		Subtotal:        quote.Subtotal,
	}

	order, err := s.backend.CreateOrder(ctx, payload)
	if err != nil {
		return nil, err
	}

	status := order.Status
	if status == "" {
		status = domain.StatusConfirmed
	}

	return &CreatedOrder{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		Status:      status,
		CreatedAt:   order.CreatedAt,
		DeliveryInfo: DeliveryInfo{
			Address: order.Address,
			City:    order.City,
			State:   order.State,
			Zipcode: order.Zipcode,
		},
		CustomerInfo: CustomerInfo{
			Email: order.Email,
			Name:  strings.TrimSpace(order.FirstName + " " + order.LastName),
			Phone: order.Phone,
		},
	}, nil
}

func (s *Service) validateOrder(req domain.OrderRequest) error {
	const op = "gateway.create"

	if len(req.Items) == 0 {
		return domain.Invalid(op, "Pedido deve ter pelo menos um item")
	}

	if err := s.validate.Struct(req.DeliveryAddress); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			name := deliveryFieldNames[fieldErrs[0].Field()]
			if name == "" {
				name = fieldErrs[0].Field()
			}
			return domain.Invalid(op, name+" é obrigatório")
		}
		return domain.Internal(err, op, "delivery address validation failed")
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Errorf(domain.EINVALID, op, "Quantidade deve ser maior que zero para o produto %d", item.ProductID)
		}
		if item.ProductPrice <= 0 {
			return domain.Errorf(domain.EINVALID, op, "Preço deve ser maior que zero para o produto %d", item.ProductID)
		}
	}

	return nil
}

// GetOrders queries the backend by order ID or customer email and relays
// the body verbatim. Backend rejections are rewritten to the read
// endpoint's messages; transport failures propagate.
func (s *Service) GetOrders(ctx context.Context, id, email string) (json.RawMessage, error) {
	raw, err := s.backend.ListOrders(ctx, id, email)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			message := "Erro ao buscar pedido"
			if statusErr.StatusCode == http.StatusNotFound {
				message = "Pedido não encontrado"
			}
			return nil, &StatusError{StatusCode: statusErr.StatusCode, Message: message, Body: statusErr.Body}
		}
		return nil, err
	}
	return raw, nil
}

// GetOrder fetches a single order. When the backend is unreachable it
// returns the fixed mock order instead of failing; the Outcome tells the
// caller which payload it got. Backend rejections propagate untouched.
func (s *Service) GetOrder(ctx context.Context, id string) (json.RawMessage, Outcome, error) {
	raw, err := s.backend.GetOrder(ctx, id)
	if err == nil {
		return raw, OutcomeApplied, nil
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return nil, "", err
	}

	s.logger.Warn("order backend unreachable, serving mock order", "order_id", id, "error", err)
	body, merr := json.Marshal(s.MockOrder(id))
	if merr != nil {
		return nil, "", domain.Internal(merr, "gateway.get", "failed to encode mock order")
	}
	return body, OutcomeAppliedLocally, nil
}

// UpdateResult is the outcome of an update or delete operation.
type UpdateResult struct {
	Outcome Outcome
	Body    json.RawMessage
}

// UpdateStatus forwards a status change. A blank status is a validation
// error. When the backend is unreachable the result is a fabricated local
// success echoing the requested id and status with a fresh timestamp.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*UpdateResult, error) {
	if strings.TrimSpace(status) == "" {
		return nil, domain.Invalid("gateway.update", "Status é obrigatório")
	}

	raw, err := s.backend.UpdateOrderStatus(ctx, id, status)
	if err == nil {
		return &UpdateResult{Outcome: OutcomeApplied, Body: raw}, nil
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return nil, err
	}

	s.logger.Warn("order backend unreachable, applying status update locally", "order_id", id, "status", status, "error", err)
	body, merr := json.Marshal(map[string]any{
		"id":         atoiOrZero(id),
		"status":     status,
		"updated_at": s.now().UTC().Format(time.RFC3339),
		"message":    "Status atualizado localmente (backend indisponível)",
	})
	if merr != nil {
		return nil, domain.Internal(merr, "gateway.update", "failed to encode local update response")
	}
	return &UpdateResult{Outcome: OutcomeAppliedLocally, Body: body}, nil
}

// Delete forwards an order deletion. When the backend is unreachable the
// result is a fabricated local success echoing the id.
func (s *Service) Delete(ctx context.Context, id string) (*UpdateResult, error) {
	err := s.backend.DeleteOrder(ctx, id)
	if err == nil {
		body, merr := json.Marshal(map[string]any{
			"message": "Pedido excluído com sucesso",
			"id":      atoiOrZero(id),
		})
		if merr != nil {
			return nil, domain.Internal(merr, "gateway.delete", "failed to encode delete response")
		}
		return &UpdateResult{Outcome: OutcomeApplied, Body: body}, nil
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return nil, err
	}

	s.logger.Warn("order backend unreachable, applying delete locally", "order_id", id, "error", err)
	body, merr := json.Marshal(map[string]any{
		"message": "Pedido excluído localmente (backend indisponível)",
		"id":      atoiOrZero(id),
	})
	if merr != nil {
		return nil, domain.Internal(merr, "gateway.delete", "failed to encode local delete response")
	}
	return &UpdateResult{Outcome: OutcomeAppliedLocally, Body: body}, nil
}

// ListDashboardOrders fetches all orders (optionally by customer email)
// and decodes them for the dashboard views.
func (s *Service) ListDashboardOrders(ctx context.Context, email string) ([]domain.Order, error) {
	raw, err := s.GetOrders(ctx, "", email)
	if err != nil {
		return nil, err
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		// Some backends wrap the list in an envelope.
		var wrapped struct {
			Orders []domain.Order `json:"orders"`
		}
		if werr := json.Unmarshal(raw, &wrapped); werr != nil {
			return nil, domain.Internal(err, "gateway.list", "failed to decode backend order list")
		}
		orders = wrapped.Orders
	}
	return orders, nil
}

// MockOrder is the fixed degraded-mode order payload served when the
// backend cannot be reached on a single-order read.
func (s *Service) MockOrder(id string) domain.Order {
	now := s.now().UTC().Format(time.RFC3339)
	return domain.Order{
		ID:            atoiOrZero(id),
		TotalAmount:   299.99,
		Subtotal:      249.99,
		Tax:           25.00,
		Shipping:      25.00,
		Status:        domain.StatusPending,
		PaymentStatus: "paid",
		CreatedAt:     now,
		UpdatedAt:     now,
		Address:       "Rua Example, 123",
		City:          "São Paulo",
		State:         "SP",
		Zipcode:       "01234-567",
		Email:         "cliente@exemplo.com",
		FirstName:     "Cliente",
		LastName:      "Teste",
		Phone:         "(11) 99999-9999",
		Items: []domain.OrderLine{
			{
				ID:       1,
				Title:    "Produto Exemplo",
				Price:    249.99,
				Quantity: 1,
				Image:    "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			},
		},
	}
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
