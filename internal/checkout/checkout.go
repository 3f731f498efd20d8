// Package checkout implements the two-step checkout flow: collect the
// delivery data, then the payment data, then submit the assembled order
// through the order gateway. State lives server-side per session.
package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/vitrinebr/vitrine/internal/cart"
	"github.com/vitrinebr/vitrine/internal/domain"
	"github.com/vitrinebr/vitrine/internal/gateway"
	"github.com/vitrinebr/vitrine/internal/postcode"
	"github.com/vitrinebr/vitrine/internal/pricing"
)

// Step identifies which form the checkout is currently collecting.
type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
)

var (
	ErrEmptyCart        = &domain.Error{Code: domain.EINVALID, Message: "Adicione produtos ao carrinho antes de finalizar a compra."}
	ErrMissingShipping  = &domain.Error{Code: domain.EINVALID, Message: "Por favor, preencha todos os campos obrigatórios."}
	ErrMissingCardData  = &domain.Error{Code: domain.EINVALID, Message: "Por favor, preencha todos os dados do cartão."}
	ErrTermsNotAccepted = &domain.Error{Code: domain.EINVALID, Message: "Você deve aceitar os termos e condições para continuar."}
	ErrNotAtPayment     = &domain.Error{Code: domain.EINVALID, Message: "Preencha os dados de entrega antes de finalizar a compra."}
)

// ShippingForm is the delivery step of the checkout. Everything but the
// complement is required; whitespace-only values do not count.
type ShippingForm struct {
	Email      string `json:"email" validate:"notblank"`
	FirstName  string `json:"first_name" validate:"notblank"`
	LastName   string `json:"last_name" validate:"notblank"`
	Address    string `json:"address" validate:"notblank"`
	Complement string `json:"complement"`
	City       string `json:"city" validate:"notblank"`
	State      string `json:"state" validate:"notblank"`
	ZipCode    string `json:"zip_code" validate:"notblank"`
	Phone      string `json:"phone" validate:"notblank"`
}

// PaymentForm is the card step of the checkout.
type PaymentForm struct {
	CardNumber string `json:"card_number" validate:"notblank"`
	ExpiryDate string `json:"expiry_date" validate:"notblank"`
	CVV        string `json:"cvv" validate:"notblank"`
	CardName   string `json:"card_name" validate:"notblank"`
}

// Session is the checkout state for one browsing session. Entered form
// data survives every failed transition; only a successful submission
// resets it.
type Session struct {
	mu       sync.Mutex
	step     Step
	shipping ShippingForm
	payment  PaymentForm
}

// NewSession creates a checkout session at the shipping step.
func NewSession() *Session {
	return &Session{step: StepShipping}
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Shipping returns the delivery data entered so far.
func (s *Session) Shipping() ShippingForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipping
}

func (s *Session) reset() {
	s.step = StepShipping
	s.shipping = ShippingForm{}
	s.payment = PaymentForm{}
}

// Store owns checkout sessions keyed by session ID.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the checkout session for the given session ID,
// creating one at the shipping step if none exists.
func (st *Store) GetOrCreate(sessionID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[sessionID]
	if !ok {
		sess = NewSession()
		st.sessions[sessionID] = sess
	}
	return sess
}

// Remove discards the checkout session for the given session ID.
func (st *Store) Remove(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, sessionID)
}

// OrderPlacer is the slice of the order gateway the checkout needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*gateway.CreatedOrder, error)
}

// PostcodeResolver resolves a CEP to an address for the autofill.
type PostcodeResolver interface {
	Lookup(ctx context.Context, cep string) (*postcode.Address, error)
}

// Service drives checkout sessions through the two steps.
type Service struct {
	placer   OrderPlacer
	postcode PostcodeResolver
	validate *validator.Validate
}

// NewService creates a checkout service over the given order gateway and
// CEP resolver.
func NewService(placer OrderPlacer, resolver PostcodeResolver) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Service{placer: placer, postcode: resolver, validate: v}
}

// View is the checkout state handed to the UI: the current step, the
// delivery data entered so far and the advisory price quote for the cart.
type View struct {
	Step     Step          `json:"step"`
	Shipping ShippingForm  `json:"shipping"`
	Quote    pricing.Quote `json:"quote"`
}

// View snapshots a session against the given cart.
func (svc *Service) View(sess *Session, c *cart.Cart) View {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return View{
		Step:     sess.step,
		Shipping: sess.shipping,
		Quote:    pricing.ForSubtotal(c.Subtotal()),
	}
}

// SubmitShipping stores the delivery form and, when every required field
// is filled, advances to the payment step. On a validation failure the
// session stays at the shipping step and keeps the entered data.
func (svc *Service) SubmitShipping(sess *Session, form ShippingForm) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.shipping = form

	if err := svc.validate.Struct(form); err != nil {
		return ErrMissingShipping
	}

	sess.step = StepPayment
	return nil
}

// Back returns to the shipping step. Always allowed; entered data is kept.
func (svc *Service) Back(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.step = StepShipping
}

// Submit finalizes the checkout: it requires the payment step, a
// non-empty cart, accepted terms and a complete card form, then assembles
// the order from the cart snapshot and the collected delivery data and
// places it through the gateway. The cart is cleared and the session
// reset only on success; any failure leaves the session at the payment
// step with its data intact.
func (svc *Service) Submit(ctx context.Context, sess *Session, c *cart.Cart, form PaymentForm, agreeToTerms bool) (*gateway.CreatedOrder, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.payment = form

	if sess.step != StepPayment {
		return nil, ErrNotAtPayment
	}

	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if !agreeToTerms {
		return nil, ErrTermsNotAccepted
	}

	if err := svc.validate.Struct(form); err != nil {
		return nil, ErrMissingCardData
	}

	quote := pricing.ForSubtotal(c.Subtotal())

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:       item.Product.ID,
			ProductTitle:    item.Product.Title,
			ProductPrice:    item.Product.Price,
			Quantity:        item.Quantity,
			ProductImageURL: item.Product.Image,
		})
	}

	req := domain.OrderRequest{
		Items: orderItems,
		DeliveryAddress: domain.DeliveryAddress{
			Address:    sess.shipping.Address,
			City:       sess.shipping.City,
			State:      sess.shipping.State,
			Zipcode:    sess.shipping.ZipCode,
			Email:      sess.shipping.Email,
			FirstName:  sess.shipping.FirstName,
			LastName:   sess.shipping.LastName,
			Phone:      sess.shipping.Phone,
			Complement: sess.shipping.Complement,
		},
		Payment: domain.Payment{
			Method:         domain.PaymentCreditCard,
			Amount:         quote.Total,
			Installments:   1,
			CardHolderName: form.CardName,
			CardNumber:     strings.ReplaceAll(form.CardNumber, " ", ""),
		},
	}

	created, err := svc.placer.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	c.Clear()
	sess.reset()
	return created, nil
}

// LookupCEP runs the postal-code autofill. It only fires when the typed
// CEP has exactly 8 digits after stripping formatting; shorter or longer
// input is silently ignored. A successful lookup overwrites the address,
// city and state fields and stores the typed CEP. A failed lookup leaves
// the form untouched; the error is the notice to surface.
func (svc *Service) LookupCEP(ctx context.Context, sess *Session, cep string) (*postcode.Address, bool, error) {
	if len(postcode.Digits(cep)) != 8 {
		return nil, false, nil
	}

	addr, err := svc.postcode.Lookup(ctx, cep)
	if err != nil {
		return nil, false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.shipping.Address = addr.Street
	sess.shipping.City = addr.City
	sess.shipping.State = addr.State
	sess.shipping.ZipCode = cep

	return addr, true, nil
}
