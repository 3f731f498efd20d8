package domain

// Payment method identifiers accepted by the order backend.
const (
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentPix        = "pix"
	PaymentBoleto     = "boleto"
	PaymentCash       = "cash"
)

// Canonical order statuses. The backend returns free text; these are the
// values the dashboards know how to render.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderItem is a single line of an order submission.
type OrderItem struct {
	ProductID       int     `json:"product_id"`
	ProductTitle    string  `json:"product_title"`
	ProductPrice    float64 `json:"product_price"`
	Quantity        int     `json:"quantity"`
	ProductImageURL string  `json:"product_image_url,omitempty"`
}

// DeliveryAddress carries the customer and delivery fields of an order.
// Every field except the complement is mandatory at submission time; the
// notblank rule rejects whitespace-only values. Field order matters: the
// gateway reports the first failing field, in this order.
type DeliveryAddress struct {
	Address    string `json:"delivery_address" validate:"notblank"`
	City       string `json:"delivery_city" validate:"notblank"`
	State      string `json:"delivery_state" validate:"notblank"`
	Zipcode    string `json:"delivery_zipcode" validate:"notblank"`
	Email      string `json:"email" validate:"notblank"`
	FirstName  string `json:"first_name" validate:"notblank"`
	LastName   string `json:"last_name" validate:"notblank"`
	Phone      string `json:"phone" validate:"notblank"`
	Complement string `json:"delivery_complement,omitempty"`
}

// Payment describes how the customer pays for an order.
type Payment struct {
	Method         string  `json:"method" validate:"oneof=credit_card debit_card pix boleto cash"`
	Amount         float64 `json:"amount"`
	Installments   int     `json:"installments,omitempty"`
	CardHolderName string  `json:"card_holder_name,omitempty"`
	CardNumber     string  `json:"card_number,omitempty"`
}

// Totals is the client-computed price breakdown attached to a submission.
// It is advisory only: the gateway always recomputes from the item list.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// OrderRequest is the inbound order submission payload.
type OrderRequest struct {
	Items           []OrderItem     `json:"items"`
	DeliveryAddress DeliveryAddress `json:"delivery_address"`
	Payment         Payment         `json:"payment"`
	Totals          *Totals         `json:"totals,omitempty"`
}

// BackendOrder is the order record as returned by the external order
// backend on creation.
type BackendOrder struct {
	ID          int     `json:"id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	Address     string  `json:"delivery_address"`
	City        string  `json:"delivery_city"`
	State       string  `json:"delivery_state"`
	Zipcode     string  `json:"delivery_zipcode"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Phone       string  `json:"phone"`
}

// Order is the dashboard view of an order: the backend record plus the
// price breakdown and optional payment/item details some backends include.
type Order struct {
	ID            int           `json:"id"`
	TotalAmount   float64       `json:"total_amount"`
	Subtotal      float64       `json:"subtotal,omitempty"`
	Tax           float64       `json:"tax,omitempty"`
	Shipping      float64       `json:"shipping,omitempty"`
	Status        string        `json:"status"`
	PaymentStatus string        `json:"payment_status,omitempty"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at,omitempty"`
	Address       string        `json:"delivery_address"`
	City          string        `json:"delivery_city"`
	State         string        `json:"delivery_state"`
	Zipcode       string        `json:"delivery_zipcode"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Phone         string        `json:"phone"`
	Payment       *OrderPayment `json:"payment,omitempty"`
	Items         []OrderLine   `json:"items,omitempty"`
}

// OrderPayment is the optional payment sub-record on a dashboard order.
type OrderPayment struct {
	Method         string `json:"method"`
	CardHolderName string `json:"card_holder_name,omitempty"`
	CardLastFour   string `json:"card_last_four,omitempty"`
	TransactionID  string `json:"transaction_id,omitempty"`
	Status         string `json:"status,omitempty"`
}

// OrderLine is an item on a dashboard order.
type OrderLine struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
	Subtotal float64 `json:"subtotal,omitempty"`
}
