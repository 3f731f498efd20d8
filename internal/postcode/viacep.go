// Package postcode looks up Brazilian postal codes (CEP) against the
// public viacep service. Lookups are advisory autofill for the checkout
// delivery form, never a gate on submission.
package postcode

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/vitrinebr/vitrine/internal/domain"
)

// DefaultBaseURL is the public viacep origin.
const DefaultBaseURL = "https://viacep.com.br"

var ErrNotFound = &domain.Error{Code: domain.ENOTFOUND, Message: "CEP não encontrado"}

// Address is the normalized lookup result.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Client queries the viacep API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client against the public viacep service.
func New(httpClient *http.Client) *Client {
	return NewWithBaseURL(DefaultBaseURL, httpClient)
}

// NewWithBaseURL creates a client against an explicit origin, for tests.
func NewWithBaseURL(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Digits strips every non-digit rune from a CEP as typed by the user.
func Digits(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup resolves a CEP to an address. The CEP must contain exactly 8
// digits after stripping formatting; anything else is a validation error.
// A CEP the service does not know yields ErrNotFound.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	digits := Digits(cep)
	if len(digits) != 8 {
		return nil, domain.Invalid("postcode.lookup", "CEP deve ter 8 dígitos")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ws/"+digits+"/json/", nil)
	if err != nil {
		return nil, domain.Internal(err, "postcode.lookup", "failed to build CEP request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.Unavailable(err, "postcode.lookup", "Serviço de CEP indisponível")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.Errorf(domain.EINTERNAL, "postcode.lookup", "CEP service responded with status %d", resp.StatusCode)
	}

	var body struct {
		CEP          string `json:"cep"`
		Street       string `json:"logradouro"`
		Complement   string `json:"complemento"`
		Neighborhood string `json:"bairro"`
		City         string `json:"localidade"`
		State        string `json:"uf"`
		Erro         bool   `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.Internal(err, "postcode.lookup", "failed to decode CEP response")
	}

	if body.Erro {
		return nil, ErrNotFound
	}

	return &Address{
		CEP:          body.CEP,
		Street:       body.Street,
		Complement:   body.Complement,
		Neighborhood: body.Neighborhood,
		City:         body.City,
		State:        body.State,
	}, nil
}
