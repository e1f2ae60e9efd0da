package handlers

import (
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/shopspring/decimal"
)

type SweetRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// UpdateSweetRequest only changes the fields that are present.
type UpdateSweetRequest struct {
	Name     *string          `json:"name,omitempty"`
	Category *string          `json:"category,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity *int             `json:"quantity,omitempty"`
}

type SweetResponse struct {
	Id       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func toSweetResponse(s models.Sweet) SweetResponse {
	return SweetResponse{Id: s.ID, Name: s.Name, Category: s.Category, Price: s.Price, Quantity: s.Quantity}
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
