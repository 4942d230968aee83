package handler

import (
	"time"

	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Users ---

type registerUserRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Name     string `json:"name"     form:"name"     validate:"required"`
	Role     string `json:"role"     form:"role"`
}

type updateUserRequest struct {
	Password string `json:"password" form:"password"`
	Name     string `json:"name"     form:"name"`
}

// userResponse never carries the password or its hash.
type userResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// --- Stores ---

type createStoreRequest struct {
	ID          string `json:"id"          form:"id"          validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Address     string `json:"address"     form:"address"     validate:"required"`
}

type updateStoreRequest struct {
	Description string `json:"description" form:"description"`
	Address     string `json:"address"     form:"address"`
}

// --- Catalog ---

type createProductRequest struct {
	ID          string  `json:"id"          validate:"required"`
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Size        string  `json:"size"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"       validate:"min=0"`
	Temperature string  `json:"temperature" validate:"required"`
}

func (r createProductRequest) toInput() ports.ProvisionProductInput {
	return ports.ProvisionProductInput{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Size:        r.Size,
		Category:    r.Category,
		Price:       r.Price,
		Temperature: r.Temperature,
	}
}

type createCustomerRequest struct {
	ID             string `json:"id"              validate:"required"`
	FirstName      string `json:"first_name"      validate:"required"`
	LastName       string `json:"last_name"       validate:"required"`
	Type           string `json:"type"            validate:"required,oneof=guest registered"`
	Email          string `json:"email"           validate:"omitempty,email"`
	AccountAddress string `json:"account_address"`
}

func (r createCustomerRequest) toInput() ports.ProvisionCustomerInput {
	return ports.ProvisionCustomerInput{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Type:           r.Type,
		Email:          r.Email,
		AccountAddress: r.AccountAddress,
	}
}
