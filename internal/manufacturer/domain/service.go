package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, manufacturerID string) (*Response, error)
	UpdateContact(ctx context.Context, req UpdateContactRequest) (*Response, error)
}

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CreateRequest struct {
	// ManufacturerID may be caller-supplied; a system identifier is issued
	// when empty.
	ManufacturerID string  `json:"manufacturerId"`
	Name           string  `json:"name"`
	Contact        Contact `json:"contact"`
	PublicKey      string  `json:"publicKey"`
}

type UpdateContactRequest struct {
	ManufacturerID string
	Contact        Contact
}

type Response struct {
	ManufacturerID string    `json:"manufacturerId"`
	Name           string    `json:"name"`
	Contact        Contact   `json:"contact"`
	PublicKey      string    `json:"publicKey"`
	CreatedAt      time.Time `json:"createdAt"`
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrExists      = errors.New("manufacturer_exists")
	ErrNotFound    = errors.New("manufacturer_not_found")
)
