package models

import (
	"time"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
)

// Request модели

// RegisterClientRequest запрос на регистрацию клиента
type RegisterClientRequest struct {
	Name    string `json:"name" validate:"required,max=128"`
	Surname string `json:"surname" validate:"max=128"`
	Contact string `json:"contact" validate:"required,max=256"`
}

// GuideRequest данные гида
type GuideRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname"`
	Language string `json:"language" validate:"required"`
}

// ActivityRequest данные активности пакета
type ActivityRequest struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"duration" validate:"gte=0"`
	MaxCapacity int           `json:"maxCapacity" validate:"min=1"`
}

// Response модели

// ClientResponse данные клиента
type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Contact string `json:"contact"`
}

// ExperienceResponse краткие данные предложения
type ExperienceResponse struct {
	ID                 string        `json:"id"`
	Kind               string        `json:"kind"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	Price              float64       `json:"price"`
	DiscountThreshold  int           `json:"discountThreshold"`
	DiscountPercentage float64       `json:"discountPercentage"`
	Date               string        `json:"date"` // "2025-07-01"
	Duration           time.Duration `json:"duration"`
	MaxCapacity        int           `json:"maxCapacity"`
	RequiresGuide      bool          `json:"requiresGuide"`
}

// Методы конвертации

// FromDomainClient конвертирует клиента в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:      c.ID(),
		Name:    c.Name(),
		Surname: c.Surname(),
		Contact: c.Contact(),
	}
}

// FromDomainExperience конвертирует предложение в DTO.
// Для пакета без активностей продолжительность и вместимость равны нулю.
func FromDomainExperience(e domain.Experience) ExperienceResponse {
	resp := ExperienceResponse{
		ID:                 e.ID(),
		Kind:               string(e.Kind()),
		Name:               e.Name(),
		Description:        e.Description(),
		Price:              e.Price(),
		DiscountThreshold:  e.DiscountThreshold(),
		DiscountPercentage: e.DiscountPercentage(),
		Date:               e.Date().Format(domain.DateFormat),
		RequiresGuide:      e.RequiresGuide(),
	}
	if d, err := e.Duration(); err == nil {
		resp.Duration = d
	}
	if c, err := e.MaxCapacity(); err == nil {
		resp.MaxCapacity = c
	}
	return resp
}
