package dto

import (
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/service"
)

// EmployeeListResponse is the paginated employee envelope.
type EmployeeListResponse struct {
	service.PageInfo
	Data []domain.Employee `json:"data"`
}

// ListingListResponse is the paginated listing envelope.
type ListingListResponse struct {
	service.PageInfo
	Data []domain.Listing `json:"data"`
}

// ListingMessageResponse wraps a listing with a status message.
type ListingMessageResponse struct {
	Message string          `json:"message"`
	Data    *domain.Listing `json:"data"`
}
