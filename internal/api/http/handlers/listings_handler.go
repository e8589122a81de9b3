package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/service"
)

// ListingsHandler serves the listing JSON API. Path keys resolve by
// application id first and fall back to the system id.
type ListingsHandler struct {
	listings *service.ListingService
}

func NewListingsHandler(listings *service.ListingService) *ListingsHandler {
	return &ListingsHandler{listings: listings}
}

// List godoc
// GET /api/airbnb?page=&limit=&sortBy=
func (h *ListingsHandler) List(c *fiber.Ctx) error {
	page, limit, sort := listParams(c)
	result, err := h.listings.List(c.UserContext(), service.ListingListQuery{Page: page, Limit: limit, Sort: sort})
	if err != nil {
		return err
	}
	return c.JSON(dto.ListingListResponse{PageInfo: result.PageInfo, Data: result.Items})
}

func (h *ListingsHandler) Get(c *fiber.Ctx) error {
	listing, err := h.listings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(listing)
}

func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	doc, err := decodeDocument(c)
	if err != nil {
		return err
	}
	listing, err := h.listings.Create(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ListingMessageResponse{
		Message: "Listing created successfully",
		Data:    listing,
	})
}

func (h *ListingsHandler) Update(c *fiber.Ctx) error {
	doc, err := decodeDocument(c)
	if err != nil {
		return err
	}
	listing, err := h.listings.Update(c.UserContext(), c.Params("id"), doc)
	if err != nil {
		return err
	}
	return c.JSON(dto.ListingMessageResponse{
		Message: "Listing updated successfully",
		Data:    listing,
	})
}

func (h *ListingsHandler) Delete(c *fiber.Ctx) error {
	listing, err := h.listings.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ListingMessageResponse{
		Message: "Listing deleted successfully",
		Data:    listing,
	})
}
