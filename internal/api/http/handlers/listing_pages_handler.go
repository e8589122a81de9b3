package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/service"
)

const listingLayout = "layouts/airbnb"

// naturalListingOrder follows system ids, which grow with insertion time.
const naturalListingOrder = "_id"

// ListingPagesHandler renders the listing HTML forms.
type ListingPagesHandler struct {
	listings *service.ListingService
}

func NewListingPagesHandler(listings *service.ListingService) *ListingPagesHandler {
	return &ListingPagesHandler{listings: listings}
}

// Index lists listings in insertion order unless a sort is requested.
func (h *ListingPagesHandler) Index(c *fiber.Ctx) error {
	page, limit, sort := listParams(c)
	query := service.ListingListQuery{Page: page, Limit: limit, Sort: sort}
	if query.Sort == "" {
		query.Sort = naturalListingOrder
	}
	result, err := h.listings.List(c.UserContext(), query)
	if err != nil {
		msg, err := formMessage(err, "")
		if err != nil {
			return err
		}
		return c.Render("airbnb/index", fiber.Map{"error": msg, "sortBy": sort}, listingLayout)
	}

	return c.Render("airbnb/index", fiber.Map{
		"airbnbs":     result.Items,
		"currentPage": result.Page,
		"totalPages":  result.TotalPages,
		"hasPrev":     result.HasPrev,
		"hasNext":     result.HasNext,
		"prevPage":    result.PrevPage,
		"nextPage":    result.NextPage,
		"limit":       result.Limit,
		"total":       result.Total,
		"sortBy":      sort,
	}, listingLayout)
}

func (h *ListingPagesHandler) Find(c *fiber.Ctx) error {
	data := fiber.Map{}
	if c.Method() == fiber.MethodPost {
		listing, err := h.listings.Get(c.UserContext(), c.FormValue("id"))
		if err != nil {
			msg, err := formMessage(err, "No listing found with that ID")
			if err != nil {
				return err
			}
			data["error"] = msg
		} else {
			data["airbnb"] = listing
		}
	}
	return c.Render("airbnb/find", data, listingLayout)
}

func (h *ListingPagesHandler) Add(c *fiber.Ctx) error {
	data := fiber.Map{}
	if c.Method() == fiber.MethodPost {
		doc, err := decodeDocument(c)
		if err == nil {
			_, err = h.listings.Create(c.UserContext(), doc)
		}
		if err != nil {
			if _, err := formMessage(err, ""); err != nil {
				return err
			}
			data["error"] = "Error adding listing"
		} else {
			data["success"] = "Listing added successfully!"
		}
	}
	return c.Render("airbnb/add", data, listingLayout)
}

// Update changes only the name and price of the listing named by the form.
func (h *ListingPagesHandler) Update(c *fiber.Ctx) error {
	data := fiber.Map{}
	if c.Method() == fiber.MethodPost {
		patch := map[string]any{}
		if name := formValue(c, "NAME"); name != nil {
			patch["NAME"] = *name
		}
		if price := formValue(c, "price"); price != nil {
			patch["price"] = *price
		}
		listing, err := h.listings.Update(c.UserContext(), c.FormValue("id"), patch)
		if err != nil {
			msg, err := formMessage(err, "No listing found")
			if err != nil {
				return err
			}
			data["error"] = msg
		} else {
			data["success"] = "Listing updated successfully!"
			data["airbnb"] = listing
		}
	}
	return c.Render("airbnb/update", data, listingLayout)
}

func (h *ListingPagesHandler) Delete(c *fiber.Ctx) error {
	data := fiber.Map{}
	if c.Method() == fiber.MethodPost {
		if _, err := h.listings.Delete(c.UserContext(), c.FormValue("id")); err != nil {
			msg, err := formMessage(err, "No listing found to delete")
			if err != nil {
				return err
			}
			data["error"] = msg
		} else {
			data["success"] = "Listing deleted successfully"
		}
	}
	return c.Render("airbnb/delete", data, listingLayout)
}
