package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/work-nest/backoffice/internal/api/dto"
	"github.com/work-nest/backoffice/internal/domain"
	"github.com/work-nest/backoffice/internal/service"
)

// BookingHandler exposes booking endpoints.
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler constructs handler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookingService}
}

// Create handles POST /booking.
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	booking, err := h.bookings.Create(c.Context(), service.BookingCreateInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		AssignedUserID: req.AssignedUserID,
		ClientID:       req.ClientID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"booking": dto.NewBookingResponse(booking),
			"message": "Booking created successfully",
		},
	})
}

// Update handles PATCH /booking/:id.
func (h *BookingHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	booking, err := h.bookings.Update(c.Context(), c.Params("id"), service.BookingUpdateInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		AssignedUserID: req.AssignedUserID,
		ClientID:       req.ClientID,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"booking": dto.NewBookingResponse(booking),
			"message": "Booking updated successfully",
		},
	})
}

// Get handles GET /booking/:id.
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	booking, err := h.bookings.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"booking": dto.NewBookingResponse(booking)}})
}

// List handles GET /booking.
func (h *BookingHandler) List(c *fiber.Ctx) error {
	var query dto.ListBookingsQuery
	if err := c.QueryParser(&query); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid query")
	}

	input := service.BookingListInput{Page: query.Page, Limit: query.Limit}
	if query.Search != "" {
		input.Search = &query.Search
	}
	if query.Status != "" {
		status := domain.BookingStatus(query.Status)
		if !status.Valid() {
			return fiber.NewError(http.StatusBadRequest, "invalid booking status")
		}
		input.Status = &status
	}
	if query.StartDate != "" {
		from, err := time.Parse(time.RFC3339, query.StartDate)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid start_date")
		}
		input.StartFrom = &from
	}
	if query.EndDate != "" {
		to, err := time.Parse(time.RFC3339, query.EndDate)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid end_date")
		}
		input.StartTo = &to
	}

	page, err := h.bookings.List(c.Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewBookingResponses(page.Bookings),
		"meta": fiber.Map{
			"total":       page.Total,
			"page":        page.Page,
			"limit":       page.Limit,
			"total_pages": page.TotalPages,
		},
	})
}

// Delete handles DELETE /booking/:id.
func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	if err := h.bookings.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}
