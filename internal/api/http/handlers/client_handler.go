package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/work-nest/backoffice/internal/api/dto"
	"github.com/work-nest/backoffice/internal/service"
)

// ClientHandler exposes client record endpoints.
type ClientHandler struct {
	clients *service.ClientService
}

// NewClientHandler constructs handler.
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clientService}
}

// Create handles POST /client.
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	client, err := h.clients.Create(c.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"client": dto.NewClientResponse(client)}})
}

// Get handles GET /client/:id.
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	client, err := h.clients.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"client": dto.NewClientResponse(client)}})
}

// List handles GET /client.
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var search *string
	if q := c.Query("search"); q != "" {
		search = &q
	}
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	clients, total, err := h.clients.List(c.Context(), search, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewClientResponses(clients),
		"meta": fiber.Map{"total": total, "page": page, "limit": limit},
	})
}
