package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/work-nest/backoffice/internal/api/dto"
	"github.com/work-nest/backoffice/internal/service"
)

// DepartmentHandler exposes department management endpoints.
type DepartmentHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentHandler constructs handler.
func NewDepartmentHandler(departmentService *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departmentService}
}

// Create handles POST /department.
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	dept, message, err := h.departments.Create(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"department": dto.NewDepartmentResponse(dept),
			"message":    message,
		},
	})
}

// List handles GET /department.
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	depts, err := h.departments.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"departments": dto.NewDepartmentResponses(depts)}})
}

// Get handles GET /department/:id.
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	dept, err := h.departments.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"department": dto.NewDepartmentResponse(dept)}})
}

// Search handles GET /department/search?name=.
func (h *DepartmentHandler) Search(c *fiber.Ctx) error {
	depts, err := h.departments.SearchByName(c.Context(), c.Query("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"departments": dto.NewDepartmentResponses(depts)}})
}

// UpdateName handles PATCH /department/:id.
func (h *DepartmentHandler) UpdateName(c *fiber.Ctx) error {
	var req dto.UpdateDepartmentNameRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	dept, message, err := h.departments.UpdateName(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"department": dto.NewDepartmentResponse(dept),
			"message":    message,
		},
	})
}

// AppointHOD handles POST /department/:id/hod.
func (h *DepartmentHandler) AppointHOD(c *fiber.Ctx) error {
	var req dto.AppointHODRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	dept, message, err := h.departments.UpdateHOD(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"department": dto.NewDepartmentResponse(dept),
			"message":    message,
		},
	})
}

// Delete handles DELETE /department/:id; the body carries the member disposition.
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	message, err := h.departments.Delete(c.Context(), c.Params("id"), req.Disposition, req.TargetDepartmentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true, "message": message}})
}

// Employees handles GET /department/employees?department_id=.
func (h *DepartmentHandler) Employees(c *fiber.Ctx) error {
	var departmentID *string
	if id := c.Query("department_id"); id != "" {
		departmentID = &id
	}

	employees, err := h.departments.GetEmployees(c.Context(), departmentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"employees": dto.NewAccountResponses(employees)}})
}

// EmployeeByID handles GET /department/employees/:id.
func (h *DepartmentHandler) EmployeeByID(c *fiber.Ctx) error {
	employee, err := h.departments.GetEmployeeByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"employee": dto.NewAccountResponse(employee)}})
}
