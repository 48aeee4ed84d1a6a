package handler

import (
	"go-stocktrack/internal/model"
	"go-stocktrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SupplierHandler struct {
	service service.CatalogService
}

func NewSupplierHandler(s service.CatalogService) *SupplierHandler {
	return &SupplierHandler{service: s}
}

// GET /api/v1/suppliers
func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.GetAllSuppliers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suppliers)
}

// POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req model.Supplier
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supplier, err := h.service.CreateSupplier(&req, getActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(supplier)
}

// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var req model.Supplier
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supplier, err := h.service.UpdateSupplier(id, &req, getActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplier)
}

// DeleteSupplier triggers the cascade: linked products go first
// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if err := h.service.DeleteSupplier(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier and associated products removed"})
}
