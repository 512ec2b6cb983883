package handler

import (
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StorefrontHandler struct {
	service service.StorefrontService
}

func NewStorefrontHandler(s service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{service: s}
}

func (h *StorefrontHandler) GetCatalog(c *fiber.Ctx) error {
	products, err := h.service.Catalog(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *StorefrontHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Checkout(c.Context(), &req)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Pedido registrado", "data": result})
}
