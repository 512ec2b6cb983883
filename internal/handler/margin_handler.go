package handler

import (
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/auth"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/pricing"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MarginHandler struct {
	service service.MarginService
}

func NewMarginHandler(s service.MarginService) *MarginHandler {
	return &MarginHandler{service: s}
}

func (h *MarginHandler) GetRetailMargins(c *fiber.Ctx) error {
	rows, err := h.service.ListRetail()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(rows)
}

type retailMarginRequest struct {
	Margin float64 `json:"margem"`
}

func (h *MarginHandler) SaveRetailMargin(c *fiber.Ctx) error {
	var req retailMarginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	row, err := h.service.SaveRetail(auth.FromCtx(c), c.Params("id"), req.Margin)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Margem atualizada", "data": row})
}

func (h *MarginHandler) ApplyGlobalRetailMargin(c *fiber.Ctx) error {
	var req retailMarginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	count, err := h.service.ApplyRetailGlobal(auth.FromCtx(c), req.Margin)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Margem global aplicada", "count": count})
}

func (h *MarginHandler) GetWholesaleMargins(c *fiber.Ctx) error {
	rows, err := h.service.ListWholesale()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(rows)
}

type wholesaleMarginRequest struct {
	Tier   string  `json:"faixa"`
	Margin float64 `json:"margem"`
}

func (h *MarginHandler) SaveWholesaleMargin(c *fiber.Ctx) error {
	var req wholesaleMarginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	row, err := h.service.SaveWholesale(auth.FromCtx(c), c.Params("id"), pricing.BulkTier(req.Tier), req.Margin)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Margem de atacado atualizada", "data": row})
}

type globalWholesaleRequest struct {
	Margin3kg  float64 `json:"margem_3kg"`
	Margin5kg  float64 `json:"margem_5kg"`
	Margin10kg float64 `json:"margem_10kg"`
}

func (h *MarginHandler) ApplyGlobalWholesaleMargins(c *fiber.Ctx) error {
	var req globalWholesaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	count, err := h.service.ApplyWholesaleGlobal(auth.FromCtx(c), req.Margin3kg, req.Margin5kg, req.Margin10kg)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Margens de atacado aplicadas", "count": count})
}
