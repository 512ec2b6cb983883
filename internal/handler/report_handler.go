package handler

import (
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports service.ReportService
	history service.HistoryService
}

func NewReportHandler(reports service.ReportService, history service.HistoryService) *ReportHandler {
	return &ReportHandler{reports: reports, history: history}
}

func (h *ReportHandler) GetOverview(c *fiber.Ctx) error {
	stats, err := h.reports.Overview()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}

func (h *ReportHandler) GetHistory(c *fiber.Ctx) error {
	entries, err := h.history.ListHistory()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}
