package handler

import (
	"stocktrack-backend/internal/model"
	"stocktrack-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultListLimit = 50

// LedgerHandler exposes the sales and stock-movement endpoints.
type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

type SaleResponse struct {
	model.SalesTransaction
	ProductName *string `json:"product_name"`
}

func toSaleResponse(sale model.SalesTransaction) SaleResponse {
	resp := SaleResponse{SalesTransaction: sale}
	if sale.Product != nil {
		name := sale.Product.Name
		resp.ProductName = &name
	}
	return resp
}

type MovementResponse struct {
	model.StockMovement
	ProductName *string `json:"product_name"`
}

func toMovementResponse(movement model.StockMovement) MovementResponse {
	resp := MovementResponse{StockMovement: movement}
	if movement.Product != nil {
		name := movement.Product.Name
		resp.ProductName = &name
	}
	return resp
}

// GetSales handles GET /sales?limit=
func (h *LedgerHandler) GetSales(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	sales, err := h.service.GetSales(limit)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		resp = append(resp, toSaleResponse(sale))
	}
	return c.JSON(resp)
}

// CreateSale handles POST /sales
func (h *LedgerHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.RecordSale(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(toSaleResponse(*sale))
}

// GetMovements handles GET /stock-movements?product_id=&limit=
func (h *LedgerHandler) GetMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		productID = &id
	}

	movements, err := h.service.GetMovements(productID, limit)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]MovementResponse, 0, len(movements))
	for _, movement := range movements {
		resp = append(resp, toMovementResponse(movement))
	}
	return c.JSON(resp)
}

// CreateMovement handles POST /stock-movements
func (h *LedgerHandler) CreateMovement(c *fiber.Ctx) error {
	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	movement, err := h.service.RecordMovement(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(toMovementResponse(*movement))
}
