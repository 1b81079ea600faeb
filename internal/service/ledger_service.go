package service

import (
	"fmt"
	"time"

	"stocktrack-backend/internal/apperr"
	"stocktrack-backend/internal/model"
	"stocktrack-backend/internal/repository"
	"stocktrack-backend/internal/ws"
	"stocktrack-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRequest is the payload for recording a sale.
type SaleRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity     int       `json:"quantity" validate:"required,gte=1"`
	CustomerName string    `json:"customer_name"`
	Notes        string    `json:"notes"`
}

// MovementRequest is the payload for a direct stock movement.
type MovementRequest struct {
	ProductID       uuid.UUID          `json:"product_id" validate:"uuid_required"`
	MovementType    model.MovementType `json:"movement_type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity        int                `json:"quantity" validate:"gte=0"`
	ReferenceNumber string             `json:"reference_number"`
	Notes           string             `json:"notes"`
}

// LedgerService owns every mutation of product stock. Each operation
// runs as one transaction holding a row lock on the product, so the
// sufficiency check and the quantity write cannot interleave with a
// concurrent sale.
type LedgerService interface {
	RecordSale(req *SaleRequest) (*model.SalesTransaction, error)
	RecordMovement(req *MovementRequest) (*model.StockMovement, error)
	GetSales(limit int) ([]model.SalesTransaction, error)
	GetMovements(productID *uuid.UUID, limit int) ([]model.StockMovement, error)
}

type ledgerService struct {
	products      repository.ProductRepository
	sales         repository.SaleRepository
	movements     repository.MovementRepository
	notifications repository.NotificationRepository
	db            *gorm.DB
	hub           *ws.Hub
}

func NewLedgerService(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	movements repository.MovementRepository,
	notifications repository.NotificationRepository,
	db *gorm.DB,
	hub *ws.Hub,
) LedgerService {
	return &ledgerService{
		products:      products,
		sales:         sales,
		movements:     movements,
		notifications: notifications,
		db:            db,
		hub:           hub,
	}
}

func (s *ledgerService) RecordSale(req *SaleRequest) (*model.SalesTransaction, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	var sale *model.SalesTransaction
	var created []model.Notification

	err := runTx(s.db, func(tx *gorm.DB) error {
		product, err := s.products.FindByIDForUpdate(tx, req.ProductID)
		if err != nil {
			return apperr.NotFound("Product not found")
		}

		if product.Quantity < req.Quantity {
			return apperr.InvalidState("Insufficient stock available")
		}

		unitPrice := product.Price
		totalAmount := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		transactionNumber := newTransactionNumber()

		sale = &model.SalesTransaction{
			TransactionNumber: transactionNumber,
			ProductID:         product.ID,
			Quantity:          req.Quantity,
			UnitPrice:         unitPrice,
			TotalAmount:       totalAmount,
			CustomerName:      req.CustomerName,
			Notes:             req.Notes,
		}
		if err := s.sales.Create(tx, sale); err != nil {
			return translateDBErr(err, "Transaction number already exists")
		}

		movement := &model.StockMovement{
			ProductID:       product.ID,
			MovementType:    model.MovementOut,
			Quantity:        req.Quantity,
			ReferenceNumber: transactionNumber,
			Notes:           "Sale transaction",
		}
		if err := s.movements.Create(tx, movement); err != nil {
			return err
		}

		newQuantity := product.Quantity - req.Quantity
		if err := s.products.UpdateQuantity(tx, product.ID, newQuantity); err != nil {
			return err
		}

		saleNotif := model.Notification{
			Type:              model.NotifSaleRecorded,
			Message:           fmt.Sprintf("Sale recorded: %d units of %q for $%s", req.Quantity, product.Name, totalAmount.StringFixed(2)),
			RelatedEntityType: "sales",
			RelatedEntityID:   &sale.ID,
		}
		if err := s.notifications.Create(tx, &saleNotif); err != nil {
			return err
		}
		created = append(created, saleNotif)

		if newQuantity < product.MinStockLevel {
			low := lowStockNotification(product.ID, product.Name, newQuantity)
			if err := s.notifications.Create(tx, &low); err != nil {
				return err
			}
			created = append(created, low)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	publishNotifications(s.hub, created)
	return sale, nil
}

func (s *ledgerService) RecordMovement(req *MovementRequest) (*model.StockMovement, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		if first.Tag == "oneof" {
			return nil, apperr.Validation("Invalid movement type")
		}
		if first.Tag == "gte" {
			return nil, apperr.Validation("Invalid quantity")
		}
		return nil, apperr.Validation("Field '%s' failed on '%s'", first.FailedField, first.Tag)
	}

	var movement *model.StockMovement
	var created []model.Notification

	err := runTx(s.db, func(tx *gorm.DB) error {
		product, err := s.products.FindByIDForUpdate(tx, req.ProductID)
		if err != nil {
			return apperr.NotFound("Product not found")
		}

		newQuantity := product.Quantity
		switch req.MovementType {
		case model.MovementIn:
			newQuantity += req.Quantity
		case model.MovementOut:
			newQuantity -= req.Quantity
			if newQuantity < 0 {
				return apperr.InvalidState("Insufficient stock")
			}
		case model.MovementAdjustment:
			// Absolute set, prior value ignored
			newQuantity = req.Quantity
		}

		movement = &model.StockMovement{
			ProductID:       product.ID,
			MovementType:    req.MovementType,
			Quantity:        req.Quantity,
			ReferenceNumber: req.ReferenceNumber,
			Notes:           req.Notes,
		}
		if err := s.movements.Create(tx, movement); err != nil {
			return err
		}

		if err := s.products.UpdateQuantity(tx, product.ID, newQuantity); err != nil {
			return err
		}

		verb := "adjusted for"
		switch req.MovementType {
		case model.MovementIn:
			verb = "added to"
		case model.MovementOut:
			verb = "removed from"
		}
		stockNotif := model.Notification{
			Type:              model.NotifStockUpdate,
			Message:           fmt.Sprintf("Stock %s %q. New quantity: %d", verb, product.Name, newQuantity),
			RelatedEntityType: "product",
			RelatedEntityID:   &product.ID,
		}
		if err := s.notifications.Create(tx, &stockNotif); err != nil {
			return err
		}
		created = append(created, stockNotif)

		if newQuantity < product.MinStockLevel {
			low := lowStockNotification(product.ID, product.Name, newQuantity)
			if err := s.notifications.Create(tx, &low); err != nil {
				return err
			}
			created = append(created, low)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	publishNotifications(s.hub, created)
	return movement, nil
}

func (s *ledgerService) GetSales(limit int) ([]model.SalesTransaction, error) {
	return s.sales.FindAll(limit)
}

func (s *ledgerService) GetMovements(productID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	return s.movements.FindAll(productID, limit)
}

// newTransactionNumber generates a time-based unique transaction number.
func newTransactionNumber() string {
	return fmt.Sprintf("TXN-%d", time.Now().UnixMilli())
}

func lowStockNotification(productID uuid.UUID, name string, quantity int) model.Notification {
	id := productID
	return model.Notification{
		Type:              model.NotifLowStock,
		Message:           fmt.Sprintf("Product %q is running low. Current stock: %d units", name, quantity),
		RelatedEntityType: "product",
		RelatedEntityID:   &id,
	}
}

// publishNotifications pushes committed notifications to websocket
// clients. Runs in a goroutine so a slow hub never holds up a response.
func publishNotifications(hub *ws.Hub, notifications []model.Notification) {
	if hub == nil || len(notifications) == 0 {
		return
	}
	go func() {
		for _, n := range notifications {
			hub.Publish("notification", n)
		}
	}()
}
