package repository

import (
	"time"

	"stocktrack-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyFlow aggregates movements per day for the dashboard chart.
type DailyFlow struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type MovementRepository interface {
	Create(tx *gorm.DB, movement *model.StockMovement) error
	FindAll(productID *uuid.UUID, limit int) ([]model.StockMovement, error)
	GetDailyFlow(startDate, endDate time.Time) ([]DailyFlow, error)
}

type movementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepository {
	return &movementRepo{db}
}

func (r *movementRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *movementRepo) Create(tx *gorm.DB, movement *model.StockMovement) error {
	return r.conn(tx).Create(movement).Error
}

func (r *movementRepo) FindAll(productID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	query := r.db.Preload("Product").Order("created_at DESC").Limit(limit)
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	err := query.Find(&movements).Error
	return movements, err
}

func (r *movementRepo) GetDailyFlow(startDate, endDate time.Time) ([]DailyFlow, error) {
	var results []DailyFlow

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN movement_type = 'IN' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN movement_type = 'OUT' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyFlow
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
