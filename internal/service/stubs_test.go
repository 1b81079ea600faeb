package service

import (
	"sort"
	"time"

	"stocktrack-backend/internal/model"
	"stocktrack-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ *gorm.DB, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindAll(categoryID *uuid.UUID, search string) ([]model.Product, error) {
	var result []model.Product
	for _, p := range r.products {
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindBySKU(sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(id)
}

func (r *stubProductRepo) Save(_ *gorm.DB, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) UpdateQuantity(_ *gorm.DB, id uuid.UUID, newQuantity int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Quantity = newQuantity
	return nil
}

func (r *stubProductRepo) Delete(_ *gorm.DB, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ClearCategory(_ *gorm.DB, categoryID uuid.UUID) error {
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			p.CategoryID = nil
		}
	}
	return nil
}

func (r *stubProductRepo) Count() (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *stubProductRepo) CountLowStock() (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.IsLowStock() {
			count++
		}
	}
	return count, nil
}

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindAll() ([]model.Category, error) {
	var result []model.Category
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindByName(name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) Save(c *model.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(_ *gorm.DB, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) Count() (int64, error) {
	return int64(len(r.categories)), nil
}

type stubSaleRepo struct {
	sales []model.SalesTransaction
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{}
}

func (r *stubSaleRepo) Create(_ *gorm.DB, sale *model.SalesTransaction) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.CreatedAt = time.Now()
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *stubSaleRepo) FindAll(limit int) ([]model.SalesTransaction, error) {
	result := make([]model.SalesTransaction, len(r.sales))
	copy(result, r.sales)
	// newest first
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *stubSaleRepo) FindRecent(limit int) ([]model.SalesTransaction, error) {
	return r.FindAll(limit)
}

func (r *stubSaleRepo) TotalSales() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, sale := range r.sales {
		total = total.Add(sale.TotalAmount)
	}
	return total, nil
}

func (r *stubSaleRepo) TopSelling(limit int) ([]repository.TopSellingProduct, error) {
	type agg struct {
		sold    int
		revenue decimal.Decimal
	}
	byProduct := make(map[uuid.UUID]*agg)
	for _, sale := range r.sales {
		a, ok := byProduct[sale.ProductID]
		if !ok {
			a = &agg{revenue: decimal.Zero}
			byProduct[sale.ProductID] = a
		}
		a.sold += sale.Quantity
		a.revenue = a.revenue.Add(sale.TotalAmount)
	}
	var result []repository.TopSellingProduct
	for id, a := range byProduct {
		result = append(result, repository.TopSellingProduct{
			ProductName: id.String(),
			TotalSold:   a.sold,
			Revenue:     a.revenue,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TotalSold > result[j].TotalSold })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type stubMovementRepo struct {
	movements []model.StockMovement
}

func newStubMovementRepo() *stubMovementRepo {
	return &stubMovementRepo{}
}

func (r *stubMovementRepo) Create(_ *gorm.DB, movement *model.StockMovement) error {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	movement.CreatedAt = time.Now()
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *stubMovementRepo) FindAll(productID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	var result []model.StockMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if productID != nil && m.ProductID != *productID {
			continue
		}
		result = append(result, m)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *stubMovementRepo) GetDailyFlow(startDate, endDate time.Time) ([]repository.DailyFlow, error) {
	return nil, nil
}

type stubNotificationRepo struct {
	notifications []model.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{}
}

func (r *stubNotificationRepo) Create(_ *gorm.DB, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *stubNotificationRepo) FindAll(unreadOnly bool, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := r.notifications[i]
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *stubNotificationRepo) FindByID(id uuid.UUID) (*model.Notification, error) {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			clone := r.notifications[i]
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubNotificationRepo) SetRead(id uuid.UUID, isRead bool) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].IsRead = isRead
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubNotificationRepo) PurgeRead() error {
	var kept []model.Notification
	for _, n := range r.notifications {
		if !n.IsRead {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

// byType filters recorded notifications for assertions.
func (r *stubNotificationRepo) byType(t model.NotificationType) []model.Notification {
	var result []model.Notification
	for _, n := range r.notifications {
		if n.Type == t {
			result = append(result, n)
		}
	}
	return result
}
