package repository

import (
	"go-stocktrack/internal/model"

	"gorm.io/gorm"
)

// GroupCount is one row of a per-category or per-supplier breakdown.
// Entities with zero products do not appear: the breakdown is an inner join.
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DashboardStats is the snapshot returned to the analytics dashboard
type DashboardStats struct {
	TotalProducts   int64        `json:"total_products"`
	LowStockItems   int64        `json:"low_stock_items"`
	OutOfStockItems int64        `json:"out_of_stock_items"`
	TotalValue      float64      `json:"total_value"`
	CategoryStats   []GroupCount `json:"category_stats"`
	SupplierStats   []GroupCount `json:"supplier_stats"`
}

type ReportRepository interface {
	GetDashboardStats() (*DashboardStats, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

// GetDashboardStats aggregates the live product set on every call.
// No caching: the dashboard always reflects the store at call time.
func (r *reportRepo) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		CategoryStats: []GroupCount{},
		SupplierStats: []GroupCount{},
	}

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("status = ?", model.StatusLowStock).
		Count(&stats.LowStockItems).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("status = ?", model.StatusOutOfStock).
		Count(&stats.OutOfStockItems).Error; err != nil {
		return nil, err
	}

	// Total inventory value = SUM(price * quantity)
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&stats.TotalValue).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Select("categories.name AS name, COUNT(products.id) AS count").
		Joins("JOIN categories ON categories.id = products.category_id").
		Group("categories.name").
		Order("count DESC").
		Scan(&stats.CategoryStats).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Select("suppliers.name AS name, COUNT(products.id) AS count").
		Joins("JOIN suppliers ON suppliers.id = products.supplier_id").
		Group("suppliers.name").
		Order("count DESC").
		Scan(&stats.SupplierStats).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
