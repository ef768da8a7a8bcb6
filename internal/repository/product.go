package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/storeops/fulfillment/internal/domain"
	"github.com/storeops/fulfillment/internal/fulfillment"
)

// GormProductRepository is the GORM implementation of the fulfillment
// product repository port.
type GormProductRepository struct {
	db *gorm.DB
}

var _ fulfillment.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindOrderWithProducts(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Products").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fulfillment.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find order %d", orderID)
	}
	return &order, nil
}

// PersistProduct writes the product's full current state. The update is
// idempotent: repeating it with identical values leaves the row unchanged.
func (r *GormProductRepository) PersistProduct(ctx context.Context, product *domain.Product) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"available":         product.Available,
			"lead_time":         product.LeadTime,
			"name":              product.Name,
			"type":              product.Type,
			"expiry_date":       product.ExpiryDate,
			"season_start_date": product.SeasonStartDate,
			"season_end_date":   product.SeasonEndDate,
		})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "persist product %d", product.ID)
	}
	if res.RowsAffected == 0 {
		return errors.Errorf("persist product %d: no such product", product.ID)
	}
	return nil
}

// GetProduct loads a single product by id. Used by the admin API's
// direct product processing endpoint, not by the fulfillment core.
func (r *GormProductRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
