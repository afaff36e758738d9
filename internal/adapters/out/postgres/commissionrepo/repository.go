package commissionrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
)

// GormCommissionRepository implements CommissionRepository using GORM.
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GORM commission repository.
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// GetSellerRules retrieves the seller's commission rule set, active and
// inactive alike. Resolution filters on activity itself.
func (r *GormCommissionRepository) GetSellerRules(
	ctx context.Context,
	sellerID kernel.UUID,
) ([]commission.Rule, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CommissionRuleDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "seller_id = ?", sellerID.Bytes()).Error; err != nil {
		return nil, err
	}

	rules := make([]commission.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rule, err := ruleToDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// AddPlatformFee persists the platform's commission record for an order.
func (r *GormCommissionRepository) AddPlatformFee(
	ctx context.Context,
	record *commission.PlatformFeeRecord,
) error {
	dto := feeFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPlatformFee retrieves the order's platform fee record, nil when absent.
func (r *GormCommissionRepository) GetPlatformFee(
	ctx context.Context,
	orderID kernel.UUID,
) (*commission.PlatformFeeRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PlatformFeeDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ?", orderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return feeToDomain(dto)
}
