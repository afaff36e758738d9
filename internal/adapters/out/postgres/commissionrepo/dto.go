// Package commissionrepo provides data transfer objects and mapping functions
// for commission rules and platform fee records.
package commissionrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
)

// CommissionRuleDTO represents one commission bracket row of a seller's rule set.
type CommissionRuleDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type     string    `gorm:"type:varchar(16);not null"`
	Value    float64   `gorm:"type:double precision;not null"`
	MinBound float64   `gorm:"type:double precision;not null"`
	MaxBound *float64  `gorm:"type:double precision"`
	Active   bool      `gorm:"not null;default:true"`
	Priority int       `gorm:"not null;default:0"`
}

// TableName specifies the database table name for commission rules.
func (CommissionRuleDTO) TableName() string {
	return "commission_rules"
}

// PlatformFeeDTO represents the platform's commission record on a settled
// order. The unique index on OrderID is the storage-level uniqueness guarantee
// behind the one-record-per-order rule.
type PlatformFeeDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	SellerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RuleID     *uuid.UUID      `gorm:"type:uuid"`
	RecordedAt time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for platform fee records.
func (PlatformFeeDTO) TableName() string {
	return "platform_fees"
}

// ruleToDomain converts a rule row to a domain commission rule.
func ruleToDomain(dto CommissionRuleDTO) (commission.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return commission.Rule{}, err
	}

	return commission.NewRule(
		id,
		commission.RuleType(dto.Type),
		dto.Value,
		dto.MinBound,
		dto.MaxBound,
		dto.Active,
		dto.Priority,
	)
}

// feeToDomain converts a platform fee row back to its domain record.
func feeToDomain(dto PlatformFeeDTO) (*commission.PlatformFeeRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var ruleID *kernel.UUID
	if dto.RuleID != nil {
		restored, err := kernel.UUIDFromBytes(dto.RuleID[:])
		if err != nil {
			return nil, err
		}
		ruleID = &restored
	}

	return commission.RestorePlatformFeeRecord(
		id, orderID, sellerID,
		kernel.NewMoney(dto.Amount),
		ruleID,
		dto.RecordedAt,
	), nil
}

// feeFromDomain converts a platform fee record to its database representation.
func feeFromDomain(record *commission.PlatformFeeRecord) PlatformFeeDTO {
	var ruleID *uuid.UUID
	if id := record.RuleID(); id != nil {
		raw := id.Bytes()
		ruleID = &raw
	}

	return PlatformFeeDTO{
		ID:         record.ID().Bytes(),
		OrderID:    record.OrderID().Bytes(),
		SellerID:   record.SellerID().Bytes(),
		Amount:     record.Amount().Amount(),
		RuleID:     ruleID,
		RecordedAt: record.RecordedAt(),
	}
}
