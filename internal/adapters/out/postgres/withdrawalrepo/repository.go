package withdrawalrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// GormWithdrawalRepository implements WithdrawalRepository using GORM.
type GormWithdrawalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWithdrawalRepository creates a new GORM withdrawal request repository.
func NewGormWithdrawalRepository(db *gorm.DB, tracker aggregateTracker) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new withdrawal request to the database. A second pending
// request for the same wallet violates the partial unique index and surfaces
// as a conflict.
func (r *GormWithdrawalRepository) Add(ctx context.Context, request *wallet.WithdrawalRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("a pending withdrawal request already exists", err)
		}
		return err
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Update saves a review-state change of an existing request.
func (r *GormWithdrawalRepository) Update(ctx context.Context, request *wallet.WithdrawalRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	result := r.db.WithContext(ctx).Model(&WithdrawalRequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Get retrieves a withdrawal request by ID.
func (r *GormWithdrawalRepository) Get(ctx context.Context, id kernel.UUID) (*wallet.WithdrawalRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WithdrawalRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("withdrawalRequest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOutstandingByWallet retrieves the wallet's pending and approved requests.
func (r *GormWithdrawalRepository) GetOutstandingByWallet(
	ctx context.Context,
	walletID kernel.UUID,
) ([]*wallet.WithdrawalRequest, error) {
	if err := walletID.Validate(); err != nil {
		return nil, err
	}

	var dtos []WithdrawalRequestDTO
	if err := r.db.WithContext(ctx).
		Where("wallet_id = ? AND status IN ?", walletID.Bytes(),
			[]string{string(wallet.WithdrawalPending), string(wallet.WithdrawalApproved)}).
		Order("requested_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*wallet.WithdrawalRequest, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}
