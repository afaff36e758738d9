package walletrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// GormWalletRepository implements WalletRepository using GORM.
type GormWalletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB, tracker aggregateTracker) *GormWalletRepository {
	return &GormWalletRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new wallet to the database.
func (r *GormWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing wallet and its ledger to the database.
func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to upsert the ledger rows together
	// with the wallet row
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a wallet with its full ledger by ID.
func (r *GormWalletRepository) Get(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	if err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOwner retrieves the wallet of an actor. Wallets are created lazily, so
// a missing row is an expected not-found, not a failure.
func (r *GormWalletRepository) GetByOwner(
	ctx context.Context,
	ownerID kernel.UUID,
	ownerType wallet.OwnerType,
) (*wallet.Wallet, error) {
	if err := errors.Join(ownerID.Validate(), ownerType.Validate()); err != nil {
		return nil, err
	}

	var dto WalletDTO
	if err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		First(&dto, "owner_id = ? AND owner_type = ?", ownerID.Bytes(), string(ownerType)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
