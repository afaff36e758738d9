package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// GetActiveDeliveriesQueryHandler reads a courier's active deliveries straight
// from the database, skipping aggregate reconstruction.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery queries.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Delivered and cancelled orders are excluded;
// results are ordered by assignment time.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seller_lat,
			seller_lng,
			customer_lat,
			customer_lng,
			status,
			phase,
			payment,
			pricing_subtotal - pricing_discount + pricing_delivery_fee + pricing_platform_fee AS total
		FROM orders
		WHERE courier_id = ? AND status NOT IN (?, ?)
		ORDER BY assigned_at
	`, query.CourierID().Bytes(), int(order.Delivered), int(order.Cancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)
	for rows.Next() {
		var (
			id                       uuid.UUID
			sellerLat, sellerLng     float64
			customerLat, customerLng float64
			status, phase            int
			payment                  string
			total                    decimal.Decimal
		)
		if err = rows.Scan(&id, &sellerLat, &sellerLng,
			&customerLat, &customerLng, &status, &phase, &payment, &total); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		sellerLocation, locErr := kernel.NewGeoPoint(sellerLat, sellerLng)
		if locErr != nil {
			return nil, locErr
		}
		customerLocation, locErr := kernel.NewGeoPoint(customerLat, customerLng)
		if locErr != nil {
			return nil, locErr
		}

		deliveries = append(deliveries, GetActiveDeliveriesQueryResponse{
			OrderID:          orderID,
			SellerLocation:   sellerLocation,
			CustomerLocation: customerLocation,
			Status:           order.Status(status).String(),
			DeliveryStatus:   order.Phase(phase).CoarseStatus(),
			Payment:          payment,
			Total:            kernel.NewMoney(total),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
