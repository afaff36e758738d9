// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Route snapshots and the notified-courier list are stored as jsonb documents;
// everything queried by the read side lives in plain columns.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`

	SellerLocation   GeoPointDTO `gorm:"embedded;embeddedPrefix:seller_"`
	CustomerLocation GeoPointDTO `gorm:"embedded;embeddedPrefix:customer_"`

	Status  int        `gorm:"not null;index"`
	Phase   int        `gorm:"not null"`
	Payment string     `gorm:"type:varchar(16)"`
	Pricing PricingDTO `gorm:"embedded;embeddedPrefix:pricing_"`

	CourierID        *uuid.UUID  `gorm:"type:uuid;index"`
	NotifiedCouriers []uuid.UUID `gorm:"serializer:json;type:jsonb"`
	AssignedAt       *time.Time

	PickupRoute   *RouteDTO `gorm:"serializer:json;type:jsonb"`
	DropRoute     *RouteDTO `gorm:"serializer:json;type:jsonb"`
	ProofImageURL string    `gorm:"type:text"`

	ReachedPickupAt *time.Time
	PickedUpAt      *time.Time
	ReachedDropAt   *time.Time
	DeliveredAt     *time.Time

	Rating *int
	Review string `gorm:"type:text"`

	CashRecorded   bool `gorm:"not null;default:false"`
	SettlementDone bool `gorm:"not null;default:false;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents embedded geographic coordinates within the order table.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:double precision"`
	Lng float64 `gorm:"type:double precision"`
}

// PricingDTO represents the embedded monetary breakdown within the order table.
type PricingDTO struct {
	Subtotal    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Discount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(14,2)"`
	PlatformFee decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// RouteDTO is the jsonb document for one route snapshot.
type RouteDTO struct {
	Path        []RoutePointDTO `json:"path"`
	DistanceKm  float64         `json:"distance_km"`
	DurationMin float64         `json:"duration_min"`
	Method      string          `json:"method"`
}

// RoutePointDTO is one polyline vertex of a stored route.
type RoutePointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	notified := make([]uuid.UUID, 0, len(aggregate.NotifiedCouriers()))
	for _, id := range aggregate.NotifiedCouriers() {
		notified = append(notified, id.Bytes())
	}

	pricing := aggregate.Pricing()
	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		SellerID:   aggregate.SellerID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		SellerLocation: GeoPointDTO{
			Lat: aggregate.SellerLocation().Lat(),
			Lng: aggregate.SellerLocation().Lng(),
		},
		CustomerLocation: GeoPointDTO{
			Lat: aggregate.CustomerLocation().Lat(),
			Lng: aggregate.CustomerLocation().Lng(),
		},
		Status:  int(aggregate.Status()),
		Phase:   int(aggregate.Phase()),
		Payment: string(aggregate.PaymentMethod()),
		Pricing: PricingDTO{
			Subtotal:    pricing.Subtotal().Amount(),
			Discount:    pricing.Discount().Amount(),
			DeliveryFee: pricing.DeliveryFee().Amount(),
			PlatformFee: pricing.PlatformFee().Amount(),
		},
		CourierID:        courierID,
		NotifiedCouriers: notified,
		AssignedAt:       aggregate.AssignedAt(),
		PickupRoute:      routeFromDomain(aggregate.PickupRoute()),
		DropRoute:        routeFromDomain(aggregate.DropRoute()),
		ProofImageURL:    aggregate.ProofImageURL(),
		ReachedPickupAt:  aggregate.ReachedPickupAt(),
		PickedUpAt:       aggregate.PickedUpAt(),
		ReachedDropAt:    aggregate.ReachedDropAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		Rating:           aggregate.Rating(),
		Review:           aggregate.Review(),
		CashRecorded:     aggregate.CashRecorded(),
		SettlementDone:   aggregate.SettlementCompleted(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	sellerLocation, err := kernel.NewGeoPoint(dto.SellerLocation.Lat, dto.SellerLocation.Lng)
	if err != nil {
		return nil, err
	}
	customerLocation, err := kernel.NewGeoPoint(dto.CustomerLocation.Lat, dto.CustomerLocation.Lng)
	if err != nil {
		return nil, err
	}

	pricing, err := order.NewPricing(
		kernel.NewMoney(dto.Pricing.Subtotal),
		kernel.NewMoney(dto.Pricing.Discount),
		kernel.NewMoney(dto.Pricing.DeliveryFee),
		kernel.NewMoney(dto.Pricing.PlatformFee),
	)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	notified := make([]kernel.UUID, 0, len(dto.NotifiedCouriers))
	for _, raw := range dto.NotifiedCouriers {
		nID, notifyErr := kernel.UUIDFromBytes(raw[:])
		if notifyErr != nil {
			return nil, notifyErr
		}
		notified = append(notified, nID)
	}

	pickupRoute, err := routeToDomain(dto.PickupRoute)
	if err != nil {
		return nil, err
	}
	dropRoute, err := routeToDomain(dto.DropRoute)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:               id,
		SellerID:         sellerID,
		CustomerID:       customerID,
		SellerLocation:   sellerLocation,
		CustomerLocation: customerLocation,
		Status:           order.Status(dto.Status),
		Phase:            order.Phase(dto.Phase),
		Pricing:          pricing,
		Payment:          order.PaymentMethod(dto.Payment),
		CourierID:        courierID,
		NotifiedCouriers: notified,
		AssignedAt:       dto.AssignedAt,
		PickupRoute:      pickupRoute,
		DropRoute:        dropRoute,
		ProofImageURL:    dto.ProofImageURL,
		ReachedPickupAt:  dto.ReachedPickupAt,
		PickedUpAt:       dto.PickedUpAt,
		ReachedDropAt:    dto.ReachedDropAt,
		DeliveredAt:      dto.DeliveredAt,
		Rating:           dto.Rating,
		Review:           dto.Review,
		CashRecorded:     dto.CashRecorded,
		SettlementDone:   dto.SettlementDone,
	})
}

// routeFromDomain converts a route snapshot to its jsonb document, nil for the
// zero snapshot so the column stays NULL until the leg exists.
func routeFromDomain(route order.Route) *RouteDTO {
	if route.IsZero() {
		return nil
	}

	path := make([]RoutePointDTO, 0, len(route.Path()))
	for _, p := range route.Path() {
		path = append(path, RoutePointDTO{Lat: p.Lat(), Lng: p.Lng()})
	}
	return &RouteDTO{
		Path:        path,
		DistanceKm:  route.DistanceKm(),
		DurationMin: route.DurationMin(),
		Method:      route.Method(),
	}
}

// routeToDomain converts a jsonb route document back to a domain snapshot.
func routeToDomain(dto *RouteDTO) (order.Route, error) {
	if dto == nil {
		return order.Route{}, nil
	}

	path := make([]kernel.GeoPoint, 0, len(dto.Path))
	for _, p := range dto.Path {
		point, err := kernel.NewGeoPoint(p.Lat, p.Lng)
		if err != nil {
			return order.Route{}, err
		}
		path = append(path, point)
	}
	return order.NewRoute(path, dto.DistanceKm, dto.DurationMin, dto.Method)
}
