package commission

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// CourierRate is the distance-keyed payout scheme for couriers: a base payout
// plus a per-kilometer rate for every kilometer above a minimum threshold.
type CourierRate struct {
	base          float64
	perKmRate     float64
	minDistanceKm float64
}

// NewCourierRate creates a validated courier payout rate.
func NewCourierRate(base, perKmRate, minDistanceKm float64) (CourierRate, error) {
	if base < 0 {
		return CourierRate{}, errs.NewValueIsOutOfRangeError("base", base, 0, "unbounded")
	}
	if perKmRate < 0 {
		return CourierRate{}, errs.NewValueIsOutOfRangeError("perKmRate", perKmRate, 0, "unbounded")
	}
	if minDistanceKm < 0 {
		return CourierRate{}, errs.NewValueIsOutOfRangeError("minDistanceKm", minDistanceKm, 0, "unbounded")
	}

	return CourierRate{base: base, perKmRate: perKmRate, minDistanceKm: minDistanceKm}, nil
}

// Base returns the flat payout every delivery earns.
func (r CourierRate) Base() float64 { return r.base }

// PerKmRate returns the payout per kilometer above the minimum distance.
func (r CourierRate) PerKmRate() float64 { return r.perKmRate }

// MinDistanceKm returns the distance threshold below which only the base applies.
func (r CourierRate) MinDistanceKm() float64 { return r.minDistanceKm }

// EarningForDistance computes the courier payout for a delivery distance:
// base + max(0, distance - minDistance) * perKmRate, rounded to 2 decimals.
func (r CourierRate) EarningForDistance(distanceKm float64) kernel.Money {
	extra := distanceKm - r.minDistanceKm
	if extra < 0 {
		extra = 0
	}
	return kernel.NewMoneyFromFloat(r.base + extra*r.perKmRate).Round2()
}
