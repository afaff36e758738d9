// Package commission holds the rule engine that splits an order's value.
//
// Two schemes live here. Seller commission is amount-keyed: bracketed Rule
// values resolved by Resolve against the order's food price, falling back to
// a default rule. Courier payout is distance-keyed through CourierRate.
// PlatformFeeRecord is the immutable per-order record of the platform's take.
package commission
