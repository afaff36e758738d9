package commands

import (
	"errors"
	"net/url"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmOrderIDCommandIsNotConstructed = errors.New(
	"ConfirmOrderIDCommand must be created via NewConfirmOrderIDCommand constructor",
)

// ConfirmOrderIDCommand represents the pickup handover check: the courier
// submits the identifier read from the package, optionally with a proof photo.
type ConfirmOrderIDCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	courierID     kernel.UUID
	submittedID   string
	proofImageURL string

	guard guard.ConstructorGuard
}

// NewConfirmOrderIDCommand creates a command for the identifier confirmation.
// The proof image URL is optional; when present it must be an absolute
// http or https URL.
func NewConfirmOrderIDCommand(
	orderID, courierID kernel.UUID,
	submittedID, proofImageURL string,
) (ConfirmOrderIDCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return ConfirmOrderIDCommand{}, err
	}
	if submittedID == "" {
		return ConfirmOrderIDCommand{}, errs.NewValueIsRequiredError("submittedId")
	}
	if proofImageURL != "" {
		parsed, err := url.Parse(proofImageURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return ConfirmOrderIDCommand{}, errs.NewValueIsInvalidError("proofImageUrl")
		}
	}

	return ConfirmOrderIDCommand{
		orderID:       orderID,
		courierID:     courierID,
		submittedID:   submittedID,
		proofImageURL: proofImageURL,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderIDCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderIDCommandIsNotConstructed)
}

// OrderID returns the order being handed over.
func (c ConfirmOrderIDCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the courier at the pickup.
func (c ConfirmOrderIDCommand) CourierID() kernel.UUID { return c.courierID }

// SubmittedID returns the identifier the courier read from the package.
func (c ConfirmOrderIDCommand) SubmittedID() string { return c.submittedID }

// ProofImageURL returns the optional handover proof photo URL.
func (c ConfirmOrderIDCommand) ProofImageURL() string { return c.proofImageURL }
