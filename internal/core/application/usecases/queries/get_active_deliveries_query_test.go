package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
)

func TestNewGetActiveDeliveriesQuery_Success(t *testing.T) {
	courierID := kernel.NewUUID()

	query, err := queries.NewGetActiveDeliveriesQuery(courierID)
	require.NoError(t, err)

	assert.NoError(t, query.Validate())
	assert.True(t, query.CourierID().IsEqual(courierID))
}

func TestNewGetActiveDeliveriesQuery_MissingCourierID(t *testing.T) {
	_, err := queries.NewGetActiveDeliveriesQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetActiveDeliveriesQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetActiveDeliveriesQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetActiveDeliveriesQueryIsNotConstructed)
}
