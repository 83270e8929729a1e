package queries_test

import (
	"testing"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetShipmentForEditingQuery_Valid(t *testing.T) {
	orderID := kernel.NewUUID()
	shipmentID := kernel.NewUUID()

	query, err := queries.NewGetShipmentForEditingQuery(orderID, shipmentID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(orderID))
	assert.True(t, query.ShipmentID().IsEqual(shipmentID))
}

func TestNewGetShipmentForEditingQuery_InvalidIDs(t *testing.T) {
	var invalidID kernel.UUID

	_, err := queries.NewGetShipmentForEditingQuery(invalidID, kernel.NewUUID())
	require.Error(t, err)

	_, err = queries.NewGetShipmentForEditingQuery(kernel.NewUUID(), invalidID)
	require.Error(t, err)
}

func TestGetShipmentForEditingQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetShipmentForEditingQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetShipmentForEditingQueryIsNotConstructed)
}
