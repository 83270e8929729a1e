package commands_test

import (
	"context"
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MergeShipmentRepo struct{ mock.Mock }

func (m *MergeShipmentRepo) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MergeShipmentRepo) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MergeShipmentRepo) Delete(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MergeShipmentRepo) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MergeShipmentRepo) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MergeOrderLineRepo struct{ mock.Mock }

func (m *MergeOrderLineRepo) GetForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.OrderLine, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.OrderLine), args.Error(1)
}

type MergeCarrierRepo struct{ mock.Mock }

func (m *MergeCarrierRepo) Exists(ctx context.Context, carrierID kernel.UUID) (bool, error) {
	args := m.Called(ctx, carrierID)
	return args.Bool(0), args.Error(1)
}

type MergeUnitOfWork struct{ mock.Mock }

func (m *MergeUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MergeUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MergeUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MergeUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MergeUnitOfWork) OrderLineRepository() ports.OrderLineRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderLineRepository)
}

func (m *MergeUnitOfWork) CarrierRepository() ports.CarrierRepository {
	args := m.Called()
	return args.Get(0).(ports.CarrierRepository)
}

type MergeUoWFactory struct{ mock.Mock }

func (m *MergeUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func newTestLine(t *testing.T, orderID, lineID kernel.UUID, orderedQuantity int) *order.OrderLine {
	t.Helper()
	line, err := order.NewOrderLine(lineID, orderID, kernel.NewUUID(), orderedQuantity)
	require.NoError(t, err)
	return line
}

func restoreTestShipment(
	t *testing.T,
	orderID kernel.UUID,
	quantities map[kernel.UUID]int,
) *shipment.Shipment {
	t.Helper()

	allocations := make([]*shipment.Allocation, 0, len(quantities))
	for lineID, qty := range quantities {
		alloc, err := shipment.RestoreAllocation(lineID, qty)
		require.NoError(t, err)
		allocations = append(allocations, alloc)
	}

	s, err := shipment.RestoreShipment(kernel.NewUUID(), orderID, nil, "", 1, allocations)
	require.NoError(t, err)
	return s
}

func responseQuantity(resp commands.ShipmentResponse, lineID kernel.UUID) int {
	for _, alloc := range resp.Allocations {
		if alloc.OrderLineID.IsEqual(lineID) {
			return alloc.Quantity
		}
	}
	return 0
}

func TestMergeShipmentCommandHandler_Handle_PartialMerge(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	lineID := kernel.NewUUID()

	lines := []*order.OrderLine{newTestLine(t, orderID, lineID, 10)}
	source := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 6})
	target := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 4})

	cmd, err := commands.NewMergeShipmentCommand(
		source.ID(), target.ID(),
		[]shipment.LineSelection{mustSelection(t, lineID, 2)},
	)
	require.NoError(t, err)

	shipmentRepo := new(MergeShipmentRepo)
	lineRepo := new(MergeOrderLineRepo)
	uow := new(MergeUnitOfWork)
	factory := new(MergeUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, source.ID()).Return(source, nil).Once(),
		shipmentRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("OrderLineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForOrder", ctx, orderID).Return(lines, nil).Once(),
		shipmentRepo.On("GetAllForOrder", ctx, orderID).Return([]*shipment.Shipment{source, target}, nil).Once(),
		shipmentRepo.On("Update", ctx, source).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMergeShipmentCommandHandler(factory)
	resp, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, resp.ID.IsEqual(target.ID()))
	assert.Equal(t, 6, responseQuantity(resp, lineID))
	assert.False(t, source.IsEmpty())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	lineRepo.AssertExpectations(t)
}

func TestMergeShipmentCommandHandler_Handle_FullMergeDeletesSource(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	lineID := kernel.NewUUID()
	otherLineID := kernel.NewUUID()

	lines := []*order.OrderLine{
		newTestLine(t, orderID, lineID, 10),
		newTestLine(t, orderID, otherLineID, 5),
	}
	source := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 6, otherLineID: 5})
	target := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 4})

	cmd, err := commands.NewMergeShipmentCommand(
		source.ID(), target.ID(),
		[]shipment.LineSelection{
			mustSelection(t, lineID, 6),
			mustSelection(t, otherLineID, 5),
		},
	)
	require.NoError(t, err)

	shipmentRepo := new(MergeShipmentRepo)
	lineRepo := new(MergeOrderLineRepo)
	uow := new(MergeUnitOfWork)
	factory := new(MergeUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, source.ID()).Return(source, nil).Once(),
		shipmentRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("OrderLineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForOrder", ctx, orderID).Return(lines, nil).Once(),
		shipmentRepo.On("GetAllForOrder", ctx, orderID).Return([]*shipment.Shipment{source, target}, nil).Once(),
		shipmentRepo.On("Delete", ctx, source).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMergeShipmentCommandHandler(factory)
	resp, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 10, responseQuantity(resp, lineID))
	assert.Equal(t, 5, responseQuantity(resp, otherLineID))
	assert.True(t, source.IsEmpty())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	lineRepo.AssertExpectations(t)
}

func TestMergeShipmentCommandHandler_Handle_CrossOrderRejected(t *testing.T) {
	ctx := t.Context()
	lineID := kernel.NewUUID()

	source := restoreTestShipment(t, kernel.NewUUID(), map[kernel.UUID]int{lineID: 6})
	target := restoreTestShipment(t, kernel.NewUUID(), map[kernel.UUID]int{lineID: 4})

	cmd, err := commands.NewMergeShipmentCommand(
		source.ID(), target.ID(),
		[]shipment.LineSelection{mustSelection(t, lineID, 2)},
	)
	require.NoError(t, err)

	shipmentRepo := new(MergeShipmentRepo)
	uow := new(MergeUnitOfWork)
	factory := new(MergeUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, source.ID()).Return(source, nil).Once(),
		shipmentRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMergeShipmentCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, shipment.ErrCrossOrderMove)
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	shipmentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
}

func TestMergeShipmentCommandHandler_Handle_ExcessiveSelectionRejected(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	lineID := kernel.NewUUID()

	lines := []*order.OrderLine{newTestLine(t, orderID, lineID, 10)}
	source := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 3})
	target := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 4})

	cmd, err := commands.NewMergeShipmentCommand(
		source.ID(), target.ID(),
		[]shipment.LineSelection{mustSelection(t, lineID, 5)}, // only 3 allocated
	)
	require.NoError(t, err)

	shipmentRepo := new(MergeShipmentRepo)
	lineRepo := new(MergeOrderLineRepo)
	uow := new(MergeUnitOfWork)
	factory := new(MergeUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, source.ID()).Return(source, nil).Once(),
		shipmentRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("OrderLineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForOrder", ctx, orderID).Return(lines, nil).Once(),
		shipmentRepo.On("GetAllForOrder", ctx, orderID).Return([]*shipment.Shipment{source, target}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMergeShipmentCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, shipment.ErrInvalidSelection)

	var detail *shipment.InvalidSelectionError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, 5, detail.Requested)
	assert.Equal(t, 3, detail.Available)

	// No partial effect on either aggregate.
	assert.Equal(t, 3, source.AllocationFor(lineID).Quantity())
	assert.Equal(t, 4, target.AllocationFor(lineID).Quantity())
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	lineRepo.AssertExpectations(t)
}

func TestMergeShipmentCommandHandler_Handle_SourceNotFound(t *testing.T) {
	ctx := t.Context()
	sourceID := kernel.NewUUID()
	targetID := kernel.NewUUID()
	lineID := kernel.NewUUID()

	cmd, err := commands.NewMergeShipmentCommand(
		sourceID, targetID,
		[]shipment.LineSelection{mustSelection(t, lineID, 2)},
	)
	require.NoError(t, err)

	shipmentRepo := new(MergeShipmentRepo)
	uow := new(MergeUnitOfWork)
	factory := new(MergeUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, sourceID).Return(nil, errors.New("shipment not found")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMergeShipmentCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "shipment not found")
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
}

func TestMergeShipmentCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	lineID := kernel.NewUUID()

	lines := []*order.OrderLine{newTestLine(t, orderID, lineID, 10)}
	source := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 6})
	target := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 4})

	cmd, err := commands.NewMergeShipmentCommand(
		source.ID(), target.ID(),
		[]shipment.LineSelection{mustSelection(t, lineID, 2)},
	)
	require.NoError(t, err)

	shipmentRepo := new(MergeShipmentRepo)
	lineRepo := new(MergeOrderLineRepo)
	uow := new(MergeUnitOfWork)
	factory := new(MergeUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, source.ID()).Return(source, nil).Once(),
		shipmentRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("OrderLineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForOrder", ctx, orderID).Return(lines, nil).Once(),
		shipmentRepo.On("GetAllForOrder", ctx, orderID).Return([]*shipment.Shipment{source, target}, nil).Once(),
		shipmentRepo.On("Update", ctx, source).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMergeShipmentCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit error")
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	lineRepo.AssertExpectations(t)
}

func TestMergeShipmentCommandHandler_Handle_RetriesOnceOnConflict(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	lineID := kernel.NewUUID()

	lines := []*order.OrderLine{newTestLine(t, orderID, lineID, 10)}

	// Each attempt loads fresh aggregate state.
	firstSource := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 6})
	firstTarget := restoreTestShipment(t, orderID, map[kernel.UUID]int{lineID: 4})

	sourceAlloc, err := shipment.RestoreAllocation(lineID, 6)
	require.NoError(t, err)
	secondSource, err := shipment.RestoreShipment(
		firstSource.ID(), orderID, nil, "", 2, []*shipment.Allocation{sourceAlloc},
	)
	require.NoError(t, err)

	targetAlloc, err := shipment.RestoreAllocation(lineID, 4)
	require.NoError(t, err)
	secondTarget, err := shipment.RestoreShipment(
		firstTarget.ID(), orderID, nil, "", 1, []*shipment.Allocation{targetAlloc},
	)
	require.NoError(t, err)

	cmd, err := commands.NewMergeShipmentCommand(
		firstSource.ID(), firstTarget.ID(),
		[]shipment.LineSelection{mustSelection(t, lineID, 2)},
	)
	require.NoError(t, err)

	shipmentRepo := new(MergeShipmentRepo)
	lineRepo := new(MergeOrderLineRepo)
	uow := new(MergeUnitOfWork)
	factory := new(MergeUoWFactory)

	mock.InOrder(
		// First attempt hits a stale version writing the source.
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, firstSource.ID()).Return(firstSource, nil).Once(),
		shipmentRepo.On("Get", ctx, firstTarget.ID()).Return(firstTarget, nil).Once(),
		uow.On("OrderLineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForOrder", ctx, orderID).Return(lines, nil).Once(),
		shipmentRepo.On("GetAllForOrder", ctx, orderID).
			Return([]*shipment.Shipment{firstSource, firstTarget}, nil).Once(),
		shipmentRepo.On("Update", ctx, firstSource).Return(ports.ErrConcurrencyConflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		// Second attempt succeeds against reloaded state.
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, secondSource.ID()).Return(secondSource, nil).Once(),
		shipmentRepo.On("Get", ctx, secondTarget.ID()).Return(secondTarget, nil).Once(),
		uow.On("OrderLineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForOrder", ctx, orderID).Return(lines, nil).Once(),
		shipmentRepo.On("GetAllForOrder", ctx, orderID).
			Return([]*shipment.Shipment{secondSource, secondTarget}, nil).Once(),
		shipmentRepo.On("Update", ctx, secondSource).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, secondTarget).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMergeShipmentCommandHandler(factory)
	resp, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 6, responseQuantity(resp, lineID))
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	lineRepo.AssertExpectations(t)
}
