package cmd

import (
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateEditShipmentCommandHandler() commands.EditShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateMergeShipmentCommandHandler() commands.MergeShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMergeShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateSplitShipmentCommandHandler() commands.SplitShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSplitShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateGetShipmentForEditingQueryHandler() queries.GetShipmentForEditingQueryHandler {
	return queries.NewGetShipmentForEditingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMergeCandidatesQueryHandler() queries.GetMergeCandidatesQueryHandler {
	return queries.NewGetMergeCandidatesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllocationViolationsQueryHandler() queries.GetAllocationViolationsQueryHandler {
	return queries.NewGetAllocationViolationsQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
