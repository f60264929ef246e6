package cmd

import (
	"log/slog"
	"time"

	httpin "rotafila/internal/adapters/in/http"
	"rotafila/internal/adapters/out/announce"
	"rotafila/internal/adapters/out/postgres"
	"rotafila/internal/adapters/out/postgres/courierrepo"
	"rotafila/internal/adapters/out/postgres/eventrepo"
	"rotafila/internal/core/application/usecases/commands"
	"rotafila/internal/core/application/usecases/queries"
	"rotafila/internal/core/ports"
	"rotafila/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	hub        *announce.Hub
	cache      ports.QueueCache
	scheduler  ports.TransitionScheduler
	settings   commands.RotationSettings
}

func NewCompositionRoot(
	gormDB *gorm.DB,
	notifier ports.Notifier,
	hub *announce.Hub,
	cache ports.QueueCache,
	scheduler ports.TransitionScheduler,
	settings commands.RotationSettings,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		hub:        hub,
		cache:      cache,
		scheduler:  scheduler,
		settings:   settings,
	}
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) eventUoWFactory() commands.EventUoWFactory {
	return FuncEventUoWFactory(func() commands.EventUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCallNextCommandHandler() commands.CallNextCommandHandler {
	return commands.NewCallNextCommandHandler(
		c.fullUoWFactory(),
		c.notifier,
		c.hub,
		c.cache,
		c.scheduler,
		c.CreateConfirmDepartureCommandHandler(),
		c.settings,
	)
}

func (c *CompositionRoot) CreateConfirmDepartureCommandHandler() commands.ConfirmDepartureCommandHandler {
	return commands.NewConfirmDepartureCommandHandler(c.courierUoWFactory(), c.scheduler, c.cache)
}

func (c *CompositionRoot) CreateMarkReturnedCommandHandler() commands.MarkReturnedCommandHandler {
	return commands.NewMarkReturnedCommandHandler(c.fullUoWFactory(), c.scheduler, c.cache)
}

func (c *CompositionRoot) CreateCheckInCommandHandler() commands.CheckInCommandHandler {
	return commands.NewCheckInCommandHandler(c.fullUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateSkipTurnCommandHandler() commands.SkipTurnCommandHandler {
	return commands.NewSkipTurnCommandHandler(c.courierUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateReorderQueueCommandHandler() commands.ReorderQueueCommandHandler {
	return commands.NewReorderQueueCommandHandler(c.courierUoWFactory(), c.cache, c.settings)
}

func (c *CompositionRoot) CreateRegisterCourierCommandHandler() commands.RegisterCourierCommandHandler {
	return commands.NewRegisterCourierCommandHandler(c.courierUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateUpdateCourierProfileCommandHandler() commands.UpdateCourierProfileCommandHandler {
	return commands.NewUpdateCourierProfileCommandHandler(c.courierUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateRemoveCourierCommandHandler() commands.RemoveCourierCommandHandler {
	return commands.NewRemoveCourierCommandHandler(c.courierUoWFactory(), c.scheduler, c.cache)
}

func (c *CompositionRoot) CreateSetCourierActiveCommandHandler() commands.SetCourierActiveCommandHandler {
	return commands.NewSetCourierActiveCommandHandler(c.courierUoWFactory(), c.scheduler, c.cache)
}

func (c *CompositionRoot) CreateSweepOverdueCommandHandler() commands.SweepOverdueCommandHandler {
	return commands.NewSweepOverdueCommandHandler(c.fullUoWFactory(), c.hub, c.cache, c.settings)
}

func (c *CompositionRoot) CreatePurgeHistoryCommandHandler() commands.PurgeHistoryCommandHandler {
	return commands.NewPurgeHistoryCommandHandler(c.eventUoWFactory())
}

func (c *CompositionRoot) CreateGetUnitQueueQueryHandler() queries.GetUnitQueueQueryHandler {
	return queries.NewGetUnitQueueQueryHandler(c.gormDB, c.cache, c.settings.DefaultShift)
}

func (c *CompositionRoot) CreateGetMyPlaceQueryHandler() queries.GetMyPlaceQueryHandler {
	return queries.NewGetMyPlaceQueryHandler(c.gormDB, c.settings.DefaultShift)
}

func (c *CompositionRoot) CreateGetShiftReportQueryHandler() queries.GetShiftReportQueryHandler {
	return queries.NewGetShiftReportQueryHandler(
		courierrepo.NewGormCourierRepository(c.gormDB),
		eventrepo.NewGormEventRepository(c.gormDB),
	)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCallNextCommandHandler(),
		c.CreateConfirmDepartureCommandHandler(),
		c.CreateMarkReturnedCommandHandler(),
		c.CreateCheckInCommandHandler(),
		c.CreateSkipTurnCommandHandler(),
		c.CreateReorderQueueCommandHandler(),
		c.CreateRegisterCourierCommandHandler(),
		c.CreateUpdateCourierProfileCommandHandler(),
		c.CreateRemoveCourierCommandHandler(),
		c.CreateSetCourierActiveCommandHandler(),
		c.CreatePurgeHistoryCommandHandler(),
		c.CreateGetUnitQueueQueryHandler(),
		c.CreateGetMyPlaceQueryHandler(),
		c.CreateGetShiftReportQueryHandler(),
		c.hub,
		c.settings,
	)
}

func (c *CompositionRoot) CreateJobManager(pollInterval time.Duration, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.fullUoWFactory(),
		c.CreateConfirmDepartureCommandHandler(),
		c.CreateSweepOverdueCommandHandler(),
		c.cache,
		c.settings,
		pollInterval,
		logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncEventUoWFactory func() commands.EventUoW

func (f FuncEventUoWFactory) Create() commands.EventUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
