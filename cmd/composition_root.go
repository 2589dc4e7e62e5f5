package cmd

import (
	"fmt"
	"log/slog"

	"fieldwork/internal/adapters/out/notify"
	"fieldwork/internal/adapters/out/postgres"
	"fieldwork/internal/adapters/out/postgres/chatroomrepo"
	"fieldwork/internal/adapters/out/postgres/servicerepo"
	redisadapter "fieldwork/internal/adapters/out/redis"
	twilioadapter "fieldwork/internal/adapters/out/twilio"
	"fieldwork/internal/core/application/usecases/commands"
	"fieldwork/internal/core/application/usecases/queries"
	"fieldwork/internal/jobs"
	"fieldwork/internal/pkg/taskpool"

	goredis "github.com/go-redis/redis/v8"
	"github.com/sendgrid/sendgrid-go"
	"github.com/twilio/twilio-go"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into the application layer. One instance
// lives for the whole process; handler factory methods are cheap and can be
// called per request if needed.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	pool        *taskpool.Pool
	sideEffects *commands.SideEffects
}

// NewCompositionRoot builds the object graph from configuration and the
// already-open infrastructure clients. Construction fails when a required
// collaborator is unconfigured, so a half-wired service never starts.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *goredis.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	pool := taskpool.New(config.SideEffectWorkers, config.SideEffectQueueSize, logger)

	twilioClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.TwilioAccountSid,
		Password: config.TwilioAuthToken,
	})
	sendgridClient := sendgrid.NewSendClient(config.SendGridAPIKey)

	callMasking, err := twilioadapter.NewCallMaskingGateway(gormDB, twilioClient, config.TwilioProxyServiceSid)
	if err != nil {
		return nil, fmt.Errorf("failed to create call masking gateway: %w", err)
	}

	dispatcher, err := notify.NewDispatcher(gormDB, twilioClient, sendgridClient, notify.Config{
		FromName:  config.FromName,
		FromPhone: config.TwilioFromPhone,
		FromEmail: config.FromEmail,
		OpsEmail:  config.OpsEmail,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification dispatcher: %w", err)
	}

	statsFactory := FuncStatsUoWFactory(func() commands.StatsUoW {
		return uowFactory.Create()
	})

	sideEffects, err := commands.NewSideEffects(
		pool,
		chatroomrepo.NewGormChatRoomManager(gormDB),
		callMasking,
		redisadapter.NewLocationTracker(redisClient),
		dispatcher,
		statsFactory,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create side effects: %w", err)
	}

	return &CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  uowFactory,
		pool:        pool,
		sideEffects: sideEffects,
	}, nil
}

// Shutdown drains queued side effects.
func (c *CompositionRoot) Shutdown() {
	c.pool.Shutdown()
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.lifecycleUoWFactory(), c.sideEffects)
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(c.lifecycleUoWFactory(), c.sideEffects)
}

func (c *CompositionRoot) CreateStartAssignmentCommandHandler() commands.StartAssignmentCommandHandler {
	return commands.NewStartAssignmentCommandHandler(c.lifecycleUoWFactory(), c.sideEffects)
}

func (c *CompositionRoot) CreateCompleteAssignmentCommandHandler() commands.CompleteAssignmentCommandHandler {
	var f commands.CompletionUoWFactory = FuncCompletionUoWFactory(func() commands.CompletionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteAssignmentCommandHandler(
		f,
		servicerepo.NewGormServiceCatalog(c.gormDB),
		c.sideEffects,
	)
}

func (c *CompositionRoot) CreateReconcileEarningsCommandHandler() commands.ReconcileEarningsCommandHandler {
	var f commands.StatsUoWFactory = FuncStatsUoWFactory(func() commands.StatsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileEarningsCommandHandler(f)
}

func (c *CompositionRoot) CreateListWorkerAssignmentsQueryHandler() queries.ListWorkerAssignmentsQueryHandler {
	return queries.NewListWorkerAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkerAssignmentQueryHandler() queries.GetWorkerAssignmentQueryHandler {
	return queries.NewGetWorkerAssignmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileEarningsCommandHandler(), logger)
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncCompletionUoWFactory func() commands.CompletionUoW

func (f FuncCompletionUoWFactory) Create() commands.CompletionUoW {
	return f()
}

type FuncStatsUoWFactory func() commands.StatsUoW

func (f FuncStatsUoWFactory) Create() commands.StatsUoW {
	return f()
}
