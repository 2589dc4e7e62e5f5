package queries_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fieldwork/internal/adapters/out/postgres/assignmentrepo"
	"fieldwork/internal/adapters/out/postgres/bookingrepo"
	"fieldwork/internal/adapters/out/postgres/servicerepo"
	"fieldwork/internal/adapters/out/postgres/userrepo"
	"fieldwork/internal/adapters/out/postgres/workerrepo"
	"fieldwork/internal/core/application/usecases/queries"
	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const customerPhone = "+91-91234-56789"

// WorkerAssignmentQueryHandlersTestSuite verifies the listing and lookup
// read models against a real PostgreSQL instance, including the privacy
// guarantees of the projection.
type WorkerAssignmentQueryHandlersTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	listHandler queries.ListWorkerAssignmentsQueryHandler
	getHandler  queries.GetWorkerAssignmentQueryHandler

	workerUserID kernel.UUID
	bookingID    kernel.UUID
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&assignmentrepo.AssignmentDTO{},
		&bookingrepo.BookingDTO{},
		&workerrepo.WorkerDTO{},
		&servicerepo.ServiceDTO{},
		&userrepo.UserDTO{},
	))

	suite.listHandler = queries.NewListWorkerAssignmentsQueryHandler(db)
	suite.getHandler = queries.NewGetWorkerAssignmentQueryHandler(db)
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE assignments, bookings, workers, services, users",
	).Error)

	suite.workerUserID = kernel.NewUUID()
	suite.bookingID = kernel.NewUUID()
	suite.seedRelations()
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedRelations creates the customer, service, worker profile and one
// booking the assignments will reference.
func (suite *WorkerAssignmentQueryHandlersTestSuite) seedRelations() {
	price := 120.0
	customerID := kernel.NewUUID()
	serviceID := kernel.NewUUID()

	suite.Require().NoError(suite.db.Create(&userrepo.UserDTO{
		ID:                    customerID.Bytes(),
		Name:                  "Asha Verma",
		Email:                 "asha@example.com",
		Phone:                 customerPhone,
		HasActiveSubscription: true,
	}).Error)
	suite.Require().NoError(suite.db.Create(&servicerepo.ServiceDTO{
		ID:    serviceID.Bytes(),
		Name:  "Tap repair",
		Price: &price,
	}).Error)
	suite.Require().NoError(suite.db.Create(&workerrepo.WorkerDTO{
		ID:     kernel.NewUUID().Bytes(),
		UserID: suite.workerUserID.Bytes(),
		Name:   "Ravi Kumar",
		Phone:  "+91-90000-00001",
		Email:  "ravi@example.com",
	}).Error)

	scheduledStart := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.db.Create(&bookingrepo.BookingDTO{
		ID:                 suite.bookingID.Bytes(),
		UserID:             customerID.Bytes(),
		ServiceID:          serviceID.Bytes(),
		Status:             "confirmed",
		ScheduledStartTime: scheduledStart,
		ScheduledEndTime:   scheduledStart.Add(2 * time.Hour),
		PaymentStatus:      "pending",
		ContactPerson:      "Asha Verma",
		ContactPhone:       "+91-98765-43210",
		Address:            "12 Rose Garden Lane",
		Description:        "leaking kitchen tap",
	}).Error)
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) seedAssignment(
	status assignment.Status,
	assignedAt time.Time,
) kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&assignmentrepo.AssignmentDTO{
		ID:         id.Bytes(),
		BookingID:  suite.bookingID.Bytes(),
		WorkerID:   suite.workerUserID.Bytes(),
		AssignedBy: kernel.NewUUID().Bytes(),
		Status:     status.String(),
		AssignedAt: assignedAt,
	}).Error)
	return id
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) TestListHandle_OrdersNewestFirstAndPages() {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	oldest := suite.seedAssignment(assignment.Completed, base)
	middle := suite.seedAssignment(assignment.Rejected, base.AddDate(0, 0, 1))
	newest := suite.seedAssignment(assignment.Assigned, base.AddDate(0, 0, 2))

	query, err := queries.NewListWorkerAssignmentsQuery(suite.workerUserID, nil, nil, nil, 1, 2)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Assignments, 2)
	suite.Equal(newest.String(), result.Assignments[0].ID)
	suite.Equal(middle.String(), result.Assignments[1].ID)
	suite.Equal(int64(3), result.Pagination.Total)
	suite.Equal(2, result.Pagination.TotalPages)

	secondPage, err := queries.NewListWorkerAssignmentsQuery(suite.workerUserID, nil, nil, nil, 2, 2)
	suite.Require().NoError(err)

	result, err = suite.listHandler.Handle(ctx, secondPage)

	suite.Require().NoError(err)
	suite.Require().Len(result.Assignments, 1)
	suite.Equal(oldest.String(), result.Assignments[0].ID)
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) TestListHandle_StatusAndDateFilters() {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.seedAssignment(assignment.Completed, base)
	rejected := suite.seedAssignment(assignment.Rejected, base.AddDate(0, 0, 1))
	suite.seedAssignment(assignment.Assigned, base.AddDate(0, 0, 2))

	status := assignment.Rejected
	query, err := queries.NewListWorkerAssignmentsQuery(suite.workerUserID, &status, nil, nil, 1, 10)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Assignments, 1)
	suite.Equal(rejected.String(), result.Assignments[0].ID)

	from := base.AddDate(0, 0, 2)
	to := from.AddDate(0, 0, 1)
	windowed, err := queries.NewListWorkerAssignmentsQuery(suite.workerUserID, nil, &from, &to, 1, 10)
	suite.Require().NoError(err)

	result, err = suite.listHandler.Handle(ctx, windowed)

	suite.Require().NoError(err)
	suite.Require().Len(result.Assignments, 1)
	suite.Equal("assigned", result.Assignments[0].Status)
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) TestListHandle_OtherWorkersAssignmentsInvisible() {
	ctx := context.Background()
	suite.seedAssignment(assignment.Assigned, time.Now().UTC())

	query, err := queries.NewListWorkerAssignmentsQuery(kernel.NewUUID(), nil, nil, nil, 1, 10)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Empty(result.Assignments)
	suite.Equal(int64(0), result.Pagination.Total)
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) TestGetHandle_LoadsFullViewWithoutCustomerPhone() {
	ctx := context.Background()
	id := suite.seedAssignment(assignment.Assigned, time.Now().UTC())

	query, err := queries.NewGetWorkerAssignmentQuery(id, suite.workerUserID)
	suite.Require().NoError(err)

	response, err := suite.getHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(id.String(), response.ID)
	suite.Equal("assigned", response.Status)
	suite.Equal("Asha Verma", response.Booking.Customer.Name)
	suite.Equal("Tap repair", response.Booking.Service.Name)
	suite.Equal("Ravi Kumar", response.Worker.Name)
	suite.True(response.Booking.Customer.Subscription.Active)
	suite.Equal("+91-98765-43210", response.Booking.ContactPhone)

	payload, err := json.Marshal(response)
	suite.Require().NoError(err)
	suite.NotContains(string(payload), customerPhone)
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) TestGetHandle_MissingAssignment() {
	query, err := queries.NewGetWorkerAssignmentQuery(kernel.NewUUID(), suite.workerUserID)
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, queries.ErrAssignmentNotFound)
}

func (suite *WorkerAssignmentQueryHandlersTestSuite) TestGetHandle_ForeignAssignment() {
	id := suite.seedAssignment(assignment.Assigned, time.Now().UTC())

	query, err := queries.NewGetWorkerAssignmentQuery(id, kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, queries.ErrUnauthorizedAssignmentAccess)
	suite.NotErrorIs(err, queries.ErrAssignmentNotFound)
}

func TestWorkerAssignmentQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerAssignmentQueryHandlersTestSuite))
}
