package chatroomrepo_test

import (
	"context"
	"testing"
	"time"

	"fieldwork/internal/adapters/out/postgres/chatroomrepo"
	"fieldwork/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ChatRoomManagerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	manager   *chatroomrepo.GormChatRoomManager
}

func (suite *ChatRoomManagerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&chatroomrepo.ChatRoomDTO{}))
	suite.manager = chatroomrepo.NewGormChatRoomManager(db)
}

func (suite *ChatRoomManagerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE chat_rooms").Error)
}

func (suite *ChatRoomManagerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ChatRoomManagerTestSuite) TestCreateForBooking_SecondCallReturnsSameRoom() {
	ctx := context.Background()
	bookingID := kernel.NewUUID()

	first, err := suite.manager.CreateForBooking(ctx, bookingID)
	suite.Require().NoError(err)

	second, err := suite.manager.CreateForBooking(ctx, bookingID)

	suite.Require().NoError(err)
	suite.True(first.IsEqual(second))

	var count int64
	suite.Require().NoError(suite.db.Model(&chatroomrepo.ChatRoomDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *ChatRoomManagerTestSuite) TestCloseForBooking_RecordsReason() {
	ctx := context.Background()
	bookingID := kernel.NewUUID()
	roomID, err := suite.manager.CreateForBooking(ctx, bookingID)
	suite.Require().NoError(err)

	err = suite.manager.CloseForBooking(ctx, bookingID, "Service completed")

	suite.Require().NoError(err)
	var dto chatroomrepo.ChatRoomDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", roomID.Bytes()).Error)
	suite.False(dto.Open)
	suite.Equal("Service completed", dto.ClosedReason)
	suite.NotNil(dto.ClosedAt)
}

func (suite *ChatRoomManagerTestSuite) TestCloseForBooking_WithoutOpenRoom_IsNoOp() {
	err := suite.manager.CloseForBooking(context.Background(), kernel.NewUUID(), "Assignment rejected")

	suite.Require().NoError(err)
}

func (suite *ChatRoomManagerTestSuite) TestCreateForBooking_AfterClose_OpensFreshRoom() {
	ctx := context.Background()
	bookingID := kernel.NewUUID()
	first, err := suite.manager.CreateForBooking(ctx, bookingID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.manager.CloseForBooking(ctx, bookingID, "Assignment rejected"))

	second, err := suite.manager.CreateForBooking(ctx, bookingID)

	suite.Require().NoError(err)
	suite.False(first.IsEqual(second))
}

func TestChatRoomManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ChatRoomManagerTestSuite))
}
