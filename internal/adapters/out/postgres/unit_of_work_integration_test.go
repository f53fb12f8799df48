package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "kds/internal/adapters/out/postgres"
	"kds/internal/adapters/out/postgres/postgrestest"
	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"
	"kds/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...order.ChangedEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// UnitOfWorkIntegrationTestSuite exercises transactions and post-commit publishing
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *postgrestest.Database
	publisher *MockPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.publisher = new(MockPublisher)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, suite.publisher, zap.NewNop())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotNil(uow1)
	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin keeps the first transaction")
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPublishesChanges() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.ChangedEvent) bool {
		return len(events) == 2 &&
			events[0].Type == order.ChangeCreated &&
			events[1].Type == order.ChangeStatusChanged &&
			events[1].OldStatus == order.New &&
			events[1].NewStatus == order.Preparing
	})).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	repo := uow.OrderRepository()
	id, err := repo.Add(ctx, newOrder())
	suite.Require().NoError(err)

	o, err := repo.Get(ctx, id)
	suite.Require().NoError(err)
	previous, err := o.TransitionTo(order.Preparing, time.Now())
	suite.Require().NoError(err)
	ok, err := repo.UpdateStatus(ctx, o, previous)
	suite.Require().NoError(err)
	suite.Require().True(ok)

	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())
	suite.assertOrderCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsRowsAndChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	_, err := uow.OrderRepository().Add(ctx, newOrder())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertOrderCount(0)
	suite.Empty(uow.(*postgres_adapter.GormUnitOfWork).Changes())
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublishFailureDoesNotFailCommit() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	_, err := uow.OrderRepository().Add(ctx, newOrder())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))
	suite.assertOrderCount(1)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	id, err := writer.OrderRepository().Add(ctx, newOrder())
	suite.Require().NoError(err)

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, id)
	suite.ErrorIs(err, errs.ErrObjectNotFound, "uncommitted rows are invisible to other units of work")

	suite.Require().NoError(writer.Commit(ctx))

	_, err = reader.OrderRepository().Get(ctx, id)
	suite.NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransactionPublishesImmediately() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.ChangedEvent) bool {
		return len(events) == 1 && events[0].Type == order.ChangeCreated
	})).Return(nil).Once()

	uow := suite.factory.Create()
	_, err := uow.OrderRepository().Add(ctx, newOrder())
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MariaScenario() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	created, err := order.NewOrder(order.SourceIFood, "Maria", "1x Açaí", time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	id, err := uow.OrderRepository().Add(ctx, created)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	for _, next := range []order.Status{order.Preparing, order.Ready, order.Dispatched} {
		step := suite.factory.Create()
		suite.Require().NoError(step.Begin(ctx))
		repo := step.OrderRepository()

		o, getErr := repo.Get(ctx, id)
		suite.Require().NoError(getErr)
		before := o.UpdatedAt()
		previous, trErr := o.TransitionTo(next, time.Now())
		suite.Require().NoError(trErr)
		ok, upErr := repo.UpdateStatus(ctx, o, previous)
		suite.Require().NoError(upErr)
		suite.Require().True(ok)
		suite.Require().NoError(step.Commit(ctx))

		stored, getErr := suite.factory.Create().OrderRepository().Get(ctx, id)
		suite.Require().NoError(getErr)
		suite.Equal(next, stored.Status())
		suite.True(stored.UpdatedAt().After(before))
	}

	active, err := suite.factory.Create().OrderRepository().Scan(ctx, ports.ActiveOrders)
	suite.Require().NoError(err)
	suite.Empty(active)
}

func (suite *UnitOfWorkIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.database.DB.Table("orders").Count(&count).Error)
	suite.Equal(expected, count)
}

func newOrder() *order.Order {
	o, err := order.NewOrder(order.SourceWhatsApp, "João", "2x Coxinha", time.Now())
	if err != nil {
		panic(err)
	}
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
