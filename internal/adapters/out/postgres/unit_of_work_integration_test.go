package postgres_test

import (
	"context"
	"sync"
	"testing"

	postgres_adapter "orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transactional behavior of the
// GORM-based Unit of Work against a real PostgreSQL database, including the
// serialization of concurrent lifecycle operations on the same order.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.ShippingDTO{},
		&orderrepo.DiscountDTO{},
		&orderrepo.TaxDTO{},
		&orderrepo.PaymentInfoDTO{},
		&orderrepo.CancellationDTO{},
		&orderrepo.ReturnDTO{},
		&orderrepo.AuditLogDTO{},
	))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, order_shippings, order_discounts, order_taxes, " +
			"order_payment_infos, order_cancellations, order_returns, order_audit_logs").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newPersistedOrder(ctx context.Context) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), 1, 25)
	suite.Require().NoError(err)

	shipping, err := order.NewShippingInfo(
		"Jane Doe", "1 Main St", "", "Springfield", "IL", "62701", "US", "+1-555-0100")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, shipping, 25, nil, nil, nil)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllChanges() {
	ctx := context.Background()
	aggregate := suite.newPersistedOrder(ctx)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().GetForUpdate(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Cancel("changed my mind", "user-1"))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	persisted, err := reader.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Created, persisted.Status())
	suite.Nil(persisted.Cancellation())
	suite.Len(persisted.AuditLog(), 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

// TestConcurrentCancels_ExactlyOneWinner runs two cancellations of the same
// order in parallel transactions. The row lock taken by GetForUpdate forces
// them to serialize: exactly one commits the transition and the other
// observes the terminal state and fails, without corrupting the stored
// cancellation record.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentCancels_ExactlyOneWinner() {
	ctx := context.Background()
	aggregate := suite.newPersistedOrder(ctx)

	cancelOnce := func(reason, actorID string) error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() { _ = uow.Rollback(ctx) }()

		loaded, err := uow.OrderRepository().GetForUpdate(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if err = loaded.Cancel(reason, actorID); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, loaded); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	reasons := []string{"first request", "second request"}
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cancelOnce(reasons[i], "user-1")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			suite.Require().ErrorIs(err, errs.ErrInvalidTransition)
		}
	}
	suite.Equal(1, winners, "exactly one cancellation must win")

	reader := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	persisted, err := reader.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, persisted.Status())
	suite.Require().NotNil(persisted.Cancellation())
	suite.Contains(reasons, persisted.Cancellation().Reason())
	suite.Len(persisted.AuditLog(), 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentCancelAndReturn_OneTerminalState() {
	ctx := context.Background()
	aggregate := suite.newPersistedOrder(ctx)

	transition := func(mutate func(*order.Order) error) error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() { _ = uow.Rollback(ctx) }()

		loaded, err := uow.OrderRepository().GetForUpdate(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if err = mutate(loaded); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, loaded); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0] = transition(func(o *order.Order) error {
			return o.Cancel("changed my mind", "user-1")
		})
	}()
	go func() {
		defer wg.Done()
		results[1] = transition(func(o *order.Order) error {
			return o.Return("wrong size", "user-1")
		})
	}()
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		}
	}
	suite.Equal(1, winners)

	reader := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	persisted, err := reader.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(persisted.Status().IsTerminal())
	// exactly one resolution record exists
	suite.True((persisted.Cancellation() != nil) != (persisted.ReturnInfo() != nil))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSequentialTransactions_ReuseFactory() {
	ctx := context.Background()
	aggregate := suite.newPersistedOrder(ctx)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().GetForUpdate(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.UpdatePaymentStatus(order.PaymentPaid, "system"))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err = uow.OrderRepository().GetForUpdate(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PaymentPaid, loaded.PaymentStatus())
	suite.Require().NoError(uow.Rollback(ctx))
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
