package kvstore_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/kvstore"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// KeyValueStoreIntegrationTestSuite verifies the PostgreSQL-backed store
// against a real database container.
type KeyValueStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *kvstore.GormKeyValueStore
}

func (suite *KeyValueStoreIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&kvstore.RecordDTO{}))
}

func (suite *KeyValueStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE kv_records").Error)
	suite.store = kvstore.NewGormKeyValueStore(suite.db)
}

func (suite *KeyValueStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *KeyValueStoreIntegrationTestSuite) TestGet_MissingKey() {
	_, err := suite.store.Get(context.Background(), "orderHistory")

	suite.Require().ErrorIs(err, ports.ErrKeyNotFound)
}

func (suite *KeyValueStoreIntegrationTestSuite) TestPut_ThenGet() {
	ctx := context.Background()
	payload := []byte(`{"user1":[]}`)

	suite.Require().NoError(suite.store.Put(ctx, "orderHistory", payload))

	value, err := suite.store.Get(ctx, "orderHistory")
	suite.Require().NoError(err)
	suite.Equal(payload, value)
}

func (suite *KeyValueStoreIntegrationTestSuite) TestPut_ReplacesPreviousValue() {
	ctx := context.Background()
	suite.Require().NoError(suite.store.Put(ctx, "orderHistory", []byte("old")))

	suite.Require().NoError(suite.store.Put(ctx, "orderHistory", []byte("new")))

	value, err := suite.store.Get(ctx, "orderHistory")
	suite.Require().NoError(err)
	suite.Equal([]byte("new"), value)

	var count int64
	suite.Require().NoError(suite.db.Model(&kvstore.RecordDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *KeyValueStoreIntegrationTestSuite) TestPut_IndependentKeys() {
	ctx := context.Background()

	suite.Require().NoError(suite.store.Put(ctx, "first", []byte("a")))
	suite.Require().NoError(suite.store.Put(ctx, "second", []byte("b")))

	first, err := suite.store.Get(ctx, "first")
	suite.Require().NoError(err)
	suite.Equal([]byte("a"), first)

	second, err := suite.store.Get(ctx, "second")
	suite.Require().NoError(err)
	suite.Equal([]byte("b"), second)
}

func TestKeyValueStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(KeyValueStoreIntegrationTestSuite))
}
