package featureflag_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/featureflag"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormWithMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestFeatureFlagService_IsEnabled(t *testing.T) {
	ctx := context.Background()
	companyID := "0d4f3b52-5a7a-4f2f-9f43-0a4ac18a8d11"

	t.Run("cache hit skips the database", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		svc := featureflag.NewService(nil, rdb)

		redisMock.ExpectGet("featureflags:" + companyID + ":loans_enabled").SetVal("1")

		enabled, err := svc.IsEnabled(ctx, companyID, featureflag.FlagLoansEnabled)

		assert.NoError(t, err)
		assert.True(t, enabled)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss falls back to database and backfills", func(t *testing.T) {
		gormDB, sqlMock := newGormWithMock(t)
		rdb, redisMock := redismock.NewClientMock()
		svc := featureflag.NewService(gormDB, rdb)

		key := "featureflags:" + companyID + ":loans_enabled"
		redisMock.ExpectGet(key).RedisNil()
		sqlMock.ExpectQuery(`SELECT (.+) FROM "company_feature_flags"`).
			WillReturnRows(sqlmock.NewRows([]string{"company_id", "flag", "enabled", "updated_at"}).
				AddRow(companyID, featureflag.FlagLoansEnabled, true, time.Now()))
		redisMock.ExpectSet(key, "1", 5*time.Minute).SetVal("OK")

		enabled, err := svc.IsEnabled(ctx, companyID, featureflag.FlagLoansEnabled)

		assert.NoError(t, err)
		assert.True(t, enabled)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("unknown flag defaults to disabled", func(t *testing.T) {
		gormDB, sqlMock := newGormWithMock(t)
		rdb, redisMock := redismock.NewClientMock()
		svc := featureflag.NewService(gormDB, rdb)

		key := "featureflags:" + companyID + ":loans_enabled"
		redisMock.ExpectGet(key).RedisNil()
		sqlMock.ExpectQuery(`SELECT (.+) FROM "company_feature_flags"`).
			WillReturnRows(sqlmock.NewRows([]string{"company_id", "flag", "enabled", "updated_at"}))
		redisMock.ExpectSet(key, "0", 5*time.Minute).SetVal("OK")

		enabled, err := svc.IsEnabled(ctx, companyID, featureflag.FlagLoansEnabled)

		assert.NoError(t, err)
		assert.False(t, enabled)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
