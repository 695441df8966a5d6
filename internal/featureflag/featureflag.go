package featureflag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/tenant"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// FlagLoansEnabled gates whether loan deductions are folded into
// payslips at all.
const FlagLoansEnabled = "loans_enabled"

const cacheTTL = 5 * time.Minute

func cacheKey(companyID, flag string) string {
	return fmt.Sprintf("featureflags:%s:%s", companyID, flag)
}

type CompanyFeatureFlag struct {
	CompanyID string `gorm:"type:uuid;primaryKey"`
	Flag      string `gorm:"type:varchar(60);primaryKey"`
	Enabled   bool   `gorm:"not null;default:false"`
	UpdatedAt time.Time
}

func (CompanyFeatureFlag) TableName() string {
	return "company_feature_flags"
}

//go:generate mockgen -source=featureflag.go -destination=mock/featureflag_mock.go -package=mock
type Service interface {
	IsEnabled(ctx context.Context, companyID, flag string) (bool, error)
}

type service struct {
	db     *gorm.DB
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("featureflag.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("featureflag.service")
	}
	return &service{
		db:     db,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// IsEnabled resolves a flag from redis, falling back to the database
// with singleflight so concurrent previews don't stampede the flags
// table. Unknown flags default to disabled.
func (s *service) IsEnabled(ctx context.Context, companyID, flag string) (bool, error) {
	key := cacheKey(companyID, flag)

	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			return val == "1", nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("feature flag cache read failed",
				zap.String("flag", flag),
				zap.Error(err),
			)
		}
	}

	result, err, _ := s.sf.Do(key, func() (any, error) {
		var row CompanyFeatureFlag
		err := s.db.WithContext(ctx).
			Scopes(tenant.Scope(companyID)).
			Where("flag = ?", flag).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return row.Enabled, nil
	})
	if err != nil {
		return false, err
	}

	enabled := result.(bool)

	if s.rdb != nil {
		cached := "0"
		if enabled {
			cached = "1"
		}
		if err := s.rdb.Set(ctx, key, cached, cacheTTL).Err(); err != nil {
			s.logger.Warn("feature flag cache write failed",
				zap.String("flag", flag),
				zap.Error(err),
			)
		}
	}

	return enabled, nil
}
