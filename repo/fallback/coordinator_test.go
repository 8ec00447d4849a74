package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Xushengqwer/comment_service/myErrors"
)

type fallbackRecord struct {
	ID    uint64 `gorm:"primaryKey"`
	Value string
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	zl, err := core.NewZapLogger(config.ZapConfig{})
	require.NoError(t, err)
	return zl
}

func newMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&fallbackRecord{}))
	return db
}

// newBrokenDB 返回一个连接已关闭的句柄，任何操作都会报基础设施错误。
func newBrokenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newMemoryDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return db
}

func TestExecute_PrimaryHealthy(t *testing.T) {
	primary := newMemoryDB(t)
	secondary := newMemoryDB(t)
	coord := NewCoordinator(primary, secondary, newTestLogger(t))

	err := coord.Execute(context.Background(), "write", func(db *gorm.DB) error {
		return db.Create(&fallbackRecord{ID: 1, Value: "a"}).Error
	})
	require.NoError(t, err)

	// 主存储健康时备用存储不应被触碰。
	var primaryCount, secondaryCount int64
	require.NoError(t, primary.Model(&fallbackRecord{}).Count(&primaryCount).Error)
	require.NoError(t, secondary.Model(&fallbackRecord{}).Count(&secondaryCount).Error)
	assert.Equal(t, int64(1), primaryCount)
	assert.Equal(t, int64(0), secondaryCount)
}

func TestExecute_FallsBackOnInfrastructureError(t *testing.T) {
	primary := newBrokenDB(t)
	secondary := newMemoryDB(t)
	coord := NewCoordinator(primary, secondary, newTestLogger(t))

	err := coord.Execute(context.Background(), "write", func(db *gorm.DB) error {
		return db.Create(&fallbackRecord{ID: 1, Value: "a"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, secondary.Model(&fallbackRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestExecute_DomainErrorPassesThrough(t *testing.T) {
	primary := newMemoryDB(t)
	secondary := newMemoryDB(t)
	// 备用库里放一条主库没有的记录：若误降级，领域错误会被吞掉。
	require.NoError(t, secondary.Create(&fallbackRecord{ID: 7, Value: "ghost"}).Error)
	coord := NewCoordinator(primary, secondary, newTestLogger(t))

	err := coord.Execute(context.Background(), "read", func(db *gorm.DB) error {
		var rec fallbackRecord
		if err := db.First(&rec, 7).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return commonerrors.ErrRepoNotFound
			}
			return err
		}
		return nil
	})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestExecute_BothFailReturnsFallbackError(t *testing.T) {
	coord := NewCoordinator(newBrokenDB(t), newBrokenDB(t), newTestLogger(t))

	err := coord.Execute(context.Background(), "write", func(db *gorm.DB) error {
		return db.Create(&fallbackRecord{ID: 1}).Error
	})
	require.Error(t, err)

	var fbErr *myErrors.FallbackError
	require.ErrorAs(t, err, &fbErr)
	assert.Equal(t, "write", fbErr.Op)
	assert.Error(t, fbErr.PrimaryErr)
	assert.Error(t, fbErr.SecondaryErr)
}

func TestExecute_NoSecondaryConfigured(t *testing.T) {
	coord := NewCoordinator(newBrokenDB(t), nil, newTestLogger(t))

	err := coord.Execute(context.Background(), "write", func(db *gorm.DB) error {
		return db.Create(&fallbackRecord{ID: 1}).Error
	})
	require.Error(t, err)

	var fbErr *myErrors.FallbackError
	assert.False(t, errors.As(err, &fbErr), "未配置备用存储时不应包装为 FallbackError")
	assert.False(t, coord.HasSecondary())
}

func TestQuery_FallsBackAndReturnsValue(t *testing.T) {
	primary := newBrokenDB(t)
	secondary := newMemoryDB(t)
	require.NoError(t, secondary.Create(&fallbackRecord{ID: 3, Value: "from-secondary"}).Error)
	coord := NewCoordinator(primary, secondary, newTestLogger(t))

	rec, err := Query(context.Background(), coord, "read", func(db *gorm.DB) (*fallbackRecord, error) {
		var out fallbackRecord
		if err := db.First(&out, 3).Error; err != nil {
			return nil, err
		}
		return &out, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "from-secondary", rec.Value)
}

func TestIsInfrastructureError(t *testing.T) {
	assert.False(t, IsInfrastructureError(nil))
	assert.False(t, IsInfrastructureError(commonerrors.ErrRepoNotFound))
	assert.False(t, IsInfrastructureError(gorm.ErrDuplicatedKey))
	assert.False(t, IsInfrastructureError(myErrors.ErrDepthLimitExceeded))
	assert.False(t, IsInfrastructureError(context.Canceled))
	assert.True(t, IsInfrastructureError(errors.New("driver: bad connection")))
}
