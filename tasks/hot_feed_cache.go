// File: tasks/hot_feed_cache.go
package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/repo/redis"
)

// HotFeedCacheTask 负责定时刷新 Redis 中的热门信息流缓存。
// 从 MySQL 按热度分截取 Top N，原子地重建榜单 ZSet 与帖子实体 Hash。
type HotFeedCacheTask struct {
	db        *gorm.DB             // 主库句柄，缓存重建只读主库
	postRepo  mysql.PostRepository // 按热度分截取 Top N
	taskCache redis.FeedTaskCache  // 榜单与实体缓存的原子重建
	cron      *cron.Cron
	logger    *core.ZapLogger
}

// NewHotFeedCacheTask 初始化并启动热门信息流缓存的定时任务。
func NewHotFeedCacheTask(
	db *gorm.DB,
	postRepo mysql.PostRepository,
	taskCache redis.FeedTaskCache,
	logger *core.ZapLogger,
) *HotFeedCacheTask {
	cronV3 := cron.New() // 默认分钟级精度

	task := &HotFeedCacheTask{
		db:        db,
		postRepo:  postRepo,
		taskCache: taskCache,
		cron:      cronV3,
		logger:    logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业。
func (t *HotFeedCacheTask) startCronJob() {
	schedule := constant.HotFeedCacheCronSpec
	t.logger.Info("准备启动热门信息流缓存刷新定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("热门信息流缓存刷新任务开始执行...")
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.RebuildFeedCache(ctx)

		duration := time.Since(startTime)
		t.logger.Info("热门信息流缓存刷新任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加热门信息流缓存刷新 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("热门信息流缓存刷新定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// RebuildFeedCache 执行一次完整的缓存重建。
// 导出以便服务启动时立即预热一次，不必等第一个调度周期。
func (t *HotFeedCacheTask) RebuildFeedCache(ctx context.Context) {
	posts, _, err := t.postRepo.GetPostFeed(ctx, t.db, &dto.FeedQueryDTO{
		Offset: 0,
		Limit:  constant.HotFeedCacheSize,
	})
	if err != nil {
		t.logger.Error("从 MySQL 截取热门帖子失败，本次刷新中止", zap.Error(err))
		return
	}

	if err := t.taskCache.RebuildHotFeed(ctx, posts); err != nil {
		t.logger.Error("重建热门信息流缓存失败", zap.Error(err), zap.Int("count", len(posts)))
		return
	}
	t.logger.Info("热门信息流缓存重建完成", zap.Int("count", len(posts)))
}

// Stop 优雅地停止 cron 调度器。
// 返回一个 context，调用者可以使用它来等待正在运行的任务完成。
func (t *HotFeedCacheTask) Stop() context.Context {
	t.logger.Info("正在停止热门信息流缓存刷新定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("热门信息流缓存刷新定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}
