// File: repo/redis/feed_task.go
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/entities"
)

// FeedTaskCache 定义了后台任务重建热门信息流缓存的操作接口。
type FeedTaskCache interface {
	// RebuildHotFeed 用给定的帖子列表整体重建热门信息流缓存：
	// ZSet（ID -> 热度分数）与 Hash（ID -> 实体 JSON 快照）。
	// 采用临时 Key + RENAME 策略，重建过程对读侧原子。
	RebuildHotFeed(ctx context.Context, posts []*entities.Post) error
}

// feedTaskCacheImpl 是 FeedTaskCache 接口的 Redis 实现。
type feedTaskCacheImpl struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewFeedTaskCache 创建 FeedTaskCache 的新实例。
func NewFeedTaskCache(redisClient *redis.Client, logger *core.ZapLogger) FeedTaskCache {
	return &feedTaskCacheImpl{
		redisClient: redisClient,
		logger:      logger,
	}
}

// RebuildHotFeed 实现热门信息流缓存的整体重建。
func (c *feedTaskCacheImpl) RebuildHotFeed(ctx context.Context, posts []*entities.Post) error {
	startTime := time.Now()
	rankKey := constant.HotFeedRankKey
	hashKey := constant.PostsHashKey

	if len(posts) == 0 {
		// 信息流为空：直接清掉两个 Key，读侧自然回源数据库。
		c.logger.Info("热门信息流数据为空，清空缓存",
			zap.String("rankKey", rankKey), zap.String("hashKey", hashKey))
		if err := c.redisClient.Del(ctx, rankKey, hashKey).Err(); err != nil {
			c.logger.Error("清空热门信息流缓存失败", zap.Error(err))
			return fmt.Errorf("清空热门信息流缓存失败: %w", err)
		}
		return nil
	}

	suffix := "_temp_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	tempRankKey := rankKey + suffix
	tempHashKey := hashKey + suffix

	members := make([]redis.Z, 0, len(posts))
	hashData := make(map[string]interface{}, len(posts))
	marshalErrors := 0

	for _, post := range posts {
		idStr := strconv.FormatUint(post.ID, 10)
		jsonData, jsonErr := json.Marshal(post)
		if jsonErr != nil {
			c.logger.Error("序列化帖子实体失败，跳过该帖子", zap.Error(jsonErr), zap.Uint64("postID", post.ID))
			marshalErrors++
			continue
		}
		members = append(members, redis.Z{Score: post.PopularityScore, Member: idStr})
		hashData[idStr] = jsonData
	}

	if len(members) == 0 {
		c.logger.Error("未能准备任何有效的帖子数据进行缓存 (全部序列化失败)，现有缓存将保留。",
			zap.Int("inputCount", len(posts)), zap.Int("marshalErrors", marshalErrors))
		return fmt.Errorf("未能准备有效的帖子数据进行缓存，操作中止")
	}

	// 写入临时 Key，全部成功后一次 RENAME 切换。
	pipe := c.redisClient.Pipeline()
	pipe.Del(ctx, tempRankKey, tempHashKey)
	pipe.ZAdd(ctx, tempRankKey, members...)
	pipe.HMSet(ctx, tempHashKey, hashData)
	if _, execErr := pipe.Exec(ctx); execErr != nil {
		c.logger.Error("执行 Redis Pipeline (写入临时缓存) 失败，现有缓存将保留。",
			zap.Error(execErr), zap.String("tempRankKey", tempRankKey))
		c.redisClient.Del(ctx, tempRankKey, tempHashKey)
		return fmt.Errorf("写入临时热门信息流缓存失败: %w", execErr)
	}

	renamePipe := c.redisClient.Pipeline()
	renamePipe.Rename(ctx, tempRankKey, rankKey)
	renamePipe.Rename(ctx, tempHashKey, hashKey)
	if _, renameErr := renamePipe.Exec(ctx); renameErr != nil {
		c.logger.Error("执行 Redis RENAME (临时缓存切换) 失败，新缓存可能在临时Key中。",
			zap.Error(renameErr),
			zap.String("tempRankKey", tempRankKey),
			zap.String("tempHashKey", tempHashKey))
		c.redisClient.Del(ctx, tempRankKey, tempHashKey)
		return fmt.Errorf("切换热门信息流缓存失败: %w", renameErr)
	}

	c.logger.Info("成功重建热门信息流缓存",
		zap.String("rankKey", rankKey),
		zap.Int("cachedCount", len(members)),
		zap.Int("marshalErrors", marshalErrors),
		zap.Duration("duration", time.Since(startTime)),
	)
	return nil
}
