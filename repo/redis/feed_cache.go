package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/myErrors"
)

// FeedCache 定义了热门信息流的缓存读取接口。
// - 目标: 首页信息流的前几页直接命中 Redis，避免每次请求都按分数扫表。
// - 数据由后台任务整体重建（ZSet 排名 + Hash 实体快照）。
type FeedCache interface {
	// GetPostsByRange 从热门信息流 ZSet 获取指定排名范围内的帖子 ID 列表。
	// - start, stop 是基于 0 的排名索引，stop 为 -1 表示到末尾。
	// - 榜单尚未构建或页窗落在快照之外时返回 myErrors.ErrCacheMiss，由调用方回源。
	GetPostsByRange(ctx context.Context, start, stop int64) ([]uint64, error)

	// GetPosts 从 Redis Hash 中批量获取帖子实体快照。
	// - 未命中的 ID 直接跳过，调用方按需回源。
	// - 返回的实体反映缓存重建时的快照值。
	GetPosts(ctx context.Context, postIDs []uint64) ([]*entities.Post, error)
}

// feedCacheImpl 是 FeedCache 接口的 Redis 实现。
type feedCacheImpl struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewFeedCache 是 feedCacheImpl 的构造函数。
func NewFeedCache(redisClient *redis.Client, logger *core.ZapLogger) FeedCache {
	return &feedCacheImpl{
		redisClient: redisClient,
		logger:      logger,
	}
}

// GetPostsByRange 实现按排名范围获取帖子 ID。
func (c *feedCacheImpl) GetPostsByRange(ctx context.Context, start, stop int64) ([]uint64, error) {
	key := constant.HotFeedRankKey

	if start < 0 {
		c.logger.Warn("GetPostsByRange: start 参数为负数，视为无效请求。",
			zap.Int64("start", start), zap.Int64("stop", stop))
		return nil, myErrors.ErrCacheMiss
	}
	if start > stop && stop != -1 { // stop 为 -1 表示到 ZSet 末尾
		return nil, myErrors.ErrCacheMiss
	}

	idStrs, err := c.redisClient.ZRevRange(ctx, key, start, stop).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, myErrors.ErrCacheMiss
		}
		c.logger.Error("从 Redis ZRevRange 按排名范围获取帖子 ID 失败",
			zap.Error(err), zap.Int64("start", start), zap.Int64("stop", stop), zap.String("key", key))
		return nil, fmt.Errorf("获取排名 %d-%d 的帖子 ID 失败 (key: %s): %w", start, stop, key, err)
	}
	if len(idStrs) == 0 {
		// ZRevRange 对不存在的键返回空列表而非 redis.Nil，两种情况都按未命中处理。
		return nil, myErrors.ErrCacheMiss
	}

	ids := make([]uint64, 0, len(idStrs))
	for _, idStr := range idStrs {
		id, parseErr := strconv.ParseUint(idStr, 10, 64)
		if parseErr != nil {
			// ZSet 成员无法解析说明数据被污染，跳过以保证其他有效 ID 仍能被处理。
			c.logger.Warn("解析 ZSet 中的帖子 ID 字符串失败，已跳过该 ID。",
				zap.Error(parseErr), zap.String("idStr", idStr), zap.String("rankKey", key))
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// GetPosts 从 Redis Hash 中批量获取帖子实体快照。
func (c *feedCacheImpl) GetPosts(ctx context.Context, postIDs []uint64) ([]*entities.Post, error) {
	if len(postIDs) == 0 {
		return []*entities.Post{}, nil
	}

	hashKey := constant.PostsHashKey
	fields := make([]string, len(postIDs))
	for i, id := range postIDs {
		fields[i] = strconv.FormatUint(id, 10)
	}

	// HMGET 返回顺序与请求的 fields 一致，不存在的 field 对应 nil。
	values, err := c.redisClient.HMGet(ctx, hashKey, fields...).Result()
	if err != nil {
		c.logger.Error("从 Redis Hash 批量获取帖子失败 (HMGET 执行错误)",
			zap.Error(err), zap.String("hashKey", hashKey), zap.Int("idCount", len(postIDs)))
		return nil, fmt.Errorf("批量获取帖子缓存 (key: %s) 失败: %w", hashKey, err)
	}

	posts := make([]*entities.Post, 0, len(postIDs))
	cacheMissCount := 0
	unmarshalErrorCount := 0

	for i, val := range values {
		if val == nil {
			cacheMissCount++
			continue
		}

		jsonStr, ok := val.(string)
		if !ok {
			unmarshalErrorCount++
			c.logger.Error("帖子 Hash 缓存中的值类型不是预期的字符串，跳过该帖子",
				zap.Uint64("postID", postIDs[i]), zap.String("hashKey", hashKey))
			continue
		}

		var post entities.Post
		if jsonErr := json.Unmarshal([]byte(jsonStr), &post); jsonErr != nil {
			unmarshalErrorCount++
			c.logger.Error("反序列化帖子 Hash 缓存数据失败，跳过该帖子",
				zap.Error(jsonErr), zap.Uint64("postID", postIDs[i]), zap.String("hashKey", hashKey))
			continue
		}

		posts = append(posts, &post)
	}

	c.logger.Debug("批量获取帖子 Hash 缓存完成",
		zap.String("hashKey", hashKey),
		zap.Int("requested_id_count", len(postIDs)),
		zap.Int("found_in_cache_count", len(posts)),
		zap.Int("cache_miss_count", cacheMissCount),
		zap.Int("unmarshal_error_count", unmarshalErrorCount),
	)
	return posts, nil
}
