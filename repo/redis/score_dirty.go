// File: repo/redis/score_dirty.go
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/constant"
)

// ScoreDirtySet 定义了热度分数脏集合的操作接口。
//
// 写路径（评论、投票、定时衰减）只负责把受影响的内容 ID SADD 进脏集合；
// 后台任务周期性 SPOP 取走一批，从计数真源重算分数后批量写回 MySQL。
// 集合天然去重：同一内容在一个周期内被多次触发也只重算一次。
type ScoreDirtySet interface {
	// MarkPostDirty 标记帖子分数待重算。
	MarkPostDirty(ctx context.Context, postID uint64) error

	// MarkCommentDirty 标记评论分数待重算。
	MarkCommentDirty(ctx context.Context, commentID uint64) error

	// DrainDirtyPosts 原子取走至多 limit 个待重算的帖子 ID。
	DrainDirtyPosts(ctx context.Context, limit int64) ([]uint64, error)

	// DrainDirtyComments 原子取走至多 limit 个待重算的评论 ID。
	DrainDirtyComments(ctx context.Context, limit int64) ([]uint64, error)
}

// scoreDirtySetImpl 是 ScoreDirtySet 接口的 Redis 实现。
type scoreDirtySetImpl struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewScoreDirtySet 是 scoreDirtySetImpl 的构造函数。
func NewScoreDirtySet(redisClient *redis.Client, logger *core.ZapLogger) ScoreDirtySet {
	return &scoreDirtySetImpl{
		redisClient: redisClient,
		logger:      logger,
	}
}

// MarkPostDirty 实现帖子脏标记。
// 标记失败只记日志不上抛：分数刷新是尽力而为的收敛，不能拖垮写路径。
func (s *scoreDirtySetImpl) MarkPostDirty(ctx context.Context, postID uint64) error {
	return s.mark(ctx, constant.DirtyPostScoreSetKey, postID)
}

// MarkCommentDirty 实现评论脏标记。
func (s *scoreDirtySetImpl) MarkCommentDirty(ctx context.Context, commentID uint64) error {
	return s.mark(ctx, constant.DirtyCommentScoreSetKey, commentID)
}

func (s *scoreDirtySetImpl) mark(ctx context.Context, key string, id uint64) error {
	if err := s.redisClient.SAdd(ctx, key, strconv.FormatUint(id, 10)).Err(); err != nil {
		s.logger.Warn("标记分数脏集合失败",
			zap.String("key", key), zap.Uint64("id", id), zap.Error(err))
		return fmt.Errorf("标记脏集合 (key: %s, id: %d) 失败: %w", key, id, err)
	}
	return nil
}

// DrainDirtyPosts 实现帖子脏集合的批量取出。
func (s *scoreDirtySetImpl) DrainDirtyPosts(ctx context.Context, limit int64) ([]uint64, error) {
	return s.drain(ctx, constant.DirtyPostScoreSetKey, limit)
}

// DrainDirtyComments 实现评论脏集合的批量取出。
func (s *scoreDirtySetImpl) DrainDirtyComments(ctx context.Context, limit int64) ([]uint64, error) {
	return s.drain(ctx, constant.DirtyCommentScoreSetKey, limit)
}

// drain 用 SPOPN 原子取走一批成员。
// SPOP 取走即删除：即使后续重算失败，下一次写操作会重新标脏，最终仍能收敛。
func (s *scoreDirtySetImpl) drain(ctx context.Context, key string, limit int64) ([]uint64, error) {
	if limit <= 0 {
		return []uint64{}, nil
	}

	members, err := s.redisClient.SPopN(ctx, key, limit).Result()
	if err != nil {
		s.logger.Error("从脏集合批量取出失败", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("从脏集合 (key: %s) 批量取出失败: %w", key, err)
	}

	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, parseErr := strconv.ParseUint(m, 10, 64)
		if parseErr != nil {
			s.logger.Warn("解析脏集合成员失败，已跳过。",
				zap.String("key", key), zap.String("member", m), zap.Error(parseErr))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
