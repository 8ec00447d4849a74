package service

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/repo/fallback"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/repo/redis"
)

// FeedService 定义了热度信息流的业务逻辑接口。
type FeedService interface {
	// GetPostFeed 按热度分数降序分页获取帖子信息流。
	// - 无作者筛选且页窗落在榜单缓存内时走 Redis，否则回源 MySQL。
	GetPostFeed(ctx context.Context, req *dto.GetPostFeedRequestDTO) (*vo.PostFeedPageVO, error)
}

// feedService 是 FeedService 接口的具体实现。
type feedService struct {
	coord     *fallback.Coordinator
	postRepo  mysql.PostRepository
	feedCache redis.FeedCache
	logger    *core.ZapLogger
}

// NewFeedService 是 feedService 的构造函数。
func NewFeedService(
	coord *fallback.Coordinator,
	postRepo mysql.PostRepository,
	feedCache redis.FeedCache,
	logger *core.ZapLogger,
) FeedService {
	return &feedService{
		coord:     coord,
		postRepo:  postRepo,
		feedCache: feedCache,
		logger:    logger,
	}
}

// GetPostFeed 实现信息流读路径。
func (s *feedService) GetPostFeed(ctx context.Context, req *dto.GetPostFeedRequestDTO) (*vo.PostFeedPageVO, error) {
	offset := req.GetOffset()
	limit := req.GetLimit()

	// 缓存只存全站 Top N，作者筛选和越界页窗回源数据库。
	if req.AuthorID == nil && offset+limit <= constant.HotFeedCacheSize {
		if page, ok := s.tryFeedFromCache(ctx, int64(offset), int64(limit)); ok {
			return page, nil
		}
	}

	type feedPage struct {
		posts []*entities.Post
		total int64
	}

	page, err := fallback.Query(ctx, s.coord, "feed.get", func(db *gorm.DB) (feedPage, error) {
		posts, total, err := s.postRepo.GetPostFeed(ctx, db, &dto.FeedQueryDTO{
			Offset:   offset,
			Limit:    limit,
			AuthorID: req.AuthorID,
		})
		if err != nil {
			return feedPage{}, err
		}
		return feedPage{posts: posts, total: total}, nil
	})
	if err != nil {
		return nil, err
	}

	return &vo.PostFeedPageVO{
		Posts: vo.MapPostsToPostResponsesVO(page.posts),
		Total: page.total,
	}, nil
}

// tryFeedFromCache 尝试从 Redis 榜单组装一页信息流。
// 未命中或缓存故障返回 ok=false，由调用方整页回源数据库；
// 榜单命中但实体 Hash 有缺口时只回源缺口，保住已命中的部分。
func (s *feedService) tryFeedFromCache(ctx context.Context, offset, limit int64) (*vo.PostFeedPageVO, bool) {
	ids, err := s.feedCache.GetPostsByRange(ctx, offset, offset+limit-1)
	if err != nil {
		if errors.Is(err, myErrors.ErrCacheMiss) {
			// 榜单尚未构建或页窗越过快照，交给数据库判定。
			s.logger.Debug("信息流榜单缓存未命中，回源数据库",
				zap.Int64("offset", offset), zap.Int64("limit", limit))
		} else {
			s.logger.Warn("读取信息流榜单缓存失败，回源数据库", zap.Error(err))
		}
		return nil, false
	}

	posts, err := s.feedCache.GetPosts(ctx, ids)
	if err != nil {
		s.logger.Warn("读取帖子实体缓存失败，回源数据库", zap.Error(err))
		return nil, false
	}

	byID := make(map[uint64]*entities.Post, len(ids))
	for _, p := range posts {
		byID[p.ID] = p
	}

	if len(byID) != len(ids) {
		// 榜单与实体 Hash 出现缺口（刷新间隙），缺的几条按 ID 单独回源补齐。
		missing := make([]uint64, 0, len(ids)-len(byID))
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				missing = append(missing, id)
			}
		}
		filled, err := fallback.Query(ctx, s.coord, "feed.backfill", func(db *gorm.DB) ([]*entities.Post, error) {
			return s.postRepo.GetPostsByIDs(ctx, db, missing)
		})
		if err != nil {
			s.logger.Warn("回源补齐信息流缓存缺口失败，整页回源数据库",
				zap.Error(err), zap.Int("missing", len(missing)))
			return nil, false
		}
		for _, p := range filled {
			byID[p.ID] = p
		}
	}

	// 按榜单排名重排；数据库也没有的 ID（刚被删除）直接跳过。
	ordered := make([]*entities.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	// 缓存路径下 Total 是榜单容量上限，精确总数只在回源路径给出。
	return &vo.PostFeedPageVO{
		Posts: vo.MapPostsToPostResponsesVO(ordered),
		Total: int64(constant.HotFeedCacheSize),
	}, true
}
