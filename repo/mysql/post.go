package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
)

// PostRepository 定义了帖子数据在 MySQL 中的持久化操作接口。
// 接口的设计旨在将数据访问逻辑与业务逻辑（服务层）解耦。
//
// 所有方法都显式接收 db *gorm.DB：调用方传入普通连接、事务 tx，
// 或由降级协调器在主备存储之间切换的句柄。仓库自身不持有连接。
type PostRepository interface {
	// CreatePost 持久化一个新的帖子记录。
	CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error

	// GetPostByID 根据单个 ID 检索帖子信息。
	// - 如果未找到帖子，返回 commonerrors.ErrRepoNotFound 错误。
	GetPostByID(ctx context.Context, db *gorm.DB, id uint64) (*entities.Post, error)

	// GetPostsByIDs 批量检索帖子，结果按传入 ID 顺序排列，缺失的 ID 跳过。
	GetPostsByIDs(ctx context.Context, db *gorm.DB, ids []uint64) ([]*entities.Post, error)

	// UpdatePostContent 更新帖子的标题与正文，总是刷新 updated_at。
	UpdatePostContent(ctx context.Context, db *gorm.DB, postID uint64, title, content string) error

	// DeletePost 对指定帖子执行软删除。
	DeletePost(ctx context.Context, db *gorm.DB, id uint64) error

	// GetPostFeed 按热度分数降序分页查询帖子列表。
	// - 返回: 帖子列表, 符合条件的总记录数, 错误。
	GetPostFeed(ctx context.Context, db *gorm.DB, params *dto.FeedQueryDTO) ([]*entities.Post, int64, error)

	// GetPostsByUserIDCursor 实现用户帖子列表的游标分页查询。
	// - 设计为降序（ID越大越新），适用于“用户个人主页”等场景展示最新帖子。
	// - cursor (*uint64): 使用指针类型是为了区分“首次加载”（nil）和“从某个ID之后加载”。
	// - 返回 nextCursor (*uint64): 下一页的起始ID，如果为 nil 表示没有更多数据。
	GetPostsByUserIDCursor(ctx context.Context, db *gorm.DB, userID string, cursor *uint64, pageSize int) ([]*entities.Post, *uint64, error)

	// IncrementUpvoteCount 原子增减帖子的点赞数，delta 可为负。
	IncrementUpvoteCount(ctx context.Context, db *gorm.DB, postID uint64, delta int64) error

	// IncrementCommentCount 原子增减帖子的根评论数，delta 可为负。
	IncrementCommentCount(ctx context.Context, db *gorm.DB, postID uint64, delta int64) error

	// UpdateScore 写入重算后的热度分数。
	UpdateScore(ctx context.Context, db *gorm.DB, postID uint64, score float64) error

	// SetClassification 回填内容分类结果（情感标签、色板、毒性标签）。
	SetClassification(ctx context.Context, db *gorm.DB, postID uint64, label string, colors, tags []string) error
}

// postRepository 是 PostRepository 接口针对 MySQL 的具体实现。
type postRepository struct {
	logger *core.ZapLogger
}

// NewPostRepository 是 postRepository 的构造函数。
func NewPostRepository(logger *core.ZapLogger) PostRepository {
	return &postRepository{
		logger: logger,
	}
}

// CreatePost 实现帖子的数据库插入操作。
func (r *postRepository) CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error {
	// GORM 会自动处理 BaseModel 中的 CreatedAt 和 UpdatedAt 字段。
	if err := db.WithContext(ctx).Create(post).Error; err != nil {
		// 在仓库层，通常直接返回数据库错误，由服务层决定如何处理或包装。
		return err
	}
	// 创建成功后，post 对象会包含 GORM 自动生成的 ID 和时间戳。
	return nil
}

// GetPostByID 实现根据单个 ID 获取帖子。
func (r *postRepository) GetPostByID(ctx context.Context, db *gorm.DB, id uint64) (*entities.Post, error) {
	var post entities.Post

	// First 在找到记录时填充 post，如果未找到则返回 gorm.ErrRecordNotFound。
	err := db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取帖子未找到", zap.Uint64("postID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取帖子数据库查询失败", zap.Uint64("postID", id), zap.Error(err))
		return nil, err
	}

	return &post, nil
}

// GetPostsByIDs 实现按 ID 列表批量获取帖子，保持传入顺序。
func (r *postRepository) GetPostsByIDs(ctx context.Context, db *gorm.DB, ids []uint64) ([]*entities.Post, error) {
	if len(ids) == 0 {
		return []*entities.Post{}, nil
	}

	var posts []*entities.Post
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		r.logger.Error("批量获取帖子数据库查询失败", zap.Int("idCount", len(ids)), zap.Error(err))
		return nil, err
	}

	// IN 查询不保证顺序，按传入 ID 顺序重排。
	byID := make(map[uint64]*entities.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*entities.Post, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// UpdatePostContent 实现帖子标题与正文的更新。
func (r *postRepository) UpdatePostContent(ctx context.Context, db *gorm.DB, postID uint64, title, content string) error {
	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"title":      title,
			"content":    content,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("更新帖子数据库操作失败", zap.Error(result.Error), zap.Uint64("postID", postID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新帖子但未找到记录或记录已被删除", zap.Uint64("postID", postID))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// DeletePost 实现帖子的软删除。
func (r *postRepository) DeletePost(ctx context.Context, db *gorm.DB, id uint64) error {
	// entities.Post 嵌入了 gorm.DeletedAt，Delete 只填充 deleted_at。
	result := db.WithContext(ctx).Delete(&entities.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// GetPostFeed 实现按热度分数降序的分页查询。
func (r *postRepository) GetPostFeed(ctx context.Context, db *gorm.DB, params *dto.FeedQueryDTO) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var totalCount int64

	limit := params.Limit
	if limit <= 0 {
		limit = 20
		r.logger.Warn("GetPostFeed 接收到的 Limit 无效，使用默认值",
			zap.Int("receivedLimit", params.Limit),
			zap.Int("defaultLimit", limit),
		)
	}

	query := db.WithContext(ctx).Model(&entities.Post{})
	countQuery := db.WithContext(ctx).Model(&entities.Post{})

	if params.AuthorID != nil && *params.AuthorID != "" {
		query = query.Where("author_id = ?", *params.AuthorID)
		countQuery = countQuery.Where("author_id = ?", *params.AuthorID)
	}

	// 在应用分页和排序之前执行计数
	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("获取帖子信息流：计数查询失败", zap.Error(err), zap.Any("queryParams", params))
		return nil, 0, fmt.Errorf("计数帖子失败: %w", err)
	}
	if totalCount == 0 {
		return posts, 0, nil
	}

	// 热度分数相同的按 ID 降序（越新越靠前），保证排序确定。
	err := query.
		Order("popularity_score DESC").Order("id DESC").
		Offset(params.Offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("获取帖子信息流：列表查询失败", zap.Error(err), zap.Any("queryParams", params))
		return nil, 0, fmt.Errorf("查询帖子信息流失败: %w", err)
	}

	return posts, totalCount, nil
}

// GetPostsByUserIDCursor 实现游标方式获取用户帖子。
func (r *postRepository) GetPostsByUserIDCursor(ctx context.Context, db *gorm.DB, userID string, cursor *uint64, pageSize int) ([]*entities.Post, *uint64, error) {
	var posts []*entities.Post

	query := db.WithContext(ctx).
		Where("author_id = ?", userID).
		Order("id DESC")

	// 如果提供了 cursor (非首次加载)，则只查询 ID 小于 cursor 的记录。
	if cursor != nil {
		query = query.Where("id < ?", *cursor)
	}

	// 查询 pageSize + 1 条记录，目的是判断是否还有下一页。
	err := query.Limit(pageSize + 1).Find(&posts).Error
	if err != nil {
		return nil, nil, err
	}

	var nextCursor *uint64
	if len(posts) > pageSize {
		// 将最后一条记录的 ID 作为下一页的 cursor，并截断结果。
		nextCursor = &posts[pageSize-1].ID
		posts = posts[:pageSize]
	}

	return posts, nextCursor, nil
}

// IncrementUpvoteCount 实现帖子点赞数的原子增减。
func (r *postRepository) IncrementUpvoteCount(ctx context.Context, db *gorm.DB, postID uint64, delta int64) error {
	return r.incrementColumn(ctx, db, postID, "upvote_count", delta)
}

// IncrementCommentCount 实现帖子根评论数的原子增减。
func (r *postRepository) IncrementCommentCount(ctx context.Context, db *gorm.DB, postID uint64, delta int64) error {
	return r.incrementColumn(ctx, db, postID, "comment_count", delta)
}

// incrementColumn 用单条 UPDATE 完成计数增减，避免读改写竞态。
func (r *postRepository) incrementColumn(ctx context.Context, db *gorm.DB, postID uint64, column string, delta int64) error {
	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		r.logger.Error("更新帖子计数失败",
			zap.Error(result.Error), zap.Uint64("postID", postID),
			zap.String("column", column), zap.Int64("delta", delta))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// UpdateScore 实现热度分数写回。
func (r *postRepository) UpdateScore(ctx context.Context, db *gorm.DB, postID uint64, score float64) error {
	return db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", postID).
		UpdateColumn("popularity_score", score).Error
}

// SetClassification 实现分类结果回填。
// 切片字段走结构体更新以触发 JSON 序列化，Select 显式圈定三列，空切片也要写入。
func (r *postRepository) SetClassification(ctx context.Context, db *gorm.DB, postID uint64, label string, colors, tags []string) error {
	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", postID).
		Select("sentiment_label", "sentiment_colors", "toxicity_tags").
		Updates(&entities.Post{
			SentimentLabel:  label,
			SentimentColors: colors,
			ToxicityTags:    tags,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}
