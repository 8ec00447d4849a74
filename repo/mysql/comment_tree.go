package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/pathcodec"
)

// CommentTreeRepository 定义了评论树在 MySQL 中的持久化操作接口。
//
// 树结构完全由物化路径表达：按 path 字典序扫描即得先序序列，
// 子树检索是一次前缀匹配。仓库自身不持有连接，db 由调用方传入。
type CommentTreeRepository interface {
	// CreateComment 插入一条评论。
	// - (post_id, path) 唯一索引是并发路径分配的最终仲裁：
	//   冲突时返回 gorm.ErrDuplicatedKey（需开启 TranslateError），由服务层重试。
	CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error

	// GetCommentByID 根据 ID 检索评论，未找到返回 commonerrors.ErrRepoNotFound。
	GetCommentByID(ctx context.Context, db *gorm.DB, id uint64) (*entities.Comment, error)

	// CountDirectChildren 统计某父评论的直接子节点数（parentID 为 0 时统计根评论）。
	// - 含软删除行：兄弟序号一经分配永不回收，否则复活的序号会与历史路径冲突。
	CountDirectChildren(ctx context.Context, db *gorm.DB, postID, parentID uint64) (int64, error)

	// GetTreeByPost 返回帖子下全部存活评论，按 path 字典序（即先序）排列。
	GetTreeByPost(ctx context.Context, db *gorm.DB, postID uint64) ([]*entities.Comment, error)

	// GetSubtree 返回以 rootPath 为根的存活子树（含根自身），按 path 字典序排列。
	GetSubtree(ctx context.Context, db *gorm.DB, postID uint64, rootPath string) ([]*entities.Comment, error)

	// GetDirectChildren 返回某评论的存活直接子节点，按 path 字典序排列。
	// - parent_id 精确匹配加 depth 双重过滤，不走路径前缀，免得扫进更深的后代。
	GetDirectChildren(ctx context.Context, db *gorm.DB, postID, parentID uint64, depth int) ([]*entities.Comment, error)

	// ListSubtreeIDs 返回以 rootPath 为根的存活子树（含根自身）的评论 ID。
	// - 用于级联删除前圈定投票清理范围，须在软删除之前调用。
	ListSubtreeIDs(ctx context.Context, db *gorm.DB, postID uint64, rootPath string) ([]uint64, error)

	// ListCommentIDsByPost 返回帖子下全部存活评论的 ID，用途同上。
	ListCommentIDsByPost(ctx context.Context, db *gorm.DB, postID uint64) ([]uint64, error)

	// CountByPost 统计帖子下全部存活评论数（所有深度）。
	CountByPost(ctx context.Context, db *gorm.DB, postID uint64) (int64, error)

	// UpdateCommentContent 更新评论正文，总是刷新 updated_at。
	UpdateCommentContent(ctx context.Context, db *gorm.DB, id uint64, content string) error

	// SoftDeleteSubtree 软删除以 rootPath 为根的整棵子树（含根），返回受影响行数。
	SoftDeleteSubtree(ctx context.Context, db *gorm.DB, postID uint64, rootPath string) (int64, error)

	// SoftDeleteByPost 软删除帖子下全部评论，返回受影响行数。用于帖子级联删除。
	SoftDeleteByPost(ctx context.Context, db *gorm.DB, postID uint64) (int64, error)

	// IncrementUpvoteCount 原子增减评论的点赞数，delta 可为负。
	IncrementUpvoteCount(ctx context.Context, db *gorm.DB, id uint64, delta int64) error

	// IncrementReplyCount 原子增减评论的直接回复数，delta 可为负。
	IncrementReplyCount(ctx context.Context, db *gorm.DB, id uint64, delta int64) error

	// UpdateScore 写入重算后的热度分数。
	UpdateScore(ctx context.Context, db *gorm.DB, id uint64, score float64) error

	// SetClassification 回填内容分类结果（情感标签、色板、毒性标签）。
	SetClassification(ctx context.Context, db *gorm.DB, id uint64, label string, colors, tags []string) error
}

// commentTreeRepository 是 CommentTreeRepository 接口针对 MySQL 的具体实现。
type commentTreeRepository struct {
	logger *core.ZapLogger
}

// NewCommentTreeRepository 是 commentTreeRepository 的构造函数。
func NewCommentTreeRepository(logger *core.ZapLogger) CommentTreeRepository {
	return &commentTreeRepository{
		logger: logger,
	}
}

// CreateComment 实现评论的数据库插入操作。
func (r *commentTreeRepository) CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error {
	if err := db.WithContext(ctx).Create(comment).Error; err != nil {
		// gorm.ErrDuplicatedKey 原样上抛，服务层据此重试路径分配；
		// 其余错误同样由服务层决定如何包装。
		return err
	}
	return nil
}

// GetCommentByID 实现根据 ID 获取评论。
func (r *commentTreeRepository) GetCommentByID(ctx context.Context, db *gorm.DB, id uint64) (*entities.Comment, error) {
	var comment entities.Comment

	err := db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取评论未找到", zap.Uint64("commentID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取评论数据库查询失败", zap.Uint64("commentID", id), zap.Error(err))
		return nil, err
	}

	return &comment, nil
}

// CountDirectChildren 实现直接子节点计数。
// 使用 Unscoped 把软删除行也计入：序号分配只增不回收。
func (r *commentTreeRepository) CountDirectChildren(ctx context.Context, db *gorm.DB, postID, parentID uint64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Unscoped().
		Model(&entities.Comment{}).
		Where("post_id = ? AND parent_id = ?", postID, parentID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("统计直接子评论数失败",
			zap.Uint64("postID", postID), zap.Uint64("parentID", parentID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// GetTreeByPost 实现整树检索。
func (r *commentTreeRepository) GetTreeByPost(ctx context.Context, db *gorm.DB, postID uint64) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	err := db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("path ASC").
		Find(&comments).Error
	if err != nil {
		r.logger.Error("获取帖子评论树失败", zap.Uint64("postID", postID), zap.Error(err))
		return nil, err
	}
	return comments, nil
}

// GetSubtree 实现子树检索：根自身精确匹配，后代走前缀匹配。
func (r *commentTreeRepository) GetSubtree(ctx context.Context, db *gorm.DB, postID uint64, rootPath string) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	err := db.WithContext(ctx).
		Where("post_id = ? AND (path = ? OR path LIKE ?)", postID, rootPath, pathcodec.SubtreePrefix(rootPath)).
		Order("path ASC").
		Find(&comments).Error
	if err != nil {
		r.logger.Error("获取评论子树失败",
			zap.Uint64("postID", postID), zap.String("rootPath", rootPath), zap.Error(err))
		return nil, err
	}
	return comments, nil
}

// GetDirectChildren 实现直接子节点检索。
func (r *commentTreeRepository) GetDirectChildren(ctx context.Context, db *gorm.DB, postID, parentID uint64, depth int) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	err := db.WithContext(ctx).
		Where("post_id = ? AND parent_id = ? AND depth = ?", postID, parentID, depth).
		Order("path ASC").
		Find(&comments).Error
	if err != nil {
		r.logger.Error("获取直接子评论失败",
			zap.Uint64("postID", postID), zap.Uint64("parentID", parentID), zap.Error(err))
		return nil, err
	}
	return comments, nil
}

// ListSubtreeIDs 实现子树评论 ID 圈定。
func (r *commentTreeRepository) ListSubtreeIDs(ctx context.Context, db *gorm.DB, postID uint64, rootPath string) ([]uint64, error) {
	var ids []uint64
	err := db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("post_id = ? AND (path = ? OR path LIKE ?)", postID, rootPath, pathcodec.SubtreePrefix(rootPath)).
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Error("圈定评论子树 ID 失败",
			zap.Uint64("postID", postID), zap.String("rootPath", rootPath), zap.Error(err))
		return nil, err
	}
	return ids, nil
}

// ListCommentIDsByPost 实现帖子下全部存活评论 ID 圈定。
func (r *commentTreeRepository) ListCommentIDsByPost(ctx context.Context, db *gorm.DB, postID uint64) ([]uint64, error) {
	var ids []uint64
	err := db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("post_id = ?", postID).
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Error("圈定帖子评论 ID 失败", zap.Uint64("postID", postID), zap.Error(err))
		return nil, err
	}
	return ids, nil
}

// CountByPost 实现帖子下存活评论总数统计。
func (r *commentTreeRepository) CountByPost(ctx context.Context, db *gorm.DB, postID uint64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("统计帖子评论总数失败", zap.Uint64("postID", postID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// UpdateCommentContent 实现评论正文更新。
func (r *commentTreeRepository) UpdateCommentContent(ctx context.Context, db *gorm.DB, id uint64, content string) error {
	result := db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		r.logger.Error("更新评论数据库操作失败", zap.Error(result.Error), zap.Uint64("commentID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新评论但未找到记录或记录已被删除", zap.Uint64("commentID", id))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// SoftDeleteSubtree 实现子树软删除。
// 单条 UPDATE 覆盖根与全部后代，受影响行数即子树存活节点数。
func (r *commentTreeRepository) SoftDeleteSubtree(ctx context.Context, db *gorm.DB, postID uint64, rootPath string) (int64, error) {
	result := db.WithContext(ctx).
		Where("post_id = ? AND (path = ? OR path LIKE ?)", postID, rootPath, pathcodec.SubtreePrefix(rootPath)).
		Delete(&entities.Comment{})
	if result.Error != nil {
		r.logger.Error("软删除评论子树失败",
			zap.Uint64("postID", postID), zap.String("rootPath", rootPath), zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SoftDeleteByPost 实现帖子下全部评论的软删除。
func (r *commentTreeRepository) SoftDeleteByPost(ctx context.Context, db *gorm.DB, postID uint64) (int64, error) {
	result := db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&entities.Comment{})
	if result.Error != nil {
		r.logger.Error("软删除帖子全部评论失败", zap.Uint64("postID", postID), zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementUpvoteCount 实现评论点赞数的原子增减。
func (r *commentTreeRepository) IncrementUpvoteCount(ctx context.Context, db *gorm.DB, id uint64, delta int64) error {
	return r.incrementColumn(ctx, db, id, "upvote_count", delta)
}

// IncrementReplyCount 实现评论直接回复数的原子增减。
func (r *commentTreeRepository) IncrementReplyCount(ctx context.Context, db *gorm.DB, id uint64, delta int64) error {
	return r.incrementColumn(ctx, db, id, "reply_count", delta)
}

// incrementColumn 用单条 UPDATE 完成计数增减，避免读改写竞态。
func (r *commentTreeRepository) incrementColumn(ctx context.Context, db *gorm.DB, id uint64, column string, delta int64) error {
	result := db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		r.logger.Error("更新评论计数失败",
			zap.Error(result.Error), zap.Uint64("commentID", id),
			zap.String("column", column), zap.Int64("delta", delta))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// UpdateScore 实现热度分数写回。
func (r *commentTreeRepository) UpdateScore(ctx context.Context, db *gorm.DB, id uint64, score float64) error {
	return db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		UpdateColumn("popularity_score", score).Error
}

// SetClassification 实现分类结果回填。
// 切片字段走结构体更新以触发 JSON 序列化，Select 显式圈定三列，空切片也要写入。
func (r *commentTreeRepository) SetClassification(ctx context.Context, db *gorm.DB, id uint64, label string, colors, tags []string) error {
	result := db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		Select("sentiment_label", "sentiment_colors", "toxicity_tags").
		Updates(&entities.Comment{
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
