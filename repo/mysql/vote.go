package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/models/entities"
)

// VoteRepository 定义了投票数据在 MySQL 中的持久化操作接口。
type VoteRepository interface {
	// GetVote 查询用户对某内容在某维度上对某标签的投票记录，
	// 不存在返回 commonerrors.ErrRepoNotFound。
	GetVote(ctx context.Context, db *gorm.DB, userID string, targetType entities.TargetType, targetID uint64, category entities.VoteCategory, tag string) (*entities.Vote, error)

	// CreateVote 插入一条投票记录。
	// - (user_id, target_type, target_id, category, tag) 唯一索引兜底并发重复投票：
	//   冲突时返回 gorm.ErrDuplicatedKey，服务层视为开关的竞态重放。
	CreateVote(ctx context.Context, db *gorm.DB, vote *entities.Vote) error

	// DeleteVote 物理删除一条投票记录。
	// - 投票不走软删除：墓碑行会占住唯一索引，阻止同一用户再次投同一标签。
	DeleteVote(ctx context.Context, db *gorm.DB, id uint64) error

	// DeleteVotesByTarget 物理删除某内容的全部投票，用于内容删除时的级联清理。
	DeleteVotesByTarget(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetID uint64) error

	// DeleteVotesByTargets 物理删除一批同类目标的全部投票。
	// - 级联删除评论子树时批量清理其上的投票，targetIDs 为空直接返回。
	DeleteVotesByTargets(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetIDs []uint64) error

	// CountVotes 从真源统计某内容的全维度总票数，供分数重算任务使用。
	CountVotes(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetID uint64) (int64, error)

	// SummarizeVotes 按 (category, tag) 聚合某内容的票数分布，票数降序。
	SummarizeVotes(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetID uint64) ([]VoteTagCount, error)
}

// VoteTagCount 是 SummarizeVotes 的聚合行。
type VoteTagCount struct {
	Category entities.VoteCategory
	Tag      string
	Count    int64
}

// voteRepository 是 VoteRepository 接口针对 MySQL 的具体实现。
type voteRepository struct {
	logger *core.ZapLogger
}

// NewVoteRepository 是 voteRepository 的构造函数。
func NewVoteRepository(logger *core.ZapLogger) VoteRepository {
	return &voteRepository{
		logger: logger,
	}
}

// GetVote 实现投票记录查询。
func (r *voteRepository) GetVote(ctx context.Context, db *gorm.DB, userID string, targetType entities.TargetType, targetID uint64, category entities.VoteCategory, tag string) (*entities.Vote, error) {
	var vote entities.Vote
	err := db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ? AND category = ? AND tag = ?",
			userID, targetType, targetID, category, tag).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("查询投票记录失败",
			zap.String("userID", userID), zap.Int8("targetType", int8(targetType)),
			zap.Uint64("targetID", targetID), zap.String("category", string(category)),
			zap.String("tag", tag), zap.Error(err))
		return nil, err
	}
	return &vote, nil
}

// CreateVote 实现投票记录插入。
func (r *voteRepository) CreateVote(ctx context.Context, db *gorm.DB, vote *entities.Vote) error {
	return db.WithContext(ctx).Create(vote).Error
}

// DeleteVote 实现投票记录的物理删除。
func (r *voteRepository) DeleteVote(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Vote{}, id)
	if result.Error != nil {
		r.logger.Error("删除投票记录失败", zap.Uint64("voteID", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// DeleteVotesByTarget 实现按目标批量删除投票。
func (r *voteRepository) DeleteVotesByTarget(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetID uint64) error {
	return db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Delete(&entities.Vote{}).Error
}

// DeleteVotesByTargets 实现按目标批量删除投票。
func (r *voteRepository) DeleteVotesByTargets(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetIDs []uint64) error {
	if len(targetIDs) == 0 {
		return nil
	}
	err := db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Delete(&entities.Vote{}).Error
	if err != nil {
		r.logger.Error("批量删除投票记录失败",
			zap.Int8("targetType", int8(targetType)), zap.Int("targetCount", len(targetIDs)), zap.Error(err))
	}
	return err
}

// CountVotes 实现票数真源统计。
func (r *voteRepository) CountVotes(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetID uint64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entities.Vote{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("统计票数失败",
			zap.Int8("targetType", int8(targetType)), zap.Uint64("targetID", targetID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// SummarizeVotes 实现票数分布聚合。
func (r *voteRepository) SummarizeVotes(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetID uint64) ([]VoteTagCount, error) {
	var rows []VoteTagCount
	err := db.WithContext(ctx).
		Model(&entities.Vote{}).
		Select("category, tag, COUNT(*) AS count").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Group("category, tag").
		Order("count DESC, tag ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Error("聚合票数分布失败",
			zap.Int8("targetType", int8(targetType)), zap.Uint64("targetID", targetID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}
