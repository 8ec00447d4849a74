package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/repo/fallback"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/repo/redis"
)

// VoteService 定义了投票开关的业务逻辑接口。
type VoteService interface {
	// ToggleVote 切换用户对帖子或评论在某 (category, tag) 上的投票状态。
	// - 未投过则投票，已投过则取消；返回切换后的状态与最新总票数。
	// - 同一用户对同一 (目标, 维度, 标签) 并发双击由
	//   (user_id, target_type, target_id, category, tag) 唯一索引仲裁，
	//   最终恰好一条记录。
	ToggleVote(ctx context.Context, userID string, req *dto.ToggleVoteRequest) (*vo.VoteToggleVO, error)

	// GetVoteSummary 查询某内容按 (category, tag) 聚合的票数分布。
	GetVoteSummary(ctx context.Context, req *dto.GetVoteSummaryRequest) (*vo.VoteSummaryVO, error)
}

// voteService 是 VoteService 接口的具体实现。
type voteService struct {
	coord       *fallback.Coordinator
	voteRepo    mysql.VoteRepository
	postRepo    mysql.PostRepository
	commentRepo mysql.CommentTreeRepository
	dirtySet    redis.ScoreDirtySet
	logger      *core.ZapLogger
}

// NewVoteService 是 voteService 的构造函数。
func NewVoteService(
	coord *fallback.Coordinator,
	voteRepo mysql.VoteRepository,
	postRepo mysql.PostRepository,
	commentRepo mysql.CommentTreeRepository,
	dirtySet redis.ScoreDirtySet,
	logger *core.ZapLogger,
) VoteService {
	return &voteService{
		coord:       coord,
		voteRepo:    voteRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		dirtySet:    dirtySet,
		logger:      logger,
	}
}

// ToggleVote 实现投票开关。
func (s *voteService) ToggleVote(ctx context.Context, userID string, req *dto.ToggleVoteRequest) (*vo.VoteToggleVO, error) {
	targetType := req.TargetType

	type toggleResult struct {
		voted bool
		count int64
	}

	result, err := fallback.Query(ctx, s.coord, "vote.toggle", func(db *gorm.DB) (toggleResult, error) {
		// 目标必须存在且未删除，防止给死目标累计数。
		if err := s.checkTarget(ctx, db, targetType, req.TargetID); err != nil {
			return toggleResult{}, err
		}

		var res toggleResult
		txErr := db.Transaction(func(tx *gorm.DB) error {
			existing, err := s.voteRepo.GetVote(ctx, tx, userID, targetType, req.TargetID, req.Category, req.Tag)
			if err != nil && !errors.Is(err, commonerrors.ErrRepoNotFound) {
				return err
			}

			if existing != nil {
				// 取消投票：物理删除记录并回退计数。
				if err := s.voteRepo.DeleteVote(ctx, tx, existing.ID); err != nil {
					return err
				}
				res.voted = false
				return s.incrementTarget(ctx, tx, targetType, req.TargetID, -1)
			}

			vote := &entities.Vote{
				UserID:     userID,
				TargetType: targetType,
				TargetID:   req.TargetID,
				Category:   req.Category,
				Tag:        req.Tag,
			}
			if err := s.voteRepo.CreateVote(ctx, tx, vote); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// 并发双击：另一请求刚插入同一条记录，本次视为冲突让调用方重试。
					return fmt.Errorf("%w: 重复投票请求", myErrors.ErrTransactionConflict)
				}
				return err
			}
			res.voted = true
			return s.incrementTarget(ctx, tx, targetType, req.TargetID, 1)
		})
		if txErr != nil {
			return toggleResult{}, txErr
		}

		count, err := s.currentCount(ctx, db, targetType, req.TargetID)
		if err != nil {
			return toggleResult{}, err
		}
		res.count = count
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	// 互动量变化，标脏等待分数重算。
	bgCtx := context.Background()
	switch targetType {
	case entities.TargetPost:
		_ = s.dirtySet.MarkPostDirty(bgCtx, req.TargetID)
	case entities.TargetComment:
		_ = s.dirtySet.MarkCommentDirty(bgCtx, req.TargetID)
	}

	s.logger.Debug("投票状态切换完成",
		zap.String("user_id", userID), zap.Int8("target_type", int8(targetType)),
		zap.Uint64("target_id", req.TargetID), zap.String("category", string(req.Category)),
		zap.String("tag", req.Tag), zap.Bool("voted", result.voted))

	return &vo.VoteToggleVO{
		TargetType:  targetType,
		TargetID:    req.TargetID,
		Category:    req.Category,
		Tag:         req.Tag,
		Voted:       result.voted,
		UpvoteCount: result.count,
	}, nil
}

// GetVoteSummary 实现票数分布查询。
func (s *voteService) GetVoteSummary(ctx context.Context, req *dto.GetVoteSummaryRequest) (*vo.VoteSummaryVO, error) {
	rows, err := fallback.Query(ctx, s.coord, "vote.summary", func(db *gorm.DB) ([]mysql.VoteTagCount, error) {
		if err := s.checkTarget(ctx, db, req.TargetType, req.TargetID); err != nil {
			return nil, err
		}
		return s.voteRepo.SummarizeVotes(ctx, db, req.TargetType, req.TargetID)
	})
	if err != nil {
		return nil, err
	}

	summary := &vo.VoteSummaryVO{
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Tags:       make([]vo.VoteTagCountVO, 0, len(rows)),
	}
	for _, row := range rows {
		summary.Total += row.Count
		summary.Tags = append(summary.Tags, vo.VoteTagCountVO{
			Category: row.Category,
			Tag:      row.Tag,
			Count:    row.Count,
		})
	}
	return summary, nil
}

// checkTarget 确认点赞目标存在且未被删除。
func (s *voteService) checkTarget(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetID uint64) error {
	switch targetType {
	case entities.TargetPost:
		_, err := s.postRepo.GetPostByID(ctx, db, targetID)
		return err
	case entities.TargetComment:
		_, err := s.commentRepo.GetCommentByID(ctx, db, targetID)
		return err
	default:
		return fmt.Errorf("未知的点赞目标类型: %d", targetType)
	}
}

// incrementTarget 调整目标的点赞计数。
func (s *voteService) incrementTarget(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetID uint64, delta int64) error {
	if targetType == entities.TargetPost {
		return s.postRepo.IncrementUpvoteCount(ctx, db, targetID, delta)
	}
	return s.commentRepo.IncrementUpvoteCount(ctx, db, targetID, delta)
}

// currentCount 读取切换后的最新点赞计数。
func (s *voteService) currentCount(ctx context.Context, db *gorm.DB, targetType entities.TargetType, targetID uint64) (int64, error) {
	if targetType == entities.TargetPost {
		post, err := s.postRepo.GetPostByID(ctx, db, targetID)
		if err != nil {
			return 0, err
		}
		return post.UpvoteCount, nil
	}
	comment, err := s.commentRepo.GetCommentByID(ctx, db, targetID)
	if err != nil {
		return 0, err
	}
	return comment.UpvoteCount, nil
}
