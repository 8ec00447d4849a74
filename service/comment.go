package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/dependencies"
	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/events"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/mq/producer"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/pathcodec"
	"github.com/Xushengqwer/comment_service/rank"
	"github.com/Xushengqwer/comment_service/repo/fallback"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/repo/redis"
)

// DefaultTreeViewDepth 是评论树展示深度的缺省值，更深的子树折叠为占位。
const DefaultTreeViewDepth = 4

// CommentService 定义了评论树核心业务逻辑的接口。
type CommentService interface {
	// CreateComment 处理用户发表评论的业务流程。
	// - parentID 为 0 表示根评论，否则为对指定评论的回复。
	// - 路径分配采用乐观策略：计算兄弟序号后插入，撞 (post_id, path)
	//   唯一索引则退避重试，重试耗尽返回 ErrTransactionConflict。
	CreateComment(ctx context.Context, userID string, postID uint64, req *dto.CreateCommentRequest) (*vo.CommentResponse, error)

	// UpdateComment 编辑评论正文，仅作者本人可操作。
	UpdateComment(ctx context.Context, userID string, commentID uint64, req *dto.UpdateCommentRequest) error

	// DeleteComment 删除评论及其整棵子树（软删除），仅作者本人可操作。
	DeleteComment(ctx context.Context, userID string, commentID uint64) error

	// GetCommentTree 获取帖子的完整评论树视图。
	// - 同级按热度分数降序；超过 maxDepth 的子树折叠为占位。
	GetCommentTree(ctx context.Context, postID uint64, maxDepth *int) (*vo.CommentTreeVO, error)

	// GetCommentThread 获取聚焦视图：以某条评论为根向下展开的子树。
	// - 用于客户端点开"查看更多回复"时继续下钻。
	GetCommentThread(ctx context.Context, commentID uint64, maxDepth *int) (*vo.CommentThreadVO, error)
}

// commentService 是 CommentService 接口的具体实现。
type commentService struct {
	coord       *fallback.Coordinator       // 主备存储协调器，所有数据库访问经由它
	commentRepo mysql.CommentTreeRepository // 评论树的 MySQL 操作
	postRepo    mysql.PostRepository        // 帖子的 MySQL 操作（计数联动）
	voteRepo    mysql.VoteRepository        // 投票的 MySQL 操作（级联清理）
	scorer      *rank.Scorer                // 热度分数计算
	dirtySet    redis.ScoreDirtySet         // 分数待重算标记
	classifier  dependencies.Classifier     // 内容分类客户端
	kafkaSvc    *producer.KafkaProducer     // Kafka 生产者
	logger      *core.ZapLogger
}

// NewCommentService 是 commentService 的构造函数，通过依赖注入初始化服务实例。
func NewCommentService(
	coord *fallback.Coordinator,
	commentRepo mysql.CommentTreeRepository,
	postRepo mysql.PostRepository,
	voteRepo mysql.VoteRepository,
	scorer *rank.Scorer,
	dirtySet redis.ScoreDirtySet,
	classifier dependencies.Classifier,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) CommentService {
	return &commentService{
		coord:       coord,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		voteRepo:    voteRepo,
		scorer:      scorer,
		dirtySet:    dirtySet,
		classifier:  classifier,
		kafkaSvc:    kafkaSvc,
		logger:      logger,
	}
}

// CreateComment 实现评论发表的完整流程。
func (s *commentService) CreateComment(ctx context.Context, userID string, postID uint64, req *dto.CreateCommentRequest) (*vo.CommentResponse, error) {
	var parentID uint64
	if req.ParentID != nil {
		parentID = *req.ParentID
	}

	var created *entities.Comment

	err := s.coord.Execute(ctx, "comment.create", func(db *gorm.DB) error {
		// 帖子必须存在且未删除。
		post, err := s.postRepo.GetPostByID(ctx, db, postID)
		if err != nil {
			return err
		}

		// 回复时校验父评论：必须存在、未删除、且挂在同一帖子下。
		var parent *entities.Comment
		if parentID != 0 {
			parent, err = s.commentRepo.GetCommentByID(ctx, db, parentID)
			if err != nil {
				if errors.Is(err, commonerrors.ErrRepoNotFound) {
					return fmt.Errorf("%w: 父评论 %d", myErrors.ErrParentNotFound, parentID)
				}
				return err
			}
			if parent.PostID != postID {
				return fmt.Errorf("%w: 父评论 %d 不属于帖子 %d", myErrors.ErrParentNotFound, parentID, postID)
			}
			if parent.Depth+1 > constant.MaxCommentDepth {
				// 深度从 0 计，最深允许到 MaxCommentDepth（含）。
				return fmt.Errorf("%w: 父评论深度 %d", myErrors.ErrDepthLimitExceeded, parent.Depth)
			}
		}

		created, err = s.placeComment(ctx, db, post, parent, userID, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 写路径之外的尽力而为动作：标脏、发事件、触发分类。
	s.afterCommentCreated(created)

	resp := vo.BuildCommentForest([]*entities.Comment{created}, created.Depth, 0)
	return resp[0], nil
}

// placeComment 在一个既定的存储句柄上完成带重试的路径分配与落库。
// 重试留在同一存储内：主库的序号冲突不构成降级理由。
func (s *commentService) placeComment(ctx context.Context, db *gorm.DB, post *entities.Post, parent *entities.Comment, userID string, req *dto.CreateCommentRequest) (*entities.Comment, error) {
	var parentID uint64
	var parentPath string
	depth := 0
	if parent != nil {
		parentID = parent.ID
		parentPath = parent.Path
		depth = parent.Depth + 1
	}

	for attempt := 0; attempt < constant.MaxPlacementRetries; attempt++ {
		// 序号 = 已占用的兄弟位（含软删除）+ 1。
		siblingCount, err := s.commentRepo.CountDirectChildren(ctx, db, post.ID, parentID)
		if err != nil {
			return nil, err
		}

		var path string
		if parent == nil {
			path, err = pathcodec.EncodeRoot(int(siblingCount) + 1)
		} else {
			path, err = pathcodec.AppendChild(parentPath, int(siblingCount)+1)
		}
		if err != nil {
			if errors.Is(err, myErrors.ErrPathCapacityExceeded) {
				// 容量上限意味着该加宽路径段了，必须在日志里留痕。
				s.logger.Error("同级评论序号超出路径段容量",
					zap.Uint64("postID", post.ID), zap.Uint64("parentID", parentID),
					zap.Int64("ordinal", siblingCount+1))
			}
			return nil, err
		}

		comment := &entities.Comment{
			PostID:         post.ID,
			Path:           path,
			ParentID:       parentID,
			Depth:          depth,
			Content:        req.Content,
			AuthorID:       userID,
			AuthorUsername: req.AuthorUsername,
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := s.commentRepo.CreateComment(ctx, tx, comment); err != nil {
				return err
			}
			// 计数联动：根评论计入帖子，回复计入父评论。
			if parent == nil {
				return s.postRepo.IncrementCommentCount(ctx, tx, post.ID, 1)
			}
			return s.commentRepo.IncrementReplyCount(ctx, tx, parentID, 1)
		})
		if txErr == nil {
			// 初始分数同步写入，后续由异步任务收敛。
			comment.PopularityScore = s.scorer.ScoreAt(comment.CreatedAt, 0, 0)
			if err := s.commentRepo.UpdateScore(ctx, db, comment.ID, comment.PopularityScore); err != nil {
				s.logger.Warn("写入评论初始分数失败，等待异步重算",
					zap.Uint64("commentID", comment.ID), zap.Error(err))
			}
			return comment, nil
		}

		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			// 两个事务算出了同一序号，唯一索引仲裁后带抖动退避重试。
			backoff := time.Duration(1<<uint(attempt)) * time.Millisecond
			jitter := time.Duration(rand.Int63n(int64(backoff) + 1))
			s.logger.Debug("评论路径冲突，退避重试",
				zap.Uint64("postID", post.ID), zap.Uint64("parentID", parentID),
				zap.String("path", path), zap.Int("attempt", attempt+1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff + jitter):
			}
			continue
		}
		return nil, txErr
	}

	s.logger.Warn("评论路径分配重试耗尽",
		zap.Uint64("postID", post.ID), zap.Uint64("parentID", parentID),
		zap.Int("maxRetries", constant.MaxPlacementRetries))
	return nil, fmt.Errorf("%w: 同级评论写入竞争过高", myErrors.ErrTransactionConflict)
}

// afterCommentCreated 汇集落库之后的异步动作，任何失败都不影响已提交的评论。
func (s *commentService) afterCommentCreated(comment *entities.Comment) {
	// 新评论改变了帖子（和父评论）的互动量，标脏等待分数重算。
	bgCtx := context.Background()
	_ = s.dirtySet.MarkPostDirty(bgCtx, comment.PostID)
	if comment.ParentID != 0 {
		_ = s.dirtySet.MarkCommentDirty(bgCtx, comment.ParentID)
	}

	go func(c entities.Comment) {
		ctx := context.Background()
		event := events.CommentCreatedEvent{
			CommentID: c.ID,
			PostID:    c.PostID,
			ParentID:  c.ParentID,
			Path:      c.Path,
			Depth:     c.Depth,
			AuthorID:  c.AuthorID,
			CreatedAt: c.CreatedAt,
		}
		if err := s.kafkaSvc.SendCommentCreatedEvent(ctx, event); err != nil {
			s.logger.Error("发送 Kafka 评论创建事件失败", zap.Error(err), zap.Uint64("comment_id", c.ID))
		}

		// 分类结果通过 SetClassification 回填，失败保持未分类。
		cls, err := s.classifier.ClassifyText(ctx, c.Content)
		if err != nil {
			s.logger.Warn("评论内容分类失败，保持未分类", zap.Error(err), zap.Uint64("comment_id", c.ID))
			return
		}
		if err := s.commentRepo.SetClassification(ctx, s.coord.Primary(), c.ID, cls.Label, cls.Colors, cls.Tags); err != nil {
			s.logger.Warn("回填评论分类结果失败", zap.Error(err), zap.Uint64("comment_id", c.ID))
		}
	}(*comment)
}

// UpdateComment 实现评论编辑。正文变了，分类结果异步重跑。
func (s *commentService) UpdateComment(ctx context.Context, userID string, commentID uint64, req *dto.UpdateCommentRequest) error {
	err := s.coord.Execute(ctx, "comment.update", func(db *gorm.DB) error {
		comment, err := s.commentRepo.GetCommentByID(ctx, db, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != userID {
			return fmt.Errorf("%w: 评论 %d 不属于用户 %s", myErrors.ErrUnauthorized, commentID, userID)
		}
		return s.commentRepo.UpdateCommentContent(ctx, db, commentID, req.Content)
	})
	if err != nil {
		return err
	}

	go func(content string) {
		bgCtx := context.Background()
		cls, err := s.classifier.ClassifyText(bgCtx, content)
		if err != nil {
			s.logger.Warn("评论编辑后重新分类失败，保留旧分类", zap.Error(err), zap.Uint64("comment_id", commentID))
			return
		}
		if err := s.commentRepo.SetClassification(bgCtx, s.coord.Primary(), commentID, cls.Label, cls.Colors, cls.Tags); err != nil {
			s.logger.Warn("回填评论分类结果失败", zap.Error(err), zap.Uint64("comment_id", commentID))
		}
	}(req.Content)

	return nil
}

// DeleteComment 实现评论子树删除。
func (s *commentService) DeleteComment(ctx context.Context, userID string, commentID uint64) error {
	var deleted *entities.Comment
	var subtreeSize int64

	err := s.coord.Execute(ctx, "comment.delete", func(db *gorm.DB) error {
		comment, err := s.commentRepo.GetCommentByID(ctx, db, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != userID {
			return fmt.Errorf("%w: 评论 %d 不属于用户 %s", myErrors.ErrUnauthorized, commentID, userID)
		}

		return db.Transaction(func(tx *gorm.DB) error {
			// 软删除之前圈定整棵子树的 ID，后代的投票也要一并清走。
			subtreeIDs, err := s.commentRepo.ListSubtreeIDs(ctx, tx, comment.PostID, comment.Path)
			if err != nil {
				return err
			}

			affected, err := s.commentRepo.SoftDeleteSubtree(ctx, tx, comment.PostID, comment.Path)
			if err != nil {
				return err
			}
			subtreeSize = affected
			deleted = comment

			// 点赞记录硬删，避免墓碑占住唯一索引。
			if err := s.voteRepo.DeleteVotesByTargets(ctx, tx, entities.TargetComment, subtreeIDs); err != nil {
				return err
			}

			// 计数回退：只回退被删根自身占用的那一个名额，
			// 子孙的 reply_count 随节点一起软删，无需逐个修正。
			if comment.Depth == 0 {
				return s.postRepo.IncrementCommentCount(ctx, tx, comment.PostID, -1)
			}
			return s.commentRepo.IncrementReplyCount(ctx, tx, comment.ParentID, -1)
		})
	})
	if err != nil {
		return err
	}

	bgCtx := context.Background()
	_ = s.dirtySet.MarkPostDirty(bgCtx, deleted.PostID)
	if deleted.ParentID != 0 {
		_ = s.dirtySet.MarkCommentDirty(bgCtx, deleted.ParentID)
	}

	go func(c entities.Comment, size int64) {
		event := events.CommentDeletedEvent{
			CommentID:   c.ID,
			PostID:      c.PostID,
			SubtreeSize: size,
			DeletedAt:   time.Now(),
		}
		if err := s.kafkaSvc.SendCommentDeletedEvent(context.Background(), event); err != nil {
			s.logger.Error("发送 Kafka 评论删除事件失败", zap.Error(err), zap.Uint64("comment_id", c.ID))
		}
	}(*deleted, subtreeSize)

	s.logger.Info("评论子树删除完成",
		zap.Uint64("comment_id", commentID), zap.Int64("subtree_size", subtreeSize))
	return nil
}

// GetCommentTree 实现帖子评论树视图。
func (s *commentService) GetCommentTree(ctx context.Context, postID uint64, maxDepth *int) (*vo.CommentTreeVO, error) {
	depth := DefaultTreeViewDepth
	if maxDepth != nil {
		depth = *maxDepth
	}

	type treeResult struct {
		comments []*entities.Comment
		total    int64
	}

	result, err := fallback.Query(ctx, s.coord, "comment.tree", func(db *gorm.DB) (treeResult, error) {
		// 帖子必须存在，否则空树与不存在的帖子无法区分。
		if _, err := s.postRepo.GetPostByID(ctx, db, postID); err != nil {
			return treeResult{}, err
		}
		comments, err := s.commentRepo.GetTreeByPost(ctx, db, postID)
		if err != nil {
			return treeResult{}, err
		}
		total, err := s.commentRepo.CountByPost(ctx, db, postID)
		if err != nil {
			return treeResult{}, err
		}
		return treeResult{comments: comments, total: total}, nil
	})
	if err != nil {
		return nil, err
	}

	return &vo.CommentTreeVO{
		PostID:   postID,
		Comments: vo.BuildCommentForest(result.comments, 0, depth),
		Total:    result.total,
	}, nil
}

// GetCommentThread 实现聚焦视图。
func (s *commentService) GetCommentThread(ctx context.Context, commentID uint64, maxDepth *int) (*vo.CommentThreadVO, error) {
	depth := DefaultTreeViewDepth
	if maxDepth != nil {
		depth = *maxDepth
	}

	subtree, err := fallback.Query(ctx, s.coord, "comment.thread", func(db *gorm.DB) ([]*entities.Comment, error) {
		focus, err := s.commentRepo.GetCommentByID(ctx, db, commentID)
		if err != nil {
			return nil, err
		}
		if depth == 1 {
			// 只展开一层（"查看更多回复" 的热路径）：
			// parent_id 精确匹配比整棵子树的前缀扫描便宜得多。
			children, err := s.commentRepo.GetDirectChildren(ctx, db, focus.PostID, focus.ID, focus.Depth+1)
			if err != nil {
				return nil, err
			}
			return append([]*entities.Comment{focus}, children...), nil
		}
		return s.commentRepo.GetSubtree(ctx, db, focus.PostID, focus.Path)
	})
	if err != nil {
		return nil, err
	}
	if len(subtree) == 0 {
		return nil, commonerrors.ErrRepoNotFound
	}

	// 子树按先序排列，首元素即焦点评论。
	forest := vo.BuildCommentForest(subtree, subtree[0].Depth, depth)
	return &vo.CommentThreadVO{Focus: forest[0]}, nil
}
