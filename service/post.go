package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/dependencies"
	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/events"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/mq/producer"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/rank"
	"github.com/Xushengqwer/comment_service/repo/fallback"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/repo/redis"
)

// PostService 定义了帖子内容管理的业务逻辑接口。
type PostService interface {
	// CreatePost 处理用户发布新帖子的业务流程。
	// - 落库后异步发送 Kafka 事件并触发内容分类。
	CreatePost(ctx context.Context, userID string, req *dto.CreatePostRequest) (*vo.PostResponse, error)

	// GetPostByID 获取单个帖子详情。
	GetPostByID(ctx context.Context, postID uint64) (*vo.PostResponse, error)

	// UpdatePost 编辑帖子标题与正文，仅作者本人可操作。
	UpdatePost(ctx context.Context, userID string, postID uint64, req *dto.UpdatePostRequest) error

	// DeletePost 删除帖子及其名下全部评论（软删除）与点赞记录（硬删除）。
	DeletePost(ctx context.Context, userID string, postID uint64) error

	// ListPostsByUserID 按游标分页加载某作者的帖子，按发布时间倒序。
	ListPostsByUserID(ctx context.Context, req *dto.ListPostsByUserIDRequest) (*vo.ListPostsByCursorResponse, error)
}

// postService 是 PostService 接口的具体实现。
type postService struct {
	coord      *fallback.Coordinator
	postRepo   mysql.PostRepository
	comments   mysql.CommentTreeRepository
	voteRepo   mysql.VoteRepository
	scorer     *rank.Scorer
	dirtySet   redis.ScoreDirtySet
	classifier dependencies.Classifier
	kafkaSvc   *producer.KafkaProducer
	logger     *core.ZapLogger
}

// NewPostService 是 postService 的构造函数。
func NewPostService(
	coord *fallback.Coordinator,
	postRepo mysql.PostRepository,
	comments mysql.CommentTreeRepository,
	voteRepo mysql.VoteRepository,
	scorer *rank.Scorer,
	dirtySet redis.ScoreDirtySet,
	classifier dependencies.Classifier,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) PostService {
	return &postService{
		coord:      coord,
		postRepo:   postRepo,
		comments:   comments,
		voteRepo:   voteRepo,
		scorer:     scorer,
		dirtySet:   dirtySet,
		classifier: classifier,
		kafkaSvc:   kafkaSvc,
		logger:     logger,
	}
}

// CreatePost 实现发帖流程。
func (s *postService) CreatePost(ctx context.Context, userID string, req *dto.CreatePostRequest) (*vo.PostResponse, error) {
	post := &entities.Post{
		Title:          req.Title,
		Content:        req.Content,
		AuthorID:       userID,
		AuthorUsername: req.AuthorUsername,
	}

	err := s.coord.Execute(ctx, "post.create", func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := s.postRepo.CreatePost(ctx, tx, post); err != nil {
				return err
			}
			// 新帖只有新鲜度加成，无互动量。
			post.PopularityScore = s.scorer.ScoreAt(post.CreatedAt, 0, 0)
			return s.postRepo.UpdateScore(ctx, tx, post.ID, post.PopularityScore)
		})
	})
	if err != nil {
		s.logger.Error("创建帖子失败", zap.Error(err), zap.String("author_id", userID))
		return nil, err
	}

	// 尽力而为的异步动作，不影响已提交的帖子。
	go func(p entities.Post) {
		bgCtx := context.Background()
		event := events.PostCreatedEvent{
			PostID:         p.ID,
			Title:          p.Title,
			AuthorID:       p.AuthorID,
			AuthorUsername: p.AuthorUsername,
			CreatedAt:      p.CreatedAt,
		}
		if err := s.kafkaSvc.SendPostCreatedEvent(bgCtx, event); err != nil {
			s.logger.Error("发送 Kafka 帖子创建事件失败", zap.Error(err), zap.Uint64("post_id", p.ID))
		}

		cls, err := s.classifier.ClassifyText(bgCtx, p.Title+"\n"+p.Content)
		if err != nil {
			s.logger.Warn("帖子内容分类失败，保持未分类", zap.Error(err), zap.Uint64("post_id", p.ID))
			return
		}
		if err := s.postRepo.SetClassification(bgCtx, s.coord.Primary(), p.ID, cls.Label, cls.Colors, cls.Tags); err != nil {
			s.logger.Warn("回填帖子分类结果失败", zap.Error(err), zap.Uint64("post_id", p.ID))
		}
	}(*post)

	return vo.MapPostToResponseVO(post), nil
}

// GetPostByID 实现帖子详情查询。
func (s *postService) GetPostByID(ctx context.Context, postID uint64) (*vo.PostResponse, error) {
	post, err := fallback.Query(ctx, s.coord, "post.get", func(db *gorm.DB) (*entities.Post, error) {
		return s.postRepo.GetPostByID(ctx, db, postID)
	})
	if err != nil {
		return nil, err
	}
	return vo.MapPostToResponseVO(post), nil
}

// UpdatePost 实现帖子编辑。正文变了，分类结果异步重跑。
func (s *postService) UpdatePost(ctx context.Context, userID string, postID uint64, req *dto.UpdatePostRequest) error {
	err := s.coord.Execute(ctx, "post.update", func(db *gorm.DB) error {
		post, err := s.postRepo.GetPostByID(ctx, db, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != userID {
			return fmt.Errorf("%w: 帖子 %d 不属于用户 %s", myErrors.ErrUnauthorized, postID, userID)
		}
		return s.postRepo.UpdatePostContent(ctx, db, postID, req.Title, req.Content)
	})
	if err != nil {
		return err
	}

	go func(title, content string) {
		bgCtx := context.Background()
		cls, err := s.classifier.ClassifyText(bgCtx, title+"\n"+content)
		if err != nil {
			s.logger.Warn("帖子编辑后重新分类失败，保留旧分类", zap.Error(err), zap.Uint64("post_id", postID))
			return
		}
		if err := s.postRepo.SetClassification(bgCtx, s.coord.Primary(), postID, cls.Label, cls.Colors, cls.Tags); err != nil {
			s.logger.Warn("回填帖子分类结果失败", zap.Error(err), zap.Uint64("post_id", postID))
		}
	}(req.Title, req.Content)

	return nil
}

// DeletePost 实现帖子级联删除。
// - 帖子与评论软删除，保留数据用于审计；点赞记录硬删除。
func (s *postService) DeletePost(ctx context.Context, userID string, postID uint64) error {
	var deletedComments int64

	err := s.coord.Execute(ctx, "post.delete", func(db *gorm.DB) error {
		post, err := s.postRepo.GetPostByID(ctx, db, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != userID {
			return fmt.Errorf("%w: 帖子 %d 不属于用户 %s", myErrors.ErrUnauthorized, postID, userID)
		}

		return db.Transaction(func(tx *gorm.DB) error {
			// 软删除之前圈定评论 ID，它们名下的投票要一并清走。
			commentIDs, err := s.comments.ListCommentIDsByPost(ctx, tx, postID)
			if err != nil {
				return err
			}

			if err := s.postRepo.DeletePost(ctx, tx, postID); err != nil {
				return err
			}
			affected, err := s.comments.SoftDeleteByPost(ctx, tx, postID)
			if err != nil {
				return err
			}
			deletedComments = affected

			// 点赞记录硬删，避免墓碑占住唯一索引；帖子和它的评论都要清。
			if err := s.voteRepo.DeleteVotesByTargets(ctx, tx, entities.TargetComment, commentIDs); err != nil {
				return err
			}
			return s.voteRepo.DeleteVotesByTarget(ctx, tx, entities.TargetPost, postID)
		})
	})
	if err != nil {
		return err
	}

	go func(id uint64) {
		event := events.PostDeletedEvent{
			PostID:    id,
			DeletedAt: time.Now(),
		}
		if err := s.kafkaSvc.SendPostDeletedEvent(context.Background(), event); err != nil {
			s.logger.Error("发送 Kafka 帖子删除事件失败", zap.Error(err), zap.Uint64("post_id", id))
		}
	}(postID)

	s.logger.Info("帖子级联删除完成",
		zap.Uint64("post_id", postID), zap.Int64("deleted_comments", deletedComments))
	return nil
}

// ListPostsByUserID 实现作者维度的游标分页。
func (s *postService) ListPostsByUserID(ctx context.Context, req *dto.ListPostsByUserIDRequest) (*vo.ListPostsByCursorResponse, error) {
	type cursorPage struct {
		posts      []*entities.Post
		nextCursor *uint64
	}

	page, err := fallback.Query(ctx, s.coord, "post.listByUser", func(db *gorm.DB) (cursorPage, error) {
		posts, next, err := s.postRepo.GetPostsByUserIDCursor(ctx, db, req.UserID, req.Cursor, req.PageSize)
		if err != nil {
			return cursorPage{}, err
		}
		return cursorPage{posts: posts, nextCursor: next}, nil
	})
	if err != nil {
		return nil, err
	}

	return &vo.ListPostsByCursorResponse{
		Posts:      vo.MapPostsToPostResponsesVO(page.posts),
		NextCursor: page.nextCursor,
	}, nil
}
