package service

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Xushengqwer/comment_service/dependencies"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/rank"
	"github.com/Xushengqwer/comment_service/repo/fallback"
	"github.com/Xushengqwer/comment_service/repo/mysql"
)

// noopDirtySet 让服务测试脱离 Redis：标脏是尽力而为的旁路动作。
type noopDirtySet struct{}

func (noopDirtySet) MarkPostDirty(context.Context, uint64) error    { return nil }
func (noopDirtySet) MarkCommentDirty(context.Context, uint64) error { return nil }
func (noopDirtySet) DrainDirtyPosts(context.Context, int64) ([]uint64, error) {
	return nil, nil
}
func (noopDirtySet) DrainDirtyComments(context.Context, int64) ([]uint64, error) {
	return nil, nil
}

// serviceHarness 把真实仓库层接到 sqlite 内存库上，主备指向同一实例。
type serviceHarness struct {
	db       *gorm.DB
	posts    PostService
	comments CommentService
	votes    VoteService
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	zl, err := core.NewZapLogger(config.ZapConfig{})
	require.NoError(t, err)
	return zl
}

func newMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	// 内存库按连接隔离，并发用例必须收敛到单连接上。
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entities.Post{}, &entities.Comment{}, &entities.Vote{}))
	return db
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()
	zl := newTestLogger(t)
	db := newMemoryDB(t)
	coord := fallback.NewCoordinator(db, db, zl)

	commentRepo := mysql.NewCommentTreeRepository(zl)
	postRepo := mysql.NewPostRepository(zl)
	voteRepo := mysql.NewVoteRepository(zl)
	scorer := rank.NewScorer(0, 0, 0)
	classifier := dependencies.InitClassifier(nil, zl)

	return &serviceHarness{
		db: db,
		posts: NewPostService(
			coord, postRepo, commentRepo, voteRepo,
			scorer, noopDirtySet{}, classifier, nil, zl,
		),
		comments: NewCommentService(
			coord, commentRepo, postRepo, voteRepo,
			scorer, noopDirtySet{}, classifier, nil, zl,
		),
		votes: NewVoteService(
			coord, voteRepo, postRepo, commentRepo, noopDirtySet{}, zl,
		),
	}
}

func mustCreatePost(t *testing.T, db *gorm.DB, authorID string) *entities.Post {
	t.Helper()
	post := &entities.Post{
		Title:          "title",
		Content:        "content",
		AuthorID:       authorID,
		AuthorUsername: "tester",
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func mustCreateComment(t *testing.T, db *gorm.DB, postID uint64, path string, parentID uint64, depth int) *entities.Comment {
	t.Helper()
	comment := &entities.Comment{
		PostID:         postID,
		Path:           path,
		ParentID:       parentID,
		Depth:          depth,
		Content:        "comment at " + path,
		AuthorID:       "00000000-0000-0000-0000-000000000001",
		AuthorUsername: "tester",
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
