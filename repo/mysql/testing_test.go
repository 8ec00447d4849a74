package mysql

import (
	"testing"

	"github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Xushengqwer/comment_service/models/entities"
)

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
	require.NoError(t, db.AutoMigrate(&entities.Post{}, &entities.Comment{}, &entities.Vote{}))
	return db
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
