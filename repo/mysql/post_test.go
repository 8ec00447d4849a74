package mysql

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
)

func TestGetPostFeed_OrderAndTotal(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewPostRepository(newTestLogger(t))
	ctx := context.Background()

	low := mustCreatePost(t, db, "author-a")
	high := mustCreatePost(t, db, "author-a")
	tied := mustCreatePost(t, db, "author-b")

	require.NoError(t, repo.UpdateScore(ctx, db, low.ID, 5.0))
	require.NoError(t, repo.UpdateScore(ctx, db, high.ID, 10.0))
	require.NoError(t, repo.UpdateScore(ctx, db, tied.ID, 5.0))

	posts, total, err := repo.GetPostFeed(ctx, db, &dto.FeedQueryDTO{Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// 分数降序，同分按 ID 降序：tied 比 low 新，排在前面。
	require.Len(t, posts, 3)
	assert.Equal(t, high.ID, posts[0].ID)
	assert.Equal(t, tied.ID, posts[1].ID)
	assert.Equal(t, low.ID, posts[2].ID)

	// 分页偏移只截取列表，总数不变。
	page2, total, err := repo.GetPostFeed(ctx, db, &dto.FeedQueryDTO{Offset: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page2, 1)
	assert.Equal(t, low.ID, page2[0].ID)
}

func TestGetPostFeed_AuthorFilter(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewPostRepository(newTestLogger(t))
	ctx := context.Background()

	mine := mustCreatePost(t, db, "author-a")
	mustCreatePost(t, db, "author-b")

	author := "author-a"
	posts, total, err := repo.GetPostFeed(ctx, db, &dto.FeedQueryDTO{Offset: 0, Limit: 10, AuthorID: &author})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, mine.ID, posts[0].ID)
}

func TestGetPostsByUserIDCursor(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewPostRepository(newTestLogger(t))
	ctx := context.Background()

	var ids []uint64
	for i := 0; i < 5; i++ {
		ids = append(ids, mustCreatePost(t, db, "author-a").ID)
	}
	mustCreatePost(t, db, "author-b")

	// 首页：ID 降序取最新两条，游标指向下一页起点。
	page1, cursor, err := repo.GetPostsByUserIDCursor(ctx, db, "author-a", nil, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, ids[4], page1[0].ID)
	assert.Equal(t, ids[3], page1[1].ID)
	require.NotNil(t, cursor)

	page2, cursor, err := repo.GetPostsByUserIDCursor(ctx, db, "author-a", cursor, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, ids[2], page2[0].ID)
	assert.Equal(t, ids[1], page2[1].ID)
	require.NotNil(t, cursor)

	// 尾页：不足 pageSize+1 条，游标为 nil 表示没有更多。
	page3, cursor, err := repo.GetPostsByUserIDCursor(ctx, db, "author-a", cursor, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, ids[0], page3[0].ID)
	assert.Nil(t, cursor)
}

func TestGetPostsByIDs_PreservesRequestedOrder(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewPostRepository(newTestLogger(t))
	ctx := context.Background()

	a := mustCreatePost(t, db, "author-a")
	b := mustCreatePost(t, db, "author-a")
	c := mustCreatePost(t, db, "author-a")

	posts, err := repo.GetPostsByIDs(ctx, db, []uint64{c.ID, a.ID, 9999, b.ID})
	require.NoError(t, err)

	// 不存在的 ID 被跳过，其余按请求顺序返回。
	require.Len(t, posts, 3)
	assert.Equal(t, []uint64{c.ID, a.ID, b.ID}, []uint64{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestDeletePost_SoftDeleteAndNotFound(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewPostRepository(newTestLogger(t))
	ctx := context.Background()

	post := mustCreatePost(t, db, "author-a")
	require.NoError(t, repo.DeletePost(ctx, db, post.ID))

	_, err := repo.GetPostByID(ctx, db, post.ID)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	// 软删除后记录对默认查询不可见，重复删除视同未找到。
	assert.ErrorIs(t, repo.DeletePost(ctx, db, post.ID), commonerrors.ErrRepoNotFound)

	// 行仍在表里，只是带了删除标记。
	var raw entities.Post
	require.NoError(t, db.Unscoped().First(&raw, post.ID).Error)
}

func TestPostCounters(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewPostRepository(newTestLogger(t))
	ctx := context.Background()

	post := mustCreatePost(t, db, "author-a")

	require.NoError(t, repo.IncrementCommentCount(ctx, db, post.ID, 1))
	require.NoError(t, repo.IncrementCommentCount(ctx, db, post.ID, 1))
	require.NoError(t, repo.IncrementCommentCount(ctx, db, post.ID, -1))
	require.NoError(t, repo.IncrementUpvoteCount(ctx, db, post.ID, 1))

	got, err := repo.GetPostByID(ctx, db, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CommentCount)
	assert.Equal(t, int64(1), got.UpvoteCount)
}

func TestUpdatePostContent_NotFound(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewPostRepository(newTestLogger(t))

	err := repo.UpdatePostContent(context.Background(), db, 4242, "t", "c")
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}
