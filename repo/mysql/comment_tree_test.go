package mysql

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateComment_DuplicatePathRejected(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))
	ctx := context.Background()
	post := mustCreatePost(t, db, "author-1")

	first := mustCreateComment(t, db, post.ID, "001", 0, 0)
	require.NotZero(t, first.ID)

	// 同一帖子下的相同路径撞 (post_id, path) 唯一索引。
	dup := *first
	dup.ID = 0
	err := repo.CreateComment(ctx, db, &dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 另一个帖子下的相同路径互不冲突。
	other := mustCreatePost(t, db, "author-2")
	sameInOtherPost := *first
	sameInOtherPost.ID = 0
	sameInOtherPost.PostID = other.ID
	err = repo.CreateComment(ctx, db, &sameInOtherPost)
	assert.NoError(t, err)
}

func TestGetCommentByID_NotFound(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))

	_, err := repo.GetCommentByID(context.Background(), db, 12345)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestCountDirectChildren_IncludesSoftDeleted(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))
	ctx := context.Background()
	post := mustCreatePost(t, db, "author-1")

	root := mustCreateComment(t, db, post.ID, "001", 0, 0)
	mustCreateComment(t, db, post.ID, "001/001", root.ID, 1)
	child2 := mustCreateComment(t, db, post.ID, "001/002", root.ID, 1)

	count, err := repo.CountDirectChildren(ctx, db, post.ID, root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// 软删除一个子节点后序号仍被占用，计数不变。
	_, err = repo.SoftDeleteSubtree(ctx, db, post.ID, child2.Path)
	require.NoError(t, err)

	count, err = repo.CountDirectChildren(ctx, db, post.ID, root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "软删除的兄弟节点必须继续占用序号")
}

func TestGetTreeByPost_PreorderByPath(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))
	ctx := context.Background()
	post := mustCreatePost(t, db, "author-1")

	// 乱序插入，读取时必须按 path 字典序（即先序）返回。
	r2 := mustCreateComment(t, db, post.ID, "002", 0, 0)
	r1 := mustCreateComment(t, db, post.ID, "001", 0, 0)
	mustCreateComment(t, db, post.ID, "001/002", r1.ID, 1)
	mustCreateComment(t, db, post.ID, "002/001", r2.ID, 1)
	mustCreateComment(t, db, post.ID, "001/001", r1.ID, 1)
	mustCreateComment(t, db, post.ID, "001/001/001", 0, 2)

	tree, err := repo.GetTreeByPost(ctx, db, post.ID)
	require.NoError(t, err)

	got := make([]string, 0, len(tree))
	for _, c := range tree {
		got = append(got, c.Path)
	}
	want := []string{"001", "001/001", "001/001/001", "001/002", "002", "002/001"}
	assert.Equal(t, want, got)
}

func TestGetSubtree_RootAndDescendantsOnly(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))
	ctx := context.Background()
	post := mustCreatePost(t, db, "author-1")

	r1 := mustCreateComment(t, db, post.ID, "001", 0, 0)
	mustCreateComment(t, db, post.ID, "001/001", r1.ID, 1)
	mustCreateComment(t, db, post.ID, "001/001/001", 0, 2)
	// 兄弟与"前缀相似"的根不得混入："0010" 不可能出现（定宽段），
	// 但 "002" 是字典序近邻，必须被排除。
	mustCreateComment(t, db, post.ID, "002", 0, 0)

	subtree, err := repo.GetSubtree(ctx, db, post.ID, "001")
	require.NoError(t, err)

	got := make([]string, 0, len(subtree))
	for _, c := range subtree {
		got = append(got, c.Path)
	}
	assert.Equal(t, []string{"001", "001/001", "001/001/001"}, got)
}

func TestGetDirectChildren_ExactDepthOnly(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))
	ctx := context.Background()
	post := mustCreatePost(t, db, "author-1")

	r1 := mustCreateComment(t, db, post.ID, "001", 0, 0)
	c1 := mustCreateComment(t, db, post.ID, "001/001", r1.ID, 1)
	mustCreateComment(t, db, post.ID, "001/002", r1.ID, 1)
	// 孙子节点与其他根都不属于直接子节点。
	mustCreateComment(t, db, post.ID, "001/001/001", c1.ID, 2)
	mustCreateComment(t, db, post.ID, "002", 0, 0)

	children, err := repo.GetDirectChildren(ctx, db, post.ID, r1.ID, 1)
	require.NoError(t, err)

	got := make([]string, 0, len(children))
	for _, c := range children {
		got = append(got, c.Path)
	}
	assert.Equal(t, []string{"001/001", "001/002"}, got)

	// 无子节点时返回空切片而非错误。
	leaf, err := repo.GetDirectChildren(ctx, db, post.ID, c1.ID+1000, 1)
	require.NoError(t, err)
	assert.Empty(t, leaf)
}

func TestSoftDeleteSubtree(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))
	ctx := context.Background()
	post := mustCreatePost(t, db, "author-1")

	r1 := mustCreateComment(t, db, post.ID, "001", 0, 0)
	mustCreateComment(t, db, post.ID, "001/001", r1.ID, 1)
	mustCreateComment(t, db, post.ID, "001/002", r1.ID, 1)
	sibling := mustCreateComment(t, db, post.ID, "002", 0, 0)

	affected, err := repo.SoftDeleteSubtree(ctx, db, post.ID, "001")
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected, "根与两个子节点一起删除")

	// 存活评论只剩兄弟节点。
	live, err := repo.CountByPost(ctx, db, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), live)

	// 被删除的根不可再读取，兄弟不受影响。
	_, err = repo.GetCommentByID(ctx, db, r1.ID)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	_, err = repo.GetCommentByID(ctx, db, sibling.ID)
	assert.NoError(t, err)
}

func TestSoftDeleteByPost(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))
	ctx := context.Background()
	post := mustCreatePost(t, db, "author-1")
	other := mustCreatePost(t, db, "author-2")

	r1 := mustCreateComment(t, db, post.ID, "001", 0, 0)
	mustCreateComment(t, db, post.ID, "001/001", r1.ID, 1)
	mustCreateComment(t, db, other.ID, "001", 0, 0)

	affected, err := repo.SoftDeleteByPost(ctx, db, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	// 其他帖子的评论不受影响。
	live, err := repo.CountByPost(ctx, db, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), live)
}

func TestIncrementReplyCountAndUpdateContent(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))
	ctx := context.Background()
	post := mustCreatePost(t, db, "author-1")
	root := mustCreateComment(t, db, post.ID, "001", 0, 0)

	require.NoError(t, repo.IncrementReplyCount(ctx, db, root.ID, 1))
	require.NoError(t, repo.IncrementReplyCount(ctx, db, root.ID, 1))
	require.NoError(t, repo.IncrementReplyCount(ctx, db, root.ID, -1))
	require.NoError(t, repo.UpdateCommentContent(ctx, db, root.ID, "edited"))

	got, err := repo.GetCommentByID(ctx, db, root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ReplyCount)
	assert.Equal(t, "edited", got.Content)
}

func TestUpdateScoreAndClassification(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewCommentTreeRepository(newTestLogger(t))
	ctx := context.Background()
	post := mustCreatePost(t, db, "author-1")
	root := mustCreateComment(t, db, post.ID, "001", 0, 0)

	require.NoError(t, repo.UpdateScore(ctx, db, root.ID, 12.5))
	require.NoError(t, repo.SetClassification(ctx, db, root.ID, "positive",
		[]string{"#ffd700", "#ff8c00"}, []string{"spoiler"}))

	got, err := repo.GetCommentByID(ctx, db, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.PopularityScore)
	assert.Equal(t, "positive", got.SentimentLabel)
	assert.Equal(t, []string{"#ffd700", "#ff8c00"}, got.SentimentColors)
	assert.Equal(t, []string{"spoiler"}, got.ToxicityTags)

	// 不存在的评论回填分类必须报 NotFound，供消费端决定是否丢弃消息。
	err = repo.SetClassification(ctx, db, 99999, "positive", nil, nil)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}
