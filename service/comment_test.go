package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/myErrors"
)

const testAuthorID = "00000000-0000-0000-0000-000000000001"

// 一条从根到孙的链路：发表、读树、级联删除后计数归零。
func TestCommentLifecycle_RootReplyCascade(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)

	a, err := h.comments.CreateComment(ctx, testAuthorID, post.ID, &dto.CreateCommentRequest{
		Content:        "root comment",
		AuthorUsername: "tester",
	})
	require.NoError(t, err)
	assert.Equal(t, "001", a.Path)
	assert.Equal(t, 0, a.Depth)

	b, err := h.comments.CreateComment(ctx, testAuthorID, post.ID, &dto.CreateCommentRequest{
		Content:        "reply to root",
		ParentID:       &a.ID,
		AuthorUsername: "tester",
	})
	require.NoError(t, err)
	assert.Equal(t, "001/001", b.Path)
	assert.Equal(t, 1, b.Depth)

	c, err := h.comments.CreateComment(ctx, testAuthorID, post.ID, &dto.CreateCommentRequest{
		Content:        "reply to reply",
		ParentID:       &b.ID,
		AuthorUsername: "tester",
	})
	require.NoError(t, err)
	assert.Equal(t, "001/001/001", c.Path)
	assert.Equal(t, 2, c.Depth)

	// 树视图：单链嵌套，总数含所有深度。
	tree, err := h.comments.GetCommentTree(ctx, post.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), tree.Total)
	require.Len(t, tree.Comments, 1)
	require.Len(t, tree.Comments[0].Replies, 1)
	require.Len(t, tree.Comments[0].Replies[0].Replies, 1)
	assert.Equal(t, c.ID, tree.Comments[0].Replies[0].Replies[0].ID)

	// 删除根评论级联整条链，帖子计数回到 0。
	require.NoError(t, h.comments.DeleteComment(ctx, testAuthorID, a.ID))

	tree, err = h.comments.GetCommentTree(ctx, post.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tree.Total)
	assert.Empty(t, tree.Comments)

	var got entities.Post
	require.NoError(t, h.db.First(&got, post.ID).Error)
	assert.Equal(t, int64(0), got.CommentCount)
}

func TestCreateComment_PostNotFound(t *testing.T) {
	h := newServiceHarness(t)

	_, err := h.comments.CreateComment(context.Background(), testAuthorID, 12345, &dto.CreateCommentRequest{
		Content:        "orphan",
		AuthorUsername: "tester",
	})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestCreateComment_ParentFromAnotherPost(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	postA := mustCreatePost(t, h.db, testAuthorID)
	postB := mustCreatePost(t, h.db, testAuthorID)
	parent := mustCreateComment(t, h.db, postA.ID, "001", 0, 0)

	_, err := h.comments.CreateComment(ctx, testAuthorID, postB.ID, &dto.CreateCommentRequest{
		Content:        "cross-post reply",
		ParentID:       &parent.ID,
		AuthorUsername: "tester",
	})
	assert.ErrorIs(t, err, myErrors.ErrParentNotFound)
}

func TestCreateComment_DepthLimitWritesNothing(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)

	// 直接铺一条深度 0..9 的链，上限之内还差最后一层。
	path := "001"
	parent := mustCreateComment(t, h.db, post.ID, path, 0, 0)
	for depth := 1; depth <= 9; depth++ {
		path = path + "/001"
		parent = mustCreateComment(t, h.db, post.ID, path, parent.ID, depth)
	}

	// 回复深度 9 的评论落在深度 10，恰好是允许的最深层。
	last, err := h.comments.CreateComment(ctx, testAuthorID, post.ID, &dto.CreateCommentRequest{
		Content:        "deepest allowed reply",
		ParentID:       &parent.ID,
		AuthorUsername: "tester",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, last.Depth)
	assert.Equal(t, path+"/001", last.Path)

	// 再往下一层越界，且不得留下任何行。
	_, err = h.comments.CreateComment(ctx, testAuthorID, post.ID, &dto.CreateCommentRequest{
		Content:        "one level too deep",
		ParentID:       &last.ID,
		AuthorUsername: "tester",
	})
	assert.ErrorIs(t, err, myErrors.ErrDepthLimitExceeded)

	var count int64
	require.NoError(t, h.db.Model(&entities.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(11), count, "越界写入不得留下任何行")
}

// 同层兄弟打满定宽段容量后，再发表返回容量错误且不落库。
func TestCreateComment_SiblingCapacityExceeded(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)

	siblings := make([]entities.Comment, 0, 999)
	for i := 1; i <= 999; i++ {
		siblings = append(siblings, entities.Comment{
			PostID:         post.ID,
			Path:           fmt.Sprintf("%03d", i),
			ParentID:       0,
			Depth:          0,
			Content:        "filler",
			AuthorID:       testAuthorID,
			AuthorUsername: "tester",
		})
	}
	require.NoError(t, h.db.CreateInBatches(&siblings, 200).Error)

	_, err := h.comments.CreateComment(ctx, testAuthorID, post.ID, &dto.CreateCommentRequest{
		Content:        "the thousandth sibling",
		AuthorUsername: "tester",
	})
	assert.ErrorIs(t, err, myErrors.ErrPathCapacityExceeded)

	var count int64
	require.NoError(t, h.db.Model(&entities.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(999), count)
}

// 同一父节点下的并发发表：路径全部唯一，父计数恰好等于成功数。
func TestCreateComment_ConcurrentSiblings(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)
	root := mustCreateComment(t, h.db, post.ID, "001", 0, 0)

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.comments.CreateComment(ctx, testAuthorID, post.ID, &dto.CreateCommentRequest{
				Content:        fmt.Sprintf("concurrent reply %d", i),
				ParentID:       &root.ID,
				AuthorUsername: "tester",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "第 %d 个并发写入", i)
	}

	var children []entities.Comment
	require.NoError(t, h.db.Where("post_id = ? AND parent_id = ?", post.ID, root.ID).Find(&children).Error)
	require.Len(t, children, n)

	seen := make(map[string]bool, n)
	for _, c := range children {
		assert.False(t, seen[c.Path], "路径 %s 重复", c.Path)
		seen[c.Path] = true
	}

	var parent entities.Comment
	require.NoError(t, h.db.First(&parent, root.ID).Error)
	assert.Equal(t, int64(n), parent.ReplyCount)
}

func TestUpdateComment_OnlyAuthor(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)
	comment := mustCreateComment(t, h.db, post.ID, "001", 0, 0)

	err := h.comments.UpdateComment(ctx, "someone-else", comment.ID, &dto.UpdateCommentRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, myErrors.ErrUnauthorized)

	require.NoError(t, h.comments.UpdateComment(ctx, testAuthorID, comment.ID, &dto.UpdateCommentRequest{Content: "edited"}))

	var got entities.Comment
	require.NoError(t, h.db.First(&got, comment.ID).Error)
	assert.Equal(t, "edited", got.Content)
}

func TestDeleteComment_OnlyAuthor(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)
	comment := mustCreateComment(t, h.db, post.ID, "001", 0, 0)

	err := h.comments.DeleteComment(ctx, "someone-else", comment.ID)
	assert.ErrorIs(t, err, myErrors.ErrUnauthorized)

	var count int64
	require.NoError(t, h.db.Model(&entities.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// 评论子树删除要连同后代的投票一起清掉，兄弟子树上的投票保留。
func TestDeleteComment_PurgesDescendantVotes(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)
	root := mustCreateComment(t, h.db, post.ID, "001", 0, 0)
	child := mustCreateComment(t, h.db, post.ID, "001/001", root.ID, 1)
	sibling := mustCreateComment(t, h.db, post.ID, "002", 0, 0)

	for _, id := range []uint64{root.ID, child.ID, sibling.ID} {
		_, err := h.votes.ToggleVote(ctx, "voter-1", &dto.ToggleVoteRequest{
			TargetType: entities.TargetComment,
			TargetID:   id,
			Category:   entities.CategoryEmotion,
			Tag:        "funny",
		})
		require.NoError(t, err)
	}

	require.NoError(t, h.comments.DeleteComment(ctx, testAuthorID, root.ID))

	var remaining []entities.Vote
	require.NoError(t, h.db.Find(&remaining).Error)
	require.Len(t, remaining, 1, "只应剩下兄弟子树上的投票")
	assert.Equal(t, sibling.ID, remaining[0].TargetID)
}

func TestGetCommentThread_FocusAndChildren(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)

	root := mustCreateComment(t, h.db, post.ID, "001", 0, 0)
	c1 := mustCreateComment(t, h.db, post.ID, "001/001", root.ID, 1)
	mustCreateComment(t, h.db, post.ID, "001/002", root.ID, 1)
	mustCreateComment(t, h.db, post.ID, "001/001/001", c1.ID, 2)

	// 展开一层：只带直接子节点，孙子不进响应。
	one := 1
	thread, err := h.comments.GetCommentThread(ctx, root.ID, &one)
	require.NoError(t, err)
	require.NotNil(t, thread.Focus)
	assert.Equal(t, root.ID, thread.Focus.ID)
	require.Len(t, thread.Focus.Replies, 2)
	for _, reply := range thread.Focus.Replies {
		assert.Empty(t, reply.Replies)
	}

	// 缺省深度：整棵子树展开。
	thread, err = h.comments.GetCommentThread(ctx, root.ID, nil)
	require.NoError(t, err)
	require.Len(t, thread.Focus.Replies, 2)
	assert.Len(t, thread.Focus.Replies[0].Replies, 1)
}

func TestGetCommentThread_NotFound(t *testing.T) {
	h := newServiceHarness(t)

	_, err := h.comments.GetCommentThread(context.Background(), 424242, nil)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}
