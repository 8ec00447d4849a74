package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/myErrors"
)

// 帖子级联删除要清掉帖子自身和名下所有评论的投票，不能留下孤儿行。
func TestDeletePost_PurgesCommentVotes(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)
	root := mustCreateComment(t, h.db, post.ID, "001", 0, 0)
	reply := mustCreateComment(t, h.db, post.ID, "001/001", root.ID, 1)

	// 另一个帖子上的投票必须不受波及。
	other := mustCreatePost(t, h.db, testAuthorID)

	votes := []struct {
		targetType entities.TargetType
		targetID   uint64
	}{
		{entities.TargetPost, post.ID},
		{entities.TargetComment, root.ID},
		{entities.TargetComment, reply.ID},
		{entities.TargetPost, other.ID},
	}
	for _, v := range votes {
		_, err := h.votes.ToggleVote(ctx, "voter-1", &dto.ToggleVoteRequest{
			TargetType: v.targetType,
			TargetID:   v.targetID,
			Category:   entities.CategoryEmotion,
			Tag:        "funny",
		})
		require.NoError(t, err)
	}

	require.NoError(t, h.posts.DeletePost(ctx, testAuthorID, post.ID))

	var remaining []entities.Vote
	require.NoError(t, h.db.Find(&remaining).Error)
	require.Len(t, remaining, 1, "只应剩下另一个帖子上的投票")
	assert.Equal(t, other.ID, remaining[0].TargetID)
	assert.Equal(t, entities.TargetPost, remaining[0].TargetType)
}

func TestDeletePost_OnlyAuthor(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)

	err := h.posts.DeletePost(ctx, "someone-else", post.ID)
	assert.ErrorIs(t, err, myErrors.ErrUnauthorized)

	var got entities.Post
	require.NoError(t, h.db.First(&got, post.ID).Error)
}
