package service

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
)

// 同一 (用户, 目标, 维度, 标签) 反复调用在有票/无票之间切换，计数不越界。
func TestToggleVote_ToggleSemantics(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)

	req := &dto.ToggleVoteRequest{
		TargetType: entities.TargetPost,
		TargetID:   post.ID,
		Category:   entities.CategoryEmotion,
		Tag:        "funny",
	}

	res, err := h.votes.ToggleVote(ctx, "voter-1", req)
	require.NoError(t, err)
	assert.True(t, res.Voted)
	assert.Equal(t, int64(1), res.UpvoteCount)

	res, err = h.votes.ToggleVote(ctx, "voter-1", req)
	require.NoError(t, err)
	assert.False(t, res.Voted)
	assert.Equal(t, int64(0), res.UpvoteCount)

	res, err = h.votes.ToggleVote(ctx, "voter-1", req)
	require.NoError(t, err)
	assert.True(t, res.Voted)
	assert.Equal(t, int64(1), res.UpvoteCount)

	var count int64
	require.NoError(t, h.db.Model(&entities.Vote{}).Where("target_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "切换三次后只剩一条投票记录")
}

// 不同标签互不影响：同一用户可以在多个 (维度, 标签) 上各投一票。
func TestToggleVote_IndependentTags(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)
	comment := mustCreateComment(t, h.db, post.ID, "001", 0, 0)

	tags := []struct {
		category entities.VoteCategory
		tag      string
	}{
		{entities.CategoryEmotion, "funny"},
		{entities.CategoryEmotion, "insightful"},
		{entities.CategoryContentFilter, "spoiler"},
	}
	for _, tc := range tags {
		res, err := h.votes.ToggleVote(ctx, "voter-1", &dto.ToggleVoteRequest{
			TargetType: entities.TargetComment,
			TargetID:   comment.ID,
			Category:   tc.category,
			Tag:        tc.tag,
		})
		require.NoError(t, err)
		assert.True(t, res.Voted)
	}

	var got entities.Comment
	require.NoError(t, h.db.First(&got, comment.ID).Error)
	assert.Equal(t, int64(3), got.UpvoteCount)

	// 取消其中一个标签，其余不动。
	res, err := h.votes.ToggleVote(ctx, "voter-1", &dto.ToggleVoteRequest{
		TargetType: entities.TargetComment,
		TargetID:   comment.ID,
		Category:   entities.CategoryEmotion,
		Tag:        "funny",
	})
	require.NoError(t, err)
	assert.False(t, res.Voted)
	assert.Equal(t, int64(2), res.UpvoteCount)
}

func TestToggleVote_DeadTarget(t *testing.T) {
	h := newServiceHarness(t)

	_, err := h.votes.ToggleVote(context.Background(), "voter-1", &dto.ToggleVoteRequest{
		TargetType: entities.TargetPost,
		TargetID:   99999,
		Category:   entities.CategoryEmotion,
		Tag:        "funny",
	})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestGetVoteSummary_AggregatesByCategoryAndTag(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()
	post := mustCreatePost(t, h.db, testAuthorID)

	votes := []struct {
		voter    string
		category entities.VoteCategory
		tag      string
	}{
		{"voter-1", entities.CategoryEmotion, "funny"},
		{"voter-2", entities.CategoryEmotion, "funny"},
		{"voter-3", entities.CategoryEmotion, "funny"},
		{"voter-1", entities.CategoryEmotion, "insightful"},
		{"voter-2", entities.CategoryContentFilter, "spoiler"},
	}
	for _, v := range votes {
		_, err := h.votes.ToggleVote(ctx, v.voter, &dto.ToggleVoteRequest{
			TargetType: entities.TargetPost,
			TargetID:   post.ID,
			Category:   v.category,
			Tag:        v.tag,
		})
		require.NoError(t, err)
	}

	summary, err := h.votes.GetVoteSummary(ctx, &dto.GetVoteSummaryRequest{
		TargetType: entities.TargetPost,
		TargetID:   post.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.Total)
	require.Len(t, summary.Tags, 3)

	// 票数降序、同票数按标签升序。
	assert.Equal(t, "funny", summary.Tags[0].Tag)
	assert.Equal(t, int64(3), summary.Tags[0].Count)
	assert.Equal(t, entities.CategoryEmotion, summary.Tags[0].Category)
	assert.Equal(t, "insightful", summary.Tags[1].Tag)
	assert.Equal(t, "spoiler", summary.Tags[2].Tag)
}
