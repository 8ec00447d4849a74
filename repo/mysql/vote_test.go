package mysql

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/models/entities"
)

func TestVote_UniquePerUserTargetCategoryTag(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewVoteRepository(newTestLogger(t))
	ctx := context.Background()

	vote := &entities.Vote{
		UserID:     "user-1",
		TargetType: entities.TargetPost,
		TargetID:   1,
		Category:   entities.CategoryEmotion,
		Tag:        "funny",
	}
	require.NoError(t, repo.CreateVote(ctx, db, vote))

	// 同一用户对同一目标同一标签的第二票撞唯一索引。
	dup := &entities.Vote{
		UserID: "user-1", TargetType: entities.TargetPost, TargetID: 1,
		Category: entities.CategoryEmotion, Tag: "funny",
	}
	err := repo.CreateVote(ctx, db, dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 同目标不同标签是不同的票。
	otherTag := &entities.Vote{
		UserID: "user-1", TargetType: entities.TargetPost, TargetID: 1,
		Category: entities.CategoryEmotion, Tag: "insightful",
	}
	assert.NoError(t, repo.CreateVote(ctx, db, otherTag))

	// 同标签不同维度也是不同的票。
	otherCategory := &entities.Vote{
		UserID: "user-1", TargetType: entities.TargetPost, TargetID: 1,
		Category: entities.CategoryContentFilter, Tag: "funny",
	}
	assert.NoError(t, repo.CreateVote(ctx, db, otherCategory))

	// 不同目标类型互不冲突：评论 1 与帖子 1 各算各的。
	otherTarget := &entities.Vote{
		UserID: "user-1", TargetType: entities.TargetComment, TargetID: 1,
		Category: entities.CategoryEmotion, Tag: "funny",
	}
	assert.NoError(t, repo.CreateVote(ctx, db, otherTarget))
}

func TestVote_DeleteAllowsRevote(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewVoteRepository(newTestLogger(t))
	ctx := context.Background()

	vote := &entities.Vote{
		UserID: "user-1", TargetType: entities.TargetPost, TargetID: 7,
		Category: entities.CategoryEmotion, Tag: "funny",
	}
	require.NoError(t, repo.CreateVote(ctx, db, vote))
	require.NoError(t, repo.DeleteVote(ctx, db, vote.ID))

	// 物理删除不留墓碑，同一用户可以再次投同一标签。
	again := &entities.Vote{
		UserID: "user-1", TargetType: entities.TargetPost, TargetID: 7,
		Category: entities.CategoryEmotion, Tag: "funny",
	}
	assert.NoError(t, repo.CreateVote(ctx, db, again))
}

func TestGetVote_NotFound(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewVoteRepository(newTestLogger(t))

	_, err := repo.GetVote(context.Background(), db, "ghost", entities.TargetPost, 1, entities.CategoryEmotion, "funny")
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestDeleteVotesByTargetAndCount(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewVoteRepository(newTestLogger(t))
	ctx := context.Background()

	for _, user := range []string{"u1", "u2", "u3"} {
		require.NoError(t, repo.CreateVote(ctx, db, &entities.Vote{
			UserID: user, TargetType: entities.TargetComment, TargetID: 42,
			Category: entities.CategoryEmotion, Tag: "funny",
		}))
	}
	require.NoError(t, repo.CreateVote(ctx, db, &entities.Vote{
		UserID: "u1", TargetType: entities.TargetComment, TargetID: 43,
		Category: entities.CategoryEmotion, Tag: "funny",
	}))

	count, err := repo.CountVotes(ctx, db, entities.TargetComment, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, repo.DeleteVotesByTarget(ctx, db, entities.TargetComment, 42))

	count, err = repo.CountVotes(ctx, db, entities.TargetComment, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// 其他目标的票不受影响。
	count, err = repo.CountVotes(ctx, db, entities.TargetComment, 43)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSummarizeVotes(t *testing.T) {
	db := newMemoryDB(t)
	repo := NewVoteRepository(newTestLogger(t))
	ctx := context.Background()

	seed := []struct {
		user     string
		category entities.VoteCategory
		tag      string
	}{
		{"u1", entities.CategoryEmotion, "funny"},
		{"u2", entities.CategoryEmotion, "funny"},
		{"u3", entities.CategoryEmotion, "funny"},
		{"u1", entities.CategoryEmotion, "insightful"},
		{"u2", entities.CategoryContentFilter, "spoiler"},
	}
	for _, s := range seed {
		require.NoError(t, repo.CreateVote(ctx, db, &entities.Vote{
			UserID: s.user, TargetType: entities.TargetPost, TargetID: 9,
			Category: s.category, Tag: s.tag,
		}))
	}
	// 其他目标的票不计入聚合。
	require.NoError(t, repo.CreateVote(ctx, db, &entities.Vote{
		UserID: "u1", TargetType: entities.TargetPost, TargetID: 10,
		Category: entities.CategoryEmotion, Tag: "funny",
	}))

	rows, err := repo.SummarizeVotes(ctx, db, entities.TargetPost, 9)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// 票数降序，票数相同按标签字典序。
	assert.Equal(t, VoteTagCount{Category: entities.CategoryEmotion, Tag: "funny", Count: 3}, rows[0])
	assert.Equal(t, VoteTagCount{Category: entities.CategoryEmotion, Tag: "insightful", Count: 1}, rows[1])
	assert.Equal(t, VoteTagCount{Category: entities.CategoryContentFilter, Tag: "spoiler", Count: 1}, rows[2])
}
