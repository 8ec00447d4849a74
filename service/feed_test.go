package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/repo/fallback"
	"github.com/Xushengqwer/comment_service/repo/mysql"
)

// stubFeedCache 模拟 Redis 榜单的三种状态：未命中、完整命中、实体缺口。
type stubFeedCache struct {
	rangeIDs []uint64
	rangeErr error
	posts    []*entities.Post
}

func (s *stubFeedCache) GetPostsByRange(context.Context, int64, int64) ([]uint64, error) {
	if s.rangeErr != nil {
		return nil, s.rangeErr
	}
	return s.rangeIDs, nil
}

func (s *stubFeedCache) GetPosts(context.Context, []uint64) ([]*entities.Post, error) {
	return s.posts, nil
}

func newFeedHarness(t *testing.T, cache *stubFeedCache) (*serviceHarness, FeedService) {
	t.Helper()
	h := newServiceHarness(t)
	zl := newTestLogger(t)
	coord := fallback.NewCoordinator(h.db, h.db, zl)
	feed := NewFeedService(coord, mysql.NewPostRepository(zl), cache, zl)
	return h, feed
}

// 榜单未命中走整页回源，数据库里的帖子照常返回。
func TestGetPostFeed_CacheMissFallsBackToDB(t *testing.T) {
	h, feed := newFeedHarness(t, &stubFeedCache{rangeErr: myErrors.ErrCacheMiss})

	mustCreatePost(t, h.db, testAuthorID)
	mustCreatePost(t, h.db, testAuthorID)

	page, err := feed.GetPostFeed(context.Background(), &dto.GetPostFeedRequestDTO{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Posts, 2)
}

// 榜单与实体全部命中时不碰数据库，按榜单排名返回。
func TestGetPostFeed_ServedFromCache(t *testing.T) {
	cached := []*entities.Post{
		{Title: "top", AuthorID: testAuthorID, AuthorUsername: "tester"},
		{Title: "second", AuthorID: testAuthorID, AuthorUsername: "tester"},
	}
	cached[0].ID = 7
	cached[1].ID = 3

	_, feed := newFeedHarness(t, &stubFeedCache{rangeIDs: []uint64{7, 3}, posts: cached})

	page, err := feed.GetPostFeed(context.Background(), &dto.GetPostFeedRequestDTO{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, uint64(7), page.Posts[0].ID)
	assert.Equal(t, uint64(3), page.Posts[1].ID)
	assert.Equal(t, int64(constant.HotFeedCacheSize), page.Total)
}

// 实体 Hash 有缺口时只回源缺的那几条，页内仍按榜单排名排列。
func TestGetPostFeed_BackfillsCacheGap(t *testing.T) {
	var cache stubFeedCache
	h, feed := newFeedHarness(t, &cache)

	// 缺口那条必须在数据库里，补齐后按排名插回页中。
	inDB := mustCreatePost(t, h.db, testAuthorID)

	hit := &entities.Post{Title: "hit", AuthorID: testAuthorID, AuthorUsername: "tester"}
	hit.ID = inDB.ID + 100
	cache.rangeIDs = []uint64{hit.ID, inDB.ID}
	cache.posts = []*entities.Post{hit}

	page, err := feed.GetPostFeed(context.Background(), &dto.GetPostFeedRequestDTO{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, hit.ID, page.Posts[0].ID)
	assert.Equal(t, inDB.ID, page.Posts[1].ID)
	assert.Equal(t, int64(constant.HotFeedCacheSize), page.Total)
}
