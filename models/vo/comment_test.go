package vo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/models/entities"
)

// flatComment 构造一条只带树结构字段的评论，路径顺序即先序。
func flatComment(id uint64, path string, depth int, score float64) *entities.Comment {
	c := &entities.Comment{
		PostID:          1,
		Path:            path,
		Depth:           depth,
		Content:         "c-" + path,
		PopularityScore: score,
	}
	c.ID = id
	return c
}

func TestBuildCommentForest_AssemblesTree(t *testing.T) {
	comments := []*entities.Comment{
		flatComment(1, "001", 0, 0),
		flatComment(2, "001/001", 1, 0),
		flatComment(3, "001/002", 1, 0),
		flatComment(4, "002", 0, 0),
		flatComment(5, "002/001", 1, 0),
	}

	forest := BuildCommentForest(comments, 0, 4)

	require.Len(t, forest, 2)
	assert.Equal(t, uint64(1), forest[0].ID)
	require.Len(t, forest[0].Replies, 2)
	assert.Equal(t, uint64(2), forest[0].Replies[0].ID)
	assert.Equal(t, uint64(3), forest[0].Replies[1].ID)
	require.Len(t, forest[1].Replies, 1)
	assert.Equal(t, uint64(5), forest[1].Replies[0].ID)
}

func TestBuildCommentForest_SortsByScoreKeepingPathOrderOnTies(t *testing.T) {
	comments := []*entities.Comment{
		flatComment(1, "001", 0, 1.0),
		flatComment(2, "002", 0, 5.0),
		flatComment(3, "003", 0, 1.0),
		flatComment(4, "003/001", 1, 0.5),
		flatComment(5, "003/002", 1, 2.5),
	}

	forest := BuildCommentForest(comments, 0, 4)

	require.Len(t, forest, 3)
	// 分数降序；001 与 003 同分，保持路径先后。
	assert.Equal(t, uint64(2), forest[0].ID)
	assert.Equal(t, uint64(1), forest[1].ID)
	assert.Equal(t, uint64(3), forest[2].ID)

	// 子层同样按分数降序。
	replies := forest[2].Replies
	require.Len(t, replies, 2)
	assert.Equal(t, uint64(5), replies[0].ID)
	assert.Equal(t, uint64(4), replies[1].ID)
}

func TestBuildCommentForest_CollapsesBeyondMaxDepth(t *testing.T) {
	comments := []*entities.Comment{
		flatComment(1, "001", 0, 0),
		flatComment(2, "001/001", 1, 0),
		flatComment(3, "001/001/001", 2, 0),
		flatComment(4, "001/001/001/001", 3, 0),
		flatComment(5, "002", 0, 0),
	}

	forest := BuildCommentForest(comments, 0, 2)

	require.Len(t, forest, 2)
	deepest := forest[0].Replies[0].Replies[0]
	assert.Equal(t, uint64(3), deepest.ID)
	// 展示深度内的最后一层承接折叠标记，更深的节点不输出。
	assert.Empty(t, deepest.Replies)
	assert.True(t, deepest.Collapsed)
	assert.False(t, forest[0].Collapsed)
	assert.False(t, forest[1].Collapsed)
}

func TestBuildCommentForest_ThreadViewUsesBaseDepth(t *testing.T) {
	// 聚焦视图的平铺列表从某条深层评论开始，baseDepth 即焦点的深度。
	comments := []*entities.Comment{
		flatComment(3, "001/002", 1, 0),
		flatComment(4, "001/002/001", 2, 0),
		flatComment(5, "001/002/001/001", 3, 0),
	}

	forest := BuildCommentForest(comments, 1, 1)

	require.Len(t, forest, 1)
	assert.Equal(t, uint64(3), forest[0].ID)
	require.Len(t, forest[0].Replies, 1)
	child := forest[0].Replies[0]
	assert.Equal(t, uint64(4), child.ID)
	assert.True(t, child.Collapsed)
	assert.Empty(t, child.Replies)
}

func TestBuildCommentForest_EmptyInput(t *testing.T) {
	forest := BuildCommentForest(nil, 0, 4)
	assert.NotNil(t, forest)
	assert.Empty(t, forest)
}
