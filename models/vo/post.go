package vo

import (
	"time"

	"github.com/Xushengqwer/comment_service/models/entities"
)

// PostResponse 定义了帖子信息的响应数据结构
type PostResponse struct {
	ID              uint64    `json:"id"`               // 帖子ID
	Title           string    `json:"title"`            // 帖子标题
	Content         string    `json:"content"`          // 帖子正文
	AuthorID        string    `json:"author_id"`        // 作者ID
	AuthorUsername  string    `json:"author_username"`  // 作者用户名
	UpvoteCount     int64     `json:"upvote_count"`     // 点赞数
	CommentCount    int64     `json:"comment_count"`    // 根评论数
	PopularityScore float64   `json:"popularity_score"` // 热度分数
	SentimentLabel  string    `json:"sentiment_label"`  // 情感标签，空串表示尚未分类
	SentimentColors []string  `json:"sentiment_colors"` // 情感色板，首个为主色
	ToxicityTags    []string  `json:"toxicity_tags"`    // 毒性/内容过滤标签
	CreatedAt       time.Time `json:"created_at"`       // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`       // 更新时间
}

// PostFeedPageVO 定义了按热度排序的帖子信息流分页响应结构。
type PostFeedPageVO struct {
	Posts []*PostResponse `json:"posts"` // 当前页的帖子列表
	Total int64           `json:"total"` // 符合条件的总记录数
}

// ListPostsByCursorResponse 按作者游标加载帖子列表的响应结构。
type ListPostsByCursorResponse struct {
	Posts      []*PostResponse `json:"posts"`       // 帖子列表
	NextCursor *uint64         `json:"next_cursor"` // 下一个游标，nil 表示无更多数据
}

// MapPostToResponseVO 将单个帖子实体转换为响应VO。
func MapPostToResponseVO(post *entities.Post) *PostResponse {
	if post == nil {
		return nil
	}
	return &PostResponse{
		ID:              post.ID,
		Title:           post.Title,
		Content:         post.Content,
		AuthorID:        post.AuthorID,
		AuthorUsername:  post.AuthorUsername,
		UpvoteCount:     post.UpvoteCount,
		CommentCount:    post.CommentCount,
		PopularityScore: post.PopularityScore,
		SentimentLabel:  post.SentimentLabel,
		SentimentColors: post.SentimentColors,
		ToxicityTags:    post.ToxicityTags,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
}

// MapPostsToPostResponsesVO 是一个辅助函数，用于将帖子实体列表转换为帖子响应VO列表。
func MapPostsToPostResponsesVO(posts []*entities.Post) []*PostResponse {
	if len(posts) == 0 {
		return []*PostResponse{} // 返回空切片而不是nil，便于前端处理
	}

	responses := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		responses = append(responses, MapPostToResponseVO(post))
	}
	return responses
}
