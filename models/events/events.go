// Package events 定义本服务通过 Kafka 收发的事件载荷。
// 生产与消费共用同一组结构，字段一经上线只增不改。
package events

import (
	"time"

	"github.com/Xushengqwer/comment_service/models/entities"
)

// PostCreatedEvent 在帖子创建成功后发布，供搜索、推荐等下游消费。
type PostCreatedEvent struct {
	PostID         uint64    `json:"post_id"`
	Title          string    `json:"title"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}

// PostDeletedEvent 在帖子（连同其评论树）删除后发布。
type PostDeletedEvent struct {
	PostID    uint64    `json:"post_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// CommentCreatedEvent 在评论落库后发布。
type CommentCreatedEvent struct {
	CommentID uint64    `json:"comment_id"`
	PostID    uint64    `json:"post_id"`
	ParentID  uint64    `json:"parent_id"`
	Path      string    `json:"path"`
	Depth     int       `json:"depth"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentDeletedEvent 在评论子树删除后发布；SubtreeSize 含被删除的根自身。
type CommentDeletedEvent struct {
	CommentID   uint64    `json:"comment_id"`
	PostID      uint64    `json:"post_id"`
	SubtreeSize int64     `json:"subtree_size"`
	DeletedAt   time.Time `json:"deleted_at"`
}

// ClassificationUpdatedEvent 由外部分类服务发布，本服务消费后回填分类结果。
type ClassificationUpdatedEvent struct {
	TargetType entities.TargetType `json:"target_type"` // 1=帖子, 2=评论
	TargetID   uint64              `json:"target_id"`
	Label      string              `json:"label"`  // 如 "positive" / "negative" / "neutral"
	Colors     []string            `json:"colors"` // 情感色板，有序，首个为主色
	Tags       []string            `json:"tags"`   // 毒性/内容过滤标签
}
