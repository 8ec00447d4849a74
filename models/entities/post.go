package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"
)

// Post 帖子实体
// - 使用场景: 内容聚合层的顶层节点，评论树与投票都挂在帖子之下
// - 表名: posts (GORM 默认使用结构体名复数形式)
type Post struct {
	entities.BaseModel // 嵌入自定义的 BaseModel ,包含 ID, CreatedAt, UpdatedAt, DeletedAt，支持软删除

	// 标题，必填，最大长度255个字符
	Title string `gorm:"type:varchar(255);not null"`

	// 正文内容
	// - 类型: text，帖子正文长度不受 varchar 限制
	Content string `gorm:"type:text;not null"`

	// 作者ID，关联用户服务，UUID格式（36个字符）
	AuthorID string `gorm:"type:char(36);not null;index"`

	// 作者用户名，冗余字段，数据来源于用户服务，列表页直接展示避免跨服务调用
	AuthorUsername string `gorm:"type:varchar(50);not null"`

	// 点赞数，计数冗余，真源是 votes 表
	// - 写路径同步增减，定时任务从真源重算兜底
	UpvoteCount int64 `gorm:"type:bigint;not null;default:0"`

	// 评论数，计数冗余，只统计根评论（深度 0），真源是 comments 表
	CommentCount int64 `gorm:"type:bigint;not null;default:0"`

	// 热度分数，由时间衰减公式计算的排序依据
	// - 写路径同步更新，定时任务异步重算收敛
	PopularityScore float64 `gorm:"type:double;not null;default:0;index"`

	// 情感标签，由外部分类服务异步回填，空串表示尚未分类
	SentimentLabel string `gorm:"type:varchar(32);not null;default:''"`

	// 情感色板，有序，首个为主色；JSON 序列化存储
	SentimentColors []string `gorm:"type:json;serializer:json"`

	// 毒性/内容过滤标签集；JSON 序列化存储
	ToxicityTags []string `gorm:"type:json;serializer:json"`
}
