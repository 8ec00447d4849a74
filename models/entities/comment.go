package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"
)

// Comment 评论实体，通过物化路径组织成树
// - 表名: comments
// - 核心不变量: (post_id, path) 全局唯一；按 path 字典序扫描即得整棵树的先序序列
type Comment struct {
	entities.BaseModel // 嵌入自定义的 BaseModel ,包含 ID, CreatedAt, UpdatedAt, DeletedAt，支持软删除

	// 所属帖子ID
	PostID uint64 `gorm:"not null;uniqueIndex:uk_post_path,priority:1;index:idx_post_parent,priority:1"`

	// 物化路径，定宽补零的段以 '/' 连接，如 "001/002/001"
	// - 唯一索引 (post_id, path) 是并发兄弟插入的最终仲裁：
	//   两个事务算出同一序号时，后提交者撞索引被拒，由服务层重试
	// - varchar(43) 覆盖最大深度 10 的路径（11*3 段 + 10 分隔符 = 43 字符）
	Path string `gorm:"type:varchar(43);not null;uniqueIndex:uk_post_path,priority:2"`

	// 父评论ID，根评论为 0
	// - 与 path 冗余，用于直接子节点的计数与查询
	ParentID uint64 `gorm:"not null;default:0;index:idx_post_parent,priority:2"`

	// 树深度，根为 0；与 path 段数冗余，path 是单一事实来源
	Depth int `gorm:"type:int;not null;default:0"`

	// 评论正文
	Content string `gorm:"type:text;not null"`

	// 作者ID，UUID格式
	AuthorID string `gorm:"type:char(36);not null;index"`

	// 作者用户名，冗余字段，来源于用户服务
	AuthorUsername string `gorm:"type:varchar(50);not null"`

	// 点赞数，计数冗余，真源是 votes 表
	UpvoteCount int64 `gorm:"type:bigint;not null;default:0"`

	// 直接回复数，只统计直接子节点，真源是 comments 表
	ReplyCount int64 `gorm:"type:bigint;not null;default:0"`

	// 热度分数，同级回复按此排序
	PopularityScore float64 `gorm:"type:double;not null;default:0"`

	// 情感标签，由外部分类服务异步回填，空串表示尚未分类
	SentimentLabel string `gorm:"type:varchar(32);not null;default:''"`

	// 情感色板，有序，首个为主色；JSON 序列化存储
	SentimentColors []string `gorm:"type:json;serializer:json"`

	// 毒性/内容过滤标签集；JSON 序列化存储
	ToxicityTags []string `gorm:"type:json;serializer:json"`
}
