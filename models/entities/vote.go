package entities

import "time"

// TargetType 标识投票指向的内容类型。
type TargetType int8

const (
	TargetPost    TargetType = 1 // 帖子
	TargetComment TargetType = 2 // 评论
)

// VoteCategory 标识投票所属的维度。
type VoteCategory string

const (
	// CategoryEmotion 情感标签投票，如 "funny" / "insightful"
	CategoryEmotion VoteCategory = "emotion"
	// CategoryContentFilter 内容过滤标签投票，如 "spoiler" / "nsfw"
	CategoryContentFilter VoteCategory = "content_filter"
)

// Vote 投票实体，记录用户对某个内容在某个维度上对某个标签的一次认同
//   - 表名: votes
//   - 唯一索引 (user_id, target_type, target_id, category, tag) 保证
//     同一用户对同一内容的同一标签至多一票；重复投同一标签走开关语义
//   - 注意: 投票不使用软删除。取消投票直接物理删除，
//     否则墓碑行会占住唯一索引，阻止同一用户再次投票。
type Vote struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	// 投票人ID，UUID格式
	UserID string `gorm:"type:char(36);not null;uniqueIndex:uk_user_target_tag,priority:1"`

	// 投票目标类型: 1=帖子, 2=评论
	TargetType TargetType `gorm:"type:tinyint;not null;uniqueIndex:uk_user_target_tag,priority:2"`

	// 投票目标ID
	TargetID uint64 `gorm:"not null;uniqueIndex:uk_user_target_tag,priority:3;index"`

	// 投票维度: emotion 或 content_filter
	Category VoteCategory `gorm:"type:varchar(16);not null;uniqueIndex:uk_user_target_tag,priority:4"`

	// 被认同的标签，如 "funny" / "spoiler"
	Tag string `gorm:"type:varchar(32);not null;uniqueIndex:uk_user_target_tag,priority:5"`

	CreatedAt time.Time
}
