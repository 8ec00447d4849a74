package dto

import "github.com/Xushengqwer/comment_service/models/entities"

// ToggleVoteRequest 定义了投票开关的请求数据结构
// - 同一用户对同一内容的同一 (category, tag) 重复调用在有票/无票两个状态间切换
type ToggleVoteRequest struct {
	TargetType entities.TargetType   `json:"target_type" form:"target_type" binding:"required,oneof=1 2"`              // 1=帖子, 2=评论
	TargetID   uint64                `json:"target_id" form:"target_id" binding:"required,gte=1"`                      // 目标ID，必填
	Category   entities.VoteCategory `json:"category" form:"category" binding:"required,oneof=emotion content_filter"` // 投票维度
	Tag        string                `json:"tag" form:"tag" binding:"required,max=32" example:"funny"`                 // 被认同的标签
}

// GetVoteSummaryRequest 定义了查询某内容投票分布的请求数据结构
type GetVoteSummaryRequest struct {
	TargetType entities.TargetType `json:"target_type" form:"target_type" binding:"required,oneof=1 2"` // 1=帖子, 2=评论
	TargetID   uint64              `json:"target_id" form:"target_id" binding:"required,gte=1"`         // 目标ID，必填
}
