package vo

import "github.com/Xushengqwer/comment_service/models/entities"

// VoteToggleVO 定义了投票开关操作的响应结构。
type VoteToggleVO struct {
	TargetType  entities.TargetType   `json:"target_type"`  // 1=帖子, 2=评论
	TargetID    uint64                `json:"target_id"`    // 目标ID
	Category    entities.VoteCategory `json:"category"`     // 投票维度
	Tag         string                `json:"tag"`          // 被认同的标签
	Voted       bool                  `json:"voted"`        // 本次操作后的状态：true=已投票
	UpvoteCount int64                 `json:"upvote_count"` // 操作后目标的总票数（全维度）
}

// VoteTagCountVO 是投票分布中单个标签的计数。
type VoteTagCountVO struct {
	Category entities.VoteCategory `json:"category"` // 投票维度
	Tag      string                `json:"tag"`      // 标签
	Count    int64                 `json:"count"`    // 票数
}

// VoteSummaryVO 定义了某内容投票分布的响应结构。
type VoteSummaryVO struct {
	TargetType entities.TargetType `json:"target_type"` // 1=帖子, 2=评论
	TargetID   uint64              `json:"target_id"`   // 目标ID
	Total      int64               `json:"total"`       // 全维度总票数
	Tags       []VoteTagCountVO    `json:"tags"`        // 按票数降序的标签分布
}
