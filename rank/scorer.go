// Package rank 实现时间衰减的热度分数计算。
// 分数是纯函数：同样的输入在任何节点上算出同样的结果，
// 因此可以在写入路径同步算一次，也可以由定时任务从计数真源重算。
package rank

import (
	"math"
	"time"
)

// 默认参数，配置缺省时使用。
const (
	DefaultBaseBoost          = 8.0
	DefaultDecayHalfLifeHours = 24.0
	DefaultCommentWeight      = 3.0
)

// Scorer 按发布时间与互动量计算内容热度。
type Scorer struct {
	baseBoost          float64
	decayHalfLifeHours float64
	commentWeight      float64
}

// NewScorer 创建打分器。非正的参数回退到默认值，避免配置遗漏时分数退化为常量。
func NewScorer(baseBoost, decayHalfLifeHours, commentWeight float64) *Scorer {
	if baseBoost <= 0 {
		baseBoost = DefaultBaseBoost
	}
	if decayHalfLifeHours <= 0 {
		decayHalfLifeHours = DefaultDecayHalfLifeHours
	}
	if commentWeight <= 0 {
		commentWeight = DefaultCommentWeight
	}
	return &Scorer{
		baseBoost:          baseBoost,
		decayHalfLifeHours: decayHalfLifeHours,
		commentWeight:      commentWeight,
	}
}

// Score 计算 now 时刻的热度分数：
//
//	baseBoost * exp(-ageHours / decayHalfLifeHours) + upvotes + commentWeight * comments
//
// createdAt 晚于 now 时按 age = 0 处理（时钟偏移下不给未来内容负衰减）。
func (s *Scorer) Score(createdAt, now time.Time, upvotes, comments int64) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	freshness := s.baseBoost * math.Exp(-ageHours/s.decayHalfLifeHours)
	return freshness + float64(upvotes) + s.commentWeight*float64(comments)
}

// ScoreAt 是 Score 的便捷封装，以当前系统时间为 now。
func (s *Scorer) ScoreAt(createdAt time.Time, upvotes, comments int64) float64 {
	return s.Score(createdAt, time.Now(), upvotes, comments)
}
