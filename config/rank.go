package config

// RankConfig 是热度分数计算公式的参数：
//
//	score = baseBoost * exp(-ageHours / decayHalfLifeHours) + upvotes + commentWeight * comments
//
// 新内容靠指数衰减的新鲜度加成获得初始曝光，随后由互动量接管排序。
type RankConfig struct {
	// BaseBoost 是内容刚发布时的新鲜度加成幅度。
	BaseBoost float64 `mapstructure:"baseBoost" json:"baseBoost" yaml:"baseBoost"`

	// DecayHalfLifeHours 控制新鲜度加成衰减的时间尺度（小时）。
	// 注意这是 e 折时间而非严格的半衰期：age 每增加该值，加成缩小为 1/e。
	DecayHalfLifeHours float64 `mapstructure:"decayHalfLifeHours" json:"decayHalfLifeHours" yaml:"decayHalfLifeHours"`

	// CommentWeight 是单条评论相对单个点赞的权重倍数。
	// 评论的互动成本更高，权重也应更高。
	CommentWeight float64 `mapstructure:"commentWeight" json:"commentWeight" yaml:"commentWeight"`
}

// ScoreSyncConfig 包含热度分数异步刷新任务相关的配置
type ScoreSyncConfig struct {
	// BatchSize 是把重算后的分数写回 MySQL 时，每个 UPDATE 批次（CASE WHEN 语句）包含的行数。
	BatchSize int `mapstructure:"batchSize" json:"batchSize" yaml:"batchSize"`

	// ConcurrencyLevel 是并发执行批次更新的 worker (goroutine) 数量。
	ConcurrencyLevel int `mapstructure:"concurrencyLevel" json:"concurrencyLevel" yaml:"concurrencyLevel"`
}
