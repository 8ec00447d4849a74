package constant

// 定时任务调度相关常量。
const (
	// ScoreRefreshCronSpec 是热度分重算任务的调度表达式。
	// 分数允许短暂滞后（写路径只打脏标记），两分钟一轮足够让信息流保持新鲜。
	ScoreRefreshCronSpec = "@every 2m"

	// ScoreRefreshDrainLimit 是单轮任务从脏集合中取出的最大 ID 数量，
	// 防止突发写入导致单轮任务执行过久。
	ScoreRefreshDrainLimit = 2000

	// HotFeedCacheCronSpec 是热门信息流缓存刷新任务的调度表达式。
	HotFeedCacheCronSpec = "@every 5m"

	// HotFeedCacheSize 是热门信息流榜单缓存的帖子数量 (Top N)。
	HotFeedCacheSize = 200
)
