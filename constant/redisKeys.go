package constant

// Redis Key 相关常量 (导出)
const (
	// --- 固定 Key 名称 (全局使用的 Key) ---

	// HotFeedRankKey 是热门信息流榜单的 Key 名称。
	// 这是一个 Sorted Set (ZSet)，成员是帖子 ID (postID)，分数是热度分 (popularity_score)。
	// 由定时任务从 MySQL 按热度分截取 Top N 生成，供信息流读路径的游标分页使用。
	// Redis 类型: Sorted Set
	// 示例成员与分数: Member="123", Score=9.42; Member="456", Score=3.07
	HotFeedRankKey = "hot_feed_rank"

	// PostsHashKey 是热门帖子实体缓存的 Hash Key 名称。
	// Field 是帖子 ID，Value 是序列化后的帖子 JSON，与 HotFeedRankKey 同批次刷新。
	// Redis 类型: Hash
	PostsHashKey = "posts"

	// DirtyPostScoreSetKey 是待重算热度分的帖子 ID 集合。
	// 写路径（发评论、投票）只做一次 SADD，分数重算由定时任务异步完成，
	// 避免在写事务内产生额外的写放大。
	// Redis 类型: Set
	DirtyPostScoreSetKey = "score_dirty:posts"

	// DirtyCommentScoreSetKey 是待重算热度分的评论 ID 集合，语义同上。
	// Redis 类型: Set
	DirtyCommentScoreSetKey = "score_dirty:comments"
)
