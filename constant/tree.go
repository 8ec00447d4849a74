package constant

// 评论树结构相关常量。
const (
	// MaxCommentDepth 是评论允许的最大深度（根评论深度为 0）。
	// 超过该深度的回复会被拒绝（myErrors.ErrDepthLimitExceeded），而不是静默截断。
	MaxCommentDepth = 10

	// PathSegmentWidth 是物化路径中每一段的定宽位数。
	// 3 位补零意味着每层最多 999 个兄弟节点；超出返回容量错误。
	// 定宽补零保证了 path 的字典序即为树的先序遍历序。
	PathSegmentWidth = 3

	// PathSeparator 是路径段之间的分隔符。
	// '/' (0x2F) 的字节值小于 '0' (0x30)，因此 "001/..." 一定排在 "002" 之前，
	// 子树内的所有节点在字典序下紧跟其根节点。
	PathSeparator = "/"

	// MaxSiblingsPerLevel 是单个父节点下允许的直接子节点数量上限，
	// 由 PathSegmentWidth 推出（10^3 - 1）。
	MaxSiblingsPerLevel = 999

	// MaxPlacementRetries 是并发写入同一父节点时，路径分配冲突的最大重试次数。
	// 冲突由 (post_id, path) 唯一索引触发，重试时会重新计算兄弟序号。
	MaxPlacementRetries = 8
)
