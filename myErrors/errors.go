package myErrors

import (
	"errors"
	"fmt"
)

// 领域错误的哨兵值。结构性错误（深度、容量、父节点缺失）永远不会被静默吞掉，
// 由服务层原样透传给调用方；计数/分数的短暂滞后则容忍并自愈。
var (
	// ErrParentNotFound 表示回复的目标父评论不存在（或已被删除）。
	ErrParentNotFound = errors.New("comment: parent comment not found")

	// ErrDepthLimitExceeded 表示回复会超过 constant.MaxCommentDepth，直接拒绝。
	ErrDepthLimitExceeded = errors.New("comment: max thread depth exceeded")

	// ErrPathCapacityExceeded 表示同层兄弟节点数量超过了定宽路径段的容量上限。
	// 属于服务端约束错误，出现时需要大声记录日志（意味着该加宽路径段了）。
	ErrPathCapacityExceeded = errors.New("pathcodec: sibling ordinal exceeds segment capacity")

	// ErrTransactionConflict 表示并发写入产生了路径/唯一键冲突，属于瞬态错误，
	// 调用方（服务层）在有限次数内带退避重试。
	ErrTransactionConflict = errors.New("storage: transaction conflict (retryable)")

	// ErrUnauthorized 表示调用者不是目标资源的作者，与 NotFound 相区分。
	ErrUnauthorized = errors.New("content: caller is not the owner of this resource")

	// ErrCacheMiss 表示在缓存层未找到对应的键值
	ErrCacheMiss = errors.New("cache: key not found (miss)")
)

// FallbackError 表示主存储与备用存储先后失败，携带两次失败的原因。
// 只有在两个存储都无法完成操作时，调用方才会看到这个错误。
type FallbackError struct {
	Op           string // 操作名，例如 "CreateComment"
	PrimaryErr   error
	SecondaryErr error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("storage: %s failed on both stores (primary: %v; secondary: %v)",
		e.Op, e.PrimaryErr, e.SecondaryErr)
}

// Unwrap 让 errors.Is/As 能沿着备用存储的错误链继续匹配。
// 备用存储是最后实际执行操作的一方，它的错误对调用方更有意义。
func (e *FallbackError) Unwrap() error {
	return e.SecondaryErr
}
