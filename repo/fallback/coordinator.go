// Package fallback 实现主备存储之间的降级协调。
//
// 协调器持有主、备两个 *gorm.DB。操作以闭包形式提交，先在主存储执行；
// 只有当失败呈现为基础设施故障（连接断开、超时、方言层报错）时，
// 同一闭包才会在备用存储上重放。领域哨兵错误（未找到、越权、深度超限等）
// 原样上抛，换一个存储不会让"帖子不存在"变成存在。
package fallback

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/myErrors"
)

// Coordinator 在主备存储之间协调读写操作。
type Coordinator struct {
	primary   *gorm.DB
	secondary *gorm.DB // 可为 nil，表示不启用降级
	logger    *core.ZapLogger
}

// NewCoordinator 创建降级协调器。secondary 传 nil 时协调器退化为主存储直通。
func NewCoordinator(primary, secondary *gorm.DB, logger *core.ZapLogger) *Coordinator {
	return &Coordinator{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Primary 暴露主存储句柄，供不参与降级的路径（如后台批量任务）直用。
func (c *Coordinator) Primary() *gorm.DB {
	return c.primary
}

// HasSecondary 报告是否配置了备用存储。
func (c *Coordinator) HasSecondary() bool {
	return c.secondary != nil
}

// Execute 在主存储上执行 op；主存储基础设施故障时在备用存储上重放。
// op 收到的 db 句柄指向当次实际使用的存储，闭包内的事务、查询都挂在它上面。
func (c *Coordinator) Execute(ctx context.Context, opName string, op func(db *gorm.DB) error) error {
	primaryErr := op(c.primary.WithContext(ctx))
	if primaryErr == nil {
		return nil
	}
	if !IsInfrastructureError(primaryErr) {
		// 领域错误：重放无意义，原样上抛。
		return primaryErr
	}

	if c.secondary == nil {
		c.logger.Error("主存储故障且未配置备用存储",
			zap.String("op", opName), zap.Error(primaryErr))
		return primaryErr
	}

	c.logger.Warn("主存储故障，降级到备用存储重放",
		zap.String("op", opName), zap.Error(primaryErr))

	secondaryErr := op(c.secondary.WithContext(ctx))
	if secondaryErr == nil {
		return nil
	}
	if !IsInfrastructureError(secondaryErr) {
		// 备用存储给出了领域结论（例如记录确实不存在），采信它。
		return secondaryErr
	}

	c.logger.Error("主备存储均故障",
		zap.String("op", opName),
		zap.NamedError("primaryErr", primaryErr),
		zap.NamedError("secondaryErr", secondaryErr))
	return &myErrors.FallbackError{
		Op:           opName,
		PrimaryErr:   primaryErr,
		SecondaryErr: secondaryErr,
	}
}

// Query 是 Execute 的泛型封装，用于带返回值的读操作。
func Query[T any](ctx context.Context, c *Coordinator, opName string, op func(db *gorm.DB) (T, error)) (T, error) {
	var out T
	err := c.Execute(ctx, opName, func(db *gorm.DB) error {
		var opErr error
		out, opErr = op(db)
		return opErr
	})
	return out, err
}

// IsInfrastructureError 区分基础设施故障与领域错误。
// 白名单式判断：已知的领域哨兵都不触发降级，其余一律视为基础设施故障。
// 宁可多重放一次读，也不能把存储故障误判成业务结论。
func IsInfrastructureError(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, commonerrors.ErrRepoNotFound),
		errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, myErrors.ErrParentNotFound),
		errors.Is(err, myErrors.ErrDepthLimitExceeded),
		errors.Is(err, myErrors.ErrPathCapacityExceeded),
		errors.Is(err, myErrors.ErrTransactionConflict),
		errors.Is(err, myErrors.ErrUnauthorized):
		return false
	}
	// context 取消是调用方主动放弃，重放只会浪费备用存储的配额。
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
