// File: repo/mysql/score_batch.go
package mysql

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/config"
	"github.com/Xushengqwer/comment_service/models/entities"
)

// ScoreBatchRepository 定义了热度分数批量写回的数据库操作接口，
// 主要服务于后台分数重算任务。
type ScoreBatchRepository interface {
	// BatchUpdatePostScores 异步、并发地将重算后的帖子热度分数批量写回 MySQL。
	// 允许部分批次失败（记录错误并聚合返回），以实现最终一致性。
	BatchUpdatePostScores(ctx context.Context, scores map[uint64]float64) error

	// BatchUpdateCommentScores 同上，目标为评论表。
	BatchUpdateCommentScores(ctx context.Context, scores map[uint64]float64) error
}

type scoreBatchRepository struct {
	db      *gorm.DB
	logger  *core.ZapLogger
	syncCfg config.ScoreSyncConfig
}

// NewScoreBatchRepository 是 scoreBatchRepository 的构造函数。
// 批量写回只针对主存储：备用存储由下一轮重算收敛，不在这里追写。
func NewScoreBatchRepository(db *gorm.DB, logger *core.ZapLogger, syncCfg config.ScoreSyncConfig) ScoreBatchRepository {
	return &scoreBatchRepository{db: db, logger: logger, syncCfg: syncCfg}
}

// scoreItem 是一个内部结构体，用于在并发处理通道中传递 ID 和对应的分数。
type scoreItem struct {
	ID    uint64
	Score float64
}

// BatchUpdatePostScores 实现帖子分数批量写回。
func (r *scoreBatchRepository) BatchUpdatePostScores(ctx context.Context, scores map[uint64]float64) error {
	return r.batchUpdate(ctx, scores, "posts", func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&entities.Post{})
	})
}

// BatchUpdateCommentScores 实现评论分数批量写回。
func (r *scoreBatchRepository) BatchUpdateCommentScores(ctx context.Context, scores map[uint64]float64) error {
	return r.batchUpdate(ctx, scores, "comments", func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&entities.Comment{})
	})
}

// batchUpdate 实现了分数批量写回的核心逻辑。
//
// 核心机制:
//  1. 数据分批: 根据配置 `syncCfg.BatchSize` 将大量更新分割成小批次。
//  2. 并发处理: 根据配置 `syncCfg.ConcurrencyLevel` 启动 worker goroutine 池处理这些批次。
//  3. 数据库更新: 每个 worker 对其批次内的数据，构建单条 CASE WHEN UPDATE 写回数据库。
func (r *scoreBatchRepository) batchUpdate(ctx context.Context, scores map[uint64]float64, table string, model func(*gorm.DB) *gorm.DB) error {
	totalUpdates := len(scores)
	if totalUpdates == 0 {
		r.logger.Info("batchUpdate: 没有需要写回的分数，任务提前结束。", zap.String("table", table))
		return nil
	}

	// --- 1. 加载并验证配置 ---
	batchSize := r.syncCfg.BatchSize
	if batchSize <= 0 {
		batchSize = 500 // Fallback
		r.logger.Warn("batchUpdate: 配置 BatchSize 无效，使用默认值",
			zap.Int("defaultBatchSize", batchSize), zap.Int("configured", r.syncCfg.BatchSize))
	}

	concurrencyLevel := r.syncCfg.ConcurrencyLevel
	if concurrencyLevel <= 0 {
		concurrencyLevel = 1 // Fallback (顺序执行)
		r.logger.Warn("batchUpdate: 配置 ConcurrencyLevel 无效，使用默认值 1",
			zap.Int("defaultConcurrency", concurrencyLevel), zap.Int("configured", r.syncCfg.ConcurrencyLevel))
	}

	// --- 2. 数据准备 ---
	items := make([]scoreItem, 0, totalUpdates)
	for id, score := range scores {
		items = append(items, scoreItem{ID: id, Score: score})
	}

	totalBatches := (totalUpdates + batchSize - 1) / batchSize
	r.logger.Info("batchUpdate: 开始并发批量写回分数",
		zap.String("table", table),
		zap.Int("总数", totalUpdates),
		zap.Int("批大小", batchSize),
		zap.Int("并发数", concurrencyLevel),
		zap.Int("批次数", totalBatches),
	)

	// --- 3. 设置并发工作池 ---
	var wg sync.WaitGroup
	jobs := make(chan []scoreItem, concurrencyLevel)
	results := make(chan error, totalBatches)
	overallStartTime := time.Now()

	// --- 4. 启动 Worker Goroutines ---
	for i := 0; i < concurrencyLevel; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for batch := range jobs {
				select {
				case <-ctx.Done():
					r.logger.Warn("上下文取消，Worker 停止处理", zap.Int("workerID", workerID), zap.Error(ctx.Err()))
					results <- fmt.Errorf("worker %d: context cancelled: %w", workerID, ctx.Err())
					continue
				default:
				}

				results <- r.processBatch(ctx, batch, model, workerID)
			}
		}(i)
	}

	// --- 5. 启动分发任务 Goroutine ---
	go func() {
		defer close(jobs)
		for i := 0; i < totalUpdates; i += batchSize {
			end := i + batchSize
			if end > totalUpdates {
				end = totalUpdates
			}
			batchCopy := make([]scoreItem, len(items[i:end]))
			copy(batchCopy, items[i:end])

			select {
			case <-ctx.Done():
				r.logger.Warn("上下文取消，停止分发更多批次任务。", zap.Error(ctx.Err()))
				return
			case jobs <- batchCopy:
			}
		}
	}()

	// --- 6. 收集并聚合结果 ---
	go func() {
		wg.Wait()
		close(results)
	}()

	var aggregatedErrors []error
	for err := range results {
		if err != nil {
			aggregatedErrors = append(aggregatedErrors, err)
		}
	}

	// --- 7. 最终日志记录与返回 ---
	totalDuration := time.Since(overallStartTime)
	failedCount := len(aggregatedErrors)
	r.logger.Info("完成所有批次的分数并发写回处理。",
		zap.String("table", table),
		zap.Duration("总耗时", totalDuration),
		zap.Int("总批次数", totalBatches),
		zap.Int("失败批次数", failedCount),
	)

	if failedCount > 0 {
		var errorStrings []string
		for _, e := range aggregatedErrors {
			errorStrings = append(errorStrings, e.Error())
		}
		finalError := fmt.Errorf("并发批量写回分数过程中发生错误 (%d / %d 个批次失败): %s",
			failedCount, totalBatches, strings.Join(errorStrings, "; "))
		r.logger.Error("并发批量写回分数最终结果：失败", zap.String("table", table), zap.Error(finalError))
		return finalError
	}

	return nil
}

// processBatch 负责处理单个批次的数据库更新，使用单条 CASE WHEN UPDATE。
func (r *scoreBatchRepository) processBatch(ctx context.Context, batch []scoreItem, model func(*gorm.DB) *gorm.DB, workerID int) error {
	var (
		ids          []uint64
		sqlCase      strings.Builder
		updateParams []interface{}
	)
	sqlCase.WriteString("CASE id ")
	for _, item := range batch {
		ids = append(ids, item.ID)
		sqlCase.WriteString("WHEN ? THEN ? ")
		updateParams = append(updateParams, item.ID, item.Score)
	}
	sqlCase.WriteString("END")

	dbOperationStart := time.Now()
	err := model(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Update("popularity_score", gorm.Expr(sqlCase.String(), updateParams...)).Error
	dbDuration := time.Since(dbOperationStart)

	if err != nil {
		r.logger.Error("processBatch: 数据库写回批次失败",
			zap.Int("workerID", workerID),
			zap.Int("batchSize", len(batch)),
			zap.Duration("db耗时", dbDuration),
			zap.Error(err),
		)
		return fmt.Errorf("worker %d 处理批次 (大小 %d) 失败: %w", workerID, len(batch), err)
	}

	return nil
}
