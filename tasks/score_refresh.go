package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/rank"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/repo/redis"
)

// ScoreRefreshTask 负责定时重算被标脏的帖子与评论的热度分数。
// 写路径只做 SADD 标脏，分数收敛完全由本任务异步完成；
// 即使某次刷新丢失，下一次互动会重新标脏，分数最终收敛。
type ScoreRefreshTask struct {
	db             *gorm.DB                    // 主库句柄，后台重算不参与主备降级
	dirtySet       redis.ScoreDirtySet         // 待重算 ID 的脏集合
	postRepo       mysql.PostRepository        // 读取帖子创建时间与互动计数
	commentRepo    mysql.CommentTreeRepository // 读取评论创建时间与互动计数
	voteRepo       mysql.VoteRepository        // 票数真源
	scoreBatchRepo mysql.ScoreBatchRepository  // 分数批量写回
	scorer         *rank.Scorer                // 热度分数计算
	cron           *cron.Cron                  // cron V3 实例
	logger         *core.ZapLogger             // 日志记录器
}

// NewScoreRefreshTask 初始化并启动热度分数重算的定时任务。
func NewScoreRefreshTask(
	db *gorm.DB,
	dirtySet redis.ScoreDirtySet,
	postRepo mysql.PostRepository,
	commentRepo mysql.CommentTreeRepository,
	voteRepo mysql.VoteRepository,
	scoreBatchRepo mysql.ScoreBatchRepository,
	scorer *rank.Scorer,
	logger *core.ZapLogger,
) *ScoreRefreshTask {
	cronV3 := cron.New()
	task := &ScoreRefreshTask{
		db:             db,
		dirtySet:       dirtySet,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		voteRepo:       voteRepo,
		scoreBatchRepo: scoreBatchRepo,
		scorer:         scorer,
		cron:           cronV3,
		logger:         logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业。
func (t *ScoreRefreshTask) startCronJob() {
	schedule := constant.ScoreRefreshCronSpec
	t.logger.Info("准备启动热度分数重算定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("热度分数重算任务开始执行...")
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		t.RefreshScores(ctx)

		duration := time.Since(startTime)
		t.logger.Info("热度分数重算任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加热度分数重算 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("热度分数重算定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// RefreshScores 执行一轮完整的分数重算：先帖子后评论。
// 导出以便在运维或测试场景手动触发一轮刷新。
func (t *ScoreRefreshTask) RefreshScores(ctx context.Context) {
	t.refreshPostScores(ctx)
	t.refreshCommentScores(ctx)
}

// refreshPostScores 重算被标脏的帖子分数。
// 票数从投票表真源统计，评论量使用事务内维护的根评论计数。
func (t *ScoreRefreshTask) refreshPostScores(ctx context.Context) {
	ids, err := t.dirtySet.DrainDirtyPosts(ctx, constant.ScoreRefreshDrainLimit)
	if err != nil {
		t.logger.Error("取出待重算帖子集合失败，本轮跳过帖子分数", zap.Error(err))
		return
	}
	if len(ids) == 0 {
		return
	}

	now := time.Now()
	scores := make(map[uint64]float64, len(ids))
	for _, id := range ids {
		post, err := t.postRepo.GetPostByID(ctx, t.db, id)
		if err != nil {
			// 已删除的帖子不再参与排序，静默跳过。
			continue
		}
		upvotes, err := t.voteRepo.CountVotes(ctx, t.db, entities.TargetPost, id)
		if err != nil {
			t.logger.Warn("统计帖子票数失败，跳过该帖子", zap.Uint64("post_id", id), zap.Error(err))
			continue
		}
		scores[id] = t.scorer.Score(post.CreatedAt, now, upvotes, post.CommentCount)
	}

	if len(scores) == 0 {
		return
	}
	if err := t.scoreBatchRepo.BatchUpdatePostScores(ctx, scores); err != nil {
		t.logger.Error("批量写回帖子分数失败", zap.Error(err), zap.Int("count", len(scores)))
		return
	}
	t.logger.Info("帖子分数重算完成", zap.Int("drained", len(ids)), zap.Int("updated", len(scores)))
}

// refreshCommentScores 重算被标脏的评论分数，口径与帖子一致。
func (t *ScoreRefreshTask) refreshCommentScores(ctx context.Context) {
	ids, err := t.dirtySet.DrainDirtyComments(ctx, constant.ScoreRefreshDrainLimit)
	if err != nil {
		t.logger.Error("取出待重算评论集合失败，本轮跳过评论分数", zap.Error(err))
		return
	}
	if len(ids) == 0 {
		return
	}

	now := time.Now()
	scores := make(map[uint64]float64, len(ids))
	for _, id := range ids {
		comment, err := t.commentRepo.GetCommentByID(ctx, t.db, id)
		if err != nil {
			continue
		}
		upvotes, err := t.voteRepo.CountVotes(ctx, t.db, entities.TargetComment, id)
		if err != nil {
			t.logger.Warn("统计评论票数失败，跳过该评论", zap.Uint64("comment_id", id), zap.Error(err))
			continue
		}
		scores[id] = t.scorer.Score(comment.CreatedAt, now, upvotes, comment.ReplyCount)
	}

	if len(scores) == 0 {
		return
	}
	if err := t.scoreBatchRepo.BatchUpdateCommentScores(ctx, scores); err != nil {
		t.logger.Error("批量写回评论分数失败", zap.Error(err), zap.Int("count", len(scores)))
		return
	}
	t.logger.Info("评论分数重算完成", zap.Int("drained", len(ids)), zap.Int("updated", len(scores)))
}

// Stop 优雅地停止 cron 调度器。
// 返回一个 context，调用者可以使用它来等待正在运行的任务完成。
func (t *ScoreRefreshTask) Stop() context.Context {
	t.logger.Info("正在停止热度分数重算定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("热度分数重算定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}
