package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/events"
	"github.com/Xushengqwer/comment_service/repo/fallback"
	"github.com/Xushengqwer/comment_service/repo/mysql"
)

// todo  未配置死信队列

// envelope 是入站事件的统一外壳，与生产侧的 Envelope 对应；
// Payload 延迟解码，由各 handler 按事件类型展开。
type envelope struct {
	EventID   string          `json:"event_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// ClassificationHandler 消费外部分类服务发布的标签更新事件，
// 把最终标签回填到帖子或评论上。
type ClassificationHandler struct {
	logger      *core.ZapLogger
	coord       *fallback.Coordinator
	postRepo    mysql.PostRepository
	commentRepo mysql.CommentTreeRepository
}

func NewClassificationHandler(
	logger *core.ZapLogger,
	coord *fallback.Coordinator,
	postRepo mysql.PostRepository,
	commentRepo mysql.CommentTreeRepository,
) *ClassificationHandler {
	return &ClassificationHandler{
		logger:      logger,
		coord:       coord,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (h *ClassificationHandler) Handle(ctx context.Context, msg kafka.Message) error {
	h.logger.Debug("ClassificationHandler: 开始处理 Kafka 消息", zap.String("topic", msg.Topic))

	var env envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		h.logger.Error("ClassificationHandler: 反序列化消息外壳失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil // 不重试无法解析的消息
	}

	var event events.ClassificationUpdatedEvent
	if err := json.Unmarshal(env.Payload, &event); err != nil {
		h.logger.Error("ClassificationHandler: 反序列化事件载荷失败",
			zap.Error(err), zap.String("event_id", env.EventID))
		return nil // 不重试无法解析的消息
	}

	h.logger.Info("ClassificationHandler: 成功解析标签更新消息",
		zap.String("event_id", env.EventID),
		zap.Int8("target_type", int8(event.TargetType)),
		zap.Uint64("target_id", event.TargetID),
		zap.String("label", event.Label))

	updateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := h.coord.Execute(updateCtx, "classification.apply", func(db *gorm.DB) error {
		switch event.TargetType {
		case entities.TargetPost:
			return h.postRepo.SetClassification(updateCtx, db, event.TargetID, event.Label, event.Colors, event.Tags)
		case entities.TargetComment:
			return h.commentRepo.SetClassification(updateCtx, db, event.TargetID, event.Label, event.Colors, event.Tags)
		default:
			h.logger.Warn("ClassificationHandler: 未知的目标类型，丢弃消息",
				zap.Int8("target_type", int8(event.TargetType)))
			return nil
		}
	})
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			h.logger.Warn("ClassificationHandler: 尝试更新不存在或已删除的目标",
				zap.Uint64("target_id", event.TargetID))
			return nil // 不再重试
		}
		h.logger.Error("ClassificationHandler: 回填分类标签失败",
			zap.Error(err), zap.Uint64("target_id", event.TargetID))
		return fmt.Errorf("ClassificationHandler: 回填分类标签失败: %w", err)
	}

	h.logger.Info("ClassificationHandler: 成功回填分类标签",
		zap.Uint64("target_id", event.TargetID), zap.String("label", event.Label))
	return nil
}
