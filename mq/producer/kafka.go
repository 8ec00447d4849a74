package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/config"
	"github.com/Xushengqwer/comment_service/models/events"
)

// Envelope 是所有出站事件的统一外壳，携带事件 ID 与时间戳供下游去重和排序。
type Envelope struct {
	EventID   string      `json:"event_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(config config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: config.Topics,
	}
}

// SendEvent 将载荷包进统一外壳后发送到指定 Kafka 主题。
// - 未配置 brokers 时生产者为 nil，事件直接丢弃。
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, payload interface{}) error {
	if p == nil {
		return nil
	}

	event := Envelope{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Payload:   payload,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("Sending Kafka message",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: eventBytes,
	})

	if err != nil {
		p.logger.Error("Failed to write Kafka message", zap.Error(err), zap.String("topic", topic))
	} else {
		p.logger.Info("Successfully sent Kafka message", zap.String("topic", topic))
	}
	return err
}

// SendPostCreatedEvent 发送帖子创建事件，供搜索、推荐等下游消费。
func (p *KafkaProducer) SendPostCreatedEvent(ctx context.Context, event events.PostCreatedEvent) error {
	if p == nil {
		return nil
	}
	return p.SendEvent(ctx, p.topics.PostCreated, event)
}

// SendPostDeletedEvent 发送帖子删除事件。
func (p *KafkaProducer) SendPostDeletedEvent(ctx context.Context, event events.PostDeletedEvent) error {
	if p == nil {
		return nil
	}
	return p.SendEvent(ctx, p.topics.PostDeleted, event)
}

// SendCommentCreatedEvent 发送评论创建事件。
func (p *KafkaProducer) SendCommentCreatedEvent(ctx context.Context, event events.CommentCreatedEvent) error {
	if p == nil {
		return nil
	}
	return p.SendEvent(ctx, p.topics.CommentCreated, event)
}

// SendCommentDeletedEvent 发送评论子树删除事件。
func (p *KafkaProducer) SendCommentDeletedEvent(ctx context.Context, event events.CommentDeletedEvent) error {
	if p == nil {
		return nil
	}
	return p.SendEvent(ctx, p.topics.CommentDeleted, event)
}
