package dependencies

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/config"
)

// SentimentLabelNeutral 是分类服务不可用或未配置时的兜底标签。
const SentimentLabelNeutral = "neutral"

// Classification 是分类服务对一段文本的完整标注结果。
// Colors 是有序的情感色板（首个为主色），Tags 是毒性/内容过滤标签。
type Classification struct {
	Label  string   `json:"label"`
	Colors []string `json:"colors"`
	Tags   []string `json:"tags"`
}

// NeutralClassification 返回中性标注，供分类缺席时兜底。
func NeutralClassification() Classification {
	return Classification{Label: SentimentLabelNeutral}
}

// Classifier 定义了内容分类客户端需要实现的方法
type Classifier interface {
	// ClassifyText 对一段文本做情感/毒性标注。
	ClassifyText(ctx context.Context, text string) (Classification, error)
}

type httpClassifier struct {
	client  *http.Client
	baseURL string
	logger  *core.ZapLogger
}

type classifyRequest struct {
	Text string `json:"text"`
}

// InitClassifier 初始化内容分类客户端。
// 未配置 BaseURL 时返回中性分类器：所有内容标注为 neutral，服务照常运行。
func InitClassifier(cfg *config.ClassifierConfig, logger *core.ZapLogger) Classifier {
	if cfg == nil || cfg.BaseURL == "" {
		logger.Info("未配置内容分类服务，使用中性分类器")
		return &neutralClassifier{}
	}

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	logger.Info("内容分类客户端初始化成功",
		zap.String("baseURL", cfg.BaseURL),
		zap.Duration("timeout", timeout),
	)

	return &httpClassifier{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// ClassifyText 调用外部分类服务的 /classify 接口。
func (c *httpClassifier) ClassifyText(ctx context.Context, text string) (Classification, error) {
	payload, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return Classification{}, fmt.Errorf("序列化分类请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(payload))
	if err != nil {
		return Classification{}, fmt.Errorf("构建分类请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("分类服务调用失败", zap.Error(err))
		return Classification{}, fmt.Errorf("调用分类服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("分类服务返回非200状态码",
			zap.Int("状态码", resp.StatusCode),
			zap.String("响应信息", string(body)),
		)
		return Classification{}, fmt.Errorf("分类服务返回状态码 %d", resp.StatusCode)
	}

	var out Classification
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Classification{}, fmt.Errorf("解析分类响应失败: %w", err)
	}
	if out.Label == "" {
		out.Label = SentimentLabelNeutral
	}
	return out, nil
}

// neutralClassifier 在分类服务缺席时充当占位实现。
type neutralClassifier struct{}

func (n *neutralClassifier) ClassifyText(context.Context, string) (Classification, error) {
	return NeutralClassification(), nil
}
