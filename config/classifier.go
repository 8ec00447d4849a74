package config

// ClassifierConfig 是外部内容分类服务（情感/主题标注）的配置。
// BaseURL 为空时服务以中性分类器启动，所有内容标记为 neutral。
type ClassifierConfig struct {
	BaseURL   string `mapstructure:"baseURL" json:"baseURL" yaml:"baseURL"`
	TimeoutMs int    `mapstructure:"timeoutMs" json:"timeoutMs" yaml:"timeoutMs"`
}
