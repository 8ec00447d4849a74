package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	PostCreated           string `mapstructure:"postCreated" yaml:"postCreated"`                     // 帖子创建主题
	PostDeleted           string `mapstructure:"postDeleted" yaml:"postDeleted"`                     // 帖子删除主题
	CommentCreated        string `mapstructure:"commentCreated" yaml:"commentCreated"`               // 评论创建主题
	CommentDeleted        string `mapstructure:"commentDeleted" yaml:"commentDeleted"`               // 评论删除主题
	ClassificationUpdated string `mapstructure:"classificationUpdated" yaml:"classificationUpdated"` // 内容分类结果主题
}
