package constant

// 服务标识，用于链路追踪和路由中间件
const (
	ServiceName    = "comment_service"
	ServiceVersion = "1.0.0"
)
