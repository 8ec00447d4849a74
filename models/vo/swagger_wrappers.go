package vo

// --- 用于成功响应且包含具体 Data 的包装器 ---

// PostResponseWrapper 对应 response.APIResponse[vo.PostResponse]
type PostResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    PostResponse `json:"data"` // 使用具体的 vo.PostResponse
}

// PostFeedPageResponseWrapper 对应 response.APIResponse[vo.PostFeedPageVO]
// 用于 GetPostFeed (按热度获取帖子信息流) 接口的成功响应。
type PostFeedPageResponseWrapper struct {
	Code    int            `json:"code" example:"0"`                    // 响应码，0 表示成功
	Message string         `json:"message,omitempty" example:"success"` // 响应消息
	Data    PostFeedPageVO `json:"data"`                                // 实际的帖子信息流分页数据
}

// ListPostsByCursorResponseWrapper 对应 response.APIResponse[vo.ListPostsByCursorResponse]
type ListPostsByCursorResponseWrapper struct {
	Code    int                       `json:"code" example:"0"`
	Message string                    `json:"message,omitempty" example:"success"`
	Data    ListPostsByCursorResponse `json:"data"`
}

// CommentResponseWrapper 对应 response.APIResponse[vo.CommentResponse]
type CommentResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    CommentResponse `json:"data"`
}

// CommentTreeResponseWrapper 对应 response.APIResponse[vo.CommentTreeVO]
type CommentTreeResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    CommentTreeVO `json:"data"`
}

// CommentThreadResponseWrapper 对应 response.APIResponse[vo.CommentThreadVO]
type CommentThreadResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    CommentThreadVO `json:"data"`
}

// VoteToggleResponseWrapper 对应 response.APIResponse[vo.VoteToggleVO]
type VoteToggleResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    VoteToggleVO `json:"data"`
}

// VoteSummaryResponseWrapper 对应 response.APIResponse[vo.VoteSummaryVO]
type VoteSummaryResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    VoteSummaryVO `json:"data"`
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
// 适用于错误情况（RespondError 返回时 Data 为 nil 且 omitempty）
// 或某些成功操作（如 DELETE）可能也只返回 Code 和 Message。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`          // 成功时为 0, 错误时为具体错误码
	Message string `json:"message" example:"success"` // 成功或错误消息
}
