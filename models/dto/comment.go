package dto

// CreateCommentRequest 定义了发表评论的请求数据结构
// - ParentID 为 nil 或 0 表示根评论，否则为对 ParentID 的回复
type CreateCommentRequest struct {
	Content        string  `json:"content" form:"content" binding:"required,max=10000"`              // 评论正文，必填
	ParentID       *uint64 `json:"parent_id" form:"parent_id" binding:"omitempty,gte=1"`             // 父评论ID，可选
	AuthorUsername string  `json:"author_username" form:"author_username" binding:"required,max=50"` // 作者用户名，必填
}

// UpdateCommentRequest 定义了编辑评论的请求数据结构
// - 只允许作者修改正文，树结构一经建立不可变
type UpdateCommentRequest struct {
	Content string `json:"content" form:"content" binding:"required,max=10000"`
}

// GetCommentTreeRequestDTO 定义了获取帖子评论树的API请求参数。
type GetCommentTreeRequestDTO struct {
	// MaxDepth 展示深度上限，超过该深度的子树折叠为占位（只返回回复数）。
	// - 可选，缺省为 4。
	MaxDepth *int `form:"maxDepth" binding:"omitempty,gte=0,lte=10"`
}

// GetCommentThreadRequestDTO 定义了聚焦视图（从某条评论向下展开）的API请求参数。
type GetCommentThreadRequestDTO struct {
	// MaxDepth 从焦点评论起算的相对展示深度上限，可选，缺省为 4。
	MaxDepth *int `form:"maxDepth" binding:"omitempty,gte=0,lte=10"`
}
