package dto

// CreatePostRequest 定义了创建帖子的请求数据结构
// - 添加了 binding 标签用于输入验证
type CreatePostRequest struct {
	Title          string `json:"title" form:"title" binding:"required,max=255"`                    // 帖子标题，必填，最大255字符
	Content        string `json:"content" form:"content" binding:"required,max=10000"`              // 帖子内容，必填
	AuthorUsername string `json:"author_username" form:"author_username" binding:"required,max=50"` // 作者用户名，必填，最大50字符
}

// UpdatePostRequest 定义了更新帖子的请求数据结构
// - 只允许作者修改标题与正文，计数和分数由系统维护
type UpdatePostRequest struct {
	Title   string `json:"title" form:"title" binding:"required,max=255"`
	Content string `json:"content" form:"content" binding:"required,max=10000"`
}

// ListPostsByUserIDRequest 定义分页查询用户帖子的请求数据结构（游标加载）
type ListPostsByUserIDRequest struct {
	UserID   string  `json:"user_id" form:"user_id" binding:"required"`          // 用户ID，必填 (form tag 用于 query 参数绑定)
	Cursor   *uint64 `json:"cursor" form:"cursor"`                               // 游标（上次加载的最后一条帖子的 ID），可选
	PageSize int     `json:"page_size" form:"page_size" binding:"required,gt=0"` // 每页数量，必填，大于0
}
