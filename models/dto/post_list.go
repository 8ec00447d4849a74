package dto

// GetPostFeedRequestDTO 定义了按热度获取帖子信息流的API请求参数。
// - 用于控制器层接收和验证来自客户端的HTTP请求。
type GetPostFeedRequestDTO struct {
	// Page 页码，从 1 开始。
	// - binding:"required,gte=1"`: 必填，值必须大于等于1。
	Page int `form:"page" binding:"required,gte=1"`

	// PageSize 每页数量。
	// - binding:"required,gte=1,lte=100"`: 必填，值必须在1到100之间。
	PageSize int `form:"pageSize" binding:"required,gte=1,lte=100"`

	// AuthorID 作者筛选条件。
	// - 可选，提供时只返回该作者的帖子。
	AuthorID *string `form:"authorId" binding:"omitempty,max=36"`
}

// GetOffset 计算分页偏移量。
//   - (page - 1) * pageSize
//   - 注意: 热度分数在两次请求之间可能变化，偏移分页在翻页时可能出现
//     条目重复或跳过，这是偏移分页在动态排序下的固有代价。
func (dto *GetPostFeedRequestDTO) GetOffset() int {
	if dto.Page <= 0 {
		return 0
	}
	return (dto.Page - 1) * dto.PageSize
}

// GetLimit 获取每页数量。
func (dto *GetPostFeedRequestDTO) GetLimit() int {
	return dto.PageSize
}

// FeedQueryDTO 封装了按热度获取帖子列表的查询参数。
// - 用于在 Service 层和 Repo 层之间传递结构化的查询条件。
type FeedQueryDTO struct {
	// Offset 分页偏移量。
	Offset int `json:"offset"`

	// Limit 每页期望返回的记录数。
	Limit int `json:"limit"`

	// AuthorID 作者筛选条件，nil 表示不筛选。
	AuthorID *string `json:"authorId"`
}
