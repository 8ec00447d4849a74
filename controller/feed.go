package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/service"
)

// FeedController 定义热度信息流控制器的结构体
type FeedController struct {
	feedService service.FeedService // 服务层接口，通过依赖注入传入
}

// NewFeedController 构造函数，用于创建 FeedController 实例
func NewFeedController(feedService service.FeedService) *FeedController {
	return &FeedController{
		feedService: feedService,
	}
}

// GetPostFeed 处理获取热度信息流的 HTTP 请求
// @Summary      获取帖子信息流 (公开, 按热度排序)
// @Description  按热度分数降序分页获取帖子列表，可选按作者筛选。热门页窗优先命中 Redis 榜单缓存。
// @Tags         feed (信息流)
// @Accept       json
// @Produce      json
// @Param        page query int true "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        pageSize query int true "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Param        authorId query string false "作者筛选条件 (最大长度 36)" maxLength(36)
// @Success      200 {object} vo.PostFeedPageResponseWrapper "信息流检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      500 {object} vo.BaseResponseWrapper "检索信息流时发生内部服务器错误"
// @Router       /api/v1/comment/feed [get]
func (ctrl *FeedController) GetPostFeed(c *gin.Context) {
	var reqDTO dto.GetPostFeedRequestDTO
	if err := c.ShouldBindQuery(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	feedVO, err := ctrl.feedService.GetPostFeed(c.Request.Context(), &reqDTO)
	if err != nil {
		respondServiceError(c, err, "检索信息流失败")
		return
	}
	response.RespondSuccess(c, feedVO, "信息流检索成功")
}

// RegisterRoutes 注册 FeedController 的路由
func (ctrl *FeedController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/feed", ctrl.GetPostFeed) // GET /api/v1/comment/feed
}
