package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/service"
)

// VoteController 定义投票控制器的结构体
type VoteController struct {
	voteService service.VoteService // 服务层接口，通过依赖注入传入
}

// NewVoteController 构造函数，用于创建 VoteController 实例
func NewVoteController(voteService service.VoteService) *VoteController {
	return &VoteController{
		voteService: voteService,
	}
}

// ToggleVote 处理投票开关的 HTTP 请求
// @Summary      切换投票状态
// @Description  对帖子或评论在某个 (category, tag) 上切换当前用户的投票状态：未投过则投票，已投过则取消。返回切换后的状态与最新总票数。
// @Tags         votes (投票)
// @Accept       json
// @Produce      json
// @Param        request body dto.ToggleVoteRequest true "投票切换请求 (target_type: 1=帖子, 2=评论; category: emotion|content_filter)"
// @Success      200 {object} vo.VoteToggleResponseWrapper "投票状态切换成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未授权或认证失败"
// @Failure      404 {object} vo.BaseResponseWrapper "投票目标不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "并发投票冲突，请重试"
// @Failure      500 {object} vo.BaseResponseWrapper "切换投票状态时发生内部服务器错误"
// @Router       /api/v1/comment/votes/toggle [post]
func (ctrl *VoteController) ToggleVote(c *gin.Context) {
	var req dto.ToggleVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	toggleVO, err := ctrl.voteService.ToggleVote(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "切换投票状态失败")
		return
	}
	response.RespondSuccess(c, toggleVO, "投票状态切换成功")
}

// GetVoteSummary 处理查询投票分布的 HTTP 请求
// @Summary      查询投票分布
// @Description  按 (category, tag) 聚合某帖子或评论的票数分布，按票数降序返回。
// @Tags         votes (投票)
// @Produce      json
// @Param        target_type query int true "目标类型 (1=帖子, 2=评论)" Enums(1, 2)
// @Param        target_id query uint64 true "目标ID"
// @Success      200 {object} vo.VoteSummaryResponseWrapper "查询成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      404 {object} vo.BaseResponseWrapper "目标不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "查询投票分布时发生内部服务器错误"
// @Router       /api/v1/comment/votes/summary [get]
func (ctrl *VoteController) GetVoteSummary(c *gin.Context) {
	var req dto.GetVoteSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定查询参数失败: "+err.Error())
		return
	}

	summaryVO, err := ctrl.voteService.GetVoteSummary(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "查询投票分布失败")
		return
	}
	response.RespondSuccess(c, summaryVO, "查询成功")
}

// RegisterRoutes 注册 VoteController 的路由
func (ctrl *VoteController) RegisterRoutes(group *gin.RouterGroup) {
	votes := group.Group("/votes")
	{
		votes.POST("/toggle", ctrl.ToggleVote)     // POST /api/v1/comment/votes/toggle
		votes.GET("/summary", ctrl.GetVoteSummary) // GET  /api/v1/comment/votes/summary
	}
}
