package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/service"
)

// CommentController 定义评论控制器的结构体
type CommentController struct {
	commentService service.CommentService // 服务层接口，通过依赖注入传入
}

// NewCommentController 构造函数，用于创建 CommentController 实例
func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// CreateComment 处理发表评论的 HTTP 请求
// @Summary      发表评论
// @Description  在指定帖子下发表评论；parent_id 为空或 0 表示根评论，否则为对指定评论的回复。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        request body dto.CreateCommentRequest true "评论创建请求"
// @Success      200 {object} vo.CommentResponseWrapper "评论发表成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载或回复层级超限"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未授权或认证失败"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子或父评论不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "写入竞争过高或该层级回复已满"
// @Failure      500 {object} vo.BaseResponseWrapper "发表评论时发生内部服务器错误"
// @Router       /api/v1/comment/posts/{post_id}/comments [post]
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	postIDStr := c.Param("post_id")
	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的帖子 ID 格式")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	commentVO, err := ctrl.commentService.CreateComment(c.Request.Context(), userID, postID, &req)
	if err != nil {
		respondServiceError(c, err, "发表评论失败")
		return
	}
	response.RespondSuccess(c, commentVO, "评论发表成功")
}

// GetCommentTree 处理获取帖子评论树的 HTTP 请求
// @Summary      获取帖子的评论树 (公开)
// @Description  返回指定帖子的完整评论树，同级按热度分数降序；超过 maxDepth 的子树折叠为占位，客户端可通过聚焦视图继续展开。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        maxDepth query int false "展示深度上限 (默认 4，最大 10)" Format(int) minimum(0) maximum(10)
// @Success      200 {object} vo.CommentTreeResponseWrapper "评论树检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的输入参数"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "检索评论树时发生内部服务器错误"
// @Router       /api/v1/comment/posts/{post_id}/comments [get]
func (ctrl *CommentController) GetCommentTree(c *gin.Context) {
	postIDStr := c.Param("post_id")
	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的帖子 ID 格式")
		return
	}

	var req dto.GetCommentTreeRequestDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	treeVO, err := ctrl.commentService.GetCommentTree(c.Request.Context(), postID, req.MaxDepth)
	if err != nil {
		respondServiceError(c, err, "检索评论树失败")
		return
	}
	response.RespondSuccess(c, treeVO, "评论树检索成功")
}

// GetCommentThread 处理获取评论聚焦视图的 HTTP 请求
// @Summary      获取评论的聚焦视图 (公开)
// @Description  以指定评论为根向下展开子树，用于客户端点开"查看更多回复"时继续下钻。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        comment_id path uint64 true "评论 ID" Format(uint64)
// @Param        maxDepth query int false "展示深度上限 (默认 4，最大 10)" Format(int) minimum(0) maximum(10)
// @Success      200 {object} vo.CommentThreadResponseWrapper "聚焦视图检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的输入参数"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "检索聚焦视图时发生内部服务器错误"
// @Router       /api/v1/comment/comments/{comment_id}/thread [get]
func (ctrl *CommentController) GetCommentThread(c *gin.Context) {
	commentIDStr := c.Param("comment_id")
	commentID, err := strconv.ParseUint(commentIDStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评论 ID 格式")
		return
	}

	var req dto.GetCommentThreadRequestDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	threadVO, err := ctrl.commentService.GetCommentThread(c.Request.Context(), commentID, req.MaxDepth)
	if err != nil {
		respondServiceError(c, err, "检索聚焦视图失败")
		return
	}
	response.RespondSuccess(c, threadVO, "聚焦视图检索成功")
}

// UpdateComment 处理编辑评论的 HTTP 请求
// @Summary      编辑指定ID的评论
// @Description  更新评论正文，仅作者本人可操作。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        comment_id path uint64 true "评论 ID" Format(uint64)
// @Param        request body dto.UpdateCommentRequest true "评论更新请求"
// @Success      200 {object} vo.BaseResponseWrapper "评论更新成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      403 {object} vo.BaseResponseWrapper "非评论作者"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "更新评论时发生内部服务器错误"
// @Router       /api/v1/comment/comments/{comment_id} [put]
func (ctrl *CommentController) UpdateComment(c *gin.Context) {
	commentIDStr := c.Param("comment_id")
	commentID, err := strconv.ParseUint(commentIDStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评论 ID 格式")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := ctrl.commentService.UpdateComment(c.Request.Context(), userID, commentID, &req); err != nil {
		respondServiceError(c, err, "更新评论失败")
		return
	}
	response.RespondSuccess[any](c, nil, "评论更新成功")
}

// DeleteComment 处理删除评论的 HTTP 请求
// @Summary      删除指定ID的评论
// @Description  软删除评论及其整棵回复子树，仅作者本人可操作。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        comment_id path uint64 true "评论 ID" Format(uint64)
// @Success      200 {object} vo.BaseResponseWrapper "评论删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的评论 ID 格式"
// @Failure      403 {object} vo.BaseResponseWrapper "非评论作者"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "删除评论时发生内部服务器错误"
// @Router       /api/v1/comment/comments/{comment_id} [delete]
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	commentIDStr := c.Param("comment_id")
	commentID, err := strconv.ParseUint(commentIDStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评论 ID 格式")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := ctrl.commentService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		respondServiceError(c, err, "删除评论失败")
		return
	}
	response.RespondSuccess[any](c, nil, "评论删除成功")
}

// RegisterRoutes 注册 CommentController 的路由
func (ctrl *CommentController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/posts/:post_id/comments", ctrl.CreateComment) // POST   /api/v1/comment/posts/:post_id/comments
	group.GET("/posts/:post_id/comments", ctrl.GetCommentTree) // GET    /api/v1/comment/posts/:post_id/comments

	comments := group.Group("/comments")
	{
		comments.GET("/:comment_id/thread", ctrl.GetCommentThread) // GET    /api/v1/comment/comments/:comment_id/thread
		comments.PUT("/:comment_id", ctrl.UpdateComment)           // PUT    /api/v1/comment/comments/:comment_id
		comments.DELETE("/:comment_id", ctrl.DeleteComment)        // DELETE /api/v1/comment/comments/:comment_id
	}
}
