package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/service"
)

// PostController 定义帖子控制器的结构体
type PostController struct {
	postService service.PostService // 服务层接口，通过依赖注入传入
}

// NewPostController 构造函数，用于创建 PostController 实例
func NewPostController(postService service.PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

// CreatePost 处理创建帖子的 HTTP 请求
// @Summary      创建新帖子
// @Description  使用提供的标题和正文创建一个新帖子，作者 ID 从请求上下文中获取。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePostRequest true "帖子创建请求"
// @Success      200 {object} vo.PostResponseWrapper "帖子创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未授权或认证失败"
// @Failure      500 {object} vo.BaseResponseWrapper "创建帖子时发生内部服务器错误"
// @Router       /api/v1/comment/posts [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	postVO, err := ctrl.postService.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "创建帖子失败")
		return
	}
	response.RespondSuccess(c, postVO, "帖子创建成功")
}

// GetPostByID 处理获取帖子详情的 HTTP 请求
// @Summary      获取指定ID的帖子详情 (公开)
// @Description  通过帖子的 ID 检索特定帖子的详细信息。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Success      200 {object} vo.PostResponseWrapper "帖子详情检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的帖子 ID 格式"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "检索帖子详情时发生内部服务器错误"
// @Router       /api/v1/comment/posts/{post_id} [get]
func (ctrl *PostController) GetPostByID(c *gin.Context) {
	postIDStr := c.Param("post_id")
	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的帖子 ID 格式")
		return
	}

	postVO, err := ctrl.postService.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		respondServiceError(c, err, "检索帖子详情失败")
		return
	}
	response.RespondSuccess(c, postVO, "帖子详情检索成功")
}

// UpdatePost 处理编辑帖子的 HTTP 请求
// @Summary      编辑指定ID的帖子
// @Description  更新帖子的标题与正文，仅作者本人可操作。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        request body dto.UpdatePostRequest true "帖子更新请求"
// @Success      200 {object} vo.BaseResponseWrapper "帖子更新成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      403 {object} vo.BaseResponseWrapper "非帖子作者"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "更新帖子时发生内部服务器错误"
// @Router       /api/v1/comment/posts/{post_id} [put]
func (ctrl *PostController) UpdatePost(c *gin.Context) {
	postIDStr := c.Param("post_id")
	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的帖子 ID 格式")
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := ctrl.postService.UpdatePost(c.Request.Context(), userID, postID, &req); err != nil {
		respondServiceError(c, err, "更新帖子失败")
		return
	}
	response.RespondSuccess[any](c, nil, "帖子更新成功")
}

// DeletePost 处理删除帖子的 HTTP 请求
// @Summary      删除指定ID的帖子
// @Description  软删除帖子及其名下全部评论，仅作者本人可操作。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Success      200 {object} vo.BaseResponseWrapper "帖子删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的帖子 ID 格式"
// @Failure      403 {object} vo.BaseResponseWrapper "非帖子作者"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "删除帖子时发生内部服务器错误"
// @Router       /api/v1/comment/posts/{post_id} [delete]
func (ctrl *PostController) DeletePost(c *gin.Context) {
	postIDStr := c.Param("post_id")
	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的帖子 ID 格式")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := ctrl.postService.DeletePost(c.Request.Context(), userID, postID); err != nil {
		respondServiceError(c, err, "删除帖子失败")
		return
	}
	response.RespondSuccess[any](c, nil, "帖子删除成功")
}

// ListPostsByUserID 处理获取指定用户发布的帖子列表 (游标加载)
// @Summary      获取指定用户的帖子列表 (公开, 游标加载)
// @Description  使用游标分页方式，检索特定用户发布的帖子列表，按发布时间倒序。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        user_id query string true "要查询其帖子的用户 ID"
// @Param        cursor query uint64 false "游标（上一页最后一个帖子的 ID），首页省略" Format(uint64)
// @Param        page_size query int true "每页帖子数量" Format(int) minimum(1)
// @Success      200 {object} vo.ListPostsByCursorResponseWrapper "帖子检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的输入参数"
// @Failure      500 {object} vo.BaseResponseWrapper "检索帖子时发生内部服务器错误"
// @Router       /api/v1/comment/posts/by-author [get]
func (ctrl *PostController) ListPostsByUserID(c *gin.Context) {
	var req dto.ListPostsByUserIDRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	result, err := ctrl.postService.ListPostsByUserID(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "检索帖子失败")
		return
	}
	response.RespondSuccess(c, result, "帖子检索成功")
}

// RegisterRoutes 注册 PostController 的路由
func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup) {
	posts := group.Group("/posts")
	{
		posts.POST("", ctrl.CreatePost)                 // POST   /api/v1/comment/posts
		posts.GET("/by-author", ctrl.ListPostsByUserID) // GET    /api/v1/comment/posts/by-author
		posts.GET("/:post_id", ctrl.GetPostByID)        // GET    /api/v1/comment/posts/:post_id
		posts.PUT("/:post_id", ctrl.UpdatePost)         // PUT    /api/v1/comment/posts/:post_id
		posts.DELETE("/:post_id", ctrl.DeletePost)      // DELETE /api/v1/comment/posts/:post_id
	}
}
