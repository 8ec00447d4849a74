package controller

import (
	"errors"
	"net/http"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/comment_service/myErrors"
)

// currentUserID 从 gin.Context 中取出网关透传下来的用户 ID。
// 取不到或为空串时向客户端返回 401 并返回 false。
func currentUserID(c *gin.Context) (string, bool) {
	userIDValue, exists := c.Get(string(constants.UserIDKey))
	if !exists {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息 (Context Key Not Found)")
		return "", false
	}
	userID, ok := userIDValue.(string)
	if !ok || userID == "" {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取有效的用户 ID (Invalid UserID in Context)")
		return "", false
	}
	return userID, true
}

// respondServiceError 把服务层的领域错误映射为 HTTP 状态码。
// 未识别的错误一律按 500 返回，不向客户端泄露内部细节之外的语义。
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "目标资源不存在")
	case errors.Is(err, myErrors.ErrParentNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "父评论不存在或已删除")
	case errors.Is(err, myErrors.ErrUnauthorized):
		response.RespondError(c, http.StatusForbidden, response.ErrCodeClientUnauthorized, "无权操作该资源")
	case errors.Is(err, myErrors.ErrDepthLimitExceeded):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "回复层级超出上限")
	case errors.Is(err, myErrors.ErrPathCapacityExceeded):
		response.RespondError(c, http.StatusConflict, response.ErrCodeServerInternal, "该层级回复数量已达上限")
	case errors.Is(err, myErrors.ErrTransactionConflict):
		response.RespondError(c, http.StatusConflict, response.ErrCodeServerInternal, "写入竞争过高，请稍后重试")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, fallbackMsg+": "+err.Error())
	}
}
