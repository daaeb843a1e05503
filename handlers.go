package stay_site

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zuu3/stay-site/response"
	"github.com/zuu3/stay-site/service"
)

var errNotConfigured = errors.New("not configured")

// writeServiceError 把 service 层错误映射为 HTTP 状态码 + 业务 code。
// 存储错误的细节只进日志，不回给客户端。
func writeServiceError(ctx *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, ve.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "unauthorized"))
	case errors.Is(err, service.ErrAlreadyRegistered):
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeAlreadyRegistered, "already registered"))
	default:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, response.Error(response.CodeInternalError, "internal error"))
	}
}
