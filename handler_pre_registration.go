package stay_site

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zuu3/stay-site/middleware"
	"github.com/zuu3/stay-site/response"
	"github.com/zuu3/stay-site/service"
)

// -------------------- 预约登记（Pre-Registration）相关接口 --------------------

// GinHandleGetPreRegistration 预约状态
// @Summary 预约状态
// @Description 总人数与当前登录身份是否已预约；存储不可用时返回 0/false
// @Tags 预约
// @Produce json
// @Success 200 {object} response.Response{data=service.PreRegistrationStatus} "预约状态"
// @Failure 500 {object} response.Response{data=service.PreRegistrationStatus} "服务器错误（data 为 0/false）"
// @Router /pre-registration [get]
func (e *SiteEngine) GinHandleGetPreRegistration(ctx *gin.Context) {
	userID := ""
	if id := middleware.GetIdentity(ctx); id != nil {
		userID = id.ExternalUserID
	}
	status, err := e.PreRegistrationService.GetStatus(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.ErrorWithData(response.CodeInternalError, "failed to load pre-registration status", &service.PreRegistrationStatus{}))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(status))
}

// GinHandleRegister 预约
// @Summary 预约
// @Description 每个外部身份只能预约一次，重复预约返回 400
// @Tags 预约
// @Produce json
// @Success 200 {object} response.Response{data=service.RegisterResult} "预约成功与最新人数"
// @Failure 400 {object} response.Response "已经预约过"
// @Failure 401 {object} response.Response "未登录"
// @Failure 500 {object} response.Response "服务器错误"
// @Security SessionCookie
// @Router /pre-registration [post]
func (e *SiteEngine) GinHandleRegister(ctx *gin.Context) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "unauthorized"))
		return
	}
	res, err := e.PreRegistrationService.Register(id.ExternalUserID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			ctx.JSON(http.StatusBadRequest, response.Error(response.CodeAlreadyRegistered, "already registered"))
			return
		}
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(res))
}
