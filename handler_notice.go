package stay_site

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zuu3/stay-site/response"
	"github.com/zuu3/stay-site/service"
)

// -------------------- 公告（Notice）相关接口 --------------------

// GinHandleListNotices 公告列表
// @Summary 公告列表
// @Description 全部公告，最新在前；存储不可用时返回空列表
// @Tags 公告
// @Produce json
// @Success 200 {object} response.Response{data=[]service.NoticeDTO} "公告列表"
// @Failure 500 {object} response.Response{data=[]service.NoticeDTO} "服务器错误（data 为空列表）"
// @Router /notices [get]
func (e *SiteEngine) GinHandleListNotices(ctx *gin.Context) {
	list, err := e.NoticeService.ListNotices()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.ErrorWithData(response.CodeInternalError, "failed to load notices", []service.NoticeDTO{}))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(list))
}

// GinHandleGetNotice 公告详情
// @Summary 公告详情
// @Tags 公告
// @Produce json
// @Param id path string true "公告ID"
// @Success 200 {object} response.Response{data=service.NoticeDTO} "公告"
// @Failure 404 {object} response.Response "公告不存在"
// @Failure 500 {object} response.Response "服务器错误"
// @Router /notices/{id} [get]
func (e *SiteEngine) GinHandleGetNotice(ctx *gin.Context) {
	n, err := e.NoticeService.GetNotice(ctx.Param("id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if n == nil {
		ctx.JSON(http.StatusNotFound, response.Error(response.CodeNotFound, "notice not found"))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(n))
}

// GinHandleCreateNotice 发布公告
// @Summary 发布公告
// @Description 仅管理员。id 与日期由服务端生成
// @Tags 公告
// @Accept json
// @Produce json
// @Param req body service.CreateNoticeReq true "公告内容"
// @Success 200 {object} response.Response{data=service.NoticeDTO} "新公告"
// @Failure 400 {object} response.Response "参数错误"
// @Failure 401 {object} response.Response "未登录"
// @Failure 403 {object} response.Response "不是管理员"
// @Failure 500 {object} response.Response "服务器错误"
// @Security SessionCookie
// @Router /notices [post]
func (e *SiteEngine) GinHandleCreateNotice(ctx *gin.Context) {
	var req service.CreateNoticeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}
	n, err := e.NoticeService.CreateNotice(req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(n))
}

// GinHandleUpdateNotice 修改公告
// @Summary 修改公告
// @Description 仅管理员。只更新请求中出现的字段
// @Tags 公告
// @Accept json
// @Produce json
// @Param id path string true "公告ID"
// @Param req body service.UpdateNoticeReq true "要修改的字段"
// @Success 200 {object} response.Response{data=service.NoticeDTO} "修改后的公告"
// @Failure 400 {object} response.Response "参数错误"
// @Failure 401 {object} response.Response "未登录"
// @Failure 403 {object} response.Response "不是管理员"
// @Failure 404 {object} response.Response "公告不存在"
// @Failure 500 {object} response.Response "服务器错误"
// @Security SessionCookie
// @Router /notices/{id} [patch]
func (e *SiteEngine) GinHandleUpdateNotice(ctx *gin.Context) {
	var req service.UpdateNoticeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}
	n, err := e.NoticeService.UpdateNotice(ctx.Param("id"), req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if n == nil {
		ctx.JSON(http.StatusNotFound, response.Error(response.CodeNotFound, "notice not found"))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(n))
}

// GinHandleDeleteNotice 删除公告
// @Summary 删除公告
// @Description 仅管理员
// @Tags 公告
// @Produce json
// @Param id path string true "公告ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 401 {object} response.Response "未登录"
// @Failure 403 {object} response.Response "不是管理员"
// @Failure 404 {object} response.Response "公告不存在"
// @Failure 500 {object} response.Response "服务器错误"
// @Security SessionCookie
// @Router /notices/{id} [delete]
func (e *SiteEngine) GinHandleDeleteNotice(ctx *gin.Context) {
	ok, err := e.NoticeService.DeleteNotice(ctx.Param("id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !ok {
		ctx.JSON(http.StatusNotFound, response.Error(response.CodeNotFound, "notice not found"))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(gin.H{"success": true}))
}
