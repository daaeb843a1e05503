// Package stay_site Stay 社区站点后端：公告、预约登记、Discord 登录与实时推送
// @title Stay Site API
// @version 1.0
// @description Stay 社区站点后端 RESTful API 文档，包含公告、预约、登录模块
// @description
// @description ## 业务状态码说明
// @description | Code | 说明 |
// @description |------|------|
// @description | 0 | 成功 |
// @description | 10001 | 参数错误 |
// @description | 10004 | 未登录 / Token 无效 |
// @description | 10005 | 权限不足（不是管理员） |
// @description | 10006 | 资源不存在 |
// @description | 10007 | 已经预约过 |
// @description | 99999 | 内部错误 |
// @description
// @description ## HTTP 状态码说明
// @description - **200**: 成功
// @description - **400**: 参数错误 / 已经预约过
// @description - **401**: 未登录
// @description - **403**: 权限不足
// @description - **404**: 资源不存在
// @description - **500**: 服务器内部错误（读接口同时返回空结果）
// @description
// @description ## 响应格式
// @description ```json
// @description {
// @description   "code": 0,
// @description   "msg": "success",
// @description   "data": {}
// @description }
// @description ```
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name stay_session
// @description 登录后下发的 session cookie，也可用 Authorization: Bearer <token>
package stay_site
