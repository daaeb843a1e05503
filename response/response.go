package response

// Response 统一响应结构
type Response struct {
	Code int         `json:"code" example:"0"`                    // 业务状态码
	Msg  string      `json:"msg" example:"success"`               // 提示消息
	Data interface{} `json:"data,omitempty" swaggertype:"object"` // 响应数据
}

// 业务状态码定义
// 使用说明：HTTP 状态码表示错误类别（400/401/403/404/500），code 给前端做细分提示
const (
	CodeSuccess           = 0     // 成功
	CodeParamError        = 10001 // 参数错误
	CodeTokenInvalid      = 10004 // 未登录 / Token 无效
	CodePermissionDeny    = 10005 // 权限不足
	CodeNotFound          = 10006 // 资源不存在
	CodeAlreadyRegistered = 10007 // 已经预约过
	CodeInternalError     = 99999 // 内部错误
)

// Success 成功响应
func Success(data interface{}, args ...string) *Response {
	msg := "success"
	for _, arg := range args {
		msg = arg
	}
	return &Response{
		Code: CodeSuccess,
		Msg:  msg,
		Data: data,
	}
}

// Error 错误响应
func Error(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}

// ErrorWithData 错误响应，同时带上降级数据（读接口失败时返回空结果）
func ErrorWithData(code int, msg string, data interface{}) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
		Data: data,
	}
}
