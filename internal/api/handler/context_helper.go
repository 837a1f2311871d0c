package handler

import "github.com/gin-gonic/gin"

// operatorHeader 操作人标识请求头。
// 网关层完成认证后注入；本服务只负责把标识落到审计字段。
const operatorHeader = "X-Operator-ID"

// OperatorID 从请求头提取操作人标识（UUID）。
// 缺失时返回空串，审计字段落 NULL，不得用非 UUID 占位值兜底。
func OperatorID(c *gin.Context) string {
	return c.GetHeader(operatorHeader)
}
