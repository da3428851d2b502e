package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"` // 是否成功
	Message string      `json:"message"` // 提示信息
	Data    interface{} `json:"data"`    // 数据
	Error   *string     `json:"error"`   // 错误详情
}

// Success 成功响应
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Error:   nil,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
		Error:   nil,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, message string, errDetail string) {
	c.JSON(httpCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
		Error:   &errDetail,
	})
}

// ErrorWithData 带数据的错误响应（批量操作的逐项错误列表）
func ErrorWithData(c *gin.Context, httpCode int, message string, errDetail string, data interface{}) {
	c.JSON(httpCode, Response{
		Success: false,
		Message: message,
		Data:    data,
		Error:   &errDetail,
	})
}
