package handler

import (
	"errors"
	"net/http"

	"parcel_tracking/internal/domain/user/service"
	"parcel_tracking/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler 创建处理器
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginInput 登录输入
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, err.Error())
		return
	}

	token, user, err := h.service.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, response.MsgUnauthorized, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgServerError, "login failed")
		return
	}

	response.Success(c, "login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Validate 校验携带的令牌并返回用户信息
// 挂在 AuthMiddleware 之后，走到这里说明令牌已通过校验
func (h *AuthHandler) Validate(c *gin.Context) {
	user, err := h.service.GetUser(c.GetString("userID"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.MsgUnauthorized, "user no longer exists")
		return
	}

	response.Success(c, "token valid", gin.H{
		"user": user,
	})
}
