package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/api/middleware"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/policy"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/jwt"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxRole)
	if s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetActor 提取当前请求的操作者（用户 ID + 角色），供 policy 判断使用
func MustGetActor(c *gin.Context) (policy.Actor, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return policy.Actor{}, false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return policy.Actor{}, false
	}
	return policy.Actor{UserID: userID, Role: role}, true
}

// MustGetClaims 提取 JWT 中间件注入的完整 Claims（登出时需要 jti 与剩余有效期）
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.CtxClaims)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// MustGetPathID 读取并校验路径参数 :id（UUID）
func MustGetPathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, 40003, "ID 格式无效")
		return "", false
	}
	return id, true
}
