package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"parcel_tracking/internal/domain/order/model"
	"parcel_tracking/internal/domain/order/service"
	"parcel_tracking/pkg/response"
	"parcel_tracking/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	service service.OrderService
}

// NewOrderHandler 创建处理器
func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// ListQuery 列表查询参数
type ListQuery struct {
	utils.Pagination
	Search string `form:"search"`
	Status string `form:"status"`
}

// BulkInput 批量请求体
type BulkInput struct {
	Orders []model.RawOrder `json:"orders"`
}

// GetOrders 获取订单列表
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, err.Error())
		return
	}

	// 归一化分页参数
	_, limit := query.GetPageOffset()
	orders, total, err := h.service.GetOrders(query.Page, limit, query.Search, query.Status)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgServerError, "Failed to fetch orders")
		return
	}

	response.Success(c, "orders fetched", utils.NewPageResult(orders, total, query.Page, limit))
}

// GetColumns 获取当前角色的权限记录与可见列
func (h *OrderHandler) GetColumns(c *gin.Context) {
	rec := h.service.Permissions(c.GetString("role"))
	response.Success(c, "permissions resolved", rec)
}

// Track 公开的运单号查询
func (h *OrderHandler) Track(c *gin.Context) {
	trackingNumber := c.Query("tracking_number")
	if trackingNumber == "" {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, "tracking_number is required")
		return
	}

	view, err := h.service.Track(c.Request.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.Error(c, http.StatusNotFound, response.MsgNotFound, "tracking number not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgServerError, "Failed to look up tracking number")
		return
	}

	response.Success(c, "tracking found", view)
}

// CreateOrders 创建订单，接受单个订单或 {orders:[...]} 批量体
func (h *OrderHandler) CreateOrders(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, "unable to read request body")
		return
	}

	role := c.GetString("role")
	creatorID := c.GetString("userID")

	// 先尝试批量体
	var bulk BulkInput
	if err := json.Unmarshal(body, &bulk); err == nil && len(bulk.Orders) > 0 {
		orders, itemErrs, err := h.service.CreateBulk(role, creatorID, bulk.Orders)
		if err != nil {
			h.respondError(c, err)
			return
		}
		if len(itemErrs) > 0 {
			response.ErrorWithData(c, http.StatusBadRequest, response.MsgInvalidParam, "one or more orders failed validation", itemErrs)
			return
		}
		response.Created(c, "orders created", orders)
		return
	}

	var raw model.RawOrder
	if err := json.Unmarshal(body, &raw); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, "invalid order payload")
		return
	}

	order, err := h.service.Create(role, creatorID, raw)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Created(c, "order created", order)
}

// UpdateOrder 更新单个订单，目标由 id 查询参数指定
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, "id is required")
		return
	}

	var raw model.RawOrder
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, "invalid order payload")
		return
	}

	order, err := h.service.Update(c.GetString("role"), id, raw)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, "order updated", order)
}

// BulkUpsert 按 id 或运单号批量更新/补建
func (h *OrderHandler) BulkUpsert(c *gin.Context) {
	var input BulkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, "invalid bulk payload")
		return
	}
	if len(input.Orders) == 0 {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, "orders is required")
		return
	}

	result, err := h.service.BulkUpsert(c.GetString("role"), c.GetString("userID"), input.Orders)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, "bulk upsert finished", result)
}

// DeleteOrder 软删除订单
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidParam, "id is required")
		return
	}

	if err := h.service.Delete(c.GetString("role"), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, "order deleted", true)
}

// respondError 服务层错误到响应的映射
func (h *OrderHandler) respondError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		response.Error(c, http.StatusForbidden, response.MsgForbidden, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, response.MsgNotFound, err.Error())
	case errors.As(err, &vErr):
		response.ErrorWithData(c, http.StatusBadRequest, response.MsgInvalidParam, vErr.Error(), vErr.Fields)
	default:
		response.Error(c, http.StatusInternalServerError, response.MsgServerError, "unexpected error")
	}
}
