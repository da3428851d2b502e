package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel_tracking/internal/domain/order/model"
	"parcel_tracking/internal/domain/order/policy"
	"parcel_tracking/internal/domain/order/repository"
	"parcel_tracking/pkg/metrics"

	"gorm.io/gorm"
)

var (
	// ErrPermissionDenied 角色能力不足
	ErrPermissionDenied = errors.New("permission denied")
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
)

// FieldError 单字段校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 校验错误集合，校验在任何写入之前全部完成
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ItemError 批量操作中单项的错误
type ItemError struct {
	Index          int    `json:"index"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	Message        string `json:"message"`
}

// BulkUpsertResult 批量更新结果，成功与失败一并上报
type BulkUpsertResult struct {
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Errors  []ItemError `json:"errors"`
}

// OrderService 订单服务接口
type OrderService interface {
	GetOrders(page, limit int, search, status string) ([]model.Order, int64, error)
	Track(ctx context.Context, trackingNumber string) (*model.TrackingView, error)
	Create(role interface{}, creatorID string, raw model.RawOrder) (*model.Order, error)
	CreateBulk(role interface{}, creatorID string, raws []model.RawOrder) ([]model.Order, []ItemError, error)
	Update(role interface{}, id string, raw model.RawOrder) (*model.Order, error)
	BulkUpsert(role interface{}, creatorID string, raws []model.RawOrder) (*BulkUpsertResult, error)
	Delete(role interface{}, id string) error
	Permissions(role interface{}) policy.PermissionRecord
}

// orderService 实现
type orderService struct {
	repo    repository.OrderRepository
	tracker repository.TrackingReader
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository, tracker repository.TrackingReader) OrderService {
	return &orderService{repo: repo, tracker: tracker}
}

// GetOrders 获取订单列表（分页 + 搜索 + 状态过滤）
func (s *orderService) GetOrders(page, limit int, search, status string) ([]model.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetList((page-1)*limit, limit, search, status)
}

// Track 公开的运单号查询
func (s *orderService) Track(ctx context.Context, trackingNumber string) (*model.TrackingView, error) {
	view, err := s.tracker.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, repository.ErrTrackingNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	metrics.GetGlobalCollector().RecordTrackingLookup()
	return view, nil
}

// Create 创建订单
// 入参先按角色的可创建字段裁剪，再校验，再清洗入库
func (s *orderService) Create(role interface{}, creatorID string, raw model.RawOrder) (*model.Order, error) {
	rec := policy.GetPermissions(policy.NormalizeRole(role))
	if !rec.CanCreate {
		return nil, ErrPermissionDenied
	}

	raw = restrictToFields(raw, rec.CreateFields)

	if fieldErrs := validateCreate(raw); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	order := orderFromPayload(CleanForCreate(raw), creatorID)
	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	metrics.GetGlobalCollector().RecordOrderCreated(order.Status)
	return order, nil
}

// CreateBulk 批量创建订单
// 校验先于任何写入：任何一项非法则整批拒绝，返回逐项错误列表
func (s *orderService) CreateBulk(role interface{}, creatorID string, raws []model.RawOrder) ([]model.Order, []ItemError, error) {
	rec := policy.GetPermissions(policy.NormalizeRole(role))
	if !rec.CanCreate {
		return nil, nil, ErrPermissionDenied
	}

	restricted := make([]model.RawOrder, len(raws))
	var itemErrs []ItemError
	for i, raw := range raws {
		restricted[i] = restrictToFields(raw, rec.CreateFields)
		for _, fe := range validateCreate(restricted[i]) {
			itemErrs = append(itemErrs, ItemError{
				Index:          i,
				TrackingNumber: restricted[i].TrackingNumber,
				Message:        fmt.Sprintf("%s: %s", fe.Field, fe.Message),
			})
		}
	}
	if len(itemErrs) > 0 {
		return nil, itemErrs, nil
	}

	orders := make([]*model.Order, len(restricted))
	for i, raw := range restricted {
		orders[i] = orderFromPayload(CleanForCreate(raw), creatorID)
	}
	if err := s.repo.CreateBatch(orders); err != nil {
		return nil, nil, err
	}

	collector := metrics.GetGlobalCollector()
	created := make([]model.Order, len(orders))
	for i, o := range orders {
		created[i] = *o
		collector.RecordOrderCreated(o.Status)
	}
	return created, nil, nil
}

// Update 更新单个订单
func (s *orderService) Update(role interface{}, id string, raw model.RawOrder) (*model.Order, error) {
	rec := policy.GetPermissions(policy.NormalizeRole(role))
	if !rec.CanEdit {
		return nil, ErrPermissionDenied
	}

	raw = restrictToFields(raw, rec.EditableFields)

	if fieldErrs := validateUpdate(raw); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	fields := CleanForUpdate(raw)
	if len(fields) > 0 {
		rows, err := s.repo.UpdateFields(id, fields)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, ErrOrderNotFound
		}
		metrics.GetGlobalCollector().RecordOrderUpdated()
	}

	order, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// BulkUpsert 按 id 或运单号批量更新，不存在则创建
// 所有项都会被尝试，失败项记入错误列表而不中断
func (s *orderService) BulkUpsert(role interface{}, creatorID string, raws []model.RawOrder) (*BulkUpsertResult, error) {
	rec := policy.GetPermissions(policy.NormalizeRole(role))
	if !rec.CanEdit {
		return nil, ErrPermissionDenied
	}

	result := &BulkUpsertResult{Errors: []ItemError{}}
	collector := metrics.GetGlobalCollector()

	for i, raw := range raws {
		if raw.ID == "" && raw.LegacyID == "" && raw.TrackingNumber == "" {
			result.Errors = append(result.Errors, ItemError{
				Index:   i,
				Message: "id or tracking_number is required",
			})
			continue
		}

		existing, err := s.findUpsertTarget(raw)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			result.Errors = append(result.Errors, ItemError{
				Index:          i,
				TrackingNumber: raw.TrackingNumber,
				Message:        err.Error(),
			})
			continue
		}

		if existing != nil {
			restricted := restrictToFields(raw, rec.EditableFields)
			if fieldErrs := validateUpdate(restricted); len(fieldErrs) > 0 {
				result.Errors = append(result.Errors, ItemError{
					Index:          i,
					TrackingNumber: raw.TrackingNumber,
					Message:        (&ValidationError{Fields: fieldErrs}).Error(),
				})
				continue
			}
			fields := CleanForUpdate(restricted)
			if len(fields) > 0 {
				if _, err := s.repo.UpdateFields(existing.ID, fields); err != nil {
					result.Errors = append(result.Errors, ItemError{
						Index:          i,
						TrackingNumber: raw.TrackingNumber,
						Message:        err.Error(),
					})
					continue
				}
				collector.RecordOrderUpdated()
			}
			result.Updated++
			continue
		}

		// 目标不存在，转为创建
		if !rec.CanCreate {
			result.Errors = append(result.Errors, ItemError{
				Index:          i,
				TrackingNumber: raw.TrackingNumber,
				Message:        "permission denied to create",
			})
			continue
		}
		restricted := restrictToFields(raw, rec.CreateFields)
		if fieldErrs := validateCreate(restricted); len(fieldErrs) > 0 {
			result.Errors = append(result.Errors, ItemError{
				Index:          i,
				TrackingNumber: raw.TrackingNumber,
				Message:        (&ValidationError{Fields: fieldErrs}).Error(),
			})
			continue
		}
		order := orderFromPayload(CleanForCreate(restricted), creatorID)
		if err := s.repo.Create(order); err != nil {
			result.Errors = append(result.Errors, ItemError{
				Index:          i,
				TrackingNumber: raw.TrackingNumber,
				Message:        err.Error(),
			})
			continue
		}
		collector.RecordOrderCreated(order.Status)
		result.Created++
	}

	return result, nil
}

// findUpsertTarget 查找批量更新的目标订单，找不到返回 nil
func (s *orderService) findUpsertTarget(raw model.RawOrder) (*model.Order, error) {
	id := raw.ID
	if id == "" {
		id = raw.LegacyID
	}
	if id != "" {
		order, err := s.repo.GetByID(id)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if raw.TrackingNumber != "" {
		order, err := s.repo.GetByTrackingNumber(raw.TrackingNumber)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Delete 软删除订单
func (s *orderService) Delete(role interface{}, id string) error {
	rec := policy.GetPermissions(policy.NormalizeRole(role))
	if !rec.CanDelete {
		return ErrPermissionDenied
	}

	order, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if err := s.repo.Delete(order); err != nil {
		return err
	}
	metrics.GetGlobalCollector().RecordOrderDeleted()
	return nil
}

// Permissions 获取角色权限记录
func (s *orderService) Permissions(role interface{}) policy.PermissionRecord {
	return policy.GetPermissions(policy.NormalizeRole(role))
}

// restrictToFields 把角色无权提交的字段清掉，角色永远写不到权限表之外的字段
func restrictToFields(r model.RawOrder, allowed []string) model.RawOrder {
	set := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		set[f] = true
	}

	if !set[policy.FieldTrackingNumber] {
		r.TrackingNumber = ""
	}
	if !set[policy.FieldClientName] {
		r.ClientName = ""
	}
	if !set[policy.FieldClientPhone] {
		r.ClientPhone = ""
	}
	if !set[policy.FieldAmount] {
		r.Amount = model.FlexNumber{}
	}
	if !set[policy.FieldCurrency] {
		r.Currency = nil
	}
	if !set[policy.FieldStatus] {
		r.Status = ""
	}
	if !set[policy.FieldIsPaid] {
		r.IsPaid = nil
	}
	if !set[policy.FieldRemark] {
		r.Remark = ""
	}
	return r
}

// validateCreate 创建意图的校验
func validateCreate(r model.RawOrder) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.TrackingNumber) == "" {
		errs = append(errs, FieldError{Field: "tracking_number", Message: "tracking number is required"})
	}
	if strings.TrimSpace(r.ClientName) == "" {
		errs = append(errs, FieldError{Field: "client_name", Message: "client name is required"})
	}
	if r.Status != "" && !model.IsValidStatus(r.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "invalid status value"})
	}
	errs = append(errs, validateOptional(r)...)
	return errs
}

// validateUpdate 更新意图的校验，必填字段允许缺席
func validateUpdate(r model.RawOrder) []FieldError {
	var errs []FieldError
	if r.Status != "" && !model.IsValidStatus(r.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "invalid status value"})
	}
	errs = append(errs, validateOptional(r)...)
	return errs
}

// validateOptional 可选字段的共同校验
func validateOptional(r model.RawOrder) []FieldError {
	var errs []FieldError
	if r.Amount.Value != nil && *r.Amount.Value < 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "amount must not be negative"})
	}
	if r.Currency != nil {
		if currency := strings.TrimSpace(*r.Currency); currency != "" && !model.IsValidCurrency(currency) {
			errs = append(errs, FieldError{Field: "currency", Message: "invalid currency value"})
		}
	}
	return errs
}

// orderFromPayload 从清洗后的字段集构造订单记录
func orderFromPayload(payload map[string]interface{}, creatorID string) *model.Order {
	order := &model.Order{CreatedByID: creatorID}
	if v, ok := payload["tracking_number"].(string); ok {
		order.TrackingNumber = v
	}
	if v, ok := payload["client_name"].(string); ok {
		order.ClientName = v
	}
	if v, ok := payload["status"].(string); ok {
		order.Status = v
	}
	if v, ok := payload["client_phone"].(string); ok {
		order.ClientPhone = v
	}
	if v, ok := payload["amount"].(float64); ok {
		amount := v
		order.Amount = &amount
	}
	if v, ok := payload["currency"].(string); ok {
		currency := v
		order.Currency = &currency
	}
	if v, ok := payload["is_paid"].(bool); ok {
		order.IsPaid = v
	}
	if v, ok := payload["remark"].(string); ok {
		order.Remark = v
	}
	return order
}
