package api

import (
	"strconv"

	"cashbook/ledger"
	"cashbook/middleware"
	"cashbook/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler 资金账户处理器
type AccountHandler struct {
	svc *ledger.Service
}

// NewAccountHandler 创建资金账户处理器
func NewAccountHandler(svc *ledger.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// CreateAccountRequest 创建账户请求
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=100" example:"门店现金"`
	Type           string          `json:"type" binding:"omitempty,oneof=cash bank digital_wallet" example:"cash"`
	OpeningBalance decimal.Decimal `json:"opening_balance" example:"1000.00"`
	Currency       string          `json:"currency" binding:"omitempty,len=3" example:"CNY"`
	IsDefault      bool            `json:"is_default" example:"true"`
}

// UpdateAccountRequest 更新账户请求
type UpdateAccountRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	Type      *string `json:"type" binding:"omitempty,oneof=cash bank digital_wallet"`
	Currency  *string `json:"currency" binding:"omitempty,len=3"`
	IsActive  *bool   `json:"is_active"`
	IsDefault *bool   `json:"is_default"`
}

// Create 创建账户
// @Summary 创建账户
// @Description 创建资金账户，开户金额大于 0 时自动记一笔期初余额交易
// @Tags 账户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "账户信息"
// @Success 200 {object} Response{data=models.Account} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	account, err := h.svc.CreateAccount(userID, ledger.CreateAccountInput{
		Name:           req.Name,
		Type:           req.Type,
		OpeningBalance: req.OpeningBalance,
		Currency:       req.Currency,
		IsDefault:      req.IsDefault,
	})
	if err != nil {
		LedgerError(c, err)
		return
	}
	SuccessWithMessage(c, "创建成功", account)
}

// List 获取账户列表
// @Summary 获取账户列表
// @Description 获取当前用户的活跃账户，默认账户优先
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Account} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	accounts, err := h.svc.ListAccounts(userID)
	if err != nil {
		LedgerError(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	Success(c, accounts)
}

// GetDefault 获取默认账户
// @Summary 获取默认账户
// @Description 获取当前用户的默认账户
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.Account} "获取成功"
// @Failure 404 {object} Response "未设置默认账户"
// @Router /api/v1/accounts/default [get]
func (h *AccountHandler) GetDefault(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	account, err := h.svc.GetDefaultAccount(userID)
	if err != nil {
		NotFound(c, "未设置默认账户")
		return
	}
	Success(c, account)
}

// Update 更新账户
// @Summary 更新账户
// @Description 部分更新账户信息，开户金额不可修改
// @Tags 账户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Param request body UpdateAccountRequest true "更新的账户信息"
// @Success 200 {object} Response{data=models.Account} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	account, err := h.svc.UpdateAccount(userID, uint(id), ledger.UpdateAccountInput{
		Name:      req.Name,
		Type:      req.Type,
		Currency:  req.Currency,
		IsActive:  req.IsActive,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		LedgerError(c, err)
		return
	}
	SuccessWithMessage(c, "更新成功", account)
}

// Delete 停用账户
// @Summary 停用账户
// @Description 停用账户（逻辑删除），历史交易和余额不受影响
// @Tags 账户
// @Produce json
// @Security BearerAuth
// @Param id path int true "账户ID"
// @Success 200 {object} Response "停用成功"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := h.svc.DeactivateAccount(userID, uint(id)); err != nil {
		LedgerError(c, err)
		return
	}
	SuccessWithMessage(c, "账户已停用", nil)
}
