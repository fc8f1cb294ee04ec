package api

import (
	"strconv"
	"time"

	"cashbook/ledger"
	"cashbook/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler 交易处理器
type TransactionHandler struct {
	svc *ledger.Service
}

// NewTransactionHandler 创建交易处理器
func NewTransactionHandler(svc *ledger.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// CreateTransactionRequest 记账请求
type CreateTransactionRequest struct {
	AccountID       uint            `json:"account_id" binding:"required" example:"1"`
	Type            string          `json:"type" binding:"required,oneof=income expense" example:"expense"`
	Category        string          `json:"category" binding:"required,min=1,max=50" example:"房租"`
	Amount          decimal.Decimal `json:"amount" example:"300.00"`
	Description     string          `json:"description" binding:"omitempty,max=255" example:"一月房租"`
	ReferenceNumber string          `json:"reference_number" binding:"omitempty,max=100"`
	PaymentMethod   string          `json:"payment_method" binding:"omitempty,max=50" example:"cash"`
	BillID          *uint           `json:"bill_id"`
	TransactionDate string          `json:"transaction_date" example:"2024-01-15 12:30:00"`
}

// CreateTransferRequest 转账请求
type CreateTransferRequest struct {
	FromAccountID uint            `json:"from_account_id" binding:"required" example:"1"`
	ToAccountID   uint            `json:"to_account_id" binding:"required" example:"2"`
	Amount        decimal.Decimal `json:"amount" example:"200.00"`
	Description   string          `json:"description" binding:"omitempty,max=255"`
}

// TransactionListRequest 交易列表请求
type TransactionListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"50"`
	AccountID uint   `form:"account_id"`
	Type      string `form:"type" binding:"omitempty,oneof=income expense transfer_in transfer_out opening_balance"`
	Category  string `form:"category"`
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
}

// Create 记一笔交易
// @Summary 记一笔交易
// @Description 创建收入或支出交易；交易写入和账户余额更新在同一事务内完成
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "参数错误或余额不足"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var transactionDate time.Time
	if req.TransactionDate != "" {
		t, err := time.ParseInLocation("2006-01-02 15:04:05", req.TransactionDate, time.Local)
		if err != nil {
			BadRequest(c, "时间格式错误，应为: 2006-01-02 15:04:05")
			return
		}
		transactionDate = t
	}

	txn, err := h.svc.CreateTransaction(userID, ledger.CreateTransactionInput{
		AccountID:       req.AccountID,
		Type:            req.Type,
		Category:        req.Category,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		PaymentMethod:   req.PaymentMethod,
		BillID:          req.BillID,
		TransactionDate: transactionDate,
	})
	if err != nil {
		LedgerError(c, err)
		return
	}
	SuccessWithMessage(c, "记账成功", txn)
}

// Transfer 账户间转账
// @Summary 账户间转账
// @Description 在两个账户间转账，转出、转入两条交易与两个账户余额同一事务内落库
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransferRequest true "转账信息"
// @Success 200 {object} Response "转账成功"
// @Failure 400 {object} Response "参数错误、同账户转账或余额不足"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "账户不存在"
// @Router /api/v1/transactions/transfer [post]
func (h *TransactionHandler) Transfer(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	outLeg, inLeg, err := h.svc.CreateTransfer(userID, req.FromAccountID, req.ToAccountID, req.Amount, req.Description)
	if err != nil {
		LedgerError(c, err)
		return
	}
	SuccessWithMessage(c, "转账成功", gin.H{
		"from_transaction": outLeg,
		"to_transaction":   inLeg,
	})
}

// List 获取交易列表
// @Summary 获取交易列表
// @Description 获取当前用户的交易列表，支持按账户、类型、类别和时间范围筛选
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(50)
// @Param account_id query int false "账户ID筛选"
// @Param type query string false "交易类型筛选"
// @Param category query string false "类别筛选"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 50
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	filter := ledger.TransactionFilter{
		AccountID: req.AccountID,
		Type:      req.Type,
		Category:  req.Category,
		Limit:     req.PageSize,
		Offset:    (req.Page - 1) * req.PageSize,
	}
	if req.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local); err == nil {
			filter.StartDate = t
		}
	}
	if req.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local); err == nil {
			// 包含结束日期当天，上界取次日零点（开区间）
			filter.EndDate = t.Add(24 * time.Hour)
		}
	}

	list, total, err := h.svc.ListTransactions(userID, filter)
	if err != nil {
		LedgerError(c, err)
		return
	}
	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     list,
	})
}

// Delete 删除交易
// @Summary 删除交易
// @Description 删除交易并把其对余额的影响冲回账户；期初余额交易不可删除
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "期初余额交易不可删除"
// @Failure 403 {object} Response "无权操作"
// @Failure 404 {object} Response "交易不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := h.svc.DeleteTransaction(userID, uint(id)); err != nil {
		LedgerError(c, err)
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
