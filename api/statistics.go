package api

import (
	"time"

	"cashbook/ledger"
	"cashbook/middleware"

	"github.com/gin-gonic/gin"
)

// StatisticsHandler 统计处理器
type StatisticsHandler struct {
	svc *ledger.Service
}

// NewStatisticsHandler 创建统计处理器
func NewStatisticsHandler(svc *ledger.Service) *StatisticsHandler {
	return &StatisticsHandler{svc: svc}
}

// StatisticsRequest 统计请求
type StatisticsRequest struct {
	StartDate string `form:"start_date" binding:"required" example:"2024-01-01"`
	EndDate   string `form:"end_date" binding:"required" example:"2024-12-31"`
	AccountID uint   `form:"account_id"`
}

// GetStatistics 获取收支统计
// @Summary 获取收支统计
// @Description 统计时间范围内（含首尾两天）的收入、支出、净流入与交易笔数，可限定单个账户
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Param account_id query int false "账户ID"
// @Success 200 {object} Response{data=ledger.Statistics} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req StatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "请提供开始日期和结束日期")
		return
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
		return
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
	if err != nil {
		BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
		return
	}
	// 包含结束日期当天，上界取次日零点（开区间）
	endDate = endDate.Add(24 * time.Hour)

	stats, err := h.svc.GetStatistics(userID, startDate, endDate, req.AccountID)
	if err != nil {
		LedgerError(c, err)
		return
	}
	Success(c, stats)
}

// GetDashboard 获取首页概览
// @Summary 获取首页概览
// @Description 返回账户列表、总余额、今日与本月收支以及最近 10 笔交易
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=ledger.DashboardSummary} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	summary, err := h.svc.GetDashboard(userID)
	if err != nil {
		LedgerError(c, err)
		return
	}
	Success(c, summary)
}
