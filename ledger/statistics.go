package ledger

import (
	"fmt"
	"time"

	"cashbook/models"

	"github.com/shopspring/decimal"
)

// Statistics 时间范围内的收支统计
type Statistics struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	NetFlow          decimal.Decimal `json:"net_flow"`
	TransactionCount int64           `json:"transaction_count"`
	TotalBalance     decimal.Decimal `json:"total_balance"`
	AccountsCount    int             `json:"accounts_count"`
}

// PeriodSummary 单个时间段的收支概览
type PeriodSummary struct {
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int64           `json:"transaction_count"`
}

// DashboardSummary 首页概览
type DashboardSummary struct {
	Accounts           []models.Account     `json:"accounts"`
	TotalBalance       decimal.Decimal      `json:"total_balance"`
	Today              PeriodSummary        `json:"today"`
	ThisMonth          PeriodSummary        `json:"this_month"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

type statisticsRow struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	TransactionCount int64
}

// sumIncomeExpense 汇总时间范围内 income / expense 两类交易的金额与笔数
// 范围为 [startDate, endDate)，accountID 为 0 时统计全部账户
func (s *Service) sumIncomeExpense(userID uint, startDate, endDate time.Time, accountID uint) (statisticsRow, error) {
	var row statisticsRow
	query := s.db.Model(&models.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense,
			COUNT(*) AS transaction_count`).
		Where("user_id = ? AND transaction_date >= ? AND transaction_date < ?", userID, startDate, endDate)
	if accountID != 0 {
		query = query.Where("account_id = ?", accountID)
	}
	if err := query.Scan(&row).Error; err != nil {
		return row, fmt.Errorf("统计收支失败: %w", err)
	}
	return row, nil
}

// GetStatistics 统计时间范围内的收支与账户余额总览
func (s *Service) GetStatistics(userID uint, startDate, endDate time.Time, accountID uint) (*Statistics, error) {
	row, err := s.sumIncomeExpense(userID, startDate, endDate, accountID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.ListAccounts(userID)
	if err != nil {
		return nil, err
	}
	totalBalance := decimal.Zero
	for _, account := range accounts {
		totalBalance = totalBalance.Add(account.CurrentBalance)
	}

	return &Statistics{
		TotalIncome:      row.TotalIncome,
		TotalExpense:     row.TotalExpense,
		NetFlow:          row.TotalIncome.Sub(row.TotalExpense),
		TransactionCount: row.TransactionCount,
		TotalBalance:     totalBalance,
		AccountsCount:    len(accounts),
	}, nil
}

// GetDashboard 首页概览：账户余额、今日与本月收支、最近交易
func (s *Service) GetDashboard(userID uint) (*DashboardSummary, error) {
	accounts, err := s.ListAccounts(userID)
	if err != nil {
		return nil, err
	}
	totalBalance := decimal.Zero
	for _, account := range accounts {
		totalBalance = totalBalance.Add(account.CurrentBalance)
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.Add(24 * time.Hour)
	todayRow, err := s.sumIncomeExpense(userID, dayStart, dayEnd, 0)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)
	monthRow, err := s.sumIncomeExpense(userID, monthStart, monthEnd, 0)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.ListTransactions(userID, TransactionFilter{Limit: 10})
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Accounts:     accounts,
		TotalBalance: totalBalance,
		Today: PeriodSummary{
			Income:           todayRow.TotalIncome,
			Expense:          todayRow.TotalExpense,
			Net:              todayRow.TotalIncome.Sub(todayRow.TotalExpense),
			TransactionCount: todayRow.TransactionCount,
		},
		ThisMonth: PeriodSummary{
			Income:           monthRow.TotalIncome,
			Expense:          monthRow.TotalExpense,
			Net:              monthRow.TotalIncome.Sub(monthRow.TotalExpense),
			TransactionCount: monthRow.TransactionCount,
		},
		RecentTransactions: recent,
	}, nil
}
