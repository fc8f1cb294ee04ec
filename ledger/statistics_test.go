package ledger

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsRows(income, expense string, count int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"total_income", "total_expense", "transaction_count"}).
		AddRow(income, expense, count)
}

func TestGetStatistics(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `cash_transactions`").
		WithArgs(1, start, end).
		WillReturnRows(statsRows("300.00", "120.00", 5))
	mock.ExpectQuery("SELECT .* FROM `cash_accounts`").
		WithArgs(1, true).
		WillReturnRows(sqlmock.NewRows(accountColumns()).
			AddRow(1, 1, "门店现金", "cash", "0.00", "100.00", "CNY", true, true, time.Now(), time.Now()).
			AddRow(2, 1, "对公银行", "bank", "0.00", "200.00", "CNY", true, false, time.Now(), time.Now()))

	stats, err := svc.GetStatistics(1, start, end, 0)
	require.NoError(t, err)
	assert.True(t, stats.TotalIncome.Equal(mustDecimal(t, "300.00")))
	assert.True(t, stats.TotalExpense.Equal(mustDecimal(t, "120.00")))
	assert.True(t, stats.NetFlow.Equal(mustDecimal(t, "180.00")))
	assert.Equal(t, int64(5), stats.TransactionCount)
	assert.True(t, stats.TotalBalance.Equal(mustDecimal(t, "300.00")))
	assert.Equal(t, 2, stats.AccountsCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatistics_FilterByAccount(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `cash_transactions`").
		WithArgs(1, start, end, 2).
		WillReturnRows(statsRows("50.00", "0.00", 1))
	mock.ExpectQuery("SELECT .* FROM `cash_accounts`").
		WithArgs(1, true).
		WillReturnRows(accountRow(2, 1, "对公银行", "200.00"))

	stats, err := svc.GetStatistics(1, start, end, 2)
	require.NoError(t, err)
	assert.True(t, stats.TotalIncome.Equal(mustDecimal(t, "50.00")))
	assert.Equal(t, 1, stats.AccountsCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDashboard(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `cash_accounts`").
		WithArgs(1, true).
		WillReturnRows(sqlmock.NewRows(accountColumns()).
			AddRow(1, 1, "门店现金", "cash", "0.00", "150.00", "CNY", true, true, time.Now(), time.Now()).
			AddRow(2, 1, "对公银行", "bank", "0.00", "850.00", "CNY", true, false, time.Now(), time.Now()))

	// 今日汇总
	mock.ExpectQuery("SELECT .* FROM `cash_transactions`").
		WillReturnRows(statsRows("30.00", "10.00", 2))
	// 本月汇总
	mock.ExpectQuery("SELECT .* FROM `cash_transactions`").
		WillReturnRows(statsRows("500.00", "200.00", 12))
	// 最近交易
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `cash_transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT .* FROM `cash_transactions`").
		WillReturnRows(sqlmock.NewRows(transactionColumns()).
			AddRow(12, 1, 1, "income", "销售收入", "30.00", "150.00",
				"", "", "", nil, nil, time.Now(), time.Now(), time.Now()))

	dashboard, err := svc.GetDashboard(1)
	require.NoError(t, err)
	assert.True(t, dashboard.TotalBalance.Equal(mustDecimal(t, "1000.00")))
	assert.True(t, dashboard.Today.Net.Equal(mustDecimal(t, "20.00")))
	assert.True(t, dashboard.ThisMonth.Net.Equal(mustDecimal(t, "300.00")))
	assert.Equal(t, int64(12), dashboard.ThisMonth.TransactionCount)
	require.Len(t, dashboard.RecentTransactions, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
