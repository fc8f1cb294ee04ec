package ledger

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return New(gormDB), mock, func() {
		sqlDB.Close()
	}
}

func accountColumns() []string {
	return []string{
		"id", "user_id", "account_name", "account_type",
		"opening_balance", "current_balance", "currency",
		"is_active", "is_default", "created_at", "updated_at",
	}
}

func accountRow(id, userID uint, name string, balance string) *sqlmock.Rows {
	return sqlmock.NewRows(accountColumns()).
		AddRow(id, userID, name, "cash", "0.00", balance, "CNY", true, false, time.Now(), time.Now())
}

func transactionColumns() []string {
	return []string{
		"id", "user_id", "account_id", "transaction_type", "category",
		"amount", "balance_after", "description", "reference_number",
		"payment_method", "related_transaction_id", "bill_id",
		"transaction_date", "created_at", "updated_at",
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
