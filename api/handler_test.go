package api

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"cashbook/ledger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMockDB(t *testing.T) (*ledger.Service, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return ledger.New(gormDB), mock, func() {
		sqlDB.Close()
	}
}

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func accountColumns() []string {
	return []string{
		"id", "user_id", "account_name", "account_type",
		"opening_balance", "current_balance", "currency",
		"is_active", "is_default", "created_at", "updated_at",
	}
}

func transactionColumns() []string {
	return []string{
		"id", "user_id", "account_id", "transaction_type", "category",
		"amount", "balance_after", "description", "reference_number",
		"payment_method", "related_transaction_id", "bill_id",
		"transaction_date", "created_at", "updated_at",
	}
}
