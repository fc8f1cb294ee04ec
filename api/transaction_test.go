package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountRow(id, userID uint, name, balance string) *sqlmock.Rows {
	return sqlmock.NewRows(accountColumns()).
		AddRow(id, userID, name, "cash", "0.00", balance, "CNY", true, false, time.Now(), time.Now())
}

func TestTransactionHandler_Create(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `cash_accounts` .*FOR UPDATE").
		WithArgs(1, 1).
		WillReturnRows(newAccountRow(1, 1, "门店现金", "500.00"))
	mock.ExpectExec("INSERT INTO `cash_transactions`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("UPDATE `cash_accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions", NewTransactionHandler(svc).Create)

	body := `{"account_id":1,"type":"expense","category":"房租","amount":"300.00","description":"一月房租","transaction_date":"2026-01-15 12:30:00"}`
	req := httptest.NewRequest("POST", "/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "记账成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create_TransferTypeRejected(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 转账交易只能通过转账接口创建
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions", NewTransactionHandler(svc).Create)

	body := `{"account_id":1,"type":"transfer_out","category":"转账","amount":"100.00"}`
	req := httptest.NewRequest("POST", "/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create_InsufficientBalance(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `cash_accounts` .*FOR UPDATE").
		WithArgs(1, 1).
		WillReturnRows(newAccountRow(1, 1, "门店现金", "50.00"))
	mock.ExpectRollback()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions", NewTransactionHandler(svc).Create)

	body := `{"account_id":1,"type":"expense","category":"房租","amount":"300.00"}`
	req := httptest.NewRequest("POST", "/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "余额不足", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create_BadDate(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions", NewTransactionHandler(svc).Create)

	body := `{"account_id":1,"type":"income","category":"销售收入","amount":"100.00","transaction_date":"2026/01/15"}`
	req := httptest.NewRequest("POST", "/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Transfer(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `cash_accounts` .*FOR UPDATE").
		WithArgs(1, 1).
		WillReturnRows(newAccountRow(1, 1, "门店现金", "300.00"))
	mock.ExpectQuery("SELECT .* FROM `cash_accounts` .*FOR UPDATE").
		WithArgs(2, 1).
		WillReturnRows(newAccountRow(2, 1, "对公银行", "100.00"))
	mock.ExpectExec("INSERT INTO `cash_transactions`").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO `cash_transactions`").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("UPDATE `cash_transactions` SET `related_transaction_id`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `cash_accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `cash_accounts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions/transfer", NewTransactionHandler(svc).Transfer)

	body := `{"from_account_id":1,"to_account_id":2,"amount":"100.00"}`
	req := httptest.NewRequest("POST", "/transactions/transfer", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "转账成功", resp["message"])
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "from_transaction")
	assert.Contains(t, data, "to_transaction")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Transfer_SameAccount(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/transactions/transfer", NewTransactionHandler(svc).Transfer)

	body := `{"from_account_id":1,"to_account_id":1,"amount":"100.00"}`
	req := httptest.NewRequest("POST", "/transactions/transfer", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "不能向同一账户转账", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_List(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 结束日期当天要包含在内，SQL 上界为次日零点
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	endExclusive := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `cash_transactions`").
		WithArgs(1, start, endExclusive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .* FROM `cash_transactions`").
		WithArgs(1, start, endExclusive).
		WillReturnRows(sqlmock.NewRows(transactionColumns()).
			AddRow(10, 1, 1, "expense", "房租", "300.00", "200.00",
				"一月房租", "", "", nil, nil, time.Now(), time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/transactions", NewTransactionHandler(svc).List)

	req := httptest.NewRequest("GET", "/transactions?page=1&page_size=20&start_date=2026-01-01&end_date=2026-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total"])
	assert.Equal(t, float64(20), data["page_size"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Delete_OpeningBalance(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `cash_transactions`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(transactionColumns()).
			AddRow(1, 1, 1, "opening_balance", "期初余额", "500.00", "500.00",
				"开户初始余额", "", "", nil, nil, time.Now(), time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/transactions/:id", NewTransactionHandler(svc).Delete)

	req := httptest.NewRequest("DELETE", "/transactions/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "期初余额交易不可删除", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Delete_Forbidden(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `cash_transactions`").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(transactionColumns()).
			AddRow(10, 99, 1, "income", "销售收入", "100.00", "600.00",
				"", "", "", nil, nil, time.Now(), time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/transactions/:id", NewTransactionHandler(svc).Delete)

	req := httptest.NewRequest("DELETE", "/transactions/10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 403, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
