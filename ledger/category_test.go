package ledger

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashbook/models"
)

func categoryColumns() []string {
	return []string{"id", "user_id", "name", "type", "icon", "color", "is_system", "created_at"}
}

func TestCreateCategory(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `cash_categories`").
		WillReturnResult(sqlmock.NewResult(20, 1))
	mock.ExpectCommit()

	category, err := svc.CreateCategory(1, "设备采购", models.CategoryTypeExpense, "", "")
	require.NoError(t, err)
	assert.Equal(t, uint(20), category.ID)
	require.NotNil(t, category.UserID)
	assert.Equal(t, uint(1), *category.UserID)
	assert.Equal(t, "category", category.Icon)
	assert.Equal(t, "#007bff", category.Color)
	assert.False(t, category.IsSystem)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategory_InvalidType(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.CreateCategory(1, "设备采购", "transfer", "", "")
	assert.ErrorIs(t, err, ErrInvalidCategoryType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	userID := uint(1)
	mock.ExpectQuery("SELECT .* FROM `cash_categories`").
		WithArgs(1, true).
		WillReturnRows(sqlmock.NewRows(categoryColumns()).
			AddRow(1, nil, "销售收入", "income", "shopping-cart", "#28a745", true, time.Now()).
			AddRow(20, userID, "设备采购", "expense", "category", "#007bff", false, time.Now()))

	categories, err := svc.ListCategories(1, "")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.True(t, categories[0].IsSystem)
	assert.Nil(t, categories[0].UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInitializeDefaultCategories(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `cash_categories`").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `cash_categories`").
		WillReturnResult(sqlmock.NewResult(1, 9))
	mock.ExpectCommit()

	err := svc.InitializeDefaultCategories()
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInitializeDefaultCategories_Idempotent(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	// 已有系统类别时直接跳过，不产生重复行
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `cash_categories`").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	err := svc.InitializeDefaultCategories()
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategory(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	userID := uint(1)
	mock.ExpectQuery("SELECT .* FROM `cash_categories`").
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows(categoryColumns()).
			AddRow(20, userID, "设备采购", "expense", "category", "#007bff", false, time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `cash_categories`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.DeleteCategory(1, 20)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategory_SystemProtected(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	// 系统类别不允许删除
	mock.ExpectQuery("SELECT .* FROM `cash_categories`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(categoryColumns()).
			AddRow(1, nil, "销售收入", "income", "shopping-cart", "#28a745", true, time.Now()))

	err := svc.DeleteCategory(1, 1)
	assert.ErrorIs(t, err, ErrSystemCategoryProtected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategory_NotOwner(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	// 别人的类别按不存在处理，不泄露归属信息
	otherUser := uint(99)
	mock.ExpectQuery("SELECT .* FROM `cash_categories`").
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows(categoryColumns()).
			AddRow(20, otherUser, "设备采购", "expense", "category", "#007bff", false, time.Now()))

	err := svc.DeleteCategory(1, 20)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
