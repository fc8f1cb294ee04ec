package api

import (
	"errors"

	"cashbook/config"
	"cashbook/ledger"

	"github.com/gin-gonic/gin"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// LedgerError 把账本业务错误映射为对应的 HTTP 状态码
// 未知错误按存储故障处理，返回 500 且不暴露内部详情
func LedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrSameAccountTransfer),
		errors.Is(err, ledger.ErrImmutableTransaction),
		errors.Is(err, ledger.ErrSystemCategoryProtected),
		errors.Is(err, ledger.ErrInvalidCategoryType),
		errors.Is(err, ledger.ErrInvalidAccountType),
		errors.Is(err, ledger.ErrInvalidTransactionType):
		BadRequest(c, err.Error())
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrCategoryNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ledger.ErrForbidden):
		Forbidden(c, err.Error())
	default:
		InternalError(c, SafeErrorMessage(err, "服务器内部错误"))
	}
}
