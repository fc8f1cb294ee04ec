// Package ledger 实现记账核心：账户、交易、类别与统计。
// 所有影响余额的操作都在单个数据库事务内完成，
// 提交前对涉及的账户行加排他锁，保证并发扣款不会读到过期余额。
package ledger

import (
	"errors"

	"gorm.io/gorm"
)

// 业务错误，处理器通过 errors.Is 映射为 HTTP 状态码
var (
	ErrInvalidAmount           = errors.New("金额必须大于 0")
	ErrAccountNotFound         = errors.New("账户不存在")
	ErrInsufficientBalance     = errors.New("余额不足")
	ErrSameAccountTransfer     = errors.New("不能向同一账户转账")
	ErrTransactionNotFound     = errors.New("交易不存在")
	ErrForbidden               = errors.New("无权操作该记录")
	ErrImmutableTransaction    = errors.New("期初余额交易不可删除")
	ErrSystemCategoryProtected = errors.New("系统类别不可删除")
	ErrCategoryNotFound        = errors.New("类别不存在")
	ErrInvalidCategoryType     = errors.New("类别类型必须为 income 或 expense")
	ErrInvalidAccountType      = errors.New("无效的账户类型")
	ErrInvalidTransactionType  = errors.New("无效的交易类型")
)

// Service 记账服务，持有显式注入的数据库连接
type Service struct {
	db *gorm.DB
}

// New 创建记账服务
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}
