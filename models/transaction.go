package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 交易类型
const (
	TransactionTypeIncome         = "income"          // 收入
	TransactionTypeExpense        = "expense"         // 支出
	TransactionTypeTransferIn     = "transfer_in"     // 转入
	TransactionTypeTransferOut    = "transfer_out"    // 转出
	TransactionTypeOpeningBalance = "opening_balance" // 期初余额
)

// Transaction 账本交易模型
// balance_after 记录该笔交易入账后账户余额的快照，写入后不再变更
type Transaction struct {
	ID                   uint            `json:"id" gorm:"primaryKey"`
	UserID               uint            `json:"user_id" gorm:"index;not null"`
	AccountID            uint            `json:"account_id" gorm:"index;not null"`
	Type                 string          `json:"type" gorm:"column:transaction_type;size:20;not null"`
	Category             string          `json:"category" gorm:"size:50;not null"`
	Amount               decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	BalanceAfter         decimal.Decimal `json:"balance_after" gorm:"type:decimal(15,2);not null"`
	Description          string          `json:"description" gorm:"size:255"`
	ReferenceNumber      string          `json:"reference_number" gorm:"size:100"`
	PaymentMethod        string          `json:"payment_method" gorm:"size:50"`
	RelatedTransactionID *uint           `json:"related_transaction_id" gorm:"index"` // 转账对端交易，两条腿互相引用
	BillID               *uint           `json:"bill_id" gorm:"index"`                // 关联账单，仅作记录
	TransactionDate      time.Time       `json:"transaction_date" gorm:"index;not null"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "cash_transactions"
}

// IsInflow 该交易类型是否增加账户余额
func IsInflow(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeTransferIn, TransactionTypeOpeningBalance:
		return true
	}
	return false
}

// ValidTransactionType 校验交易类型是否合法
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense,
		TransactionTypeTransferIn, TransactionTypeTransferOut,
		TransactionTypeOpeningBalance:
		return true
	}
	return false
}
