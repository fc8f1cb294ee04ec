package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 账户类型
const (
	AccountTypeCash          = "cash"           // 现金
	AccountTypeBank          = "bank"           // 银行
	AccountTypeDigitalWallet = "digital_wallet" // 电子钱包
)

// Account 资金账户模型
// current_balance 为冗余存储的实时余额，只允许在账本事务内更新，
// 任意时刻等于 opening_balance 加上该账户所有交易的有向金额之和
type Account struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"index;not null"`
	Name           string          `json:"name" gorm:"column:account_name;size:100;not null"`
	Type           string          `json:"type" gorm:"column:account_type;size:20;not null;default:cash"`
	OpeningBalance decimal.Decimal `json:"opening_balance" gorm:"type:decimal(15,2);not null;default:0"` // 开户金额，创建后不可修改
	CurrentBalance decimal.Decimal `json:"current_balance" gorm:"type:decimal(15,2);not null;default:0"`
	Currency       string          `json:"currency" gorm:"size:3;not null;default:CNY"`
	IsActive       bool            `json:"is_active" gorm:"not null;default:true"`
	IsDefault      bool            `json:"is_default" gorm:"not null;default:false"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName 设置表名
func (Account) TableName() string {
	return "cash_accounts"
}

// ValidAccountType 校验账户类型是否合法
func ValidAccountType(t string) bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeDigitalWallet:
		return true
	}
	return false
}
