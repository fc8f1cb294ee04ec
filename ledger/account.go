package ledger

import (
	"errors"
	"fmt"

	"cashbook/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateAccountInput 创建账户参数
type CreateAccountInput struct {
	Name           string
	Type           string
	OpeningBalance decimal.Decimal
	Currency       string
	IsDefault      bool
}

// UpdateAccountInput 更新账户参数，nil 字段不更新
// 开户金额创建后不可修改，因此不在可更新字段内
type UpdateAccountInput struct {
	Name      *string
	Type      *string
	Currency  *string
	IsActive  *bool
	IsDefault *bool
}

// CreateAccount 创建账户
// 默认账户标记的清除、账户插入和期初余额交易在同一事务内完成，
// 避免出现没有默认账户或多个默认账户的中间状态
func (s *Service) CreateAccount(userID uint, in CreateAccountInput) (*models.Account, error) {
	if in.OpeningBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if in.Type == "" {
		in.Type = models.AccountTypeCash
	}
	if !models.ValidAccountType(in.Type) {
		return nil, ErrInvalidAccountType
	}
	if in.Currency == "" {
		in.Currency = "CNY"
	}

	account := &models.Account{
		UserID:         userID,
		Name:           in.Name,
		Type:           in.Type,
		OpeningBalance: in.OpeningBalance,
		CurrentBalance: in.OpeningBalance,
		Currency:       in.Currency,
		IsActive:       true,
		IsDefault:      in.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 同一用户最多一个默认账户
		if in.IsDefault {
			if err := tx.Model(&models.Account{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("清除默认账户标记失败: %w", err)
			}
		}

		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("创建账户失败: %w", err)
		}

		// 开户金额大于 0 时记一笔期初余额交易
		if in.OpeningBalance.IsPositive() {
			opening := &models.Transaction{
				UserID:          userID,
				AccountID:       account.ID,
				Type:            models.TransactionTypeOpeningBalance,
				Category:        "期初余额",
				Amount:          in.OpeningBalance,
				BalanceAfter:    in.OpeningBalance,
				Description:     "开户初始余额",
				TransactionDate: account.CreatedAt,
			}
			if err := tx.Create(opening).Error; err != nil {
				return fmt.Errorf("创建期初余额交易失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount 获取指定账户，校验归属
func (s *Service) GetAccount(userID, accountID uint) (*models.Account, error) {
	var account models.Account
	err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询账户失败: %w", err)
	}
	return &account, nil
}

// ListAccounts 获取用户的活跃账户，默认账户优先，其后按创建时间倒序
func (s *Service) ListAccounts(userID uint) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("is_default DESC, created_at DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("查询账户列表失败: %w", err)
	}
	return accounts, nil
}

// GetDefaultAccount 获取用户的默认账户
func (s *Service) GetDefaultAccount(userID uint) (*models.Account, error) {
	var account models.Account
	err := s.db.Where("user_id = ? AND is_default = ? AND is_active = ?", userID, true, true).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询默认账户失败: %w", err)
	}
	return &account, nil
}

// UpdateAccount 部分更新账户信息
// 设置为默认账户时先清除该用户其他账户的默认标记
func (s *Service) UpdateAccount(userID, accountID uint, in UpdateAccountInput) (*models.Account, error) {
	account, err := s.GetAccount(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["account_name"] = *in.Name
	}
	if in.Type != nil {
		if !models.ValidAccountType(*in.Type) {
			return nil, ErrInvalidAccountType
		}
		updates["account_type"] = *in.Type
	}
	if in.Currency != nil {
		updates["currency"] = *in.Currency
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.IsDefault != nil {
		updates["is_default"] = *in.IsDefault
	}
	if len(updates) == 0 {
		return account, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.IsDefault != nil && *in.IsDefault {
			if err := tx.Model(&models.Account{}).
				Where("user_id = ? AND id != ?", userID, accountID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("清除默认账户标记失败: %w", err)
			}
		}
		if err := tx.Model(account).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新账户失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetAccount(userID, accountID)
}

// DeactivateAccount 停用账户，不改余额也不动历史交易
func (s *Service) DeactivateAccount(userID, accountID uint) error {
	account, err := s.GetAccount(userID, accountID)
	if err != nil {
		return err
	}
	if err := s.db.Model(account).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("停用账户失败: %w", err)
	}
	return nil
}
