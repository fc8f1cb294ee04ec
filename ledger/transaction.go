package ledger

import (
	"errors"
	"fmt"
	"time"

	"cashbook/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateTransactionInput 记账参数
type CreateTransactionInput struct {
	AccountID       uint
	Type            string
	Category        string
	Amount          decimal.Decimal
	Description     string
	ReferenceNumber string
	PaymentMethod   string
	BillID          *uint
	TransactionDate time.Time
}

// TransactionFilter 交易查询条件
// 时间范围为 [StartDate, EndDate)，EndDate 为开区间上界，
// 避免毫秒精度的 transaction_date 落在 23:59:59 与次日零点之间被漏掉
type TransactionFilter struct {
	AccountID uint
	Type      string
	Category  string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
	Offset    int
}

// lockAccount 在事务内按 FOR UPDATE 语义锁定账户行并校验归属
// 余额的读取-计算-写回必须全程持有该锁，否则并发扣款会读到过期余额
func lockAccount(tx *gorm.DB, userID, accountID uint) (*models.Account, error) {
	var account models.Account
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", accountID, userID).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("锁定账户失败: %w", err)
	}
	return &account, nil
}

// CreateTransaction 记一笔交易
// 交易行的插入和账户余额的更新在同一事务内提交，任一步失败则整体回滚
func (s *Service) CreateTransaction(userID uint, in CreateTransactionInput) (*models.Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !models.ValidTransactionType(in.Type) {
		return nil, ErrInvalidTransactionType
	}
	if in.TransactionDate.IsZero() {
		in.TransactionDate = time.Now()
	}

	txn := &models.Transaction{
		UserID:          userID,
		AccountID:       in.AccountID,
		Type:            in.Type,
		Category:        in.Category,
		Amount:          in.Amount,
		Description:     in.Description,
		ReferenceNumber: in.ReferenceNumber,
		PaymentMethod:   in.PaymentMethod,
		BillID:          in.BillID,
		TransactionDate: in.TransactionDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := lockAccount(tx, userID, in.AccountID)
		if err != nil {
			return err
		}

		var newBalance decimal.Decimal
		if models.IsInflow(in.Type) {
			newBalance = account.CurrentBalance.Add(in.Amount)
		} else {
			// 余额不允许透支
			if in.Amount.GreaterThan(account.CurrentBalance) {
				return ErrInsufficientBalance
			}
			newBalance = account.CurrentBalance.Sub(in.Amount)
		}

		txn.BalanceAfter = newBalance
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("创建交易失败: %w", err)
		}

		if err := tx.Model(&models.Account{}).
			Where("id = ?", account.ID).
			Update("current_balance", newBalance).Error; err != nil {
			return fmt.Errorf("更新账户余额失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateTransfer 账户间转账
// 两条腿（转出、转入）与两个账户的余额更新要么全部提交，要么全部回滚
func (s *Service) CreateTransfer(userID, fromAccountID, toAccountID uint, amount decimal.Decimal, description string) (*models.Transaction, *models.Transaction, error) {
	if fromAccountID == toAccountID {
		return nil, nil, ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	var outLeg, inLeg *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 按 ID 升序加锁，两个方向的并发转账不会互相死锁
		firstID, secondID := fromAccountID, toAccountID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		locked := map[uint]*models.Account{}
		for _, id := range []uint{firstID, secondID} {
			account, err := lockAccount(tx, userID, id)
			if err != nil {
				return err
			}
			locked[id] = account
		}
		from, to := locked[fromAccountID], locked[toAccountID]

		if amount.GreaterThan(from.CurrentBalance) {
			return ErrInsufficientBalance
		}

		now := time.Now()
		outDesc := description
		if outDesc == "" {
			outDesc = "转出至 " + to.Name
		}
		inDesc := description
		if inDesc == "" {
			inDesc = "转入自 " + from.Name
		}

		outLeg = &models.Transaction{
			UserID:          userID,
			AccountID:       from.ID,
			Type:            models.TransactionTypeTransferOut,
			Category:        "转账",
			Amount:          amount,
			BalanceAfter:    from.CurrentBalance.Sub(amount),
			Description:     outDesc,
			TransactionDate: now,
		}
		if err := tx.Create(outLeg).Error; err != nil {
			return fmt.Errorf("创建转出交易失败: %w", err)
		}

		inLeg = &models.Transaction{
			UserID:               userID,
			AccountID:            to.ID,
			Type:                 models.TransactionTypeTransferIn,
			Category:             "转账",
			Amount:               amount,
			BalanceAfter:         to.CurrentBalance.Add(amount),
			Description:          inDesc,
			RelatedTransactionID: &outLeg.ID,
			TransactionDate:      now,
		}
		if err := tx.Create(inLeg).Error; err != nil {
			return fmt.Errorf("创建转入交易失败: %w", err)
		}

		// 回填转出腿的对端引用，形成互相引用
		if err := tx.Model(&models.Transaction{}).
			Where("id = ?", outLeg.ID).
			Update("related_transaction_id", inLeg.ID).Error; err != nil {
			return fmt.Errorf("回填转账引用失败: %w", err)
		}
		outLeg.RelatedTransactionID = &inLeg.ID

		if err := tx.Model(&models.Account{}).
			Where("id = ?", from.ID).
			Update("current_balance", outLeg.BalanceAfter).Error; err != nil {
			return fmt.Errorf("更新转出账户余额失败: %w", err)
		}
		if err := tx.Model(&models.Account{}).
			Where("id = ?", to.ID).
			Update("current_balance", inLeg.BalanceAfter).Error; err != nil {
			return fmt.Errorf("更新转入账户余额失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outLeg, inLeg, nil
}

// GetTransaction 获取单笔交易，校验归属
func (s *Service) GetTransaction(userID, transactionID uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.First(&txn, transactionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询交易失败: %w", err)
	}
	if txn.UserID != userID {
		return nil, ErrForbidden
	}
	return &txn, nil
}

// DeleteTransaction 删除交易并把其对余额的影响冲回账户
// 期初余额交易是账本的起点，不允许删除。
// 只冲正当前余额，不重算同账户后续交易的 balance_after 快照；
// 删除转账的一条腿不会级联删除另一条腿
func (s *Service) DeleteTransaction(userID, transactionID uint) error {
	txn, err := s.GetTransaction(userID, transactionID)
	if err != nil {
		return err
	}
	if txn.Type == models.TransactionTypeOpeningBalance {
		return ErrImmutableTransaction
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		account, err := lockAccount(tx, userID, txn.AccountID)
		if err != nil {
			return err
		}

		var newBalance decimal.Decimal
		if models.IsInflow(txn.Type) {
			newBalance = account.CurrentBalance.Sub(txn.Amount)
		} else {
			newBalance = account.CurrentBalance.Add(txn.Amount)
		}

		if err := tx.Model(&models.Account{}).
			Where("id = ?", account.ID).
			Update("current_balance", newBalance).Error; err != nil {
			return fmt.Errorf("冲正账户余额失败: %w", err)
		}

		// 事务前的读取可能已过期，并发删除同一笔交易时
		// 只有实际删到行的那次才允许提交冲正
		res := tx.Delete(&models.Transaction{}, txn.ID)
		if res.Error != nil {
			return fmt.Errorf("删除交易失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
		return nil
	})
}

// ListTransactions 按条件查询交易，按业务日期和创建时间倒序
func (s *Service) ListTransactions(userID uint, filter TransactionFilter) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if filter.AccountID != 0 {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if filter.Type != "" {
		query = query.Where("transaction_type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if !filter.StartDate.IsZero() {
		query = query.Where("transaction_date >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("transaction_date < ?", filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计交易数量失败: %w", err)
	}

	// Limit 为 -1 时不分页（导出场景）
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	var list []models.Transaction
	err := query.Order("transaction_date DESC, created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询交易列表失败: %w", err)
	}
	return list, total, nil
}
