package ledger

import (
	"errors"
	"fmt"

	"cashbook/models"

	"gorm.io/gorm"
)

// CreateCategory 创建用户自定义类别
func (s *Service) CreateCategory(userID uint, name, categoryType, icon, color string) (*models.Category, error) {
	if categoryType != models.CategoryTypeIncome && categoryType != models.CategoryTypeExpense {
		return nil, ErrInvalidCategoryType
	}
	if icon == "" {
		icon = "category"
	}
	if color == "" {
		color = "#007bff"
	}

	category := &models.Category{
		UserID: &userID,
		Name:   name,
		Type:   categoryType,
		Icon:   icon,
		Color:  color,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("创建类别失败: %w", err)
	}
	return category, nil
}

// ListCategories 获取用户自定义类别加全部系统类别，系统类别优先，再按名称排序
// categoryType 非空时按类型过滤
func (s *Service) ListCategories(userID uint, categoryType string) ([]models.Category, error) {
	query := s.db.Where("user_id = ? OR is_system = ?", userID, true)
	if categoryType != "" {
		query = query.Where("type = ?", categoryType)
	}

	var categories []models.Category
	if err := query.Order("is_system DESC, name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("查询类别列表失败: %w", err)
	}
	return categories, nil
}

// InitializeDefaultCategories 写入预置系统类别（3 个收入 + 6 个支出）
// 系统类别不归属任何用户，对所有用户可见；已存在时跳过，重复调用不会产生重复行
func (s *Service) InitializeDefaultCategories() error {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("is_system = ?", true).
		Count(&count).Error; err != nil {
		return fmt.Errorf("检查系统类别失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	var categories []models.Category
	for _, d := range models.GetDefaultCategories() {
		categories = append(categories, models.Category{
			Name:     d.Name,
			Type:     d.Type,
			Icon:     d.Icon,
			Color:    d.Color,
			IsSystem: true,
		})
	}
	if err := s.db.Create(&categories).Error; err != nil {
		return fmt.Errorf("初始化系统类别失败: %w", err)
	}
	return nil
}

// DeleteCategory 删除用户自定义类别，系统类别受保护
func (s *Service) DeleteCategory(userID, categoryID uint) error {
	var category models.Category
	err := s.db.First(&category, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("查询类别失败: %w", err)
	}

	if category.IsSystem {
		return ErrSystemCategoryProtected
	}
	if category.UserID == nil || *category.UserID != userID {
		return ErrCategoryNotFound
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return fmt.Errorf("删除类别失败: %w", err)
	}
	return nil
}
