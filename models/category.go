package models

import "time"

// 类别类型
const (
	CategoryTypeIncome  = "income"  // 收入类别
	CategoryTypeExpense = "expense" // 支出类别
)

// Category 交易类别模型
// user_id 为空表示系统类别，对所有用户可见且不可删除
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Type      string    `json:"type" gorm:"size:10;not null"`
	Icon      string    `json:"icon" gorm:"size:50;default:category"`
	Color     string    `json:"color" gorm:"size:20;default:#007bff"`
	IsSystem  bool      `json:"is_system" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "cash_categories"
}

// DefaultCategory 预置系统类别定义
type DefaultCategory struct {
	Name  string
	Type  string
	Icon  string
	Color string
}

// GetDefaultCategories 获取预置系统类别（3 个收入 + 6 个支出）
func GetDefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		// 收入类别
		{Name: "销售收入", Type: CategoryTypeIncome, Icon: "shopping-cart", Color: "#28a745"},
		{Name: "服务收入", Type: CategoryTypeIncome, Icon: "briefcase", Color: "#17a2b8"},
		{Name: "其他收入", Type: CategoryTypeIncome, Icon: "plus-circle", Color: "#6c757d"},

		// 支出类别
		{Name: "房租", Type: CategoryTypeExpense, Icon: "home", Color: "#dc3545"},
		{Name: "水电", Type: CategoryTypeExpense, Icon: "zap", Color: "#fd7e14"},
		{Name: "工资", Type: CategoryTypeExpense, Icon: "users", Color: "#e83e8c"},
		{Name: "物料", Type: CategoryTypeExpense, Icon: "package", Color: "#6f42c1"},
		{Name: "运输", Type: CategoryTypeExpense, Icon: "truck", Color: "#20c997"},
		{Name: "其他支出", Type: CategoryTypeExpense, Icon: "minus-circle", Color: "#6c757d"},
	}
}
