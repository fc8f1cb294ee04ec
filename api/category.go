package api

import (
	"strconv"
	"strings"

	"cashbook/ledger"
	"cashbook/middleware"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 交易类别处理器
type CategoryHandler struct {
	svc *ledger.Service
}

// NewCategoryHandler 创建交易类别处理器
func NewCategoryHandler(svc *ledger.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// CreateCategoryRequest 创建类别请求
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50" example:"进货"`
	Type  string `json:"type" binding:"required" example:"expense"`
	Icon  string `json:"icon" binding:"omitempty,max=50" example:"package"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#6f42c1"`
}

// Create 创建类别
// @Summary 创建类别
// @Description 创建用户自定义交易类别，类型必须为 income 或 expense
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "名称不能为空")
		return
	}

	category, err := h.svc.CreateCategory(userID, req.Name, req.Type, req.Icon, req.Color)
	if err != nil {
		LedgerError(c, err)
		return
	}
	SuccessWithMessage(c, "创建成功", category)
}

// List 获取类别列表
// @Summary 获取类别列表
// @Description 获取用户自定义类别和全部系统类别，系统类别优先
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param type query string false "类型筛选 (income | expense)"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	categories, err := h.svc.ListCategories(userID, c.Query("type"))
	if err != nil {
		LedgerError(c, err)
		return
	}
	Success(c, categories)
}

// Initialize 初始化系统类别
// @Summary 初始化系统类别
// @Description 写入预置系统类别（3 个收入 + 6 个支出），已存在时不重复写入
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "初始化成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories/initialize [post]
func (h *CategoryHandler) Initialize(c *gin.Context) {
	if err := h.svc.InitializeDefaultCategories(); err != nil {
		LedgerError(c, err)
		return
	}
	SuccessWithMessage(c, "系统类别初始化完成", nil)
}

// Delete 删除类别
// @Summary 删除类别
// @Description 删除用户自定义类别，系统类别不可删除
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "系统类别不可删除"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := h.svc.DeleteCategory(userID, uint(id)); err != nil {
		LedgerError(c, err)
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
