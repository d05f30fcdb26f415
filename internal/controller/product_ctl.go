package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/service"
)

// ProductController 产品目录接口
type ProductController struct {
	productSvc *service.ProductService
}

func NewProductController(productSvc *service.ProductService) *ProductController {
	return &ProductController{productSvc: productSvc}
}

// GetProducts 获取产品列表
// @Summary 获取产品列表
// @Description 返回全部产品（含停用），体积重量供装箱矩阵使用
// @Tags Product (产品)
// @Produce json
// @Success 200 {array} dto.ProductResp "产品列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/products [get]
func (c *ProductController) GetProducts(ctx *gin.Context) {
	resp, err := c.productSvc.ListProducts(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateProduct 创建产品
// @Summary 创建产品
// @Description SKU 唯一；创建后装箱矩阵缓存失效
// @Tags Product (产品)
// @Accept json
// @Produce json
// @Param request body dto.ProductReq true "产品参数"
// @Success 201 {object} dto.ProductResp "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "创建失败"
// @Router /api/products [post]
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var req dto.ProductReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.productSvc.CreateProduct(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// UpdateProduct 更新产品
// @Summary 更新产品
// @Description 更新后装箱矩阵缓存失效
// @Tags Product (产品)
// @Accept json
// @Produce json
// @Param id path int true "产品ID"
// @Param request body dto.ProductReq true "产品参数"
// @Success 200 {object} dto.ProductResp "更新结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "更新失败"
// @Router /api/products/{id} [put]
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的产品ID"})
		return
	}

	var req dto.ProductReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.productSvc.UpdateProduct(ctx.Request.Context(), id, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteProduct 删除产品
// @Summary 删除产品
// @Description 软删除，删除后装箱矩阵缓存失效
// @Tags Product (产品)
// @Produce json
// @Param id path int true "产品ID"
// @Success 200 {object} map[string]string "{"message": "产品已删除"}"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 500 {object} map[string]string "删除失败"
// @Router /api/products/{id} [delete]
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的产品ID"})
		return
	}

	if err := c.productSvc.DeleteProduct(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "产品已删除"})
}
