package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
)

// ProductService 产品目录服务
// 产品体积/重量是装箱矩阵的输入，任何变更都要让矩阵枚举缓存失效
type ProductService struct {
	productRepo repository.ProductRepository
	boxFit      *BoxFitService
}

// NewProductService 创建产品目录服务
func NewProductService(productRepo repository.ProductRepository, boxFit *BoxFitService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		boxFit:      boxFit,
	}
}

// ListProducts 获取全部产品
func (s *ProductService) ListProducts(ctx context.Context) ([]dto.ProductResp, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResp, 0, len(products))
	for i := range products {
		resp = append(resp, convertProductToResp(&products[i]))
	}
	return resp, nil
}

// CreateProduct 创建产品
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.ProductReq) (*dto.ProductResp, error) {
	if existing, err := s.productRepo.GetBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, fmt.Errorf("SKU 已存在: %s", req.SKU)
	}

	product := &model.Product{
		SKU:        req.SKU,
		Name:       req.Name,
		Category:   req.Category,
		VolumeCuIn: req.VolumeCuIn,
		WeightLb:   req.WeightLb,
		Tags:       req.Tags,
		Active:     true,
	}
	if product.Category == "" {
		product.Category = model.CategoryOther
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("创建产品失败: %w", err)
	}

	s.invalidateMatrix()
	resp := convertProductToResp(product)
	return &resp, nil
}

// UpdateProduct 更新产品
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *dto.ProductReq) (*dto.ProductResp, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("产品不存在")
		}
		return nil, err
	}

	product.SKU = req.SKU
	product.Name = req.Name
	if req.Category != "" {
		product.Category = req.Category
	}
	product.VolumeCuIn = req.VolumeCuIn
	product.WeightLb = req.WeightLb
	product.Tags = req.Tags
	if req.Active != nil {
		product.Active = *req.Active
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("更新产品失败: %w", err)
	}

	s.invalidateMatrix()
	resp := convertProductToResp(product)
	return &resp, nil
}

// DeleteProduct 删除产品
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除产品失败: %w", err)
	}
	s.invalidateMatrix()
	return nil
}

func (s *ProductService) invalidateMatrix() {
	if s.boxFit != nil {
		s.boxFit.InvalidateMatrixCache()
	}
}

func convertProductToResp(product *model.Product) dto.ProductResp {
	return dto.ProductResp{
		ID:         product.ID,
		SKU:        product.SKU,
		Name:       product.Name,
		Category:   product.Category,
		VolumeCuIn: product.VolumeCuIn,
		WeightLb:   product.WeightLb,
		Tags:       product.Tags,
		Active:     product.Active,
	}
}
