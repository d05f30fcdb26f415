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

// PickCartService 拣货车服务
// 拣货车与格口整体读写，格口列表按请求顺序整体覆盖
type PickCartService struct {
	cartRepo repository.PickCartRepository
}

// NewPickCartService 创建拣货车服务
func NewPickCartService(cartRepo repository.PickCartRepository) *PickCartService {
	return &PickCartService{cartRepo: cartRepo}
}

// ListCarts 获取全部拣货车（含格口，按 sort_order 排序）
func (s *PickCartService) ListCarts(ctx context.Context) ([]dto.PickCartResp, error) {
	carts, err := s.cartRepo.GetAllWithCells(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PickCartResp, 0, len(carts))
	for i := range carts {
		resp = append(resp, convertPickCartToResp(&carts[i]))
	}
	return resp, nil
}

// CreateCart 创建拣货车
func (s *PickCartService) CreateCart(ctx context.Context, req *dto.PickCartReq) (*dto.PickCartResp, error) {
	cart := &model.PickCart{
		Name:     req.Name,
		Location: req.Location,
		Active:   true,
	}
	if req.Active != nil {
		cart.Active = *req.Active
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, fmt.Errorf("创建拣货车失败: %w", err)
	}

	if len(req.Cells) > 0 {
		cells := buildPickCells(req.Cells)
		if err := s.cartRepo.ReplaceCells(ctx, cart.ID, cells); err != nil {
			return nil, fmt.Errorf("写入格口失败: %w", err)
		}
	}

	saved, err := s.cartRepo.GetByIDWithCells(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	resp := convertPickCartToResp(saved)
	return &resp, nil
}

// UpdateCart 更新拣货车，请求带 cells 时整体覆盖格口列表
func (s *PickCartService) UpdateCart(ctx context.Context, id int64, req *dto.PickCartReq) (*dto.PickCartResp, error) {
	cart, err := s.cartRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("拣货车不存在")
		}
		return nil, err
	}

	cart.Name = req.Name
	cart.Location = req.Location
	if req.Active != nil {
		cart.Active = *req.Active
	}
	if err := s.cartRepo.Update(ctx, cart); err != nil {
		return nil, fmt.Errorf("更新拣货车失败: %w", err)
	}

	if req.Cells != nil {
		cells := buildPickCells(req.Cells)
		if err := s.cartRepo.ReplaceCells(ctx, cart.ID, cells); err != nil {
			return nil, fmt.Errorf("重写格口失败: %w", err)
		}
	}

	saved, err := s.cartRepo.GetByIDWithCells(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	resp := convertPickCartToResp(saved)
	return &resp, nil
}

// DeleteCart 删除拣货车（级联删除格口）
func (s *PickCartService) DeleteCart(ctx context.Context, id int64) error {
	if err := s.cartRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除拣货车失败: %w", err)
	}
	return nil
}

// ReorderCarts 按给定顺序整体重排
func (s *PickCartService) ReorderCarts(ctx context.Context, cartIDs []int64) error {
	if len(cartIDs) == 0 {
		return errors.New("cart_ids 不能为空")
	}
	if err := s.cartRepo.Reorder(ctx, cartIDs); err != nil {
		return fmt.Errorf("拣货车排序失败: %w", err)
	}
	return nil
}

func buildPickCells(reqs []dto.PickCellReq) []model.PickCell {
	cells := make([]model.PickCell, 0, len(reqs))
	for _, c := range reqs {
		cells = append(cells, model.PickCell{
			Label:    c.Label,
			Capacity: c.Capacity,
		})
	}
	return cells
}

func convertPickCartToResp(cart *model.PickCart) dto.PickCartResp {
	cells := make([]dto.PickCellResp, 0, len(cart.Cells))
	for _, cell := range cart.Cells {
		cells = append(cells, dto.PickCellResp{
			ID:        cell.ID,
			Label:     cell.Label,
			Capacity:  cell.Capacity,
			SortOrder: cell.SortOrder,
		})
	}
	return dto.PickCartResp{
		ID:        cart.ID,
		Name:      cart.Name,
		Location:  cart.Location,
		SortOrder: cart.SortOrder,
		Active:    cart.Active,
		Cells:     cells,
	}
}
