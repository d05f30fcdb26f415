package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
)

// ==================== 测试辅助 ====================

func setupPickTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.PickCart{}, &model.PickCell{})
	return db
}

// ==================== 单元测试 ====================

func TestPickCartService_CreateWithCells(t *testing.T) {
	db := setupPickTestDB(t)
	svc := NewPickCartService(repository.NewPickCartRepository(db))
	ctx := context.Background()

	cart, err := svc.CreateCart(ctx, &dto.PickCartReq{
		Name:     "A 车",
		Location: "一号仓",
		Cells: []dto.PickCellReq{
			{Label: "A1", Capacity: 4},
			{Label: "A2", Capacity: 4},
			{Label: "A3", Capacity: 2},
		},
	})
	if err != nil {
		t.Fatalf("创建拣货车失败: %v", err)
	}
	if !cart.Active {
		t.Error("拣货车默认应启用")
	}
	if len(cart.Cells) != 3 {
		t.Fatalf("格口数量错误: got %d", len(cart.Cells))
	}
	// 格口按请求顺序写入 sort_order
	for i, cell := range cart.Cells {
		if cell.SortOrder != i {
			t.Errorf("格口 %s 排序错误: got %d, want %d", cell.Label, cell.SortOrder, i)
		}
	}
}

func TestPickCartService_UpdateReplacesCells(t *testing.T) {
	db := setupPickTestDB(t)
	svc := NewPickCartService(repository.NewPickCartRepository(db))
	ctx := context.Background()

	cart, err := svc.CreateCart(ctx, &dto.PickCartReq{
		Name:  "B 车",
		Cells: []dto.PickCellReq{{Label: "B1"}, {Label: "B2"}},
	})
	if err != nil {
		t.Fatalf("创建拣货车失败: %v", err)
	}

	// 带 cells 的更新整体覆盖
	updated, err := svc.UpdateCart(ctx, cart.ID, &dto.PickCartReq{
		Name:  "B 车（改）",
		Cells: []dto.PickCellReq{{Label: "B9", Capacity: 6}},
	})
	if err != nil {
		t.Fatalf("更新拣货车失败: %v", err)
	}
	if updated.Name != "B 车（改）" {
		t.Errorf("名称未更新: %s", updated.Name)
	}
	if len(updated.Cells) != 1 || updated.Cells[0].Label != "B9" {
		t.Errorf("格口应整体覆盖: %+v", updated.Cells)
	}

	// 旧格口不残留
	var count int64
	db.Model(&model.PickCell{}).Count(&count)
	if count != 1 {
		t.Errorf("数据库应只剩 1 个格口, got %d", count)
	}
}

func TestPickCartService_ReorderAndDelete(t *testing.T) {
	db := setupPickTestDB(t)
	svc := NewPickCartService(repository.NewPickCartRepository(db))
	ctx := context.Background()

	a, _ := svc.CreateCart(ctx, &dto.PickCartReq{Name: "A"})
	b, _ := svc.CreateCart(ctx, &dto.PickCartReq{Name: "B", Cells: []dto.PickCellReq{{Label: "B1"}}})

	if err := svc.ReorderCarts(ctx, []int64{b.ID, a.ID}); err != nil {
		t.Fatalf("排序失败: %v", err)
	}
	carts, err := svc.ListCarts(ctx)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if carts[0].Name != "B" || carts[1].Name != "A" {
		t.Errorf("排序未生效: %s, %s", carts[0].Name, carts[1].Name)
	}

	// 空列表被拒绝
	if err := svc.ReorderCarts(ctx, nil); err == nil {
		t.Error("空 cart_ids 应报错")
	}

	// 删除级联清格口
	if err := svc.DeleteCart(ctx, b.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	var cellCount int64
	db.Model(&model.PickCell{}).Count(&cellCount)
	if cellCount != 0 {
		t.Errorf("删除拣货车后格口应清空, got %d", cellCount)
	}
}
