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

// ==================== 测试数据 ====================

func boxfitTestProducts() []model.Product {
	return []model.Product{
		{BaseModel: model.BaseModel{ID: 1}, SKU: "TUM-20", Name: "20oz Tumbler", Category: model.CategoryTumbler, VolumeCuIn: 60},
		{BaseModel: model.BaseModel{ID: 2}, SKU: "BOT-32", Name: "32oz Bottle", Category: model.CategoryBottle, VolumeCuIn: 90},
		{BaseModel: model.BaseModel{ID: 3}, SKU: "STK-01", Name: "Logo Sticker Pack", Category: model.CategoryAccessory, VolumeCuIn: 1},
	}
}

// ==================== 组合枚举 ====================

func TestEnumerateCombinations_Caps(t *testing.T) {
	combos := EnumerateCombinations(boxfitTestProducts())
	if len(combos) == 0 {
		t.Fatal("枚举结果不应为空")
	}

	for _, combo := range combos {
		if combo.TotalUnits == 0 {
			t.Error("不应出现空组合")
		}
		if combo.TotalUnits > MaxCombinationUnits {
			t.Errorf("组合 %s 总件数超上限: %d", combo.Key, combo.TotalUnits)
		}
		for _, item := range combo.Items {
			if item.SKU == "STK-01" && item.Qty > 2 {
				t.Errorf("sticker 类产品单组合不应超过 2 件: %s", combo.Key)
			}
		}
	}

	// sticker 上限存在：应该有 qty=2 的 sticker 组合，但没有 qty=3 的
	hasTwoStickers := false
	for _, combo := range combos {
		for _, item := range combo.Items {
			if item.SKU == "STK-01" && item.Qty == 2 {
				hasTwoStickers = true
			}
		}
	}
	if !hasTwoStickers {
		t.Error("sticker 应允许到 2 件")
	}
}

func TestEnumerateCombinations_SortedByVolume(t *testing.T) {
	combos := EnumerateCombinations(boxfitTestProducts())
	for i := 1; i < len(combos); i++ {
		if combos[i].VolumeCuIn < combos[i-1].VolumeCuIn {
			t.Fatalf("枚举结果应按体积升序: 第 %d 行 %.1f < 前一行 %.1f",
				i, combos[i].VolumeCuIn, combos[i-1].VolumeCuIn)
		}
	}
}

func TestEnumerateCombinations_KeyAndCupCount(t *testing.T) {
	combos := EnumerateCombinations(boxfitTestProducts())

	for _, combo := range combos {
		if combo.Key == "BOT-32:1|TUM-20:2" {
			if combo.CupCount != 3 {
				t.Errorf("杯数统计错误: got %d, want 3", combo.CupCount)
			}
			if combo.VolumeCuIn != 210 {
				t.Errorf("体积累计错误: got %.1f, want 210", combo.VolumeCuIn)
			}
			return
		}
	}
	t.Fatal("未找到组合 BOT-32:1|TUM-20:2")
}

func TestEnumerateCombinations_StickerNotCup(t *testing.T) {
	combos := EnumerateCombinations(boxfitTestProducts())
	for _, combo := range combos {
		if combo.Key == "STK-01:2" {
			if combo.CupCount != 0 {
				t.Errorf("配件不应计入杯数: got %d", combo.CupCount)
			}
			return
		}
	}
	t.Fatal("未找到组合 STK-01:2")
}

// ==================== 装箱判定 ====================

func TestClassifyCombination_VolumeBoundary(t *testing.T) {
	box := model.BoxConfig{
		BaseModel:         model.BaseModel{ID: 1},
		VolumeCuIn:        100,
		PackingEfficiency: 0.8,
	}
	// 可用容积 = 80

	exact := Combination{Key: "a:1", VolumeCuIn: 80}
	if cell := ClassifyCombination(&exact, &box, nil); cell.Status != FitStatusFits {
		t.Errorf("体积恰等于可用容积应判 fits, got %s", cell.Status)
	}

	over := Combination{Key: "a:2", VolumeCuIn: 80.01}
	if cell := ClassifyCombination(&over, &box, nil); cell.Status != FitStatusTooBig {
		t.Errorf("超出可用容积应判 too_big, got %s", cell.Status)
	}
}

func TestClassifyCombination_SingleCupGate(t *testing.T) {
	box := model.BoxConfig{
		BaseModel:         model.BaseModel{ID: 2},
		VolumeCuIn:        1000,
		PackingEfficiency: 0.8,
		SingleCupOnly:     true,
	}

	twoCups := Combination{Key: "c:2", VolumeCuIn: 120, CupCount: 2}
	if cell := ClassifyCombination(&twoCups, &box, nil); cell.Status != FitStatusCupLimit {
		t.Errorf("双杯组合对单杯箱应判 cup_limit, got %s", cell.Status)
	}

	zeroCups := Combination{Key: "s:1", VolumeCuIn: 1, CupCount: 0}
	if cell := ClassifyCombination(&zeroCups, &box, nil); cell.Status != FitStatusCupLimit {
		t.Errorf("零杯组合对单杯箱也应判 cup_limit, got %s", cell.Status)
	}

	oneCup := Combination{Key: "c:1", VolumeCuIn: 60, CupCount: 1}
	if cell := ClassifyCombination(&oneCup, &box, nil); cell.Status != FitStatusFits {
		t.Errorf("单杯组合应正常判定, got %s", cell.Status)
	}
}

func TestClassifyCombination_FeedbackOverride(t *testing.T) {
	box := model.BoxConfig{
		BaseModel:         model.BaseModel{ID: 3},
		VolumeCuIn:        100,
		PackingEfficiency: 0.8,
	}
	feedback := map[string]string{
		"3|a:1": model.BoxFitFeedbackRejected,
	}

	// 体积判定本是 fits，人工反馈覆盖为 rejected
	combo := Combination{Key: "a:1", VolumeCuIn: 10}
	if cell := ClassifyCombination(&combo, &box, feedback); cell.Status != FitStatusRejected {
		t.Errorf("人工反馈应覆盖体积判定, got %s", cell.Status)
	}

	// 无反馈的组合不受影响
	other := Combination{Key: "a:2", VolumeCuIn: 10}
	if cell := ClassifyCombination(&other, &box, feedback); cell.Status != FitStatusFits {
		t.Errorf("无反馈组合应走体积判定, got %s", cell.Status)
	}
}

func TestUsableVolume_DefaultEfficiency(t *testing.T) {
	// 未配置效率时按 0.8 兜底
	box := model.BoxConfig{VolumeCuIn: 100}
	if got := UsableVolume(&box); got != 80 {
		t.Errorf("缺省效率应为 0.8: got %.1f", got)
	}

	// 非法效率同样兜底
	box.PackingEfficiency = 1.5
	if got := UsableVolume(&box); got != 80 {
		t.Errorf("非法效率应按缺省值计算: got %.1f", got)
	}
}

// ==================== 箱型服务（sqlite） ====================

func setupBoxFitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.BoxConfig{}, &model.BoxFitFeedback{})
	return db
}

func newBoxFitTestService(db *gorm.DB) *BoxFitService {
	return NewBoxFitService(
		repository.NewBoxConfigRepository(db),
		repository.NewBoxFitFeedbackRepository(db),
		nil, // 这里的用例不触发产品枚举
	)
}

func TestBoxFitService_SaveBox(t *testing.T) {
	db := setupBoxFitTestDB(t)
	svc := newBoxFitTestService(db)
	ctx := context.Background()

	resp, err := svc.SaveBox(ctx, &dto.BoxConfigReq{
		Name:     "Small Cube",
		LengthIn: 6, WidthIn: 6, HeightIn: 6,
	})
	if err != nil {
		t.Fatalf("创建箱型失败: %v", err)
	}
	if resp.VolumeCuIn != 216 {
		t.Errorf("容积应由尺寸计算: got %.1f, want 216", resp.VolumeCuIn)
	}
	if resp.PackingEfficiency != 0.8 {
		t.Errorf("缺省装填效率应为 0.8: got %.2f", resp.PackingEfficiency)
	}
	if resp.UsableVolumeCuIn != 216*0.8 {
		t.Errorf("可用容积错误: got %.1f", resp.UsableVolumeCuIn)
	}

	// 更新尺寸后容积重算
	updated, err := svc.SaveBox(ctx, &dto.BoxConfigReq{
		ID:   resp.ID,
		Name: "Small Cube", LengthIn: 10, WidthIn: 6, HeightIn: 6,
		PackingEfficiency: 0.9,
	})
	if err != nil {
		t.Fatalf("更新箱型失败: %v", err)
	}
	if updated.VolumeCuIn != 360 || updated.PackingEfficiency != 0.9 {
		t.Errorf("更新结果错误: %+v", updated)
	}
}

func TestBoxFitService_SaveFeedback(t *testing.T) {
	db := setupBoxFitTestDB(t)
	svc := newBoxFitTestService(db)
	ctx := context.Background()

	if err := svc.SaveFeedback(ctx, &dto.BoxFitFeedbackReq{
		BoxID: 1, CombinationKey: "TUM-20:2", Status: "confirmed",
	}); err != nil {
		t.Fatalf("保存反馈失败: %v", err)
	}

	// 非法状态被拒绝
	if err := svc.SaveFeedback(ctx, &dto.BoxFitFeedbackReq{
		BoxID: 1, CombinationKey: "TUM-20:2", Status: "maybe",
	}); err == nil {
		t.Error("非法反馈状态应报错")
	}

	// 同键覆盖，只留最新一条
	if err := svc.SaveFeedback(ctx, &dto.BoxFitFeedbackReq{
		BoxID: 1, CombinationKey: "TUM-20:2", Status: "rejected",
	}); err != nil {
		t.Fatalf("覆盖反馈失败: %v", err)
	}

	var feedbacks []model.BoxFitFeedback
	db.Find(&feedbacks)
	if len(feedbacks) != 1 {
		t.Fatalf("同键反馈应只留一条, got %d", len(feedbacks))
	}
	if feedbacks[0].Status != "rejected" {
		t.Errorf("应保留最新状态: got %s", feedbacks[0].Status)
	}
}

func TestBoxFitService_ReorderBoxes(t *testing.T) {
	db := setupBoxFitTestDB(t)
	svc := newBoxFitTestService(db)
	ctx := context.Background()

	a, _ := svc.SaveBox(ctx, &dto.BoxConfigReq{Name: "A", LengthIn: 1, WidthIn: 1, HeightIn: 1})
	b, _ := svc.SaveBox(ctx, &dto.BoxConfigReq{Name: "B", LengthIn: 2, WidthIn: 2, HeightIn: 2})

	if err := svc.ReorderBoxes(ctx, []int64{b.ID, a.ID}); err != nil {
		t.Fatalf("排序失败: %v", err)
	}

	boxes, err := svc.ListBoxes(ctx)
	if err != nil {
		t.Fatalf("查询箱型失败: %v", err)
	}
	if boxes[0].Name != "B" || boxes[1].Name != "A" {
		t.Errorf("排序未生效: %s, %s", boxes[0].Name, boxes[1].Name)
	}
}
