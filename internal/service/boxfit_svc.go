package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
	"shipops_dev_v1/pkg/utils"
)

// 装箱矩阵：枚举产品数量组合，逐一对每个箱型判定是否装得下

const (
	// MaxCombinationUnits 单组合最大总件数
	MaxCombinationUnits = 10

	// stickerUnitCap 名称含 sticker 的产品单组合上限（业务硬规则，不开放配置）
	stickerUnitCap = 2

	// defaultPackingEfficiency 箱型未配置装填效率时的缺省值
	defaultPackingEfficiency = 0.8
)

// 判定状态
const (
	FitStatusFits      = "fits"
	FitStatusTooBig    = "too_big"
	FitStatusCupLimit  = "cup_limit"
	FitStatusConfirmed = "confirmed"
	FitStatusRejected  = "rejected"
)

// ==================== 组合枚举（纯函数） ====================

// Combination 一个产品数量组合
type Combination struct {
	Key        string
	Items      []dto.ComboItem
	TotalUnits int
	VolumeCuIn float64
	CupCount   int
}

// productUnitCap 单个产品在一个组合里的件数上限
func productUnitCap(p *model.Product, remaining int) int {
	limit := remaining
	if strings.Contains(strings.ToLower(p.Name), "sticker") && limit > stickerUnitCap {
		limit = stickerUnitCap
	}
	return limit
}

// EnumerateCombinations 枚举全部非空组合（总件数 ≤ MaxCombinationUnits）
// 输出按总体积升序；产品数量和上限都有界，指数爆炸在当前目录规模下可控
func EnumerateCombinations(products []model.Product) []Combination {
	// 按 SKU 排序保证组合键和输出顺序稳定
	sorted := make([]model.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SKU < sorted[j].SKU })

	var combos []Combination
	current := make([]int, len(sorted))

	var walk func(idx, remaining int)
	walk = func(idx, remaining int) {
		if idx == len(sorted) {
			if combo, ok := buildCombination(sorted, current); ok {
				combos = append(combos, combo)
			}
			return
		}
		limit := productUnitCap(&sorted[idx], remaining)
		for qty := 0; qty <= limit; qty++ {
			current[idx] = qty
			walk(idx+1, remaining-qty)
		}
		current[idx] = 0
	}
	walk(0, MaxCombinationUnits)

	sort.SliceStable(combos, func(i, j int) bool {
		if combos[i].VolumeCuIn != combos[j].VolumeCuIn {
			return combos[i].VolumeCuIn < combos[j].VolumeCuIn
		}
		return combos[i].Key < combos[j].Key
	})
	return combos
}

// buildCombination 由数量向量构造组合，全零返回 false
func buildCombination(products []model.Product, quantities []int) (Combination, bool) {
	var combo Combination
	var keyParts []string

	for i, qty := range quantities {
		if qty == 0 {
			continue
		}
		p := products[i]
		combo.Items = append(combo.Items, dto.ComboItem{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Qty:       qty,
		})
		combo.TotalUnits += qty
		combo.VolumeCuIn += float64(qty) * p.VolumeCuIn
		if p.Category == model.CategoryTumbler || p.Category == model.CategoryBottle {
			combo.CupCount += qty
		}
		keyParts = append(keyParts, fmt.Sprintf("%s:%d", p.SKU, qty))
	}

	if combo.TotalUnits == 0 {
		return combo, false
	}
	combo.Key = strings.Join(keyParts, "|")
	return combo, true
}

// UsableVolume 箱型可用容积 = 容积 × 装填效率
func UsableVolume(box *model.BoxConfig) float64 {
	efficiency := box.PackingEfficiency
	if efficiency <= 0 || efficiency > 1 {
		efficiency = defaultPackingEfficiency
	}
	return box.VolumeCuIn * efficiency
}

// ClassifyCombination 判定组合对箱型的装箱结果
// 人工反馈优先；仅限单杯的箱型要求组合杯数恰为 1；
// 容积判定是 ≤（体积恰好等于可用容积算装得下）
func ClassifyCombination(combo *Combination, box *model.BoxConfig, feedback map[string]string) dto.BoxFitCell {
	cell := dto.BoxFitCell{BoxID: box.ID}

	if status, ok := feedback[feedbackKey(box.ID, combo.Key)]; ok {
		cell.Status = status
		return cell
	}

	if box.SingleCupOnly && combo.CupCount != 1 {
		cell.Status = FitStatusCupLimit
		return cell
	}

	if combo.VolumeCuIn <= UsableVolume(box) {
		cell.Status = FitStatusFits
	} else {
		cell.Status = FitStatusTooBig
	}
	return cell
}

func feedbackKey(boxID int64, comboKey string) string {
	return fmt.Sprintf("%d|%s", boxID, comboKey)
}

// ==================== BoxFitService ====================

// BoxFitService 箱型配置 + 装箱矩阵服务
type BoxFitService struct {
	boxRepo      repository.BoxConfigRepository
	feedbackRepo repository.BoxFitFeedbackRepository
	productRepo  repository.ProductRepository
}

// NewBoxFitService 创建装箱服务
func NewBoxFitService(
	boxRepo repository.BoxConfigRepository,
	feedbackRepo repository.BoxFitFeedbackRepository,
	productRepo repository.ProductRepository,
) *BoxFitService {
	return &BoxFitService{
		boxRepo:      boxRepo,
		feedbackRepo: feedbackRepo,
		productRepo:  productRepo,
	}
}

// ==================== 箱型 CRUD ====================

// ListBoxes 获取全部箱型
func (s *BoxFitService) ListBoxes(ctx context.Context) ([]dto.BoxConfigResp, error) {
	boxes, err := s.boxRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]dto.BoxConfigResp, 0, len(boxes))
	for i := range boxes {
		list = append(list, convertBoxToResp(&boxes[i]))
	}
	return list, nil
}

// SaveBox 创建或更新箱型（id 为 0 时创建）
func (s *BoxFitService) SaveBox(ctx context.Context, req *dto.BoxConfigReq) (*dto.BoxConfigResp, error) {
	var box *model.BoxConfig
	if req.ID > 0 {
		existing, err := s.boxRepo.GetByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("箱型不存在")
			}
			return nil, err
		}
		box = existing
	} else {
		box = &model.BoxConfig{Active: true}
	}

	box.Name = req.Name
	box.LengthIn = req.LengthIn
	box.WidthIn = req.WidthIn
	box.HeightIn = req.HeightIn
	box.VolumeCuIn = req.LengthIn * req.WidthIn * req.HeightIn
	box.SingleCupOnly = req.SingleCupOnly
	box.MaxWeightLb = req.MaxWeightLb
	if req.PackingEfficiency > 0 {
		box.PackingEfficiency = req.PackingEfficiency
	} else if box.PackingEfficiency == 0 {
		box.PackingEfficiency = defaultPackingEfficiency
	}
	if req.Active != nil {
		box.Active = *req.Active
	}

	var err error
	if req.ID > 0 {
		err = s.boxRepo.Update(ctx, box)
	} else {
		err = s.boxRepo.Create(ctx, box)
	}
	if err != nil {
		return nil, fmt.Errorf("保存箱型失败: %w", err)
	}

	s.invalidateMatrixCache()
	resp := convertBoxToResp(box)
	return &resp, nil
}

// DeleteBox 删除箱型及其全部反馈
func (s *BoxFitService) DeleteBox(ctx context.Context, id int64) error {
	if err := s.boxRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除箱型失败: %w", err)
	}
	if err := s.feedbackRepo.DeleteByBoxID(ctx, id); err != nil {
		return fmt.Errorf("删除箱型反馈失败: %w", err)
	}
	s.invalidateMatrixCache()
	return nil
}

// ReorderBoxes 拖拽排序落库；失败由调用方重新拉取列表还原顺序
func (s *BoxFitService) ReorderBoxes(ctx context.Context, boxIDs []int64) error {
	if len(boxIDs) == 0 {
		return errors.New("box_ids 不能为空")
	}
	if err := s.boxRepo.Reorder(ctx, boxIDs); err != nil {
		return fmt.Errorf("保存排序失败: %w", err)
	}
	return nil
}

// SaveFeedback 写入人工反馈
func (s *BoxFitService) SaveFeedback(ctx context.Context, req *dto.BoxFitFeedbackReq) error {
	if req.Status != model.BoxFitFeedbackConfirmed && req.Status != model.BoxFitFeedbackRejected {
		return fmt.Errorf("无效的反馈状态: %s", req.Status)
	}
	err := s.feedbackRepo.Upsert(ctx, &model.BoxFitFeedback{
		BoxID:          req.BoxID,
		CombinationKey: req.CombinationKey,
		Status:         req.Status,
		Note:           req.Note,
	})
	if err != nil {
		return fmt.Errorf("保存反馈失败: %w", err)
	}
	return nil
}

// ==================== 矩阵 ====================

const (
	matrixCacheKey = "boxfit_combinations"
	matrixCacheTTL = 2 * time.Minute
)

// GetMatrix 生成装箱矩阵（分页）
func (s *BoxFitService) GetMatrix(ctx context.Context, page, pageSize int) (*dto.BoxFitMatrixResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	boxes, err := s.boxRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	combos, err := s.enumerateCached(ctx)
	if err != nil {
		return nil, err
	}

	feedbacks, err := s.feedbackRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	feedbackMap := make(map[string]string, len(feedbacks))
	for _, fb := range feedbacks {
		feedbackMap[feedbackKey(fb.BoxID, fb.CombinationKey)] = fb.Status
	}

	resp := &dto.BoxFitMatrixResponse{
		Total:    len(combos),
		Page:     page,
		PageSize: pageSize,
	}
	for i := range boxes {
		resp.Boxes = append(resp.Boxes, convertBoxToResp(&boxes[i]))
	}

	start := (page - 1) * pageSize
	if start >= len(combos) {
		resp.Rows = []dto.BoxFitRow{}
		return resp, nil
	}
	end := start + pageSize
	if end > len(combos) {
		end = len(combos)
	}

	for _, combo := range combos[start:end] {
		row := dto.BoxFitRow{
			Key:        combo.Key,
			Items:      combo.Items,
			TotalUnits: combo.TotalUnits,
			VolumeCuIn: combo.VolumeCuIn,
			CupCount:   combo.CupCount,
		}
		for i := range boxes {
			row.Cells = append(row.Cells, ClassifyCombination(&combo, &boxes[i], feedbackMap))
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}

// enumerateCached 枚举结果短期缓存，产品目录变更走懒失效
func (s *BoxFitService) enumerateCached(ctx context.Context) ([]Combination, error) {
	if cached, ok := utils.GetCache(matrixCacheKey); ok {
		if combos, ok := cached.([]Combination); ok {
			return combos, nil
		}
	}

	products, err := s.productRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	combos := EnumerateCombinations(products)
	utils.SetCache(matrixCacheKey, combos, matrixCacheTTL)
	return combos, nil
}

func (s *BoxFitService) invalidateMatrixCache() {
	utils.DeleteCache(matrixCacheKey)
}

// InvalidateMatrixCache 产品目录变更后由产品服务调用
func (s *BoxFitService) InvalidateMatrixCache() {
	s.invalidateMatrixCache()
}

func convertBoxToResp(box *model.BoxConfig) dto.BoxConfigResp {
	return dto.BoxConfigResp{
		ID:                box.ID,
		Name:              box.Name,
		LengthIn:          box.LengthIn,
		WidthIn:           box.WidthIn,
		HeightIn:          box.HeightIn,
		VolumeCuIn:        box.VolumeCuIn,
		UsableVolumeCuIn:  UsableVolume(box),
		PackingEfficiency: box.PackingEfficiency,
		SingleCupOnly:     box.SingleCupOnly,
		MaxWeightLb:       box.MaxWeightLb,
		SortOrder:         box.SortOrder,
		Active:            box.Active,
	}
}
