package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
	"shipops_dev_v1/internal/service"
)

// ==================== 测试辅助 ====================

func setupBoxCtlRouter(t *testing.T) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&model.BoxConfig{}, &model.BoxFitFeedback{})

	boxFitSvc := service.NewBoxFitService(
		repository.NewBoxConfigRepository(db),
		repository.NewBoxFitFeedbackRepository(db),
		nil,
	)
	ctl := NewBoxController(boxFitSvc)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	boxes := r.Group("/api/box-config")
	{
		boxes.GET("", ctl.GetBoxes)
		boxes.POST("", ctl.SaveBox)
		boxes.DELETE("/:id", ctl.DeleteBox)
		boxes.POST("/reorder", ctl.ReorderBoxes)
		boxes.POST("/feedback", ctl.SaveFeedback)
	}
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 单元测试 ====================

func TestBoxController_SaveAndList(t *testing.T) {
	r := setupBoxCtlRouter(t)

	w := doJSON(r, http.MethodPost, "/api/box-config", dto.BoxConfigReq{
		Name:     "Medium Box",
		LengthIn: 12, WidthIn: 10, HeightIn: 8,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var saved dto.BoxConfigResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, float64(960), saved.VolumeCuIn)
	assert.Equal(t, 0.8, saved.PackingEfficiency)

	w = doJSON(r, http.MethodGet, "/api/box-config", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list []dto.BoxConfigResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
	assert.Equal(t, "Medium Box", list[0].Name)
}

func TestBoxController_SaveValidation(t *testing.T) {
	r := setupBoxCtlRouter(t)

	// 缺少必填尺寸
	w := doJSON(r, http.MethodPost, "/api/box-config", map[string]interface{}{
		"name": "No Dimensions",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestBoxController_Feedback(t *testing.T) {
	r := setupBoxCtlRouter(t)

	w := doJSON(r, http.MethodPost, "/api/box-config/feedback", dto.BoxFitFeedbackReq{
		BoxID:          1,
		CombinationKey: "TUM-20:2",
		Status:         "confirmed",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 非法状态走 500（服务层校验）
	w = doJSON(r, http.MethodPost, "/api/box-config/feedback", dto.BoxFitFeedbackReq{
		BoxID:          1,
		CombinationKey: "TUM-20:2",
		Status:         "maybe",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBoxController_DeleteInvalidID(t *testing.T) {
	r := setupBoxCtlRouter(t)

	w := doJSON(r, http.MethodDelete, "/api/box-config/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
