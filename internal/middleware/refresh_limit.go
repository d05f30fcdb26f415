package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 刷新冷却中间件 ====================

// 手动强制刷新（?refresh=true）会直接打到聚合商 API，
// 这里按 key 做冷却限流，避免前端反复点刷新把配额打爆

// DefaultRefreshInterval 默认冷却间隔
const DefaultRefreshInterval = 30 * time.Second

// CooldownLimiter 冷却限流器
type CooldownLimiter struct {
	mu       sync.Mutex
	lastExec map[string]time.Time
}

// NewCooldownLimiter 创建冷却限流器
func NewCooldownLimiter() *CooldownLimiter {
	return &CooldownLimiter{
		lastExec: make(map[string]time.Time),
	}
}

var (
	limiterOnce    sync.Once
	defaultLimiter *CooldownLimiter
)

// GetLimiter 获取全局限流器
func GetLimiter() *CooldownLimiter {
	limiterOnce.Do(func() {
		defaultLimiter = NewCooldownLimiter()
	})
	return defaultLimiter
}

// CheckResult 限流检查结果
type CheckResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Check 检查并记录本次执行
func (l *CooldownLimiter) Check(key string, interval time.Duration) CheckResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if last, ok := l.lastExec[key]; ok {
		elapsed := now.Sub(last)
		if elapsed < interval {
			return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
		}
	}
	l.lastExec[key] = now
	return CheckResult{Allowed: true}
}

// Reset 重置某个 key 的冷却
func (l *CooldownLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.lastExec, key)
}

// RefreshCooldown 强制刷新冷却中间件
// 只拦截 ?refresh=true 的请求，普通缓存读取不受影响
func RefreshCooldown(key string, interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = DefaultRefreshInterval
	}

	return func(c *gin.Context) {
		if c.Query("refresh") != "true" {
			c.Next()
			return
		}

		result := GetLimiter().Check(key, interval)
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": retryAfter,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())

	if seconds < 60 {
		return fmt.Sprintf("刷新冷却中，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60

	if remainingSeconds == 0 {
		return fmt.Sprintf("刷新冷却中，请 %d 分钟后重试", minutes)
	}

	return fmt.Sprintf("刷新冷却中，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}
