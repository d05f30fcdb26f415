package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
	"shipops_dev_v1/internal/service"
)

// CarrierSyncTask 承运商账户保活任务
// 定时强刷统一账户缓存，并给已验证的直连凭证预热 OAuth token，
// 避免前端打开承运商设置页时撞上冷缓存和冷 token 双重延迟
type CarrierSyncTask struct {
	UnifySvc   *service.UnifyService
	DirectRepo repository.DirectConnectionRepository
	Clients    map[string]service.DirectCarrierClient
	Cron       *cron.Cron

	// 控制并发探测的数量，直连 OAuth 端点有速率限制
	concurrencyLimit int
	sleepTime        time.Duration
}

// NewCarrierSyncTask 创建承运商保活任务
func NewCarrierSyncTask(
	unifySvc *service.UnifyService,
	directRepo repository.DirectConnectionRepository,
	clients ...service.DirectCarrierClient,
) *CarrierSyncTask {
	clientMap := make(map[string]service.DirectCarrierClient, len(clients))
	for _, c := range clients {
		clientMap[c.Network()] = c
	}
	return &CarrierSyncTask{
		UnifySvc:         unifySvc,
		DirectRepo:       directRepo,
		Clients:          clientMap,
		Cron:             cron.New(cron.WithSeconds()), // 支持秒级控制
		concurrencyLimit: 3,                            // 直连 OAuth 并发上限
		sleepTime:        200 * time.Millisecond,       // 每个协程启动间隔，平滑波峰
	}
}

// Start 启动定时任务
func (t *CarrierSyncTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次承运商账户同步...")
		t.syncJob(ctx)
	}()

	// 定时策略
	_, err := t.Cron.AddFunc("0 0/10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		t.syncJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动承运商同步任务: %v", err)
	}

	t.Cron.Start()
	log.Println("承运商账户保活任务已启动 (每10分钟同步一次)")
}

// Stop 停止定时任务
func (t *CarrierSyncTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}

// syncJob 刷新统一账户缓存 + 预热直连 token
func (t *CarrierSyncTask) syncJob(ctx context.Context) {
	if _, err := t.UnifySvc.GetUnifiedAccounts(ctx, true); err != nil {
		log.Printf("[Cron] 统一账户刷新失败: %v", err)
		// 聚合商挂了不影响直连预热，继续往下走
	}

	t.prewarmDirectTokens(ctx)
}

// prewarmDirectTokens 给已验证通过的直连凭证预热 token
func (t *CarrierSyncTask) prewarmDirectTokens(ctx context.Context) {
	conns, err := t.DirectRepo.GetAll(ctx)
	if err != nil {
		log.Printf("[Cron] 直连凭证查询失败: %v", err)
		return
	}

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	for _, conn := range conns {
		// 只预热已经验证通过的凭证，错误凭证重试交给用户手动测试
		if conn.Status != model.ConnectionStatusConnected {
			continue
		}
		client, ok := t.Clients[conn.Network]
		if !ok {
			continue
		}

		select {
		case <-ctx.Done():
			log.Println("[Cron] 任务超时停止")
			return
		default:
		}

		sem <- struct{}{}
		wg.Add(1)

		time.Sleep(t.sleepTime)

		currentConn := conn

		go func(c model.DirectConnection) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := client.TestAuth(ctx, &c); err != nil {
				log.Printf("[Cron] 直连 [%s] token 预热失败: %v", c.ConnectionID, err)
			}
		}(currentConn)
	}

	wg.Wait()
	log.Println("[Cron] 本轮承运商同步任务完成")
}
