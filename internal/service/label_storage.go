package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// 测试标签存储
// 直连 test-label 出的 PDF 存到 S3，前端拿 URL 预览打印效果

// LabelStorageConfig 标签存储配置
type LabelStorageConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	CDNDomain string // CDN 域名（可选）
	BasePath  string // 基础路径前缀
}

// LabelStorageService 标签存储服务
type LabelStorageService struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
	basePath  string
}

// NewLabelStorageService 创建标签存储服务
func NewLabelStorageService(cfg *LabelStorageConfig) (*LabelStorageService, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("未配置存储 Bucket")
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	return &LabelStorageService{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		cdnDomain: cfg.CDNDomain,
		basePath:  cfg.BasePath,
	}, nil
}

// UploadLabel 上传标签 PDF，返回公开访问 URL
func (s *LabelStorageService) UploadLabel(ctx context.Context, connectionID string, data []byte) (string, error) {
	key := s.generateKey(connectionID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}

	return s.getPublicURL(key), nil
}

// GetSignedURL 获取签名 URL（私有存储时使用）
func (s *LabelStorageService) GetSignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	presignedURL, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}

func (s *LabelStorageService) generateKey(connectionID string) string {
	filename := fmt.Sprintf("%s_%s.pdf", connectionID, uuid.New().String()[:8])
	datePath := time.Now().Format("2006/01/02")
	if s.basePath != "" {
		return fmt.Sprintf("%s/labels/%s/%s", s.basePath, datePath, filename)
	}
	return fmt.Sprintf("labels/%s/%s", datePath, filename)
}

func (s *LabelStorageService) getPublicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
