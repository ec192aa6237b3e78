package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ==================== 接口定义 ====================

// StorageProvider 文件存储提供者（商品图片、卖家资质文档）
type StorageProvider interface {
	// Upload 上传文件，返回公开访问URL
	Upload(ctx context.Context, data []byte, filename string, contentType string) (url string, err error)

	// Delete 删除文件
	Delete(ctx context.Context, url string) error

	// GetSignedURL 获取签名URL (私有存储时使用，资质文档走这条)
	GetSignedURL(ctx context.Context, url string, expires time.Duration) (signedURL string, err error)
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	CDNDomain string // CDN域名 (可选)
	BasePath  string // 基础路径前缀
	LocalDir  string // local 模式落盘目录
	LocalURL  string // local 模式访问前缀
}

// ==================== 工厂方法 ====================

func NewStorageProvider(cfg *StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "local", "":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== StorageService ====================

// StorageService 包装 StorageProvider，附带业务侧上传入口
type StorageService struct {
	provider StorageProvider
	config   *StorageConfig
}

// NewStorageService 创建存储服务
func NewStorageService(cfg *StorageConfig) (*StorageService, error) {
	provider, err := NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &StorageService{
		provider: provider,
		config:   cfg,
	}, nil
}

// Upload 上传文件
func (s *StorageService) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	return s.provider.Upload(ctx, data, filename, contentType)
}

// UploadProductImage 上传商品图片，只收图片类型
func (s *StorageService) UploadProductImage(ctx context.Context, data []byte, filename string) (string, error) {
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("商品图片仅支持图片格式，收到 %s", contentType)
	}
	return s.provider.Upload(ctx, data, filename, contentType)
}

// UploadVerificationDoc 上传卖家资质文档（支持 data URL / 裸 base64）
func (s *StorageService) UploadVerificationDoc(ctx context.Context, base64Data string) (string, error) {
	if idx := strings.Index(base64Data, ","); idx != -1 {
		base64Data = base64Data[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", fmt.Errorf("Base64 解码失败: %v", err)
	}

	filename := fmt.Sprintf("verification_%s.pdf", uuid.New().String()[:8])
	return s.provider.Upload(ctx, data, filename, http.DetectContentType(data))
}

// Delete 删除文件
func (s *StorageService) Delete(ctx context.Context, url string) error {
	return s.provider.Delete(ctx, url)
}

// GetSignedURL 获取签名URL
func (s *StorageService) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	return s.provider.GetSignedURL(ctx, url, expires)
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
	basePath  string
}

func NewS3Storage(cfg *StorageConfig) (*S3Storage, error) {
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

	return &S3Storage{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		cdnDomain: cfg.CDNDomain,
		basePath:  cfg.BasePath,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	key := s.generateKey(filename)

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}

	return s.getPublicURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := s.extractKey(url)
	if key == "" {
		return fmt.Errorf("无法解析文件路径")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	key := s.extractKey(url)
	if key == "" {
		return "", fmt.Errorf("无法解析文件路径")
	}

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

func (s *S3Storage) generateKey(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	if s.basePath != "" {
		return fmt.Sprintf("%s/%s/%s", s.basePath, datePath, newFilename)
	}
	return fmt.Sprintf("%s/%s", datePath, newFilename)
}

func (s *S3Storage) getPublicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Storage) extractKey(url string) string {
	if s.cdnDomain != "" && strings.Contains(url, s.cdnDomain) {
		return strings.TrimPrefix(url, fmt.Sprintf("https://%s/", s.cdnDomain))
	}
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	return strings.TrimPrefix(url, prefix)
}

// ==================== 本地存储 (开发测试用) ====================

type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(cfg *StorageConfig) (*LocalStorage, error) {
	dir := cfg.LocalDir
	if dir == "" {
		dir = "./uploads"
	}
	baseURL := cfg.LocalURL
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %v", err)
	}

	return &LocalStorage{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("写入本地文件失败: %v", err)
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(s.baseURL, "/"), name), nil
}

func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	name := url[strings.LastIndex(url, "/")+1:]
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStorage) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	return url, nil // 本地存储无需签名
}
