package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"renrakuban/internal/model"
	"renrakuban/internal/repository"
	"renrakuban/pkg/async"
	"renrakuban/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// AnnouncementService 公告服务
// 负责公告的生命周期编排：附件解码、对象上传、旧对象清理和数据库写入
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
	storage          ObjectStorage
	redisClient      *redis.Client
	worker           *async.Worker
	logger           *logger.Logger
}

// NewAnnouncementService 创建公告服务实例
func NewAnnouncementService(
	announcementRepo repository.AnnouncementRepository,
	storage ObjectStorage,
	redisClient *redis.Client,
	worker *async.Worker,
	logger *logger.Logger,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		storage:          storage,
		redisClient:      redisClient,
		worker:           worker,
		logger:           logger,
	}
}

// List 获取分页公告列表
func (s *AnnouncementService) List(ctx context.Context, page, limit int) (*model.PaginatedAnnouncements, error) {
	// 尝试从缓存获取
	cacheKey := fmt.Sprintf("announcements:list:%d:%d", page, limit)
	cachedData, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var result model.PaginatedAnnouncements
		if err := json.Unmarshal(cachedData, &result); err == nil {
			return &result, nil
		}
	}

	// 缓存未命中，从数据库获取
	total, err := s.announcementRepo.Count(ctx)
	if err != nil {
		s.logger.Error("获取公告总数失败", "error", err)
		return nil, err
	}

	offset := (page - 1) * limit
	announcements, err := s.announcementRepo.List(ctx, offset, limit)
	if err != nil {
		s.logger.Error("获取公告列表失败", "error", err)
		return nil, err
	}

	result := &model.PaginatedAnnouncements{
		Total: total,
		Items: announcements,
	}

	// 将结果存入缓存
	if data, err := json.Marshal(result); err == nil {
		s.redisClient.Set(ctx, cacheKey, data, 5*time.Minute)
	}

	return result, nil
}

// GetByID 根据ID获取公告详情（含作者资料）
func (s *AnnouncementService) GetByID(ctx context.Context, id int64) (*model.AnnouncementWithAuthor, error) {
	// 尝试从缓存获取
	cacheKey := fmt.Sprintf("announcements:detail:%d", id)
	cachedData, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var announcement model.AnnouncementWithAuthor
		if err := json.Unmarshal(cachedData, &announcement); err == nil {
			return &announcement, nil
		}
	}

	// 缓存未命中，从数据库获取
	announcement, err := s.announcementRepo.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("获取公告详情失败", "id", id, "error", err)
		return nil, err
	}

	// 将结果存入缓存
	if data, err := json.Marshal(announcement); err == nil {
		s.redisClient.Set(ctx, cacheKey, data, 5*time.Minute)
	}

	return announcement, nil
}

// Create 创建公告
// 附件存在时先上传对象再写库；上传失败直接中止，此时还没有任何数据库写入
// 写库失败时异步清理刚上传的对象，避免留下孤立文件
func (s *AnnouncementService) Create(ctx context.Context, userID int64, title, content, base64Image string) error {
	imageURL := ""
	uploadedPath := ""

	if base64Image != "" {
		attachment, err := DecodeAttachment(base64Image)
		if err != nil {
			return err
		}

		uploadedPath = objectPath(userID, attachment.FileName)
		if err := s.storage.Upload(ctx, AnnouncementBucket, uploadedPath, attachment.Data, attachment.ContentType); err != nil {
			s.logger.Error("上传公告图片失败", "user_id", userID, "path", uploadedPath, "error", err)
			return err
		}

		imageURL = s.storage.PublicURL(AnnouncementBucket, uploadedPath)
	}

	announcement := &model.Announcement{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		UserID:   userID,
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		if uploadedPath != "" {
			path := uploadedPath
			s.worker.AddNamedTask("cleanup_announcement_image", func(ctx context.Context) error {
				return s.storage.Remove(ctx, AnnouncementBucket, []string{path})
			})
		}
		s.logger.Error("创建公告失败", "user_id", userID, "error", err)
		return err
	}

	s.InvalidateCache(ctx)
	return nil
}

// Edit 编辑公告
// 在操作内部重新校验所有权，不依赖调用方的前置检查
// 新附件写入全新的对象键，旧对象的删除是尽力而为的，失败只记录日志
func (s *AnnouncementService) Edit(ctx context.Context, userID, id int64, title, content, base64Image string) error {
	existing, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAnnouncementNotFound
		}
		s.logger.Error("获取公告失败", "id", id, "error", err)
		return err
	}

	if existing.UserID != userID {
		return ErrNoPermission
	}

	// 未提交新附件时沿用原图片引用
	imageURL := existing.ImageURL

	if base64Image != "" {
		attachment, err := DecodeAttachment(base64Image)
		if err != nil {
			return err
		}

		newPath := objectPath(userID, attachment.FileName)
		if err := s.storage.Upload(ctx, AnnouncementBucket, newPath, attachment.Data, attachment.ContentType); err != nil {
			s.logger.Error("上传公告图片失败", "user_id", userID, "path", newPath, "error", err)
			return err
		}

		// 尽力而为地删除旧图片，失败不影响本次编辑
		if existing.ImageURL != "" {
			oldPath := objectPath(userID, fileNameFromURL(existing.ImageURL))
			if err := s.storage.Remove(ctx, AnnouncementBucket, []string{oldPath}); err != nil {
				s.logger.Warn("删除旧公告图片失败", "path", oldPath, "error", err)
			}
		}

		imageURL = s.storage.PublicURL(AnnouncementBucket, newPath)
	}

	existing.Title = title
	existing.Content = content
	existing.ImageURL = imageURL

	if err := s.announcementRepo.Update(ctx, existing); err != nil {
		s.logger.Error("更新公告失败", "id", id, "error", err)
		return err
	}

	s.InvalidateCache(ctx)
	return nil
}

// Delete 删除公告
// 先删数据库行再清理存储对象：行删除失败时不触碰对象，避免出现无图公告
// 对象清理是尽力而为的，失败只记录日志
func (s *AnnouncementService) Delete(ctx context.Context, userID, id int64) error {
	existing, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAnnouncementNotFound
		}
		s.logger.Error("获取公告失败", "id", id, "error", err)
		return err
	}

	if existing.UserID != userID {
		return ErrNoPermission
	}

	affected, err := s.announcementRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除公告失败", "id", id, "error", err)
		return err
	}
	if affected == 0 {
		// 并发删除时行已不存在，与首次删除成功可区分
		return ErrAnnouncementNotFound
	}

	if existing.ImageURL != "" {
		path := objectPath(userID, fileNameFromURL(existing.ImageURL))
		if err := s.storage.Remove(ctx, AnnouncementBucket, []string{path}); err != nil {
			s.logger.Warn("删除公告图片失败", "path", path, "error", err)
		}
	}

	s.InvalidateCache(ctx)
	return nil
}

// InvalidateCache 使公告相关缓存失效
func (s *AnnouncementService) InvalidateCache(ctx context.Context) error {
	pattern := "announcements:*"
	iter := s.redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Error("删除缓存失败", "key", iter.Val(), "error", err)
		}
	}
	return iter.Err()
}
