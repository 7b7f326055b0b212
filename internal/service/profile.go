package service

import (
	"context"
	"database/sql"
	"errors"

	"renrakuban/internal/model"
	"renrakuban/internal/repository"
	"renrakuban/pkg/logger"
)

// ProfileService 个人资料服务
// 头像更新与公告编辑同构：新对象上传、旧对象尽力清理、整行更新
type ProfileService struct {
	profileRepo repository.ProfileRepository
	storage     ObjectStorage
	logger      *logger.Logger
}

// NewProfileService 创建个人资料服务实例
func NewProfileService(profileRepo repository.ProfileRepository, storage ObjectStorage, logger *logger.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Get 获取个人资料
func (s *ProfileService) Get(ctx context.Context, userID int64) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("获取个人资料失败", "user_id", userID, "error", err)
		return nil, err
	}
	return profile, nil
}

// Update 更新个人资料
// 资料ID恒等于请求用户ID，所有权由调用链结构保证
func (s *ProfileService) Update(ctx context.Context, userID int64, name string, introduce *string, base64Image string) error {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProfileNotFound
		}
		s.logger.Error("获取个人资料失败", "user_id", userID, "error", err)
		return err
	}

	avatarURL := profile.AvatarURL

	if base64Image != "" {
		attachment, err := DecodeAttachment(base64Image)
		if err != nil {
			return err
		}

		newPath := objectPath(userID, attachment.FileName)
		if err := s.storage.Upload(ctx, ProfileBucket, newPath, attachment.Data, attachment.ContentType); err != nil {
			s.logger.Error("上传头像失败", "user_id", userID, "path", newPath, "error", err)
			return err
		}

		// 尽力而为地删除旧头像，失败不影响本次更新
		if profile.AvatarURL != nil && *profile.AvatarURL != "" {
			oldPath := objectPath(userID, fileNameFromURL(*profile.AvatarURL))
			if err := s.storage.Remove(ctx, ProfileBucket, []string{oldPath}); err != nil {
				s.logger.Warn("删除旧头像失败", "path", oldPath, "error", err)
			}
		}

		url := s.storage.PublicURL(ProfileBucket, newPath)
		avatarURL = &url
	}

	profile.Name = name
	profile.Introduce = introduce
	profile.AvatarURL = avatarURL

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error("更新个人资料失败", "user_id", userID, "error", err)
		return err
	}

	return nil
}
