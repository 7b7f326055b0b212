package service

import (
	"errors"

	"renrakuban/internal/constants"
)

// 服务层哨兵错误，消息直接作为对外的msg返回
var (
	ErrInvalidImage         = errors.New(constants.ErrInvalidImage)
	ErrAnnouncementNotFound = errors.New(constants.ErrAnnouncementNotFound)
	ErrProfileNotFound      = errors.New(constants.ErrProfileNotFound)
	ErrEventNotFound        = errors.New(constants.ErrEventNotFound)
	ErrNoPermission         = errors.New(constants.ErrNoPermission)
	ErrEmailExists          = errors.New(constants.ErrEmailExists)
	ErrUserNotFound         = errors.New(constants.ErrUserNotFound)
	ErrPasswordIncorrect    = errors.New(constants.ErrPasswordIncorrect)
	ErrVerifyLinkInvalid    = errors.New(constants.ErrVerifyLinkInvalid)
)
