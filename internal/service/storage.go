package service

import (
	"context"
	"fmt"
	"strings"
)

// 对象存储桶名称
const (
	// AnnouncementBucket 公告图片所在桶
	AnnouncementBucket = "blogs"
	// ProfileBucket 头像所在桶
	ProfileBucket = "profile"
)

// ObjectStorage 对象存储接口，由pkg/storage的客户端实现
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	PublicURL(bucket, path string) string
	Remove(ctx context.Context, bucket string, paths []string) error
}

// objectPath 组装 所有者ID/文件名 形式的对象路径
func objectPath(ownerID int64, fileName string) string {
	return fmt.Sprintf("%d/%s", ownerID, fileName)
}

// fileNameFromURL 取公开URL的最后一段作为对象文件名
func fileNameFromURL(url string) string {
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}
