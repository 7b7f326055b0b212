package service

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// data-URL格式：data:<内容类型>;base64,<数据>
var dataURLPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// Attachment 解码后的图片附件
type Attachment struct {
	ContentType string
	Data        []byte
	Ext         string
	FileName    string
}

// DecodeAttachment 解码data-URL格式的图片附件
// 扩展名取内容类型的子类型部分（image/png → png），文件名用UUID保证唯一
// 不校验文件魔数，内容类型与数据是否相符由调用方负责
func DecodeAttachment(dataURL string) (*Attachment, error) {
	matches := dataURLPattern.FindStringSubmatch(dataURL)
	if len(matches) != 3 {
		return nil, ErrInvalidImage
	}

	contentType := matches[1]
	data, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return nil, ErrInvalidImage
	}

	// 取子类型作为扩展名
	parts := strings.SplitN(contentType, "/", 2)
	ext := parts[len(parts)-1]

	return &Attachment{
		ContentType: contentType,
		Data:        data,
		Ext:         ext,
		FileName:    fmt.Sprintf("%s.%s", uuid.NewString(), ext),
	}, nil
}
