package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAttachment(t *testing.T) {
	payload := []byte("fake-png-bytes")
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	att, err := DecodeAttachment(dataURL)
	require.NoError(t, err)

	assert.Equal(t, "image/png", att.ContentType)
	assert.Equal(t, payload, att.Data)
	assert.Equal(t, "png", att.Ext)
	assert.True(t, strings.HasSuffix(att.FileName, ".png"), "文件名应以扩展名结尾: %s", att.FileName)
	// UUID文件名：36位UUID + 点 + 扩展名
	assert.Len(t, strings.TrimSuffix(att.FileName, ".png"), 36)
}

func TestDecodeAttachment_ExtFromSubtype(t *testing.T) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8})

	att, err := DecodeAttachment(dataURL)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", att.Ext)
	assert.True(t, strings.HasSuffix(att.FileName, ".jpeg"))
}

func TestDecodeAttachment_UniqueFileNames(t *testing.T) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("x"))

	a, err := DecodeAttachment(dataURL)
	require.NoError(t, err)
	b, err := DecodeAttachment(dataURL)
	require.NoError(t, err)

	assert.NotEqual(t, a.FileName, b.FileName)
}

func TestDecodeAttachment_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"空字符串", ""},
		{"非data-URL", "https://example.com/a.png"},
		{"缺少数据部分", "data:image/png;base64"},
		{"缺少内容类型", "data:;base64,QUFB"},
		{"非base64编码声明", "data:image/png;hex,00ff"},
		{"非法base64数据", "data:image/png;base64,!!!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			att, err := DecodeAttachment(tc.input)
			assert.Nil(t, att)
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}
