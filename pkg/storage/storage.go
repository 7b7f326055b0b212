package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client 对象存储客户端
// 通过HTTP API访问远端存储服务，对象按 桶/所有者ID/文件名 组织
type Client struct {
	Endpoint   string
	APIKey     string
	httpClient *http.Client
}

// NewClient 创建对象存储客户端
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		APIKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// errorResponse 存储服务错误响应
type errorResponse struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// Upload 上传对象到指定桶
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	// 构建请求URL
	apiURL := fmt.Sprintf("%s/object/%s/%s", c.Endpoint, bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(data))
	if err != nil {
		return err
	}

	// 设置请求头
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", contentType)

	// 发送请求
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.checkResponse(resp)
}

// PublicURL 获取对象的公开访问URL
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.Endpoint, bucket, path)
}

// Remove 从指定桶中删除对象，可一次删除多个
func (c *Client) Remove(ctx context.Context, bucket string, paths []string) error {
	// 构建请求URL
	apiURL := fmt.Sprintf("%s/object/%s", c.Endpoint, bucket)

	// 构建请求体
	body, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	// 设置请求头
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	// 发送请求
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.checkResponse(resp)
}

// checkResponse 检查存储服务响应，非2xx时解析错误信息
func (c *Client) checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// 读取响应
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("存储服务返回状态码 %d", resp.StatusCode)
	}

	// 解析错误响应
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errors.New(errResp.Message)
	}

	return fmt.Errorf("存储服务返回状态码 %d", resp.StatusCode)
}
