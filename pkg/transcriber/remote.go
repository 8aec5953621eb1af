package transcriber

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const readingsPath = "/readings"

// ReadingsResult 远程拼音服务的响应
type ReadingsResult struct {
	Readings []string `json:"readings"`
}

// Remote 通过 HTTP 调用远程拼音服务
type Remote struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewRemote 创建一个新的远程拼音查询实例
func NewRemote(baseURL string, timeout time.Duration, logger *log.Logger) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Readings 请求 GET {base}/readings?char=<c>。
// 请求失败、非 200 或响应无法解析时记录日志并返回空，不重试。
func (c *Remote) Readings(r rune) []string {
	params := url.Values{}
	params.Add("char", string(r))

	resp, err := c.httpClient.Get(c.baseURL + readingsPath + "?" + params.Encode())
	if err != nil {
		c.logger.Printf("    -> ERROR: Failed to query readings for %q: %v", r, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("    -> WARN: Readings service returned %s for %q.", resp.Status, r)
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("    -> ERROR: Failed to read readings response for %q: %v", r, err)
		return nil
	}
	var result ReadingsResult
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Printf("    -> WARN: Invalid readings response for %q: %v", r, err)
		return nil
	}
	return result.Readings
}

func (c *Remote) String() string {
	return fmt.Sprintf("remote(%s)", c.baseURL)
}
