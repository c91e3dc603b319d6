package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/logger"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

const (
	// DefaultTimeout 单次抓取的总超时
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent 浏览器标识，避免被简单的反爬虫策略拦截
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// NoTitle 页面没有 h1 和 title 时的标题
	NoTitle = "No title found"
	// GeneralContent 页面没有 meta description 时的话题
	GeneralContent = "General Content"

	maxBodySize = 5 << 20
	maxExcerpt  = 300
)

// ErrorKind 抓取失败的类别
type ErrorKind string

const (
	KindInvalidURL ErrorKind = "invalid_url"
	KindNetwork    ErrorKind = "network"
	KindStatus     ErrorKind = "status"
	KindParse      ErrorKind = "parse"
)

// Error 抓取错误，调用方可以提示用户重试或改为手动输入
type Error struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Client 网页标题抓取客户端
type Client struct {
	userAgent string
	timeout   time.Duration
	client    *http.Client
}

// NewClient 创建抓取客户端，timeout 为 0 时使用 DefaultTimeout
func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		userAgent: userAgent,
		timeout:   timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ValidateURL 检查 URL 是否为合法的 http(s) 地址
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("URL must be http or https")
	}
	if u.Host == "" {
		return nil, errors.New("URL has no host")
	}
	return u, nil
}

// Fetch 发起一次 GET 请求并提取标题与话题提示
func (c *Client) Fetch(ctx context.Context, rawURL string) (*model.ScrapedArticle, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, URL: rawURL, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: rawURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &Error{Kind: KindStatus, URL: rawURL, StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: rawURL, Err: fmt.Errorf("read body failed: %w", err)}
	}

	article, err := Parse(body, pageURL)
	if err != nil {
		return nil, &Error{Kind: KindParse, URL: rawURL, Err: err}
	}

	logger.Log.Debugf("抓取完成 [%s]: title=%q topic=%q", pageURL.Host, article.Title, article.TopicHint)
	return article, nil
}

// Parse 从 HTML 中提取标题与话题提示，pageURL 可以为 nil
func Parse(body []byte, pageURL *url.URL) (*model.ScrapedArticle, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	article := &model.ScrapedArticle{
		Title:     extractTitle(doc),
		TopicHint: extractTopicHint(doc),
	}
	base := pageURL
	if base != nil {
		article.URL = pageURL.String()
	} else {
		base = &url.URL{Scheme: "http", Host: "localhost"}
	}

	// readability 只用来补充站点名与摘要，失败不影响结果
	if ra, err := readability.FromReader(bytes.NewReader(body), base); err == nil {
		article.SiteName = strings.TrimSpace(ra.SiteName)
		article.Excerpt = truncate(collapse(ra.Excerpt), maxExcerpt)
	} else {
		logger.Log.Debugf("readability 解析失败: %v", err)
	}

	return article, nil
}

// extractTitle 第一个 h1 → title → NoTitle。
// 页面有 h1 时总是使用它的文本，即使为空。
func extractTitle(doc *goquery.Document) string {
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return collapse(h1.Text())
	}
	if title := collapse(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return NoTitle
}

// extractTopicHint meta description → GeneralContent
func extractTopicHint(doc *goquery.Document) string {
	hint := ""
	doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "description") {
			return true
		}
		content, _ := s.Attr("content")
		hint = collapse(content)
		return false
	})
	if hint == "" {
		return GeneralContent
	}
	return hint
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
