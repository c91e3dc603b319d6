package engine

import (
	"fmt"
	"net/http"

	"github.com/go-kratos/kratos/v2/errors"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/provider"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/scraper"
)

// 错误原因，展示层据此区分错误类型
const (
	ReasonConfig                    = "CONFIG_ERROR"
	ReasonInput                     = "INPUT_ERROR"
	ReasonScrape                    = "SCRAPE_ERROR"
	ReasonProviderAuth              = "PROVIDER_AUTH"
	ReasonProviderRateLimit         = "PROVIDER_RATE_LIMIT"
	ReasonProviderNetwork           = "PROVIDER_NETWORK"
	ReasonProviderMalformedResponse = "PROVIDER_MALFORMED_RESPONSE"
)

// ConfigError 缺少凭证或提供方未配置
func ConfigError(format string, args ...any) *errors.Error {
	return errors.Unauthorized(ReasonConfig, fmt.Sprintf(format, args...)).
		WithMetadata(map[string]string{"action": "provide an API key for the selected provider"})
}

// InputError 请求参数不合法
func InputError(format string, args ...any) *errors.Error {
	return errors.BadRequest(ReasonInput, fmt.Sprintf(format, args...)).
		WithMetadata(map[string]string{"action": "provide a headline or a valid http(s) URL"})
}

// scrapeError 包装抓取失败，保留原始错误
func scrapeError(err error) *errors.Error {
	md := map[string]string{"action": "check the URL and retry the fetch, or enter the headline manually"}
	var se *scraper.Error
	if errors.As(err, &se) {
		md["kind"] = string(se.Kind)
	}
	return errors.New(http.StatusBadGateway, ReasonScrape, err.Error()).
		WithCause(err).
		WithMetadata(md)
}

// providerError 将适配器错误转换为带原因码的错误，保留原始错误
func providerError(err error) *errors.Error {
	var pe *provider.Error
	if !errors.As(err, &pe) {
		pe = &provider.Error{Kind: provider.KindNetwork, Message: err.Error(), Err: err}
	}

	var (
		code   int
		reason string
		action string
	)
	switch pe.Kind {
	case provider.KindAuth:
		code, reason, action = http.StatusUnauthorized, ReasonProviderAuth, "check that the API key is valid for this provider"
	case provider.KindRateLimit:
		code, reason, action = http.StatusTooManyRequests, ReasonProviderRateLimit, "wait a moment and retry the analysis"
	case provider.KindMalformedResponse:
		code, reason, action = http.StatusBadGateway, ReasonProviderMalformedResponse, "retry the analysis or pick another provider"
	default:
		code, reason, action = http.StatusServiceUnavailable, ReasonProviderNetwork, "retry the analysis"
	}
	return errors.New(code, reason, pe.Error()).
		WithCause(err).
		WithMetadata(map[string]string{
			"kind":     string(pe.Kind),
			"provider": string(pe.Provider),
			"action":   action,
		})
}

// UserMessage 返回面向用户的错误提示
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	e := errors.FromError(err)
	var prefix string
	switch e.Reason {
	case ReasonConfig:
		prefix = "Missing credentials"
	case ReasonInput:
		prefix = "Invalid input"
	case ReasonScrape:
		prefix = "Could not fetch the page"
	case ReasonProviderAuth:
		prefix = "The provider rejected the API key"
	case ReasonProviderRateLimit:
		prefix = "The provider is rate limiting requests"
	case ReasonProviderNetwork:
		prefix = "The provider could not be reached"
	case ReasonProviderMalformedResponse:
		prefix = "The provider returned an unusable answer"
	default:
		return "Analysis failed: " + e.Message
	}
	msg := prefix + ": " + e.Message
	if action := e.Metadata["action"]; action != "" {
		msg += " (" + action + ")"
	}
	return msg
}
