package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

// ErrorKind 提供方错误类别
type ErrorKind string

const (
	KindAuth              ErrorKind = "auth"
	KindRateLimit         ErrorKind = "rate_limit"
	KindNetwork           ErrorKind = "network"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// Error 统一的提供方错误，原样返回给调用方且不会被缓存
type Error struct {
	Kind       ErrorKind
	Provider   model.ProviderID
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind 判断 err 是否为指定类别的提供方错误
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

func malformed(id model.ProviderID, format string, args ...any) *Error {
	return &Error{Kind: KindMalformedResponse, Provider: id, Message: fmt.Sprintf(format, args...)}
}

// kindForStatus HTTP 状态码到错误类别；Gemini 对无效 key 返回 400，需要结合错误文本判断
func kindForStatus(code int, msg string) ErrorKind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "api key"):
		return KindAuth
	case code == http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindNetwork
	}
}

var statusPattern = regexp.MustCompile(`status code: (\d{3})`)

// fromMessage 无法拿到结构化错误时，根据错误文本判断类别
func fromMessage(id model.ProviderID, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindNetwork, Provider: id, Message: err.Error(), Err: err}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	if m := statusPattern.FindStringSubmatch(msg); m != nil {
		code, _ := strconv.Atoi(m[1])
		return &Error{Kind: kindForStatus(code, msg), Provider: id, StatusCode: code, Message: msg, Err: err}
	}

	kind := KindNetwork
	switch {
	case strings.Contains(lower, "401"), strings.Contains(lower, "403"),
		strings.Contains(lower, "unauthorized"), strings.Contains(lower, "api key"),
		strings.Contains(lower, "permission denied"):
		kind = KindAuth
	case strings.Contains(lower, "429"), strings.Contains(lower, "too many requests"),
		strings.Contains(lower, "rate limit"), strings.Contains(lower, "quota"),
		strings.Contains(lower, "resource_exhausted"):
		kind = KindRateLimit
	}
	return &Error{Kind: kind, Provider: id, Message: msg, Err: err}
}
