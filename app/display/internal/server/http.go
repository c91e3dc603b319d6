package server

import (
	"embed"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/headline_radar/app/display/internal/conf"
	"github.com/iWorld-y/headline_radar/app/display/internal/service"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/engine"
)

//go:embed assets/*
var assets embed.FS

func NewHTTPServer(c *conf.Server, s *service.AnalyzerService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.ErrorEncoder(encodeError),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	RegisterAnalyzerHTTPServer(srv, s)

	// Serve Static Assets (HTML)
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, _ := assets.ReadFile("assets/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	return srv
}

// encodeError 在默认错误编码的基础上附加面向用户的提示
func encodeError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	se := errors.FromError(err)
	md := make(map[string]string, len(se.Metadata)+1)
	for k, v := range se.Metadata {
		md[k] = v
	}
	md["user_message"] = engine.UserMessage(se)
	http.DefaultErrorEncoder(w, r, se.WithMetadata(md))
}
