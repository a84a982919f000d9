package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// アクセスログ（1リクエスト1行）
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			//エラーはここでレスポンスにしてからステータスを読む
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			}

			log.LogAttrs(req.Context(), level, "request",
				slog.String("method", req.Method),
				slog.String("path", c.Path()),
				slog.String("uri", req.RequestURI),
				slog.Int("status", status),
				slog.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}
