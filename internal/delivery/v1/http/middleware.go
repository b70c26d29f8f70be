package http

import (
	"context"
	"net/http"
	"time"

	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	visitorCookie    = "visitor_id"
	visitorCookieAge = 365 * 24 * time.Hour
)

type visitorKey struct{}

// visitorMiddleware выдаёт посетителю идентификатор в cookie, если его ещё нет.
// Идентификатор адресует локальное хранилище посетителя.
func visitorMiddleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ""
			if c, err := r.Cookie(visitorCookie); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					visitorID = id.String()
				}
			}

			if visitorID == "" {
				visitorID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     visitorCookie,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int(visitorCookieAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), visitorKey{}, visitorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VisitorFromCtx возвращает идентификатор посетителя, выданный visitorMiddleware.
func VisitorFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorKey{}).(string)
	return id, ok && id != ""
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.Infof("%s %s %d %dB %s request_id=%s",
					r.Method,
					r.URL.Path,
					ww.Status(),
					ww.BytesWritten(),
					time.Since(start),
					middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
