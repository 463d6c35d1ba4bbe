package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

func zapRequest(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
}
