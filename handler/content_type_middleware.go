package handler

import (
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"mime"
	"net/http"

	"github.com/sirupsen/logrus"
)

// EnforceJSONMiddleware rejects mutating requests whose content type is not
// application/json before they reach any handler.
func EnforceJSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				logger.Log.WithFields(logrus.Fields{
					"method":       r.Method,
					"path":         r.URL.Path,
					"content_type": ct,
				}).Warn("Unsupported media type")
				common.NewAppError(http.StatusUnsupportedMediaType, common.CodeUnsupportedMedia,
					"Content-Type must be application/json", nil).Send(w)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
