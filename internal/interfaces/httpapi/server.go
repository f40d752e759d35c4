package httpapi

import (
	"net/http"

	"github.com/riskibarqy/championship-simulator/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled      bool
	CORSAllowedOrigins  []string
	CaptureRequestBody  bool
	RequestBodyMaxBytes int
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerChampionshipRoutes(mux, handler)
	registerTeamRoutes(mux, handler)

	var next http.Handler = recoverPanic(logger, mux)
	if cfg.CaptureRequestBody {
		next = CaptureRequestBody(cfg.RequestBodyMaxBytes, next)
	}

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, next)))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
