package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/bizsuite/gl_engine/internal/apperrors"
	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/core/services"
	"github.com/bizsuite/gl_engine/internal/middleware"
	"github.com/bizsuite/gl_engine/internal/platform/config"
)

// tenantHeader carries an explicit tenant override. It wins over the tenant
// claim in the session token.
const tenantHeader = "X-Tenant-ID"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	svcs *portssvc.ServiceContainer,
) {
	registerDecimalValidation()

	// Add health check route
	r.GET("/health", healthCheck)

	setupAPIV1Routes(r, cfg, svcs)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	svcs *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerJournalRoutes(v1, svcs.Journal)
	registerAccountRoutes(v1, svcs.Account, svcs.Balance, svcs.Journal)
	registerPostingRoutes(v1, svcs.Posting)
}

// registerDecimalValidation teaches the binding validator to treat
// decimal.Decimal fields as numbers so numeric tags (gte) apply to them.
func registerDecimalValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// resolveTenantID determines the tenant for a request: an explicit
// X-Tenant-ID header wins, otherwise the session token's tenant claim is
// used. Empty means no tenant could be resolved; services reject that.
func resolveTenantID(c *gin.Context) string {
	if headerTenant := c.GetHeader(tenantHeader); headerTenant != "" {
		return headerTenant
	}
	if sessionTenant, ok := middleware.GetSessionTenantIDFromContext(c); ok {
		return sessionTenant
	}
	return ""
}

// respondServiceError maps service-layer errors to HTTP responses. Typed
// business errors surface their message; everything else gets the fallback.
func respondServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var imbalanceErr *services.ImbalanceError
	var lockedErr *services.JournalLockedError
	var missingAccErr *services.MissingGLAccountError

	switch {
	case errors.Is(err, apperrors.ErrNoActiveTenant):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No tenant resolved: supply X-Tenant-ID or use a token with a tenant claim"})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.As(err, &imbalanceErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": imbalanceErr.Error()})
	case errors.As(err, &lockedErr):
		c.JSON(http.StatusConflict, gin.H{"error": lockedErr.Error()})
	case errors.As(err, &missingAccErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": missingAccErr.Error()})
	case errors.Is(err, services.ErrOutsideOpenPeriod):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccountNotFound), errors.Is(err, services.ErrNoJournalLines), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
