package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/dto"
	"github.com/bizsuite/gl_engine/internal/middleware"
)

// postingHandler exposes the adapter other subsystems call to record source
// documents in the ledger.
type postingHandler struct {
	postingSvc portssvc.PostingSvcFacade
}

func newPostingHandler(postingSvc portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingSvc: postingSvc}
}

// registerPostingRoutes wires the GL posting endpoint.
func registerPostingRoutes(rg *gin.RouterGroup, postingSvc portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingSvc)
	rg.POST("/gl/post-document", h.postDocument)
}

func (h *postingHandler) postDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID := resolveTenantID(c)

	result, err := h.postingSvc.PostDocumentToGL(c.Request.Context(), tenantID, req, actorUserID)
	if err != nil {
		respondServiceError(c, err, "Failed to post document to GL")
		return
	}

	status := http.StatusCreated
	if result.AlreadyPosted {
		status = http.StatusOK
	}
	c.JSON(status, result)
}
