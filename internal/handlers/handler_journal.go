package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/dto"
	"github.com/bizsuite/gl_engine/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalSvc portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalSvc portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalSvc: journalSvc}
}

// registerJournalRoutes wires the journal lifecycle endpoints.
func registerJournalRoutes(rg *gin.RouterGroup, journalSvc portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalSvc)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.PUT("/:journalID", h.updateJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
		journals.POST("/:journalID/post", h.postJournal)
		journals.POST("/:journalID/void", h.voidJournal)
	}
}

func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID := resolveTenantID(c)

	journal, err := h.journalSvc.CreateJournal(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "Failed to create journal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func (h *journalHandler) getJournal(c *gin.Context) {
	journalID := c.Param("journalID")
	tenantID := resolveTenantID(c)

	journal, err := h.journalSvc.GetJournalByID(c.Request.Context(), tenantID, journalID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	tenantID := resolveTenantID(c)

	resp, err := h.journalSvc.ListJournals(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list journals")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID := resolveTenantID(c)

	journal, err := h.journalSvc.UpdateJournal(c.Request.Context(), tenantID, journalID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

func (h *journalHandler) postJournal(c *gin.Context) {
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID := resolveTenantID(c)

	journal, err := h.journalSvc.PostJournal(c.Request.Context(), tenantID, journalID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

func (h *journalHandler) voidJournal(c *gin.Context) {
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID := resolveTenantID(c)

	journal, err := h.journalSvc.VoidJournal(c.Request.Context(), tenantID, journalID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to void journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

func (h *journalHandler) deleteJournal(c *gin.Context) {
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID := resolveTenantID(c)

	if err := h.journalSvc.DeleteJournal(c.Request.Context(), tenantID, journalID, userID); err != nil {
		respondServiceError(c, err, "Failed to delete journal")
		return
	}

	c.Status(http.StatusNoContent)
}
