package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizsuite/gl_engine/internal/core/ports/services"
	"github.com/bizsuite/gl_engine/internal/dto"
	"github.com/bizsuite/gl_engine/internal/middleware"
)

// accountHandler exposes the chart-of-accounts read surface and the
// on-demand balance recalculation endpoint.
type accountHandler struct {
	accountSvc portssvc.AccountSvcFacade
	balanceSvc portssvc.BalanceSvcFacade
	journalSvc portssvc.JournalSvcFacade
}

func newAccountHandler(accountSvc portssvc.AccountSvcFacade, balanceSvc portssvc.BalanceSvcFacade, journalSvc portssvc.JournalSvcFacade) *accountHandler {
	return &accountHandler{
		accountSvc: accountSvc,
		balanceSvc: balanceSvc,
		journalSvc: journalSvc,
	}
}

// registerAccountRoutes wires the account endpoints.
func registerAccountRoutes(rg *gin.RouterGroup, accountSvc portssvc.AccountSvcFacade, balanceSvc portssvc.BalanceSvcFacade, journalSvc portssvc.JournalSvcFacade) {
	h := newAccountHandler(accountSvc, balanceSvc, journalSvc)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/lines", h.listAccountLines)
		accounts.POST("/:accountID/recalculate", h.recalculateBalance)
	}
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	tenantID := resolveTenantID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.accountSvc.ListAccounts(c.Request.Context(), tenantID, limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID := resolveTenantID(c)
	accountID := c.Param("accountID")

	account, err := h.accountSvc.GetAccountByID(c.Request.Context(), tenantID, accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccountLines(c *gin.Context) {
	tenantID := resolveTenantID(c)
	accountID := c.Param("accountID")

	var params dto.ListJournalLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalSvc.ListLinesByAccount(c.Request.Context(), tenantID, accountID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list account lines")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// recalculateBalance forces a recomputation of one account's cached balance.
// Useful after manual data repair; normal mutations recalculate automatically.
func (h *accountHandler) recalculateBalance(c *gin.Context) {
	tenantID := resolveTenantID(c)
	accountID := c.Param("accountID")

	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Tenant ownership check before touching the balance.
	if _, err := h.accountSvc.GetAccountByID(c.Request.Context(), tenantID, accountID); err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}

	balance, err := h.balanceSvc.RecalculateAccount(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to recalculate balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accountID": accountID, "currentBalance": balance})
}
