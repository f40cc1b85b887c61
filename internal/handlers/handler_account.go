package handlers

import (
	"net/http"

	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles payment account requests.
type AccountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountService: as}
}

// registerAccountRoutes sets up the authenticated account routes.
func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade) {
	h := NewAccountHandler(as)
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:accountID", h.GetAccount)
		accounts.DELETE("/:accountID", h.DeactivateAccount)
	}
}

// CreateAccount godoc
// @Summary Create account
// @Description Creates a payment account in the caller's family.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Router /accounts [post]
// @Security BearerAuth
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// ListAccounts godoc
// @Summary List accounts
// @Description Retrieves a page of the caller's family accounts.
// @Tags accounts
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ErrorResponse
// @Router /accounts [get]
// @Security BearerAuth
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// GetAccount godoc
// @Summary Get account
// @Description Retrieves an account owned by the caller's family.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountID} [get]
// @Security BearerAuth
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// DeactivateAccount godoc
// @Summary Deactivate account
// @Description Marks an account inactive.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountID} [delete]
// @Security BearerAuth
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("accountID"), userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
