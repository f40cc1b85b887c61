package handlers

import (
	"net/http"

	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// LiabilityHandler handles liability, installment plan and BNPL detection
// requests.
type LiabilityHandler struct {
	liabilityService portssvc.LiabilitySvcFacade
}

// NewLiabilityHandler creates a new LiabilityHandler.
func NewLiabilityHandler(ls portssvc.LiabilitySvcFacade) *LiabilityHandler {
	return &LiabilityHandler{liabilityService: ls}
}

// RegisterLiabilityRoutes sets up the authenticated liability routes. The
// fixed-path routes are declared before the parameterized ones so gin does not
// treat "summary" or "upcoming" as liability IDs.
func RegisterLiabilityRoutes(rg *gin.RouterGroup, ls portssvc.LiabilitySvcFacade) {
	h := NewLiabilityHandler(ls)
	liabilities := rg.Group("/liabilities")
	{
		liabilities.POST("", h.CreateLiability)
		liabilities.GET("", h.ListLiabilities)
		liabilities.GET("/summary", h.GetSummary)
		liabilities.GET("/upcoming", h.GetUpcomingPayments)
		liabilities.POST("/detect-bnpl", h.DetectBNPL)
		liabilities.GET("/:liabilityID", h.GetLiability)
		liabilities.PATCH("/:liabilityID", h.UpdateLiability)
		liabilities.DELETE("/:liabilityID", h.DeleteLiability)
		liabilities.POST("/:liabilityID/installment-plan", h.CreateInstallmentPlan)
		liabilities.GET("/:liabilityID/installment-plan/:planID", h.GetInstallmentPlan)
		liabilities.GET("/:liabilityID/installments/:installmentID", h.GetInstallment)
		liabilities.PATCH("/:liabilityID/installments/:installmentID/pay", h.MarkInstallmentPaid)
	}
}

// CreateLiability godoc
// @Summary Create liability
// @Description Creates a liability in the caller's family. Credit cards require a positive creditLimit; BNPL, loans and mortgages require a positive originalAmount; BNPL additionally requires a provider.
// @Tags liabilities
// @Accept json
// @Produce json
// @Param liability body dto.CreateLiabilityRequest true "Liability details"
// @Success 201 {object} dto.LiabilityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Linked account not found"
// @Router /liabilities [post]
// @Security BearerAuth
func (h *LiabilityHandler) CreateLiability(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	liability, err := h.liabilityService.CreateLiability(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLiabilityResponse(liability))
}

// ListLiabilities godoc
// @Summary List liabilities
// @Description Retrieves a filtered, paginated envelope of the caller's family liabilities.
// @Tags liabilities
// @Produce json
// @Param status query string false "Filter by status" Enums(ACTIVE, CLOSED, DEFAULTED)
// @Param type query string false "Filter by type" Enums(CREDIT_CARD, LOAN, MORTGAGE, BNPL, OTHER)
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListLiabilitiesResponse
// @Failure 400 {object} ErrorResponse
// @Router /liabilities [get]
// @Security BearerAuth
func (h *LiabilityHandler) ListLiabilities(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var params dto.ListLiabilitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	resp, err := h.liabilityService.ListLiabilities(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetLiability godoc
// @Summary Get liability
// @Description Retrieves a liability owned by the caller's family, including derived credit fields.
// @Tags liabilities
// @Produce json
// @Param liabilityID path string true "Liability ID"
// @Success 200 {object} dto.LiabilityResponse
// @Failure 404 {object} ErrorResponse
// @Router /liabilities/{liabilityID} [get]
// @Security BearerAuth
func (h *LiabilityHandler) GetLiability(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	liability, err := h.liabilityService.GetLiabilityByID(c.Request.Context(), c.Param("liabilityID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLiabilityResponse(liability))
}

// UpdateLiability godoc
// @Summary Update liability
// @Description Applies a partial update to a liability. Only fields present in the request change.
// @Tags liabilities
// @Accept json
// @Produce json
// @Param liabilityID path string true "Liability ID"
// @Param liability body dto.UpdateLiabilityRequest true "Fields to update"
// @Success 200 {object} dto.LiabilityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /liabilities/{liabilityID} [patch]
// @Security BearerAuth
func (h *LiabilityHandler) UpdateLiability(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	liability, err := h.liabilityService.UpdateLiability(c.Request.Context(), c.Param("liabilityID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLiabilityResponse(liability))
}

// DeleteLiability godoc
// @Summary Delete liability
// @Description Hard deletes a liability together with its installment plans and installments.
// @Tags liabilities
// @Produce json
// @Param liabilityID path string true "Liability ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /liabilities/{liabilityID} [delete]
// @Security BearerAuth
func (h *LiabilityHandler) DeleteLiability(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.liabilityService.DeleteLiability(c.Request.Context(), c.Param("liabilityID"), userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateInstallmentPlan godoc
// @Summary Create installment plan
// @Description Atomically creates a plan and its monthly installment schedule under a liability. Due dates step by calendar month from the start date, clamping to short months.
// @Tags liabilities
// @Accept json
// @Produce json
// @Param liabilityID path string true "Liability ID"
// @Param plan body dto.CreateInstallmentPlanRequest true "Plan details"
// @Success 201 {object} dto.InstallmentPlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /liabilities/{liabilityID}/installment-plan [post]
// @Security BearerAuth
func (h *LiabilityHandler) CreateInstallmentPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateInstallmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	plan, installments, err := h.liabilityService.CreateInstallmentPlan(c.Request.Context(), c.Param("liabilityID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInstallmentPlanResponse(plan, installments))
}

// GetInstallmentPlan godoc
// @Summary Get installment plan
// @Description Retrieves an installment plan and its full installment schedule under a liability.
// @Tags liabilities
// @Produce json
// @Param liabilityID path string true "Liability ID"
// @Param planID path string true "Plan ID"
// @Success 200 {object} dto.InstallmentPlanResponse
// @Failure 404 {object} ErrorResponse
// @Router /liabilities/{liabilityID}/installment-plan/{planID} [get]
// @Security BearerAuth
func (h *LiabilityHandler) GetInstallmentPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	plan, installments, err := h.liabilityService.GetInstallmentPlan(c.Request.Context(), c.Param("liabilityID"), c.Param("planID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentPlanResponse(plan, installments))
}

// GetInstallment godoc
// @Summary Get installment
// @Description Retrieves a single installment belonging to a plan under a liability.
// @Tags liabilities
// @Produce json
// @Param liabilityID path string true "Liability ID"
// @Param installmentID path string true "Installment ID"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /liabilities/{liabilityID}/installments/{installmentID} [get]
// @Security BearerAuth
func (h *LiabilityHandler) GetInstallment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	installment, err := h.liabilityService.GetInstallment(c.Request.Context(), c.Param("liabilityID"), c.Param("installmentID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(installment))
}

// MarkInstallmentPaid godoc
// @Summary Mark installment paid
// @Description Transitions an installment to paid exactly once, decrementing the plan counter and the liability balance. A second attempt fails with 400.
// @Tags liabilities
// @Accept json
// @Produce json
// @Param liabilityID path string true "Liability ID"
// @Param installmentID path string true "Installment ID"
// @Param payment body dto.MarkInstallmentPaidRequest false "Optional ledger transaction link"
// @Success 200 {object} dto.InstallmentPlanResponse
// @Failure 400 {object} ErrorResponse "Installment already paid"
// @Failure 404 {object} ErrorResponse
// @Router /liabilities/{liabilityID}/installments/{installmentID}/pay [patch]
// @Security BearerAuth
func (h *LiabilityHandler) MarkInstallmentPaid(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.MarkInstallmentPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
	}
	installment, plan, err := h.liabilityService.MarkInstallmentPaid(c.Request.Context(), c.Param("liabilityID"), c.Param("installmentID"), req.TransactionID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"installment": dto.ToInstallmentResponse(installment),
		"plan":        dto.ToInstallmentPlanResponse(plan, nil),
	})
}

// GetUpcomingPayments godoc
// @Summary Upcoming payments
// @Description Merges unpaid installments due within the window with synthesized next minimum payments for active credit cards, sorted ascending by due date. Overdue unpaid installments are included.
// @Tags liabilities
// @Produce json
// @Param days query int false "Window in days" default(30)
// @Success 200 {array} dto.UpcomingPaymentResponse
// @Failure 400 {object} ErrorResponse
// @Router /liabilities/upcoming [get]
// @Security BearerAuth
func (h *LiabilityHandler) GetUpcomingPayments(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var params dto.UpcomingPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	payments, err := h.liabilityService.GetUpcomingPayments(c.Request.Context(), userID, params.Days)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUpcomingPaymentResponses(payments))
}

// GetSummary godoc
// @Summary Liabilities summary
// @Description Aggregates the caller's family active liabilities: totals, overall credit utilization, per-type breakdown and the 30-day upcoming payment slice (installments plus credit-card minimums).
// @Tags liabilities
// @Produce json
// @Success 200 {object} dto.LiabilitiesSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Router /liabilities/summary [get]
// @Security BearerAuth
func (h *LiabilityHandler) GetSummary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	summary, err := h.liabilityService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DetectBNPL godoc
// @Summary Detect BNPL provider
// @Description Matches transaction text against the known buy-now-pay-later provider patterns. Returns 200 with the match, or 200 with detected=false when nothing matches.
// @Tags liabilities
// @Accept json
// @Produce json
// @Param transaction body dto.DetectBNPLRequest true "Transaction text"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /liabilities/detect-bnpl [post]
// @Security BearerAuth
func (h *LiabilityHandler) DetectBNPL(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}
	var req dto.DetectBNPLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	match := h.liabilityService.DetectBNPL(c.Request.Context(), req.Description, req.MerchantName)
	if match == nil {
		c.JSON(http.StatusOK, gin.H{"detected": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"detected": true,
		"match": dto.BNPLDetectionResponse{
			Provider:       match.Provider,
			Confidence:     match.Confidence,
			MatchedPattern: match.MatchedPattern,
			SuggestedName:  match.SuggestedName,
		},
	})
}
