package handlers

import (
	"net/http"

	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// FamilyHandler handles family (tenancy) requests.
type FamilyHandler struct {
	familyService portssvc.FamilySvcFacade
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(fs portssvc.FamilySvcFacade) *FamilyHandler {
	return &FamilyHandler{familyService: fs}
}

// registerFamilyRoutes sets up the authenticated family routes.
func registerFamilyRoutes(rg *gin.RouterGroup, fs portssvc.FamilySvcFacade) {
	h := NewFamilyHandler(fs)
	families := rg.Group("/families")
	{
		families.POST("", h.CreateFamily)
		families.GET("/mine", h.GetMyFamily)
		families.POST("/members", h.AddMember)
	}
}

// CreateFamily godoc
// @Summary Create family
// @Description Creates a family and makes the caller its first member.
// @Tags families
// @Accept json
// @Produce json
// @Param family body dto.CreateFamilyRequest true "Family details"
// @Success 201 {object} dto.FamilyResponse
// @Failure 400 {object} ErrorResponse "Caller already belongs to a family"
// @Router /families [post]
// @Security BearerAuth
func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	family, err := h.familyService.CreateFamily(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToFamilyResponse(family))
}

// GetMyFamily godoc
// @Summary Get my family
// @Description Retrieves the family the caller belongs to.
// @Tags families
// @Produce json
// @Success 200 {object} dto.FamilyResponse
// @Failure 400 {object} ErrorResponse "Caller has no family"
// @Failure 404 {object} ErrorResponse
// @Router /families/mine [get]
// @Security BearerAuth
func (h *FamilyHandler) GetMyFamily(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	family, err := h.familyService.GetMyFamily(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFamilyResponse(family))
}

// AddMember godoc
// @Summary Add family member
// @Description Adds an existing user, by username, to the caller's family.
// @Tags families
// @Accept json
// @Produce json
// @Param member body dto.AddFamilyMemberRequest true "Member to add"
// @Success 204 {string} string "No Content"
// @Failure 400 {object} ErrorResponse "Target already belongs to a family"
// @Failure 404 {object} ErrorResponse "Unknown username"
// @Router /families/members [post]
// @Security BearerAuth
func (h *FamilyHandler) AddMember(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.AddFamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if err := h.familyService.AddMember(c.Request.Context(), req, userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
