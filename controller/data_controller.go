// controller/data_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	consoleerrors "github.com/talentedge/console-api/errors"
	"github.com/talentedge/console-api/integration"
	"github.com/talentedge/console-api/model"
	"github.com/talentedge/console-api/util"
)

// DataController exposes the integration facade over HTTP. It stays thin:
// parse, call, translate the error taxonomy to status codes.
type DataController struct {
	layer *integration.Layer
}

func NewDataController(layer *integration.Layer) *DataController {
	return &DataController{layer: layer}
}

// RegisterRoutes registers the API routes
func (dc *DataController) RegisterRoutes(r *gin.RouterGroup) {
	candidates := r.Group("/candidates")
	{
		candidates.GET("/:id/data", dc.GetUserData)
		candidates.GET("/:id/data/:type", dc.GetSpecificData)
		candidates.DELETE("/:id/cache", dc.InvalidateCache)
		candidates.GET("/:id/permission/:type", dc.HasPermission)
		candidates.POST("/:id/withdrawals/validate", dc.ValidateWithdrawal)
		candidates.POST("/:id/interviews/validate", dc.ValidateInterviewSlot)
	}
}

// GetUserData endpoint: the comprehensive profile.
func (dc *DataController) GetUserData(c *gin.Context) {
	subjectID := c.Param("id")
	requesterID := util.RequesterID(c)

	profile, err := dc.layer.GetUserData(c.Request.Context(), requesterID, subjectID)
	if err != nil {
		respondDataError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetSpecificData endpoint: one data type.
func (dc *DataController) GetSpecificData(c *gin.Context) {
	subjectID := c.Param("id")
	dataType := c.Param("type")
	requesterID := util.RequesterID(c)

	payload, err := dc.layer.GetSpecificData(c.Request.Context(), requesterID, subjectID, dataType)
	if err != nil {
		respondDataError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// InvalidateCache endpoint: drop a subject's cached entries.
func (dc *DataController) InvalidateCache(c *gin.Context) {
	subjectID := c.Param("id")
	dataType := c.Query("type")

	removed := dc.layer.InvalidateCache(c.Request.Context(), subjectID, dataType)
	c.JSON(http.StatusOK, gin.H{"invalidated": removed})
}

// HasPermission endpoint: dry-run permission check.
func (dc *DataController) HasPermission(c *gin.Context) {
	subjectID := c.Param("id")
	dataType := c.Param("type")
	requesterID := util.RequesterID(c)

	allowed := dc.layer.HasPermission(c.Request.Context(), requesterID, subjectID, dataType)
	c.JSON(http.StatusOK, gin.H{"allowed": allowed})
}

type withdrawalRequestBody struct {
	Amount float64 `json:"amount" binding:"required"`
}

// ValidateWithdrawal endpoint: check a proposed withdrawal amount against the
// candidate's balance and verification state.
func (dc *DataController) ValidateWithdrawal(c *gin.Context) {
	var body withdrawalRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req := model.WithdrawalRequest{CandidateID: c.Param("id"), Amount: body.Amount}
	ruleErr, err := dc.layer.ValidateWithdrawal(c.Request.Context(), util.RequesterID(c), req)
	if err != nil {
		respondDataError(c, err)
		return
	}
	respondRuleResult(c, ruleErr)
}

type interviewRequestBody struct {
	ProposedAt time.Time `json:"proposed_at" binding:"required"`
}

// ValidateInterviewSlot endpoint: check a proposed interview slot.
func (dc *DataController) ValidateInterviewSlot(c *gin.Context) {
	var body interviewRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req := model.InterviewRequest{CandidateID: c.Param("id"), ProposedAt: body.ProposedAt}
	ruleErr, err := dc.layer.ValidateInterviewSlot(c.Request.Context(), util.RequesterID(c), req)
	if err != nil {
		respondDataError(c, err)
		return
	}
	respondRuleResult(c, ruleErr)
}

func respondRuleResult(c *gin.Context, ruleErr *consoleerrors.RuleError) {
	if ruleErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"eligible": false,
			"code":     ruleErr.Code,
			"reason":   ruleErr.Reason,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligible": true})
}

// respondDataError maps the facade's error taxonomy to HTTP status codes.
func respondDataError(c *gin.Context, err error) {
	var denied *integration.PermissionDeniedError
	var limited *integration.RateLimitedError
	switch {
	case errors.As(err, &denied):
		c.JSON(http.StatusForbidden, gin.H{
			"error":        "Permission denied",
			"reason":       denied.Decision.Reason,
			"restrictions": denied.Decision.Restrictions,
		})
	case errors.As(err, &limited):
		c.Header("Retry-After", limited.Decision.RetryAfter.String())
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "Rate limit exceeded",
			"retry_after": limited.Decision.RetryAfter.String(),
		})
	case errors.Is(err, consoleerrors.ErrInvalidCandidateID),
		errors.Is(err, consoleerrors.ErrInvalidRequesterID),
		errors.Is(err, consoleerrors.ErrUnknownDataType):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, consoleerrors.ErrCandidateNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Candidate not found", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve data", err)
	}
}
