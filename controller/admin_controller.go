// controller/admin_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentedge/console-api/audit"
	"github.com/talentedge/console-api/integration"
	"github.com/talentedge/console-api/util"
	helper_util "github.com/talentedge/console-api/util/helper"
)

// AdminController serves the operational views: access statistics, cache
// health and the raised security events.
type AdminController struct {
	layer   *integration.Layer
	auditor *audit.Logger
}

func NewAdminController(layer *integration.Layer, auditor *audit.Logger) *AdminController {
	return &AdminController{layer: layer, auditor: auditor}
}

// RegisterRoutes registers the API routes
func (ac *AdminController) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/stats", ac.GetAccessStatistics)
		admin.GET("/cache", ac.GetCacheStats)
		admin.GET("/security-events", ac.GetSecurityEvents)
		admin.GET("/records", ac.QueryRecords)
		admin.POST("/compliance/check", ac.CheckCompliance)
		admin.GET("/retention/:type", ac.GetRetentionWindow)
	}
}

// GetAccessStatistics endpoint.
func (ac *AdminController) GetAccessStatistics(c *gin.Context) {
	filter := audit.StatisticsFilter{
		UserID:   c.Query("user_id"),
		DataType: c.Query("data_type"),
	}
	c.JSON(http.StatusOK, ac.layer.AccessStatistics(filter))
}

// GetCacheStats endpoint.
func (ac *AdminController) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, ac.layer.CacheStats())
}

// GetSecurityEvents endpoint.
func (ac *AdminController) GetSecurityEvents(c *gin.Context) {
	c.JSON(http.StatusOK, ac.auditor.SecurityEvents())
}

// QueryRecords endpoint: search the durable audit trail within a time frame.
func (ac *AdminController) QueryRecords(c *gin.Context) {
	from, err := helper_util.ParseTime(c.Query("from"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
		return
	}
	to, err := helper_util.ParseTimeOr(c.Query("to"), time.Now())
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
		return
	}

	records, err := ac.auditor.QueryRecords(c.Request.Context(), from, to, c.Query("user_id"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit records", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

type complianceCheckBody struct {
	Purpose string   `json:"purpose" binding:"required"`
	Fields  []string `json:"fields" binding:"required"`
}

// CheckCompliance endpoint: data-minimization review of a field list against
// a declared purpose.
func (ac *AdminController) CheckCompliance(c *gin.Context) {
	var body complianceCheckBody
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid compliance check request", err)
		return
	}

	excess := ac.layer.CheckCompliance(body.Purpose, body.Fields)
	c.JSON(http.StatusOK, gin.H{
		"purpose":       body.Purpose,
		"compliant":     len(excess) == 0,
		"excess_fields": excess,
	})
}

// GetRetentionWindow endpoint: how long records about a data type are kept.
func (ac *AdminController) GetRetentionWindow(c *gin.Context) {
	dataType := c.Param("type")
	window := ac.layer.RetentionWindow(dataType)
	c.JSON(http.StatusOK, gin.H{
		"data_type":      dataType,
		"retention_days": int(window.Hours() / 24),
	})
}
