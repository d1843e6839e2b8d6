// controller/admin_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/talentedge/console-api/audit"
	"github.com/talentedge/console-api/controller"
	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/middleware"
)

func setupAdminRouter() (*gin.Engine, func()) {
	gin.SetMode(gin.TestMode)
	layer, cacheManager := newTestLayer()
	auditor := audit.NewLogger(audit.NewMemoryRepository(), nil, nil, 0)

	r := gin.New()
	r.Use(middleware.Requester())
	api := r.Group("/")
	controller.NewAdminController(layer, auditor).RegisterRoutes(api)
	return r, func() {
		cacheManager.Stop()
		auditor.Stop()
	}
}

func TestAdminController(t *testing.T) {
	logger.InitTestLogger()

	router, cleanup := setupAdminRouter()
	defer cleanup()

	t.Run("GetAccessStatistics", func(t *testing.T) {
		w := doRequest(router, "GET", "/admin/stats", "ADM_100", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var stats audit.Statistics
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, int64(0), stats.TotalRequests)
	})

	t.Run("CheckCompliance_Minimal", func(t *testing.T) {
		w := doRequest(router, "POST", "/admin/compliance/check", "ADM_100",
			`{"purpose":"chat_response","fields":["total_earned","pending_amount"]}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, true, payload["compliant"])
	})

	t.Run("CheckCompliance_ExcessFields", func(t *testing.T) {
		w := doRequest(router, "POST", "/admin/compliance/check", "ADM_100",
			`{"purpose":"chat_response","fields":["total_earned","bank_account_number"]}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var payload struct {
			Compliant    bool     `json:"compliant"`
			ExcessFields []string `json:"excess_fields"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.False(t, payload.Compliant)
		assert.Equal(t, []string{"bank_account_number"}, payload.ExcessFields)
	})

	t.Run("CheckCompliance_BadBody", func(t *testing.T) {
		w := doRequest(router, "POST", "/admin/compliance/check", "ADM_100", `{"purpose":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetRetentionWindow", func(t *testing.T) {
		w := doRequest(router, "GET", "/admin/retention/payment", "ADM_100", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var payload struct {
			DataType      string `json:"data_type"`
			RetentionDays int    `json:"retention_days"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, "payment", payload.DataType)
		assert.Equal(t, 30, payload.RetentionDays, "financial data has the short window")

		w = doRequest(router, "GET", "/admin/retention/jobs", "ADM_100", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, 90, payload.RetentionDays)
	})
}
