// controller/chat_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talentedge/console-api/formatter"
	"github.com/talentedge/console-api/integration"
	"github.com/talentedge/console-api/util"
)

// ChatController turns assembled candidate data into chat prose.
type ChatController struct {
	layer     *integration.Layer
	formatter *formatter.Formatter
}

func NewChatController(layer *integration.Layer, f *formatter.Formatter) *ChatController {
	return &ChatController{layer: layer, formatter: f}
}

// RegisterRoutes registers the API routes
func (cc *ChatController) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	{
		chat.POST("/respond", cc.Respond)
	}
}

type chatRequest struct {
	CandidateID string `json:"candidate_id" binding:"required"`
	Intent      string `json:"intent" binding:"required"`
}

// Respond endpoint: assemble the profile and render the intent's response.
// Data-assembly failures surface as errors; formatting failures degrade to
// the per-type fallback text inside the formatter.
func (cc *ChatController) Respond(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid chat request", err)
		return
	}
	requesterID := util.RequesterID(c)

	profile, err := cc.layer.GetUserData(c.Request.Context(), requesterID, req.CandidateID)
	if err != nil {
		respondDataError(c, err)
		return
	}

	message := cc.formatter.FormatIntentResponse(req.Intent, profile)
	c.JSON(http.StatusOK, gin.H{
		"candidate_id": req.CandidateID,
		"intent":       req.Intent,
		"message":      message,
	})
}
