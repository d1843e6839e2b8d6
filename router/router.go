// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentedge/console-api/controller"
	"github.com/talentedge/console-api/middleware"
	"github.com/talentedge/console-api/validation"
)

func SetupRouter(
	controllers *controller.Controllers,
	attemptStore validation.AttemptStore,
	rateLimitRequests int64,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(attemptStore, rateLimitRequests, rateLimitDuration))
	router.Use(middleware.Requester())

	api := router.Group("/api/v1")

	controllers.Data.RegisterRoutes(api)
	controllers.Chat.RegisterRoutes(api)
	controllers.Admin.RegisterRoutes(api)

	return router
}
