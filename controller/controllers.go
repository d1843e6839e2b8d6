// controller/controllers.go
package controller

import (
	"github.com/talentedge/console-api/audit"
	"github.com/talentedge/console-api/formatter"
	"github.com/talentedge/console-api/integration"
)

type Controllers struct {
	Data  *DataController
	Chat  *ChatController
	Admin *AdminController
}

func InitializeControllers(layer *integration.Layer, f *formatter.Formatter, auditor *audit.Logger) *Controllers {
	return &Controllers{
		Data:  NewDataController(layer),
		Chat:  NewChatController(layer, f),
		Admin: NewAdminController(layer, auditor),
	}
}
