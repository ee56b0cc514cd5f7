package controllers_fx

import (
	"go.uber.org/fx"
	"nearbite/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewSearchController))
