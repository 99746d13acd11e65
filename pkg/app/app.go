package app

import (
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/service/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/service/transaction"
	"github.com/amirasaad/bankcore/pkg/service/user"
)

// App aggregates the services built from one set of dependencies.
type App struct {
	Deps                 config.Deps
	Config               *config.App
	TransactionService   *transaction.Service
	UserService          *user.Service
	PaymentMethodService *paymentmethod.Service
}

// New builds the services and registers the event handlers.
func New(deps config.Deps) *App {
	app := &App{
		Deps:                 deps,
		Config:               deps.Config,
		TransactionService:   transaction.NewService(deps),
		UserService:          user.New(deps),
		PaymentMethodService: paymentmethod.New(deps),
	}
	app.setupEventBus()
	return app
}
