// Package account exposes the caller's profile, ledger history and the
// payment method catalogue.
package account

import (
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/pkg/service/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/service/transaction"
	"github.com/amirasaad/bankcore/pkg/service/user"
	"github.com/amirasaad/bankcore/webapi/common"
	"github.com/amirasaad/bankcore/webapi/middleware"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the account endpoints.
//
//   - GET /me               : profile and balances
//   - GET /transactions     : ledger history of the caller
//   - GET /payment-methods  : active payment methods
func Routes(
	app *fiber.App,
	userSvc *user.Service,
	txSvc *transaction.Service,
	pmSvc *paymentmethod.Service,
	cfg *config.App,
) {
	auth := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/me", auth, Me(userSvc))
	app.Get("/transactions", auth, Transactions(txSvc))
	app.Get("/payment-methods", auth, PaymentMethods(pmSvc))
}

// @Summary Get the current account
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response "Account fetched"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /me [get]
// @Security Bearer
func Me(svc *user.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		u, err := svc.Get(c.UserContext(), id.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToProfileDTO(u))
	}
}

// Transactions returns a handler that pages the caller's ledger history,
// filterable by type, status and date range.
func Transactions(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		f, err := common.ParseListFilter(c, false)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		page, err := svc.ListUserTransactions(c.UserContext(), id.UserID, f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", dto.MapPage(page, ToTransactionDTO))
	}
}

func PaymentMethods(svc *paymentmethod.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pms, err := svc.ListActive(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list payment methods", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment methods fetched", ToPaymentMethodDTOs(pms))
	}
}
