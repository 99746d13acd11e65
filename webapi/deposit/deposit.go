// Package deposit exposes the deposit workflow over HTTP.
package deposit

import (
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/pkg/service/transaction"
	"github.com/amirasaad/bankcore/webapi/common"
	"github.com/amirasaad/bankcore/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers the deposit endpoints.
//
//   - POST /deposits                    : request a deposit
//   - GET  /deposits                    : list the caller's deposits
//   - GET  /deposits/:id                : get one of the caller's deposits
//   - GET  /admin/deposits              : list all deposits
//   - POST /admin/deposits/:id/process  : approve or reject a deposit
func Routes(app *fiber.App, svc *transaction.Service, cfg *config.App) {
	auth := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/deposits", auth, Create(svc))
	app.Get("/deposits", auth, List(svc))
	app.Get("/deposits/:id", auth, Get(svc))

	admin := app.Group("/admin/deposits", auth, middleware.AdminOnly())
	admin.Get("/", ListAll(svc))
	admin.Post("/:id/process", Process(svc))
}

// Create returns a handler that records a pending deposit for the caller.
//
// @Summary Request a deposit
// @Description Records a pending deposit through an active payment method. The balance changes only when an admin approves it.
// @Tags deposits
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Deposit details"
// @Success 201 <class 'object'> common.Response "Deposit request submitted"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /deposits [post]
// @Security Bearer
func Create(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		d, err := svc.CreateDeposit(c.UserContext(), id.UserID, transaction.DepositRequest{
			Amount:          input.Amount,
			PaymentMethodID: uuid.MustParse(input.PaymentMethodID),
			ProofImage:      input.ProofImage,
		})
		if err != nil {
			log.Errorf("Failed to create deposit: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit request submitted", ToDepositDTO(d))
	}
}

// List returns a handler that pages the caller's deposits.
func List(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		f, err := common.ParseListFilter(c, false)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		page, err := svc.ListUserDeposits(c.UserContext(), id.UserID, f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list deposits", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposits fetched", dto.MapPage(page, ToDepositDTO))
	}
}

// Get returns a handler that fetches one of the caller's deposits.
func Get(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		depositID, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid deposit ID", err)
		}
		d, err := svc.GetUserDeposit(c.UserContext(), id.UserID, depositID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit fetched", ToDepositDTO(d))
	}
}

// ListAll returns a handler that pages every deposit for admins.
func ListAll(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := common.ParseListFilter(c, true)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		page, err := svc.ListDeposits(c.UserContext(), f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list deposits", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposits fetched", dto.MapPage(page, ToDepositDTO))
	}
}

// Process returns a handler that applies an admin decision to a deposit.
func Process(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := middleware.CurrentIdentity(c)
		depositID, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid deposit ID", err)
		}
		input, err := common.BindAndValidate[ProcessRequest](c)
		if input == nil {
			return err
		}
		d, err := svc.ProcessDeposit(c.UserContext(), depositID, workflow.Status(input.Decision), id.UserID, input.Note)
		if err != nil {
			log.Errorf("Failed to process deposit %s: %v", depositID, err)
			return common.ProblemDetailsJSON(c, "Failed to process deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit "+string(d.Status), ToDepositDTO(d))
	}
}
