// Package withdrawal exposes the withdrawal workflow over HTTP.
package withdrawal

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

// Routes registers the withdrawal endpoints.
//
//   - POST /withdrawals                    : request a withdrawal (holds the amount)
//   - GET  /withdrawals                    : list the caller's withdrawals
//   - GET  /withdrawals/:id                : get one of the caller's withdrawals
//   - GET  /admin/withdrawals              : list all withdrawals
//   - POST /admin/withdrawals/:id/process  : move to processing, approve or reject
func Routes(app *fiber.App, svc *transaction.Service, cfg *config.App) {
	auth := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/withdrawals", auth, Create(svc))
	app.Get("/withdrawals", auth, List(svc))
	app.Get("/withdrawals/:id", auth, Get(svc))

	admin := app.Group("/admin/withdrawals", auth, middleware.AdminOnly())
	admin.Get("/", ListAll(svc))
	admin.Post("/:id/process", Process(svc))
}

// Create returns a handler that holds the amount and records a pending withdrawal.
//
// @Summary Request a withdrawal
// @Description Holds the amount plus the payment method fee and records a pending withdrawal.
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Withdrawal details"
// @Success 201 <class 'object'> common.Response "Withdrawal request submitted"
// @Failure 422 <class 'object'> common.ProblemDetails "Insufficient balance"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /withdrawals [post]
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
		w, err := svc.CreateWithdrawal(c.UserContext(), id.UserID, transaction.WithdrawalRequest{
			Amount:          input.Amount,
			PaymentMethodID: uuid.MustParse(input.PaymentMethodID),
			PaymentDetails:  input.PaymentDetails,
		})
		if err != nil {
			log.Errorf("Failed to create withdrawal: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create withdrawal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdrawal request submitted", ToWithdrawalDTO(w))
	}
}

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
		page, err := svc.ListUserWithdrawals(c.UserContext(), id.UserID, f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list withdrawals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawals fetched", dto.MapPage(page, ToWithdrawalDTO))
	}
}

func Get(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		withdrawalID, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid withdrawal ID", err)
		}
		w, err := svc.GetUserWithdrawal(c.UserContext(), id.UserID, withdrawalID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch withdrawal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal fetched", ToWithdrawalDTO(w))
	}
}

func ListAll(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := common.ParseListFilter(c, true)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		page, err := svc.ListWithdrawals(c.UserContext(), f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list withdrawals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawals fetched", dto.MapPage(page, ToWithdrawalDTO))
	}
}

// Process returns a handler that applies an admin decision. Rejection
// refunds the held amount.
func Process(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := middleware.CurrentIdentity(c)
		withdrawalID, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid withdrawal ID", err)
		}
		input, err := common.BindAndValidate[ProcessRequest](c)
		if input == nil {
			return err
		}
		w, err := svc.ProcessWithdrawal(c.UserContext(), withdrawalID, workflow.Status(input.Decision), id.UserID, input.Note)
		if err != nil {
			log.Errorf("Failed to process withdrawal %s: %v", withdrawalID, err)
			return common.ProblemDetailsJSON(c, "Failed to process withdrawal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal "+string(w.Status), ToWithdrawalDTO(w))
	}
}
