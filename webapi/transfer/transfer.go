// Package transfer exposes internal and external transfers over HTTP.
package transfer

import (
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/domain/transfer"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/domain/workflow"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/pkg/service/transaction"
	"github.com/amirasaad/bankcore/webapi/common"
	"github.com/amirasaad/bankcore/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the transfer endpoints.
//
//   - POST /transfers/internal           : move funds to another user now
//   - POST /transfers/external           : hold funds for a local or international transfer
//   - POST /transfers/:id/verify         : verify the authorization codes of an international transfer
//   - POST /transfers/:id/cancel         : cancel a pending transfer and refund it
//   - GET  /transfers                    : list transfers the caller sent or received
//   - GET  /transfers/:id                : get one of those transfers
//   - GET  /admin/transfers              : list all transfers
//   - POST /admin/transfers/:id/process  : complete or fail an external transfer
func Routes(app *fiber.App, svc *transaction.Service, cfg *config.App) {
	auth := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/transfers/internal", auth, CreateInternal(svc))
	app.Post("/transfers/external", auth, CreateExternal(svc))
	app.Post("/transfers/:id/verify", auth, Verify(svc))
	app.Post("/transfers/:id/cancel", auth, Cancel(svc))
	app.Get("/transfers", auth, List(svc))
	app.Get("/transfers/:id", auth, Get(svc))

	admin := app.Group("/admin/transfers", auth, middleware.AdminOnly())
	admin.Get("/", ListAll(svc))
	admin.Post("/:id/process", Process(svc))
}

// @Summary Transfer to another user
// @Description Moves funds to another account number immediately.
// @Tags transfers
// @Accept json
// @Produce json
// @Param request body InternalRequest true "Transfer details"
// @Success 201 <class 'object'> common.Response "Transfer completed"
// @Failure 422 <class 'object'> common.ProblemDetails "Insufficient balance"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transfers/internal [post]
// @Security Bearer
func CreateInternal(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[InternalRequest](c)
		if input == nil {
			return err
		}
		t, err := svc.CreateInternalTransfer(c.UserContext(), id.UserID, input.RecipientAccountNumber, input.Amount, input.Description)
		if err != nil {
			log.Errorf("Failed to transfer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer completed", ToTransferDTO(t))
	}
}

// @Summary Transfer to an external bank
// @Description Holds the amount for a local or international transfer pending admin processing.
// @Tags transfers
// @Accept json
// @Produce json
// @Param request body ExternalRequest true "Transfer details"
// @Success 201 <class 'object'> common.Response "Transfer submitted"
// @Failure 422 <class 'object'> common.ProblemDetails "Insufficient balance"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transfers/external [post]
// @Security Bearer
func CreateExternal(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		input, err := common.BindAndValidate[ExternalRequest](c)
		if input == nil {
			return err
		}
		r := input.Recipient
		t, err := svc.CreateExternalTransfer(c.UserContext(), id.UserID, transfer.Type(input.Type), transfer.RecipientDetails{
			AccountNumber: r.AccountNumber,
			AccountName:   r.AccountName,
			BankName:      r.BankName,
			BankCode:      r.BankCode,
			Country:       r.Country,
			SwiftCode:     r.SwiftCode,
			RoutingNumber: r.RoutingNumber,
		}, input.Amount, input.Description)
		if err != nil {
			log.Errorf("Failed to create external transfer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer pending", ToTransferDTO(t))
	}
}

// Verify returns a handler that checks the caller's authorization codes.
// The problem detail names the failing code, e.g. "Invalid IMF code".
//
// @Summary Verify transfer codes
// @Tags transfers
// @Accept json
// @Produce json
// @Param id path string true "Transfer ID"
// @Param request body VerifyRequest true "Authorization codes"
// @Success 200 <class 'object'> common.Response "Codes verified"
// @Failure 404 <class 'object'> common.ProblemDetails "Transfer not found"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transfers/{id}/verify [post]
// @Security Bearer
func Verify(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		transferID, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transfer ID", err)
		}
		input, err := common.BindAndValidate[VerifyRequest](c)
		if input == nil {
			return err
		}
		t, err := svc.VerifyTransferCodes(c.UserContext(), transferID, id.UserID, user.Codes{
			Tax: input.TaxCode,
			Imf: input.ImfCode,
			Cot: input.CotCode,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Code verification failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Codes verified", ToTransferDTO(t))
	}
}

// @Summary Cancel a pending transfer
// @Description Cancels a pending external transfer and refunds the held amount.
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 <class 'object'> common.Response "Transfer cancelled"
// @Failure 404 <class 'object'> common.ProblemDetails "Transfer not found"
// @Failure 409 <class 'object'> common.ProblemDetails "Transfer already final"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transfers/{id}/cancel [post]
// @Security Bearer
func Cancel(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		transferID, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transfer ID", err)
		}
		t, err := svc.CancelTransfer(c.UserContext(), transferID, id.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to cancel transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer cancelled", ToTransferDTO(t))
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
		page, err := svc.ListUserTransfers(c.UserContext(), id.UserID, f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transfers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfers fetched", dto.MapPage(page, ToTransferDTO))
	}
}

func Get(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", domain.ErrUnauthorized)
		}
		transferID, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transfer ID", err)
		}
		t, err := svc.GetUserTransfer(c.UserContext(), id.UserID, transferID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer fetched", ToTransferDTO(t))
	}
}

func ListAll(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := common.ParseListFilter(c, true)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		page, err := svc.ListTransfers(c.UserContext(), f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transfers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfers fetched", dto.MapPage(page, ToTransferDTO))
	}
}

func Process(svc *transaction.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := middleware.CurrentIdentity(c)
		transferID, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transfer ID", err)
		}
		input, err := common.BindAndValidate[ProcessRequest](c)
		if input == nil {
			return err
		}
		t, err := svc.ProcessTransfer(c.UserContext(), transferID, workflow.Status(input.Decision), id.UserID, input.Note)
		if err != nil {
			log.Errorf("Failed to process transfer %s: %v", transferID, err)
			return common.ProblemDetailsJSON(c, "Failed to process transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer "+string(t.Status), ToTransferDTO(t))
	}
}
