// Package admin exposes user maintenance and the payment method catalogue
// to admins.
package admin

import (
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain/ledger"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	paymentmethodsvc "github.com/amirasaad/bankcore/pkg/service/paymentmethod"
	usersvc "github.com/amirasaad/bankcore/pkg/service/user"
	"github.com/amirasaad/bankcore/webapi/account"
	"github.com/amirasaad/bankcore/webapi/common"
	"github.com/amirasaad/bankcore/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the admin endpoints. Every route requires the admin role.
//
//   - POST  /admin/users               : create a user
//   - GET   /admin/users/:id           : get a user
//   - PATCH /admin/users/:id/kyc       : set the KYC status
//   - PATCH /admin/users/:id/status    : set the account status
//   - PATCH /admin/users/:id/codes     : set the authorization codes
//   - POST  /admin/users/:id/adjust    : credit or debit a balance
//   - GET   /admin/payment-methods     : list all payment methods
//   - POST  /admin/payment-methods     : create a payment method
//   - PUT   /admin/payment-methods/:id : update a payment method
func Routes(app *fiber.App, userSvc *usersvc.Service, pmSvc *paymentmethodsvc.Service, cfg *config.App) {
	auth := middleware.JwtProtected(cfg.Auth.Jwt)

	users := app.Group("/admin/users", auth, middleware.AdminOnly())
	users.Post("/", CreateUser(userSvc))
	users.Get("/:id", GetUser(userSvc))
	users.Patch("/:id/kyc", UpdateKyc(userSvc))
	users.Patch("/:id/status", UpdateStatus(userSvc))
	users.Patch("/:id/codes", SetCodes(userSvc))
	users.Post("/:id/adjust", Adjust(userSvc))

	methods := app.Group("/admin/payment-methods", auth, middleware.AdminOnly())
	methods.Get("/", ListPaymentMethods(pmSvc))
	methods.Post("/", CreatePaymentMethod(pmSvc))
	methods.Put("/:id", UpdatePaymentMethod(pmSvc))
}

func CreateUser(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateUserRequest](c)
		if input == nil {
			return err
		}
		u, err := svc.Create(c.UserContext(), usersvc.CreateRequest{
			Email:         input.Email,
			FullName:      input.FullName,
			AccountNumber: input.AccountNumber,
			Currency:      input.Currency,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User created", account.ToProfileDTO(u))
	}
}

func GetUser(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User fetched", account.ToProfileDTO(u))
	}
}

func UpdateKyc(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[KycRequest](c)
		if input == nil {
			return err
		}
		u, err := svc.UpdateKycStatus(c.UserContext(), id, user.KycStatus(input.Status))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update KYC status", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "KYC status updated", account.ToProfileDTO(u))
	}
}

func UpdateStatus(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[StatusRequest](c)
		if input == nil {
			return err
		}
		u, err := svc.UpdateStatus(c.UserContext(), id, user.Status(input.Status))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update status", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Status updated", account.ToProfileDTO(u))
	}
}

func SetCodes(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[CodesRequest](c)
		if input == nil {
			return err
		}
		u, err := svc.SetAuthorizationCodes(c.UserContext(), id, user.Codes{
			Tax: input.TaxCode,
			Imf: input.ImfCode,
			Cot: input.CotCode,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set codes", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Codes updated", account.ToProfileDTO(u))
	}
}

// Adjust returns a handler that posts an admin credit or debit through the
// ledger.
func Adjust(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, _ := middleware.CurrentIdentity(c)
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[AdjustRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.AdjustBalance(c.UserContext(), id, usersvc.Adjustment{
			Field:       user.BalanceField(input.Field),
			Amount:      input.Amount,
			Direction:   input.Direction,
			Kind:        ledger.Type(input.Type),
			Description: input.Description,
		}, admin.UserID)
		if err != nil {
			log.Errorf("Failed to adjust balance of %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to adjust balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance adjusted", account.ToTransactionDTO(tx))
	}
}

func ListPaymentMethods(svc *paymentmethodsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pms, err := svc.List(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list payment methods", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment methods fetched", account.ToPaymentMethodDTOs(pms))
	}
}

func CreatePaymentMethod(svc *paymentmethodsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[PaymentMethodRequest](c)
		if input == nil {
			return err
		}
		pm, err := svc.Create(c.UserContext(), input.input())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create payment method", err)
		}
		if input.Status == string(paymentmethod.StatusInactive) {
			if pm, err = svc.SetStatus(c.UserContext(), pm.ID, paymentmethod.StatusInactive); err != nil {
				return common.ProblemDetailsJSON(c, "Failed to create payment method", err)
			}
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Payment method created", account.ToPaymentMethodDTO(pm))
	}
}

// UpdatePaymentMethod replaces the editable fields and, when given, the status.
func UpdatePaymentMethod(svc *paymentmethodsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid payment method ID", err)
		}
		input, err := common.BindAndValidate[PaymentMethodRequest](c)
		if input == nil {
			return err
		}
		pm, err := svc.Update(c.UserContext(), id, input.input())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update payment method", err)
		}
		if input.Status != "" && input.Status != string(pm.Status) {
			if pm, err = svc.SetStatus(c.UserContext(), id, paymentmethod.Status(input.Status)); err != nil {
				return common.ProblemDetailsJSON(c, "Failed to update payment method", err)
			}
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment method updated", account.ToPaymentMethodDTO(pm))
	}
}
