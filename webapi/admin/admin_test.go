package admin_test

import (
	"testing"

	"github.com/amirasaad/bankcore/webapi/account"
	"github.com/amirasaad/bankcore/webapi/middleware"
	"github.com/amirasaad/bankcore/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AdminTestSuite struct {
	testutils.WebTestSuite
}

func TestAdminSuite(t *testing.T) {
	suite.Run(t, new(AdminTestSuite))
}

func (s *AdminTestSuite) TestCreateUser() {
	resp := s.MakeRequest(fiber.MethodPost, "/admin/users",
		`{"email":"jane@example.com","full_name":"Jane Roe","currency":"eur"}`, s.AdminToken())
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var p account.ProfileDTO
	s.DecodeData(resp, &p)
	s.Equal("EUR", p.Currency)
	s.Len(p.AccountNumber, 10)
	s.Equal("active", p.Status)

	resp = s.MakeRequest(fiber.MethodPost, "/admin/users", `{"email":"not-an-email"}`, s.AdminToken())
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)
}

func (s *AdminTestSuite) TestUserMaintenance() {
	u := s.CreateUser("0")
	base := "/admin/users/" + u.ID.String()

	resp := s.MakeRequest(fiber.MethodPatch, base+"/kyc", `{"status":"approved"}`, s.AdminToken())
	var p account.ProfileDTO
	s.DecodeData(resp, &p)
	s.Equal("approved", p.KycStatus)

	resp = s.MakeRequest(fiber.MethodPatch, base+"/status", `{"status":"suspended"}`, s.AdminToken())
	s.DecodeData(resp, &p)
	s.Equal("suspended", p.Status)

	resp = s.MakeRequest(fiber.MethodPatch, base+"/status", `{"status":"frozen"}`, s.AdminToken())
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)

	resp = s.MakeRequest(fiber.MethodPatch, base+"/codes", `{"tax_code":" TAX-9 ","imf_code":"IMF-9"}`, s.AdminToken())
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	users, err := s.Uow.UserRepository()
	s.Require().NoError(err)
	stored, err := users.Get(s.T().Context(), u.ID)
	s.Require().NoError(err)
	s.Equal("TAX-9", stored.TaxCode)
	s.Equal("IMF-9", stored.ImfCode)
}

func (s *AdminTestSuite) TestAdjustBalance() {
	u := s.CreateUser("100")
	path := "/admin/users/" + u.ID.String() + "/adjust"

	resp := s.MakeRequest(fiber.MethodPost, path,
		`{"field":"balance","amount":"25","direction":"credit","type":"bonus","description":"welcome"}`, s.AdminToken())
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var tx account.TransactionDTO
	s.DecodeData(resp, &tx)
	s.Equal("bonus", tx.Type)
	s.True(decimal.NewFromInt(100).Equal(tx.BalanceBefore))
	s.True(decimal.NewFromInt(125).Equal(tx.BalanceAfter))

	resp = s.MakeRequest(fiber.MethodPost, path,
		`{"field":"balance","amount":"500","direction":"debit","type":"fee"}`, s.AdminToken())
	s.Equal(fiber.StatusUnprocessableEntity, s.DecodeProblem(resp).Status)
	s.True(decimal.NewFromInt(125).Equal(s.Balance(u.ID)))

	resp = s.MakeRequest(fiber.MethodPost, path,
		`{"field":"balance","amount":"5","direction":"credit","type":"deposit"}`, s.AdminToken())
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)

	resp = s.MakeRequest(fiber.MethodPost, path,
		`{"field":"balance","amount":"5","direction":"credit","type":"bonus"}`, s.Token(u.ID, middleware.RoleUser))
	s.Equal(fiber.StatusForbidden, s.DecodeProblem(resp).Status)
}

func (s *AdminTestSuite) TestPaymentMethodCatalogue() {
	resp := s.MakeRequest(fiber.MethodPost, "/admin/payment-methods",
		`{"name":"Card","type":"card","min_amount":10,"max_amount":5000,"fee":"2.5","fee_type":"percentage"}`, s.AdminToken())
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var pm account.PaymentMethodDTO
	s.DecodeData(resp, &pm)
	s.Equal("active", pm.Status)

	resp = s.MakeRequest(fiber.MethodPut, "/admin/payment-methods/"+pm.ID,
		`{"name":"Card","type":"card","min_amount":20,"max_amount":5000,"fee":"2","fee_type":"percentage","status":"inactive"}`, s.AdminToken())
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var updated account.PaymentMethodDTO
	s.DecodeData(resp, &updated)
	s.Equal("inactive", updated.Status)
	s.True(decimal.NewFromInt(20).Equal(updated.MinAmount))

	resp = s.MakeRequest(fiber.MethodGet, "/admin/payment-methods", "", s.AdminToken())
	var all []account.PaymentMethodDTO
	s.DecodeData(resp, &all)
	s.Len(all, 1)

	resp = s.MakeRequest(fiber.MethodPost, "/admin/payment-methods",
		`{"name":"Bad","type":"bank","min_amount":100,"max_amount":10,"fee":0,"fee_type":"fixed"}`, s.AdminToken())
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)
}
