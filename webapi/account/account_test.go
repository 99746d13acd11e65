package account_test

import (
	"testing"

	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/webapi/account"
	"github.com/amirasaad/bankcore/webapi/middleware"
	"github.com/amirasaad/bankcore/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AccountTestSuite struct {
	testutils.WebTestSuite
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}

func (s *AccountTestSuite) TestMe() {
	u := s.CreateUser("42.5")
	resp := s.MakeRequest(fiber.MethodGet, "/me", "", s.Token(u.ID, middleware.RoleUser))
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var p account.ProfileDTO
	s.DecodeData(resp, &p)
	s.Equal(u.AccountNumber, p.AccountNumber)
	s.True(decimal.RequireFromString("42.5").Equal(p.Balance))
	s.True(p.BitcoinBalance.IsZero())
}

func (s *AccountTestSuite) TestMeUnknownUser() {
	resp := s.MakeRequest(fiber.MethodGet, "/me", "", s.Token(uuid.New(), middleware.RoleUser))
	s.Equal(fiber.StatusNotFound, s.DecodeProblem(resp).Status)
}

func (s *AccountTestSuite) TestTransactionsHistory() {
	sender := s.CreateUser("300")
	recipient := s.CreateUser("0")
	token := s.Token(sender.ID, middleware.RoleUser)

	for range 3 {
		resp := s.MakeRequest(fiber.MethodPost, "/transfers/internal",
			`{"recipient_account_number":"`+recipient.AccountNumber+`","amount":10}`, token)
		s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	resp := s.MakeRequest(fiber.MethodGet, "/transactions?type=transfer_out&limit=2", "", token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var page dto.Page[account.TransactionDTO]
	s.DecodeData(resp, &page)
	s.Equal(int64(3), page.Total)
	s.Len(page.Items, 2)
	for _, tx := range page.Items {
		s.Equal("transfer_out", tx.Type)
		s.Equal("completed", tx.Status)
	}

	resp = s.MakeRequest(fiber.MethodGet, "/transactions?type=transfer_in", "", s.Token(recipient.ID, middleware.RoleUser))
	var incoming dto.Page[account.TransactionDTO]
	s.DecodeData(resp, &incoming)
	s.Equal(int64(3), incoming.Total)

	resp = s.MakeRequest(fiber.MethodGet, "/transactions?from=yesterday", "", token)
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)
}

func (s *AccountTestSuite) TestPaymentMethodsListsActiveOnly() {
	active := s.CreatePaymentMethod(10, 100, fee.Fixed(decimal.Zero))
	inactive := s.CreatePaymentMethod(10, 100, fee.Fixed(decimal.Zero))
	_, err := s.App.PaymentMethodService.SetStatus(s.T().Context(), inactive.ID, "inactive")
	s.Require().NoError(err)

	u := s.CreateUser("0")
	resp := s.MakeRequest(fiber.MethodGet, "/payment-methods", "", s.Token(u.ID, middleware.RoleUser))
	var pms []account.PaymentMethodDTO
	s.DecodeData(resp, &pms)
	s.Require().Len(pms, 1)
	s.Equal(active.ID.String(), pms[0].ID)
}
