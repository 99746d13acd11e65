package transfer_test

import (
	"testing"

	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/webapi/middleware"
	"github.com/amirasaad/bankcore/webapi/testutils"
	"github.com/amirasaad/bankcore/webapi/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransferTestSuite struct {
	testutils.WebTestSuite
}

func TestTransferSuite(t *testing.T) {
	suite.Run(t, new(TransferTestSuite))
}

const internationalBody = `{
	"type":"international",
	"amount":1000,
	"description":"invoice 42",
	"recipient":{
		"account_number":"DE89370400440532013000",
		"account_name":"Jane Roe",
		"bank_name":"Deutsche Bank",
		"country":"DE",
		"swift_code":"DEUTDEFF"
	}
}`

func withCodes(u *user.User) {
	u.TaxCode, u.ImfCode = "TAX-1", "IMF-1"
}

func (s *TransferTestSuite) TestInternalTransfer() {
	sender := s.CreateUser("500")
	recipient := s.CreateUser("0")
	token := s.Token(sender.ID, middleware.RoleUser)

	body := `{"recipient_account_number":"` + recipient.AccountNumber + `","amount":"120.50","description":"rent"}`
	resp := s.MakeRequest(fiber.MethodPost, "/transfers/internal", body, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var t transfer.TransferDTO
	s.DecodeData(resp, &t)
	s.Equal("completed", t.Status)
	s.Equal(recipient.ID.String(), t.RecipientID)
	s.True(t.Fee.IsZero())

	s.True(decimal.RequireFromString("379.5").Equal(s.Balance(sender.ID)))
	s.True(decimal.RequireFromString("120.5").Equal(s.Balance(recipient.ID)))

	resp = s.MakeRequest(fiber.MethodGet, "/transfers/"+t.ID, "", s.Token(recipient.ID, middleware.RoleUser))
	s.Equal(fiber.StatusOK, resp.StatusCode, "recipient sees the transfer")
	_ = resp.Body.Close()
}

func (s *TransferTestSuite) TestInternalTransferRejections() {
	sender := s.CreateUser("100")
	token := s.Token(sender.ID, middleware.RoleUser)

	resp := s.MakeRequest(fiber.MethodPost, "/transfers/internal",
		`{"recipient_account_number":"`+sender.AccountNumber+`","amount":10}`, token)
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)

	resp = s.MakeRequest(fiber.MethodPost, "/transfers/internal",
		`{"recipient_account_number":"0000000000","amount":10}`, token)
	s.Equal(fiber.StatusNotFound, s.DecodeProblem(resp).Status)

	recipient := s.CreateUser("0")
	resp = s.MakeRequest(fiber.MethodPost, "/transfers/internal",
		`{"recipient_account_number":"`+recipient.AccountNumber+`","amount":1000}`, token)
	s.Equal(fiber.StatusUnprocessableEntity, s.DecodeProblem(resp).Status)
	s.True(decimal.NewFromInt(100).Equal(s.Balance(sender.ID)))
}

func (s *TransferTestSuite) TestInternationalVerifyThenComplete() {
	sender := s.CreateUser("5000", withCodes)
	token := s.Token(sender.ID, middleware.RoleUser)

	resp := s.MakeRequest(fiber.MethodPost, "/transfers/external", internationalBody, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var t transfer.TransferDTO
	s.DecodeData(resp, &t)
	s.Equal("pending", t.Status)
	s.True(decimal.NewFromInt(20).Equal(t.Fee))
	s.True(t.Requires.TaxCode)
	s.True(t.Requires.ImfCode)
	s.True(decimal.NewFromInt(3980).Equal(s.Balance(sender.ID)))

	resp = s.MakeRequest(fiber.MethodPost, "/admin/transfers/"+t.ID+"/process", `{"decision":"completed"}`, s.AdminToken())
	s.Equal(fiber.StatusUnprocessableEntity, s.DecodeProblem(resp).Status)

	resp = s.MakeRequest(fiber.MethodPost, "/transfers/"+t.ID+"/verify", `{"tax_code":"TAX-1","imf_code":"wrong"}`, token)
	p := s.DecodeProblem(resp)
	s.Equal(fiber.StatusUnprocessableEntity, p.Status)
	s.Equal("Invalid IMF code", p.Detail)

	resp = s.MakeRequest(fiber.MethodPost, "/transfers/"+t.ID+"/verify", `{"tax_code":"TAX-1","imf_code":"IMF-1"}`, token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var verified transfer.TransferDTO
	s.DecodeData(resp, &verified)
	s.Equal("processing", verified.Status)
	s.True(verified.CodesVerified)

	resp = s.MakeRequest(fiber.MethodPost, "/admin/transfers/"+t.ID+"/process", `{"decision":"completed"}`, s.AdminToken())
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var done transfer.TransferDTO
	s.DecodeData(resp, &done)
	s.Equal("completed", done.Status)
	s.True(decimal.NewFromInt(3980).Equal(s.Balance(sender.ID)))
}

func (s *TransferTestSuite) TestCancelRefunds() {
	sender := s.CreateUser("2000")
	token := s.Token(sender.ID, middleware.RoleUser)
	body := `{"type":"local","amount":500,"recipient":{"account_number":"12345678","account_name":"Acme","bank_name":"First Bank"}}`

	resp := s.MakeRequest(fiber.MethodPost, "/transfers/external", body, token)
	var t transfer.TransferDTO
	s.DecodeData(resp, &t)
	s.True(decimal.NewFromInt(1495).Equal(s.Balance(sender.ID)))

	stranger := s.CreateUser("0")
	resp = s.MakeRequest(fiber.MethodPost, "/transfers/"+t.ID+"/cancel", "", s.Token(stranger.ID, middleware.RoleUser))
	s.Equal(fiber.StatusNotFound, s.DecodeProblem(resp).Status)

	resp = s.MakeRequest(fiber.MethodPost, "/transfers/"+t.ID+"/cancel", "", token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var cancelled transfer.TransferDTO
	s.DecodeData(resp, &cancelled)
	s.Equal("cancelled", cancelled.Status)
	s.True(decimal.NewFromInt(2000).Equal(s.Balance(sender.ID)))

	resp = s.MakeRequest(fiber.MethodPost, "/transfers/"+t.ID+"/cancel", "", token)
	s.Equal(fiber.StatusConflict, s.DecodeProblem(resp).Status)
}

func (s *TransferTestSuite) TestExternalValidation() {
	sender := s.CreateUser("2000")
	token := s.Token(sender.ID, middleware.RoleUser)
	for _, body := range []string{
		`{"type":"internal","amount":5,"recipient":{"account_number":"1","account_name":"a","bank_name":"b"}}`,
		`{"type":"local","amount":5,"recipient":{"account_number":"1"}}`,
		`{"type":"local","amount":-5,"recipient":{"account_number":"1","account_name":"a","bank_name":"b"}}`,
	} {
		resp := s.MakeRequest(fiber.MethodPost, "/transfers/external", body, token)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode, body)
		_ = resp.Body.Close()
	}

	missingSwift := `{"type":"international","amount":5,"recipient":{"account_number":"1","account_name":"a","bank_name":"b"}}`
	resp := s.MakeRequest(fiber.MethodPost, "/transfers/external", missingSwift, token)
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)
	s.True(decimal.NewFromInt(2000).Equal(s.Balance(sender.ID)))
}

func (s *TransferTestSuite) TestAdminFailRefunds() {
	sender := s.CreateUser("1000")
	body := `{"type":"local","amount":100,"recipient":{"account_number":"12345678","account_name":"Acme","bank_name":"First Bank"}}`
	resp := s.MakeRequest(fiber.MethodPost, "/transfers/external", body, s.Token(sender.ID, middleware.RoleUser))
	var t transfer.TransferDTO
	s.DecodeData(resp, &t)

	resp = s.MakeRequest(fiber.MethodGet, "/admin/transfers?type=local", "", s.AdminToken())
	var page dto.Page[transfer.TransferDTO]
	s.DecodeData(resp, &page)
	s.Equal(int64(1), page.Total)

	resp = s.MakeRequest(fiber.MethodPost, "/admin/transfers/"+t.ID+"/process",
		`{"decision":"failed","note":"beneficiary bank rejected"}`, s.AdminToken())
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
	s.True(decimal.NewFromInt(1000).Equal(s.Balance(sender.ID)))
}
