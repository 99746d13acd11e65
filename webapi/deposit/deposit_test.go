package deposit_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/amirasaad/bankcore/webapi/deposit"
	"github.com/amirasaad/bankcore/webapi/middleware"
	"github.com/amirasaad/bankcore/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DepositTestSuite struct {
	testutils.WebTestSuite
}

func TestDepositSuite(t *testing.T) {
	suite.Run(t, new(DepositTestSuite))
}

func (s *DepositTestSuite) create(token string, pmID uuid.UUID, amount string) *deposit.DepositDTO {
	body := fmt.Sprintf(`{"amount":%s,"payment_method_id":"%s","proof_image":"receipt.png"}`, amount, pmID)
	resp := s.MakeRequest(fiber.MethodPost, "/deposits", body, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var d deposit.DepositDTO
	s.DecodeData(resp, &d)
	return &d
}

func (s *DepositTestSuite) TestCreateAndApprove() {
	u := s.CreateUser("0")
	pm := s.CreatePaymentMethod(10, 10000, fee.Fixed(decimal.Zero))
	token := s.Token(u.ID, middleware.RoleUser)

	d := s.create(token, pm.ID, "250")
	s.Equal("pending", d.Status)
	s.True(decimal.NewFromInt(250).Equal(d.Amount))
	s.True(s.Balance(u.ID).IsZero(), "pending deposit must not credit")

	resp := s.MakeRequest(fiber.MethodPost, "/admin/deposits/"+d.ID+"/process",
		`{"decision":"approved","note":"ok"}`, s.AdminToken())
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var processed deposit.DepositDTO
	s.DecodeData(resp, &processed)
	s.Equal("approved", processed.Status)
	s.Equal(s.Admin.String(), processed.ProcessedBy)
	s.True(decimal.NewFromInt(250).Equal(s.Balance(u.ID)))

	resp = s.MakeRequest(fiber.MethodPost, "/admin/deposits/"+d.ID+"/process",
		`{"decision":"rejected"}`, s.AdminToken())
	p := s.DecodeProblem(resp)
	s.Equal(fiber.StatusConflict, p.Status)
	s.True(decimal.NewFromInt(250).Equal(s.Balance(u.ID)))
}

func (s *DepositTestSuite) TestAmountOutsideBounds() {
	u := s.CreateUser("0")
	pm := s.CreatePaymentMethod(10, 10000, fee.Fixed(decimal.Zero))

	body := fmt.Sprintf(`{"amount":5,"payment_method_id":"%s"}`, pm.ID)
	resp := s.MakeRequest(fiber.MethodPost, "/deposits", body, s.Token(u.ID, middleware.RoleUser))
	p := s.DecodeProblem(resp)
	s.Equal(fiber.StatusBadRequest, p.Status)
	s.Equal("Amount must be between 10 and 10000", p.Detail)
}

func (s *DepositTestSuite) TestRequestValidation() {
	u := s.CreateUser("0")
	token := s.Token(u.ID, middleware.RoleUser)
	for _, body := range []string{
		`{"amount":0,"payment_method_id":"` + uuid.NewString() + `"}`,
		`{"amount":100,"payment_method_id":"nope"}`,
		`{"amount":100}`,
		`not json`,
	} {
		resp := s.MakeRequest(fiber.MethodPost, "/deposits", body, token)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode, body)
		_ = resp.Body.Close()
	}
}

func (s *DepositTestSuite) TestUnknownPaymentMethod() {
	u := s.CreateUser("0")
	body := fmt.Sprintf(`{"amount":100,"payment_method_id":"%s"}`, uuid.New())
	resp := s.MakeRequest(fiber.MethodPost, "/deposits", body, s.Token(u.ID, middleware.RoleUser))
	s.Equal(fiber.StatusNotFound, s.DecodeProblem(resp).Status)
}

func (s *DepositTestSuite) TestListAndGetScopedToCaller() {
	owner := s.CreateUser("0")
	other := s.CreateUser("0")
	pm := s.CreatePaymentMethod(10, 10000, fee.Fixed(decimal.Zero))
	ownerToken := s.Token(owner.ID, middleware.RoleUser)

	d := s.create(ownerToken, pm.ID, "100")
	s.create(ownerToken, pm.ID, "200")
	s.create(s.Token(other.ID, middleware.RoleUser), pm.ID, "300")

	resp := s.MakeRequest(fiber.MethodGet, "/deposits?limit=1", "", ownerToken)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var page dto.Page[deposit.DepositDTO]
	s.DecodeData(resp, &page)
	s.Equal(int64(2), page.Total)
	s.Len(page.Items, 1)
	s.Equal(2, page.TotalPages)

	resp = s.MakeRequest(fiber.MethodGet, "/deposits/"+d.ID, "", ownerToken)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = s.MakeRequest(fiber.MethodGet, "/deposits/"+d.ID, "", s.Token(other.ID, middleware.RoleUser))
	s.Equal(fiber.StatusNotFound, s.DecodeProblem(resp).Status)

	resp = s.MakeRequest(fiber.MethodGet, "/deposits/not-a-uuid", "", ownerToken)
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)
}

func (s *DepositTestSuite) TestAdminListFilters() {
	a := s.CreateUser("0")
	b := s.CreateUser("0")
	pm := s.CreatePaymentMethod(10, 10000, fee.Fixed(decimal.Zero))
	d := s.create(s.Token(a.ID, middleware.RoleUser), pm.ID, "100")
	s.create(s.Token(b.ID, middleware.RoleUser), pm.ID, "100")

	resp := s.MakeRequest(fiber.MethodGet, "/admin/deposits", "", s.AdminToken())
	var all dto.Page[deposit.DepositDTO]
	s.DecodeData(resp, &all)
	s.Equal(int64(2), all.Total)

	resp = s.MakeRequest(fiber.MethodGet, "/admin/deposits?user="+a.ID.String(), "", s.AdminToken())
	var mine dto.Page[deposit.DepositDTO]
	s.DecodeData(resp, &mine)
	s.Require().Len(mine.Items, 1)
	s.Equal(d.ID, mine.Items[0].ID)

	resp = s.MakeRequest(fiber.MethodGet, "/admin/deposits?status=approved", "", s.AdminToken())
	var approved dto.Page[deposit.DepositDTO]
	s.DecodeData(resp, &approved)
	s.Zero(approved.Total)

	resp = s.MakeRequest(fiber.MethodGet, "/admin/deposits?sort=sideways", "", s.AdminToken())
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)
}

func (s *DepositTestSuite) TestInvalidDecision() {
	u := s.CreateUser("0")
	pm := s.CreatePaymentMethod(10, 10000, fee.Fixed(decimal.Zero))
	d := s.create(s.Token(u.ID, middleware.RoleUser), pm.ID, "100")

	resp := s.MakeRequest(fiber.MethodPost, "/admin/deposits/"+d.ID+"/process",
		`{"decision":"completed"}`, s.AdminToken())
	s.Equal(fiber.StatusBadRequest, s.DecodeProblem(resp).Status)
}
