// Package testutils builds an in-memory HTTP stack for handler tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/amirasaad/bankcore/infra/eventbus"
	"github.com/amirasaad/bankcore/infra/repository/memory"
	"github.com/amirasaad/bankcore/pkg/app"
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	"github.com/amirasaad/bankcore/pkg/domain/user"
	"github.com/amirasaad/bankcore/pkg/lock"
	"github.com/amirasaad/bankcore/pkg/metrics"
	"github.com/amirasaad/bankcore/pkg/reference"
	"github.com/amirasaad/bankcore/webapi"
	"github.com/amirasaad/bankcore/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret"

var accountSeq atomic.Int64

// Envelope is the decoded success response.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Problem is the decoded problem response.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// WebTestSuite serves the full route table over an in-memory unit of work.
type WebTestSuite struct {
	suite.Suite
	App    *app.App
	Server *fiber.App
	Uow    *memory.UoW
	Bus    *eventbus.MemoryEventBus
	Admin  uuid.UUID
}

// SetupTest builds a fresh stack for every test.
func (s *WebTestSuite) SetupTest() {
	s.Uow = memory.NewUoW()
	s.Bus = eventbus.NewWithMemory(slog.Default())
	s.Admin = uuid.New()
	cfg := &config.App{
		Env:       "test",
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: testSecret, Expiry: time.Hour}},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
		Transfer: &config.Transfer{
			LocalFeePercent:         1,
			InternationalFeePercent: 2,
			RequireTaxCode:          true,
			RequireImfCode:          true,
		},
		Pagination: &config.Pagination{DefaultLimit: 10, MaxLimit: 100, NewestFirst: true},
		Lock:       &config.Lock{WaitTimeout: time.Second},
	}
	s.App = app.New(config.Deps{
		Uow:        s.Uow,
		Locker:     lock.NewKeyedMutex(),
		EventBus:   s.Bus,
		Metrics:    metrics.New(prometheus.NewRegistry()),
		References: reference.New(),
		Logger:     slog.Default(),
		Config:     cfg,
	})
	s.Server = webapi.NewApp(s.App)
}

// Token signs a bearer token for userID with role.
func (s *WebTestSuite) Token(userID uuid.UUID, role string) string {
	return SignToken(testSecret, userID, role)
}

// AdminToken signs a token for the suite admin.
func (s *WebTestSuite) AdminToken() string {
	return s.Token(s.Admin, middleware.RoleAdmin)
}

// SignToken signs an HS256 token carrying sub and role.
func SignToken(secret string, userID uuid.UUID, role string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return signed
}

// MakeRequest sends a request to the suite server.
func (s *WebTestSuite) MakeRequest(method, path, body, token string) *http.Response {
	return MakeRequestWithApp(s.Server, method, path, body, token)
}

// MakeRequestWithApp sends a request to app.
func MakeRequestWithApp(app *fiber.App, method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}

// DecodeData reads a success envelope and unmarshals its data into out.
func (s *WebTestSuite) DecodeData(resp *http.Response, out any) Envelope {
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var env Envelope
	s.Require().NoError(json.Unmarshal(raw, &env), string(raw))
	if out != nil {
		s.Require().NoError(json.Unmarshal(env.Data, out), string(raw))
	}
	return env
}

// DecodeProblem reads a problem response.
func (s *WebTestSuite) DecodeProblem(resp *http.Response) Problem {
	defer resp.Body.Close() //nolint:errcheck
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var p Problem
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&p))
	return p
}

// CreateUser stores a user with the given balance.
func (s *WebTestSuite) CreateUser(balance string, mutate ...func(*user.User)) *user.User {
	u, err := user.New(
		uuid.NewString()+"@example.com",
		"Test User",
		fmt.Sprintf("3000%06d", accountSeq.Add(1)),
	)
	s.Require().NoError(err)
	u.Balance = decimal.RequireFromString(balance)
	for _, m := range mutate {
		m(u)
	}
	repo, err := s.Uow.UserRepository()
	s.Require().NoError(err)
	s.Require().NoError(repo.Create(context.Background(), u))
	return u
}

// CreatePaymentMethod stores an active bank method with the given bounds and fee.
func (s *WebTestSuite) CreatePaymentMethod(min, max int64, spec fee.Spec) *paymentmethod.PaymentMethod {
	pm := &paymentmethod.PaymentMethod{
		ID:        uuid.New(),
		Name:      "Bank Transfer",
		Type:      paymentmethod.TypeBank,
		MinAmount: decimal.NewFromInt(min),
		MaxAmount: decimal.NewFromInt(max),
		Fee:       spec.Value,
		FeeType:   spec.Kind,
		Status:    paymentmethod.StatusActive,
	}
	repo, err := s.Uow.PaymentMethodRepository()
	s.Require().NoError(err)
	s.Require().NoError(repo.Create(context.Background(), pm))
	return pm
}

// Balance returns the stored balance of id.
func (s *WebTestSuite) Balance(id uuid.UUID) decimal.Decimal {
	repo, err := s.Uow.UserRepository()
	s.Require().NoError(err)
	u, err := repo.Get(context.Background(), id)
	s.Require().NoError(err)
	return u.Balance
}
