package config

import (
	"time"

	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/shopspring/decimal"
)

type DB struct {
	Driver          string        `envconfig:"DRIVER" default:"postgres"`
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}
type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"bankcore:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Lock configures per-user balance serialization.
type Lock struct {
	Driver        string        `envconfig:"DRIVER" default:"memory"`
	TTL           time.Duration `envconfig:"TTL" default:"10s"`
	WaitTimeout   time.Duration `envconfig:"WAIT_TIMEOUT" default:"5s"`
	RetryInterval time.Duration `envconfig:"RETRY_INTERVAL" default:"25ms"`
}

type EventBus struct {
	Driver       string   `envconfig:"DRIVER" default:"memory"`
	Stream       string   `envconfig:"STREAM" default:"bankcore:events"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"bankcore.events"`
}

// Transfer configures external transfer fees and the codes international
// transfers must verify.
type Transfer struct {
	LocalFeePercent         float64 `envconfig:"LOCAL_FEE_PERCENT" default:"1"`
	InternationalFeePercent float64 `envconfig:"INTERNATIONAL_FEE_PERCENT" default:"2"`
	RequireTaxCode          bool    `envconfig:"REQUIRE_TAX_CODE" default:"true"`
	RequireImfCode          bool    `envconfig:"REQUIRE_IMF_CODE" default:"true"`
	RequireCotCode          bool    `envconfig:"REQUIRE_COT_CODE" default:"false"`
}

// FeeSchedule returns the transfer fee specs. Internal transfers are free.
func (t *Transfer) FeeSchedule() fee.Schedule {
	s := fee.DefaultSchedule()
	if t == nil {
		return s
	}
	s.Local = fee.Percentage(decimal.NewFromFloat(t.LocalFeePercent))
	s.International = fee.Percentage(decimal.NewFromFloat(t.InternationalFeePercent))
	return s
}

type Pagination struct {
	DefaultLimit int  `envconfig:"DEFAULT_LIMIT" default:"10"`
	MaxLimit     int  `envconfig:"MAX_LIMIT" default:"100"`
	NewestFirst  bool `envconfig:"NEWEST_FIRST" default:"true"`
}

// Defaults converts the pagination settings for listing filters.
func (p *Pagination) Defaults() dto.PageDefaults {
	if p == nil {
		return dto.PageDefaults{Limit: 10, MaxLimit: 100, NewestFirst: true}
	}
	return dto.PageDefaults{Limit: p.DefaultLimit, MaxLimit: p.MaxLimit, NewestFirst: p.NewestFirst}
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bankcore]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env        string      `envconfig:"APP_ENV" default:"development"`
	Server     *Server     `envconfig:"SERVER"`
	Log        *Log        `envconfig:"LOG"`
	DB         *DB         `envconfig:"DATABASE"`
	Auth       *Auth       `envconfig:"AUTH"`
	Redis      *Redis      `envconfig:"REDIS"`
	RateLimit  *RateLimit  `envconfig:"RATE_LIMIT"`
	Lock       *Lock       `envconfig:"LOCK"`
	EventBus   *EventBus   `envconfig:"EVENTBUS"`
	Transfer   *Transfer   `envconfig:"TRANSFER"`
	Pagination *Pagination `envconfig:"PAGINATION"`
}
