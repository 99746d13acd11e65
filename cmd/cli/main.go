package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/amirasaad/bankcore/infra/initializer"
	"github.com/amirasaad/bankcore/infra/repository"
	"github.com/amirasaad/bankcore/internal/migrations"
	"github.com/amirasaad/bankcore/pkg/app"
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/pkg/domain/fee"
	"github.com/amirasaad/bankcore/pkg/domain/paymentmethod"
	pmsvc "github.com/amirasaad/bankcore/pkg/service/paymentmethod"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

const usage = `Usage: bankcore-cli <command> [arguments]
Commands:
  migrate up            apply all pending migrations
  migrate down [steps]  roll back migrations (default 1)
  seed                  create the default payment methods
  balance <account>     print the balances of an account number`

var errUsage = errors.New("invalid usage")

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	infoColor = color.New(color.FgCyan)
	errColor  = color.New(color.FgRed, color.Bold)
)

func main() {
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		errColor.Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cfg, err := config.Load(config.GetEnv("BANKCORE_ENV_FILE", ".env"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	switch args[0] {
	case "migrate":
		return runMigrate(cfg, args[1:], out)
	case "seed":
		return withApp(cfg, func(a *app.App) error {
			return seedPaymentMethods(ctx, a.PaymentMethodService, out)
		})
	case "balance":
		if len(args) < 2 {
			return fmt.Errorf("balance needs an account number: %w", errUsage)
		}
		return withApp(cfg, func(a *app.App) error {
			return printBalance(ctx, a, args[1], out)
		})
	}
	return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
}

func withApp(cfg *config.App, fn func(a *app.App) error) error {
	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer cleanup()
	return fn(app.New(deps))
}

func runMigrate(cfg *config.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("migrate needs a direction: %w", errUsage)
	}
	db, err := repository.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close() //nolint:errcheck

	switch args[0] {
	case "up":
		if err := migrations.Up(sqlDB); err != nil {
			return err
		}
	case "down":
		steps := 1
		if len(args) > 1 {
			if steps, err = strconv.Atoi(args[1]); err != nil || steps < 1 {
				return fmt.Errorf("steps must be a positive integer: %w", errUsage)
			}
		}
		if err := migrations.Down(sqlDB, steps); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown migrate direction %q: %w", args[0], errUsage)
	}

	version, dirty, err := migrations.Version(sqlDB)
	if err != nil {
		return err
	}
	okColor.Fprintf(out, "Schema at version %d (dirty=%t)\n", version, dirty) //nolint:errcheck
	return nil
}

func defaultPaymentMethods() []pmsvc.Input {
	return []pmsvc.Input{
		{
			Name:      "Bank Transfer",
			Type:      paymentmethod.TypeBank,
			MinAmount: decimal.NewFromInt(10),
			MaxAmount: decimal.NewFromInt(10000),
			Fee:       decimal.Zero,
			FeeType:   fee.KindFixed,
		},
		{
			Name:      "Bitcoin",
			Type:      paymentmethod.TypeCrypto,
			MinAmount: decimal.NewFromInt(50),
			MaxAmount: decimal.NewFromInt(50000),
			Fee:       decimal.RequireFromString("1.5"),
			FeeType:   fee.KindPercentage,
		},
		{
			Name:      "Debit Card",
			Type:      paymentmethod.TypeCard,
			MinAmount: decimal.NewFromInt(10),
			MaxAmount: decimal.NewFromInt(5000),
			Fee:       decimal.RequireFromString("2.5"),
			FeeType:   fee.KindPercentage,
		},
	}
}

// seedPaymentMethods creates the default methods whose names are not taken yet.
func seedPaymentMethods(ctx context.Context, svc *pmsvc.Service, out io.Writer) error {
	existing, err := svc.List(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]struct{}, len(existing))
	for _, pm := range existing {
		names[pm.Name] = struct{}{}
	}
	for _, in := range defaultPaymentMethods() {
		if _, ok := names[in.Name]; ok {
			infoColor.Fprintf(out, "Skipped %s (exists)\n", in.Name) //nolint:errcheck
			continue
		}
		pm, err := svc.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("seed %s: %w", in.Name, err)
		}
		okColor.Fprintf(out, "Created %s %s\n", pm.Name, pm.ID) //nolint:errcheck
	}
	return nil
}

func printBalance(ctx context.Context, a *app.App, accountNumber string, out io.Writer) error {
	u, err := a.UserService.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	b, err := a.UserService.Balance(ctx, u.ID)
	if err != nil {
		return err
	}
	infoColor.Fprintf(out, "Account %s\n", u.AccountNumber) //nolint:errcheck
	fmt.Fprintf(out, "  balance: %s %s\n", b.Balance.StringFixed(2), b.Currency)
	fmt.Fprintf(out, "  bitcoin: %s\n", b.BitcoinBalance.String())
	return nil
}
