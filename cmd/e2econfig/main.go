// Command e2econfig inspects the storefront suite configuration.
//
// It prints the selection resolved from NODE_ENV/TEST_ENV, TEST_MARKET,
// TEST_PERSONA and the HORECA_PWD_* secrets, optionally overridden by flags.
//
// Usage:
//
//	go run ./cmd/e2econfig                    # summary of the current selection
//	go run ./cmd/e2econfig -env prod -check   # exit status reports validity
//	go run ./cmd/e2econfig -matrix            # walk the documented combinations
//	go run ./cmd/e2econfig -list              # available environments/markets/personas
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/horecastore/storefront-e2e/internal/config"
	"github.com/horecastore/storefront-e2e/internal/errs"
	"github.com/horecastore/storefront-e2e/internal/logutil"
	"github.com/horecastore/storefront-e2e/internal/obs"
)

type options struct {
	env     string
	market  string
	persona string
	check   bool
	matrix  bool
	list    bool
	asJSON  bool
}

// matrixCombinations are the selections the suite is expected to run against.
var matrixCombinations = []config.Selection{
	{Environment: "dev", Market: "USA", Persona: "private"},
	{Environment: "dev", Market: "UAE", Persona: "business"},
	{Environment: "test", Market: "USA", Persona: "gmail"},
	{Environment: "test", Market: "UAE", Persona: "private"},
	{Environment: "prod", Market: "USA", Persona: "business"},
	{Environment: "prod", Market: "UAE", Persona: "gmail"},
}

func main() {
	obs.Init()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, config.Options{}))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("e2econfig", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.env, "env", "", "Environment override (dev, test, prod)")
	fs.StringVar(&opts.market, "market", "", "Market override (USA, UAE)")
	fs.StringVar(&opts.persona, "persona", "", "Persona override (private, business, gmail)")
	fs.BoolVar(&opts.check, "check", false, "Exit non-zero when the selection does not resolve")
	fs.BoolVar(&opts.matrix, "matrix", false, "Resolve every documented env/market/persona combination")
	fs.BoolVar(&opts.list, "list", false, "List available environments, markets and personas")
	fs.BoolVar(&opts.asJSON, "json", false, "Print the resolved selection as JSON (password redacted)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer, cfgOpts config.Options) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return errs.ExitCode(errs.InvalidArgument)
	}

	cfg := config.NewWithOptions(cfgOpts)
	cur := cfg.Selection()
	cfg.SetConfig(
		firstNonEmpty(opts.env, cur.Environment),
		firstNonEmpty(opts.market, cur.Market),
		firstNonEmpty(opts.persona, cur.Persona),
	)

	switch {
	case opts.list:
		return printOptions(stdout, stderr, cfg)
	case opts.matrix:
		return runMatrix(stdout, cfg)
	case opts.asJSON:
		return printJSON(stdout, stderr, cfg)
	case opts.check:
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
			return errs.ExitCode(errs.CodeOf(err))
		}
		fmt.Fprintln(stdout, "configuration valid")
		return 0
	default:
		cfg.PrintSummary(stdout)
		return 0
	}
}

func printOptions(stdout, stderr io.Writer, cfg *config.Config) int {
	for _, env := range cfg.AvailableEnvironments() {
		markets, err := cfg.AvailableMarkets(env)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return errs.ExitCode(errs.CodeOf(err))
		}
		for _, market := range markets {
			personas, err := cfg.AvailablePersonas(env, market)
			if err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				return errs.ExitCode(errs.CodeOf(err))
			}
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", env, market, strings.Join(personas, ","))
		}
	}
	return 0
}

func runMatrix(stdout io.Writer, cfg *config.Config) int {
	failed, missing := 0, 0
	for i, sel := range matrixCombinations {
		fmt.Fprintf(stdout, "%d. %s - %s - %s\n", i+1, strings.ToUpper(sel.Environment), sel.Market, sel.Persona)
		cfg.SetConfig(sel.Environment, sel.Market, sel.Persona)
		snap, err := cfg.CurrentConfig()
		if err != nil {
			failed++
			if errs.Is(err, errs.MissingSecret) {
				missing++
			}
			fmt.Fprintf(stdout, "   error: %v\n", err)
			continue
		}
		fmt.Fprintf(stdout, "   Base URL: %s\n", snap.BaseURL)
		fmt.Fprintf(stdout, "   Username: %s\n", snap.Credentials.Username)
		fmt.Fprintf(stdout, "   Role:     %s\n", snap.Credentials.Role)
		if snap.Credentials.HasCompany() {
			fmt.Fprintf(stdout, "   Company:  %s\n", snap.Credentials.CompanyName)
		}
		fmt.Fprintf(stdout, "   Valid:    %t\n", cfg.IsValid())
	}
	if failed > 0 {
		fmt.Fprintf(stdout, "%d of %d combinations failed (%d without a password)\n", failed, len(matrixCombinations), missing)
		if missing == failed {
			return errs.ExitCode(errs.MissingSecret)
		}
		return 1
	}
	return 0
}

type jsonSnapshot struct {
	Environment string `json:"environment"`
	Market      string `json:"market"`
	Persona     string `json:"persona"`
	BaseURL     string `json:"baseUrl"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName,omitempty"`
	Password    string `json:"password"`
}

func printJSON(stdout, stderr io.Writer, cfg *config.Config) int {
	snap, err := cfg.CurrentConfig()
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return errs.ExitCode(errs.CodeOf(err))
	}
	out := jsonSnapshot{
		Environment: snap.Environment,
		Market:      snap.Market,
		Persona:     snap.Persona,
		BaseURL:     snap.BaseURL,
		Username:    snap.Credentials.Username,
		Role:        snap.Credentials.Role,
		FirstName:   snap.Credentials.FirstName,
		LastName:    snap.Credentials.LastName,
		CompanyName: snap.Credentials.CompanyName,
		Password:    logutil.MaskSecret(snap.Credentials.Password),
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "failed to encode: %v\n", err)
		return errs.ExitCode(errs.Internal)
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
