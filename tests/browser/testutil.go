// Package browser provides the Playwright harness for storefront browser
// tests. Specs get the storefront URL and login credentials only through
// internal/config; each SuiteEnv owns its own Config so parallel specs never
// share a selection.
//
// Live specs hit real storefront deployments and run only when
// STOREFRONT_E2E=1.
package browser

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/horecastore/storefront-e2e/internal/artifacts"
	"github.com/horecastore/storefront-e2e/internal/config"
	"github.com/horecastore/storefront-e2e/internal/credentials"
	"github.com/horecastore/storefront-e2e/internal/logutil"
	"github.com/horecastore/storefront-e2e/internal/obs"
	"github.com/horecastore/storefront-e2e/internal/urlutil"
)

const (
	actionTimeoutMS     = 15000
	navigationTimeoutMS = 20000

	liveGateVar = "STOREFRONT_E2E"
)

// Project is a device profile the suite runs against.
type Project struct {
	Name     string
	Viewport *playwright.Size
	IsMobile bool
	HasTouch bool
}

// Projects mirrors the desktop and mobile device profiles of the suite.
var Projects = []Project{
	{Name: "desktop-chromium"},
	{Name: "mobile-samsung-chrome", Viewport: &playwright.Size{Width: 360, Height: 740}, IsMobile: true, HasTouch: true},
	{Name: "mobile-iphone-safari", Viewport: &playwright.Size{Width: 390, Height: 844}, IsMobile: true, HasTouch: true},
}

// ContextOptions returns the browser context options of p.
func (p Project) ContextOptions() playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{
		IsMobile: playwright.Bool(p.IsMobile),
		HasTouch: playwright.Bool(p.HasTouch),
	}
	if p.Viewport == nil {
		opts.NoViewport = playwright.Bool(true)
	} else {
		opts.Viewport = p.Viewport
	}
	return opts
}

var (
	recorderOnce   sync.Once
	sharedRecorder *artifacts.Recorder
	recorderErr    error
)

func suiteRecorder() (*artifacts.Recorder, error) {
	recorderOnce.Do(func() {
		ctx := context.Background()
		store, err := artifacts.Open(ctx, artifacts.ConfigFromEnv(os.LookupEnv))
		if err != nil {
			recorderErr = err
			return
		}
		sharedRecorder = artifacts.NewRecorder(store, os.Getenv("E2E_RUN_ID"))
	})
	return sharedRecorder, recorderErr
}

// SuiteEnv is the per-test browser environment.
type SuiteEnv struct {
	Config   *config.Config
	BaseURL  string
	Recorder *artifacts.Recorder
	Ctx      context.Context

	pw      *playwright.Playwright
	browser playwright.Browser
}

// LiveEnabled reports whether live storefront specs are enabled.
func LiveEnabled(lookup func(string) (string, bool)) bool {
	v, ok := lookup(liveGateVar)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// SetupSuiteEnv resolves the configuration for a live browser test. It skips when
// live browser tests are disabled and fails when the selection does not resolve to a
// base URL.
func SetupSuiteEnv(t *testing.T) *SuiteEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if !LiveEnabled(os.LookupEnv) {
		t.Skipf("live storefront tests disabled; set %s=1", liveGateVar)
	}

	cfg := config.New()
	baseURL, err := cfg.BaseURL("", "")
	if err != nil {
		t.Fatalf("Failed to resolve storefront base URL: %v", err)
	}

	recorder, err := suiteRecorder()
	if err != nil {
		t.Fatalf("Failed to open artifact store: %v", err)
	}

	sel := cfg.Selection()
	ctx := obs.WithRun(context.Background(), obs.Run{RunID: recorder.RunID()})
	obs.From(ctx).Info("browser test starting",
		"test", t.Name(),
		"environment", sel.Environment,
		"market", sel.Market,
		"persona", sel.Persona,
		"base_url", baseURL,
	)

	return &SuiteEnv{
		Config:   cfg,
		BaseURL:  baseURL,
		Recorder: recorder,
		Ctx:      ctx,
	}
}

// Credentials resolves the login credentials for the current selection and
// fails the test when they cannot be resolved.
func (env *SuiteEnv) Credentials(t *testing.T) credentials.Credential {
	t.Helper()
	cred, err := env.Config.Credentials("", "", "")
	if err != nil {
		t.Fatalf("Failed to resolve credentials: %v", err)
	}
	return cred
}

// =============================================================================
// Browser lifecycle helpers
// =============================================================================

// InitBrowser starts Playwright and launches Chromium. Skips the test if not available.
func (env *SuiteEnv) InitBrowser(t *testing.T) {
	t.Helper()

	pw, err := playwright.Run()
	if err != nil {
		t.Skip("Playwright not available:", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(os.Getenv("HEADED") == ""),
	})
	if err != nil {
		_ = pw.Stop()
		t.Skip("Could not launch browser:", err)
	}
	env.pw = pw
	env.browser = browser

	t.Cleanup(func() {
		_ = browser.Close()
		_ = pw.Stop()
	})
}

// NewPage opens a page with the device profile of project. On test failure a
// screenshot and the page HTML are stored as artifacts.
func (env *SuiteEnv) NewPage(t *testing.T, project Project) playwright.Page {
	t.Helper()

	bctx, err := env.browser.NewContext(project.ContextOptions())
	if err != nil {
		t.Fatalf("could not create browser context for %s: %v", project.Name, err)
	}
	bctx.SetDefaultTimeout(actionTimeoutMS)
	bctx.SetDefaultNavigationTimeout(navigationTimeoutMS)

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		t.Fatalf("could not create page: %v", err)
	}

	t.Cleanup(func() {
		if t.Failed() {
			env.captureFailure(t, project, page)
		}
		_ = bctx.Close()
	})
	return page
}

func (env *SuiteEnv) captureFailure(t *testing.T, project Project, page playwright.Page) {
	ctx := obs.WithRun(env.Ctx, obs.Run{Project: project.Name})

	shot, err := page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err == nil {
		if location, err := env.Recorder.Record(ctx, project.Name, t.Name(), "failure.png", shot, "image/png"); err == nil {
			t.Logf("Failure screenshot: %s", location)
		}
	}

	content, err := page.Content()
	if err == nil {
		if location, err := env.Recorder.Record(ctx, project.Name, t.Name(), "failure.html", []byte(content), "text/html"); err == nil {
			t.Logf("Failure page HTML: %s", location)
		}
	}
}

// =============================================================================
// Navigation and wait helpers
// =============================================================================

// Navigate opens path on the storefront and waits for the load event.
func (env *SuiteEnv) Navigate(t *testing.T, page playwright.Page, path string) {
	t.Helper()

	target := urlutil.BuildAbsolute(env.BaseURL, path)
	_, err := page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(navigationTimeoutMS),
	})
	if err != nil {
		t.Fatalf("Failed to navigate to %s: %v", target, err)
	}
}

// WaitForSelector waits for an element to be visible and returns its locator.
func WaitForSelector(t *testing.T, page playwright.Page, selector string) playwright.Locator {
	t.Helper()

	first := page.Locator(selector).First()
	err := first.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(actionTimeoutMS),
	})
	if err != nil {
		title, _ := page.Title()
		content, _ := page.Content()
		t.Logf("Current URL: %s", page.URL())
		t.Logf("Current title: %s", title)
		t.Logf("Content preview: %s", logutil.TruncateForLog(content, 500))
		t.Fatalf("Failed to wait for selector %s: %v", selector, err)
	}
	return first
}

// Fill waits for selector and types value into it.
func Fill(t *testing.T, page playwright.Page, selector, value string) {
	t.Helper()
	if err := WaitForSelector(t, page, selector).Fill(value); err != nil {
		t.Fatalf("Failed to fill %s: %v", selector, err)
	}
}

// Click waits for selector and clicks it.
func Click(t *testing.T, page playwright.Page, selector string) {
	t.Helper()
	if err := WaitForSelector(t, page, selector).Click(); err != nil {
		t.Fatalf("Failed to click %s: %v", selector, err)
	}
}
