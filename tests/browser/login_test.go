package browser

import (
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/horecastore/storefront-e2e/internal/urlutil"
)

const (
	loginEmailSelector    = `role=textbox[name="Enter your email address"]`
	loginPasswordSelector = `role=textbox[name="Enter your Password"]`
	loginButtonSelector   = `role=button[name="Login"]`
	loginErrorSelector    = `text=Login failed. wrong email or password`
)

func submitLogin(t *testing.T, page playwright.Page, username, password string) {
	t.Helper()
	Fill(t, page, loginEmailSelector, username)
	Fill(t, page, loginPasswordSelector, password)
	Click(t, page, loginButtonSelector)
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	}); err != nil {
		t.Fatalf("Page did not settle after login: %v", err)
	}
}

func TestBrowser_Login_ValidCredentials(t *testing.T) {
	env := SetupSuiteEnv(t)
	cred := env.Credentials(t)
	env.InitBrowser(t)

	for _, project := range Projects {
		t.Run(project.Name, func(t *testing.T) {
			page := env.NewPage(t, project)
			env.Navigate(t, page, "/login")

			submitLogin(t, page, cred.Username, cred.Password)

			visible, err := page.Locator(loginErrorSelector).IsVisible()
			if err != nil {
				t.Fatalf("Failed to check login error: %v", err)
			}
			if visible {
				t.Fatalf("Login rejected for %s (%s)", cred.Username, cred.Role)
			}
		})
	}
}

func TestBrowser_Login_InvalidCredentials(t *testing.T) {
	env := SetupSuiteEnv(t)
	username, err := env.Config.Username("", "", "")
	if err != nil {
		t.Fatalf("Failed to resolve username: %v", err)
	}
	env.InitBrowser(t)

	project := Projects[0]
	page := env.NewPage(t, project)
	env.Navigate(t, page, "/login")

	submitLogin(t, page, username, "definitely-not-the-password")

	WaitForSelector(t, page, loginErrorSelector)
	if !urlutil.HasPath(page.URL(), "/login") {
		t.Fatalf("Expected to stay on the login page after failed login, got %s", page.URL())
	}
}
