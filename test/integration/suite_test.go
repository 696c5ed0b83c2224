//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// adminCookieName is the session cookie the login endpoint sets.
const adminCookieName = "admin_token"

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL      string
	client       *http.Client
	response     *http.Response
	responseBody []byte
	err          error

	quoteContent string
	quoteID      string
	adminToken   string
}

// newTestContext creates a new test context with sensible defaults.
// Redirects are not followed so login responses keep their Set-Cookie
// and redirect status visible to assertions.
func newTestContext() *testContext {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &testContext{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// reset clears response and scenario state between scenarios.
func (tc *testContext) reset() {
	if tc.response != nil && tc.response.Body != nil {
		tc.response.Body.Close()
	}
	tc.response = nil
	tc.responseBody = nil
	tc.err = nil
	tc.quoteContent = ""
	tc.quoteID = ""
	tc.adminToken = ""
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	// Reset state before each scenario
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Clean up after each scenario
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Register step definitions
	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^I am logged in as an admin$`, tc.iAmLoggedInAsAnAdmin)
	ctx.Step(`^I request GET "([^"]*)"$`, tc.iRequestGET)
	ctx.Step(`^I submit a quote with unique content$`, tc.iSubmitAQuoteWithUniqueContent)
	ctx.Step(`^I submit the same quote again$`, tc.iSubmitTheSameQuoteAgain)
	ctx.Step(`^I approve the submitted quote$`, tc.iApproveTheSubmittedQuote)
	ctx.Step(`^I reject the submitted quote$`, tc.iRejectTheSubmittedQuote)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
}

// do performs a request and captures response state for later assertions.
func (tc *testContext) do(req *http.Request) error {
	if tc.adminToken != "" {
		req.AddCookie(&http.Cookie{Name: adminCookieName, Value: tc.adminToken})
	}

	tc.response, tc.err = tc.client.Do(req)
	if tc.err != nil {
		return fmt.Errorf("request failed: %w", tc.err)
	}

	tc.responseBody, tc.err = io.ReadAll(tc.response.Body)
	if tc.err != nil {
		return fmt.Errorf("failed to read response body: %w", tc.err)
	}

	return nil
}

// theServiceIsRunning verifies the service is reachable.
func (tc *testContext) theServiceIsRunning() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+"/-/live", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", resp.StatusCode)
	}

	return nil
}

// iAmLoggedInAsAnAdmin exchanges the configured admin password for a
// session cookie. The target service must run in password mode with
// ADMIN_PASSWORD matching its configuration.
func (tc *testContext) iAmLoggedInAsAnAdmin() error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is not set; admin scenarios need the service's password")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	form := url.Values{"password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		tc.baseURL+"/admin/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed with status %d: %s", resp.StatusCode, string(body))
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == adminCookieName && cookie.Value != "" {
			tc.adminToken = cookie.Value
			return nil
		}
	}

	return fmt.Errorf("login response did not set the %s cookie", adminCookieName)
}

// iRequestGET makes a GET request to the specified path.
func (tc *testContext) iRequestGET(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return tc.do(req)
}

// submitQuote posts the given content to the public submission endpoint
// and remembers the created quote's ID when the service accepts it.
func (tc *testContext) submitQuote(content string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"content":     content,
		"source":      "integration-suite",
		"submittedBy": "godog",
	})
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		tc.baseURL+"/api/quotes", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := tc.do(req); err != nil {
		return err
	}

	if tc.response.StatusCode == http.StatusCreated {
		var created struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(tc.responseBody, &created); err != nil {
			return fmt.Errorf("failed to decode created quote: %w", err)
		}
		tc.quoteID = created.ID
	}

	return nil
}

// iSubmitAQuoteWithUniqueContent submits content no earlier run can
// have created, so the scenario starts from a clean moderation state.
func (tc *testContext) iSubmitAQuoteWithUniqueContent() error {
	tc.quoteContent = fmt.Sprintf("Integration run %d says Dan once out-stared a lighthouse.", time.Now().UnixNano())
	return tc.submitQuote(tc.quoteContent)
}

// iSubmitTheSameQuoteAgain resubmits the scenario's quote content.
func (tc *testContext) iSubmitTheSameQuoteAgain() error {
	if tc.quoteContent == "" {
		return fmt.Errorf("no quote submitted yet in this scenario")
	}
	return tc.submitQuote(tc.quoteContent)
}

// decide posts a moderation decision for the scenario's quote.
func (tc *testContext) decide(action string) error {
	if tc.quoteID == "" {
		return fmt.Errorf("no quote submitted yet in this scenario")
	}
	if tc.adminToken == "" {
		return fmt.Errorf("not logged in as admin")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/admin/quotes/%s/%s", tc.baseURL, tc.quoteID, action), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return tc.do(req)
}

// iApproveTheSubmittedQuote approves the scenario's quote.
func (tc *testContext) iApproveTheSubmittedQuote() error {
	return tc.decide("approve")
}

// iRejectTheSubmittedQuote rejects the scenario's quote.
func (tc *testContext) iRejectTheSubmittedQuote() error {
	return tc.decide("reject")
}

// theResponseStatusShouldBe asserts the response status code.
func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

// theResponseShouldContain asserts the response body contains the given text.
func (tc *testContext) theResponseShouldContain(text string) error {
	if tc.responseBody == nil {
		return fmt.Errorf("no response body")
	}

	body := string(tc.responseBody)
	if !strings.Contains(body, text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, body)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
