package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/cucumber/godog"
)

type loginFeature struct {
	t      *testing.T
	srv    *testServer
	status int
	body   string
}

func (f *loginFeature) anIdentityWithPassword(email, password string) error {
	if email != adminEmail || password != adminPassword {
		return fmt.Errorf("only the seeded identity %s is available", adminEmail)
	}
	return nil
}

func (f *loginFeature) iLogInAs(email, password string) error {
	f.status, f.body = f.post(email, password)
	return nil
}

func (f *loginFeature) post(email, password string) (int, string) {
	resp, body := f.srv.do(f.t, http.MethodPost, "/login", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	return resp.StatusCode, body
}

func (f *loginFeature) theResponseStatusShouldBe(status int) error {
	if f.status != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, f.status, f.body)
	}
	return nil
}

func (f *loginFeature) theResponseShouldContainABearerToken() error {
	var out struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	}
	if err := json.Unmarshal([]byte(f.body), &out); err != nil {
		return err
	}
	if out.Token == "" || out.ExpiresAt == "" {
		return fmt.Errorf("missing token fields in %s", f.body)
	}
	return nil
}

func (f *loginFeature) theTokenShouldGrantAccessTo(path string) error {
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(f.body), &out); err != nil {
		return err
	}
	resp, body := f.srv.do(f.t, http.MethodGet, path, out.Token, "")
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned %d: %s", path, resp.StatusCode, body)
	}
	return nil
}

func (f *loginFeature) theErrorCodeShouldBe(code string) error {
	var out struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(f.body), &out); err != nil {
		return err
	}
	if out.Error.Code != code {
		return fmt.Errorf("expected error code %s, got %s", code, out.Error.Code)
	}
	return nil
}

func (f *loginFeature) theResponseBodyShouldEqualTheBodyFor(email, password string) error {
	_, other := f.post(email, password)
	if other != f.body {
		return fmt.Errorf("bodies differ:\n%s\n%s", f.body, other)
	}
	return nil
}

func TestLoginFeature(t *testing.T) {
	suite := godog.TestSuite{
		Name: "login",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			f := &loginFeature{t: t}
			sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
				f.srv = newTestServer(t)
				f.status, f.body = 0, ""
				return ctx, nil
			})

			sc.Step(`^an identity "([^"]*)" with password "([^"]*)"$`, f.anIdentityWithPassword)
			sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, f.iLogInAs)
			sc.Step(`^the response status should be (\d+)$`, f.theResponseStatusShouldBe)
			sc.Step(`^the response should contain a bearer token$`, f.theResponseShouldContainABearerToken)
			sc.Step(`^the token should grant access to "([^"]*)"$`, f.theTokenShouldGrantAccessTo)
			sc.Step(`^the error code should be "([^"]*)"$`, f.theErrorCodeShouldBe)
			sc.Step(`^the response body should equal the body for "([^"]*)" with password "([^"]*)"$`, f.theResponseBodyShouldEqualTheBodyFor)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("login feature scenarios failed")
	}
}
