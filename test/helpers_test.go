//go:build integration_test || all_tests

package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/2beens/portfolio/internal/auth"
)

func (s *IntegrationTestSuite) newRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, serverEndpoint+path, reader)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func (s *IntegrationTestSuite) do(client *http.Client, req *http.Request) (*http.Response, []byte) {
	resp, err := client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, respBody
}

func (s *IntegrationTestSuite) login(client *http.Client, username, password string) *http.Response {
	req := s.newRequest(http.MethodPost, "/api/login", auth.Credentials{
		Username: username,
		Password: password,
	})
	resp, _ := s.do(client, req)
	return resp
}

func (s *IntegrationTestSuite) loggedInClient() *http.Client {
	client := s.newClient()
	resp := s.login(client, testUsername, testPassword)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	return client
}

func (s *IntegrationTestSuite) sessionCookie(client *http.Client) *http.Cookie {
	u, err := url.Parse(serverEndpoint)
	s.Require().NoError(err)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func (s *IntegrationTestSuite) postForm(client *http.Client, path string, form url.Values) *http.Response {
	req, err := http.NewRequest(http.MethodPost, serverEndpoint+path, strings.NewReader(form.Encode()))
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := s.do(client, req)
	return resp
}
