//go:build integration_test || all_tests

package test

import (
	"net/http"
	"net/url"
)

func (s *IntegrationTestSuite) TestLogin_GateFlow() {
	client := s.newClient()

	req := s.newRequest(http.MethodGet, "/admin", nil)
	resp, _ := s.do(client, req)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/login", resp.Header.Get("Location"))

	req = s.newRequest(http.MethodGet, "/login", nil)
	resp, body := s.do(client, req)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(body), `action="/api/login"`)

	resp = s.login(client, testUsername, testPassword)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	cookie := s.sessionCookie(client)
	s.Require().NotNil(cookie)
	s.NotEmpty(cookie.Value)

	req = s.newRequest(http.MethodGet, "/admin", nil)
	resp, body = s.do(client, req)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(body), "/api/logout")

	req = s.newRequest(http.MethodGet, "/admin/projects", nil)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusOK, resp.StatusCode)

	// authenticated visitors are sent away from the login page
	req = s.newRequest(http.MethodGet, "/login", nil)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/admin", resp.Header.Get("Location"))

	req = s.newRequest(http.MethodPost, "/api/logout", struct{}{})
	resp, _ = s.do(client, req)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Nil(s.sessionCookie(client))

	req = s.newRequest(http.MethodGet, "/admin/messages", nil)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/login", resp.Header.Get("Location"))
}

func (s *IntegrationTestSuite) TestLogin_WrongCredentials() {
	client := s.newClient()

	resp := s.login(client, testUsername, "wrong")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Nil(s.sessionCookie(client))

	resp = s.login(client, "", "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestLogin_Form() {
	client := s.newClient()

	resp := s.postForm(client, "/api/login", url.Values{
		"username": {testUsername},
		"password": {testPassword},
	})
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/admin", resp.Header.Get("Location"))
	s.NotNil(s.sessionCookie(client))

	resp = s.postForm(client, "/api/logout", url.Values{})
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/login", resp.Header.Get("Location"))
	s.Nil(s.sessionCookie(client))
}

func (s *IntegrationTestSuite) TestLogin_ForgedCookieIsCleared() {
	client := s.newClient()
	u, err := url.Parse(serverEndpoint)
	s.Require().NoError(err)
	client.Jar.SetCookies(u, []*http.Cookie{{Name: "token", Value: "not-a-jwt", Path: "/"}})

	req := s.newRequest(http.MethodGet, "/admin", nil)
	resp, _ := s.do(client, req)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/login", resp.Header.Get("Location"))
	s.Nil(s.sessionCookie(client))
}

func (s *IntegrationTestSuite) TestLogin_RateLimited() {
	client := s.newClient()

	for i := 0; i < loginRateLimit; i++ {
		resp := s.login(client, testUsername, "wrong")
		s.Require().Equal(http.StatusUnauthorized, resp.StatusCode, "attempt %d", i)
	}

	req := s.newRequest(http.MethodPost, "/api/login", map[string]string{
		"username": testUsername,
		"password": testPassword,
	})
	resp, body := s.do(client, req)
	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
	s.Contains(string(body), "retry after")
	s.Nil(s.sessionCookie(client))

	// other endpoints are not affected
	req = s.newRequest(http.MethodGet, "/api/projects", nil)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusOK, resp.StatusCode)
}
