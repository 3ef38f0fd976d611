//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/2beens/portfolio/internal/messages"
	"github.com/2beens/portfolio/internal/projects"
	"github.com/2beens/portfolio/internal/skills"

	"github.com/brianvoe/gofakeit/v6"
)

func (s *IntegrationTestSuite) countRows(table string) int {
	var count int
	err := s.DB.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	s.Require().NoError(err)
	return count
}

func (s *IntegrationTestSuite) TestAdminAPI_RequiresSession() {
	client := s.newClient()

	req := s.newRequest(http.MethodPost, "/api/projects", projects.Project{Name: "x", Desc: "y"})
	resp, body := s.do(client, req)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("no can do\n", string(body))

	req = s.newRequest(http.MethodGet, "/api/messages", nil)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	req = s.newRequest(http.MethodDelete, "/api/skills/1", nil)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestProjects_CRUD() {
	client := s.loggedInClient()
	before := s.countRows("project")

	newProject := projects.Project{
		Name:  gofakeit.AppName(),
		Desc:  gofakeit.Sentence(8),
		Image: gofakeit.URL(),
		Link:  gofakeit.URL(),
	}
	req := s.newRequest(http.MethodPost, "/api/projects", newProject)
	resp, body := s.do(client, req)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	var added projects.Project
	s.Require().NoError(json.Unmarshal(body, &added))
	s.Positive(added.ID)
	s.Equal(newProject.Name, added.Name)
	s.False(added.CreatedAt.IsZero())
	s.Equal(before+1, s.countRows("project"))

	// public listing, served anonymously
	req = s.newRequest(http.MethodGet, "/api/projects", nil)
	resp, body = s.do(s.newClient(), req)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var listed []projects.Project
	s.Require().NoError(json.Unmarshal(body, &listed))
	s.Contains(projectNames(listed), newProject.Name)

	added.Name = "renamed " + added.Name
	req = s.newRequest(http.MethodPut, "/api/projects", added)
	resp, body = s.do(client, req)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var name string
	s.Require().NoError(s.DB.QueryRow("SELECT name FROM project WHERE id = $1", added.ID).Scan(&name))
	s.Equal(added.Name, name)

	// the list cache is invalidated by the update
	req = s.newRequest(http.MethodGet, "/api/projects", nil)
	_, body = s.do(client, req)
	listed = nil
	s.Require().NoError(json.Unmarshal(body, &listed))
	s.Contains(projectNames(listed), added.Name)

	missing := added
	missing.ID = added.ID + 1000
	req = s.newRequest(http.MethodPut, "/api/projects", missing)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	req = s.newRequest(http.MethodDelete, fmt.Sprintf("/api/projects/%d", added.ID), nil)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(before, s.countRows("project"))

	req = s.newRequest(http.MethodDelete, fmt.Sprintf("/api/projects/%d", added.ID), nil)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func projectNames(list []projects.Project) []string {
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	return names
}

func (s *IntegrationTestSuite) TestSkills_CRUD() {
	client := s.loggedInClient()
	skillName := "go-" + gofakeit.LetterN(8)

	req := s.newRequest(http.MethodPost, "/api/skills", skills.Skill{Name: skillName})
	resp, body := s.do(client, req)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var added skills.Skill
	s.Require().NoError(json.Unmarshal(body, &added))
	s.Positive(added.ID)

	req = s.newRequest(http.MethodPost, "/api/skills", skills.Skill{Name: skillName})
	resp, _ = s.do(client, req)
	s.Equal(http.StatusConflict, resp.StatusCode)

	req = s.newRequest(http.MethodPost, "/api/skills", skills.Skill{Name: "  "})
	resp, _ = s.do(client, req)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var count int
	s.Require().NoError(s.DB.QueryRow("SELECT COUNT(*) FROM skill WHERE name = $1", skillName).Scan(&count))
	s.Equal(1, count)

	req = s.newRequest(http.MethodGet, "/api/skills", nil)
	resp, body = s.do(s.newClient(), req)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var listed []skills.Skill
	s.Require().NoError(json.Unmarshal(body, &listed))
	s.Contains(listed, added)

	req = s.newRequest(http.MethodDelete, fmt.Sprintf("/api/skills/%d", added.ID), nil)
	resp, _ = s.do(client, req)
	s.Equal(http.StatusOK, resp.StatusCode)

	s.Require().NoError(s.DB.QueryRow("SELECT COUNT(*) FROM skill WHERE name = $1", skillName).Scan(&count))
	s.Zero(count)
}

func (s *IntegrationTestSuite) TestMessages_ContactAndTriage() {
	visitor := s.newClient()
	before := s.countRows("message")

	name := gofakeit.Name()
	resp := s.postForm(visitor, "/api/messages", url.Values{
		"name":    {name},
		"email":   {gofakeit.Email()},
		"message": {gofakeit.Sentence(12)},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Equal(before+1, s.countRows("message"))

	req := s.newRequest(http.MethodPost, "/api/messages", map[string]string{"name": name})
	resp, _ = s.do(visitor, req)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	admin := s.loggedInClient()
	req = s.newRequest(http.MethodGet, "/api/messages", nil)
	resp, body := s.do(admin, req)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var listed []messages.Message
	s.Require().NoError(json.Unmarshal(body, &listed))
	s.Require().NotEmpty(listed)
	newest := listed[0]
	s.Equal(name, newest.Name)
	s.False(newest.Read)

	read := true
	req = s.newRequest(http.MethodPatch, "/api/messages", map[string]any{"id": newest.ID, "read": read})
	resp, body = s.do(admin, req)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var isRead bool
	s.Require().NoError(s.DB.QueryRow("SELECT read FROM message WHERE id = $1", newest.ID).Scan(&isRead))
	s.True(isRead)

	req = s.newRequest(http.MethodPatch, "/api/messages", map[string]any{"id": newest.ID})
	resp, _ = s.do(admin, req)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	req = s.newRequest(http.MethodDelete, "/api/messages", map[string]int{"id": newest.ID})
	resp, _ = s.do(admin, req)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(before, s.countRows("message"))

	req = s.newRequest(http.MethodDelete, "/api/messages", map[string]int{"id": newest.ID})
	resp, _ = s.do(admin, req)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
