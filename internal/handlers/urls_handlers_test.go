package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/pkg/utils"
)

func TestCreateURL(t *testing.T) {
	env := setupTestEnv(t)
	user, token := createTestUser(t, env.db, "shortener@example.com", "password123")
	team := createTestTeam(t, env.db, "Links", user.ID)

	t.Run("requires authentication", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/url/create/teamId/"+team.ID.String(), map[string]any{
			"originalUrl": "https://example.com",
		}, nil)
		assertStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("creates a short link with a generated code", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/url/create/teamId/"+team.ID.String(), map[string]any{
			"originalUrl": "https://example.com/very/long/path",
			"alias":       "docs",
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusCreated)

		data := dataMap(t, decodeJSONMap(t, resp))
		code, _ := data["code"].(string)
		if len(code) != utils.DefaultCodeLength {
			t.Fatalf("expected %d-character code, got %q", utils.DefaultCodeLength, code)
		}
		if data["originalUrl"] != "https://example.com/very/long/path" {
			t.Fatalf("expected originalUrl to round-trip, got %v", data["originalUrl"])
		}
		if data["type"] != string(models.URLTypePermanent) {
			t.Fatalf("expected default type, got %v", data["type"])
		}
		if data["alias"] != "docs" {
			t.Fatalf("expected alias, got %v", data["alias"])
		}
	})

	t.Run("rejects malformed target", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/url/create/teamId/"+team.ID.String(), map[string]any{
			"originalUrl": "not a url",
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "originalUrl must be a valid URL")
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/url/create/teamId/"+team.ID.String(), map[string]any{
			"originalUrl": "https://example.com",
			"type":        "Eternal link",
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusBadRequest)
	})
}

func TestRedirect(t *testing.T) {
	env := setupTestEnv(t)
	user, _ := createTestUser(t, env.db, "redirector@example.com", "password123")
	team := createTestTeam(t, env.db, "Redirects", user.ID)

	url := &models.URL{Code: "go1234", OriginalURL: "https://example.com/target", UserID: &user.ID, TeamID: team.ID}
	if err := env.db.Create(url).Error; err != nil {
		t.Fatalf("failed creating url: %v", err)
	}

	t.Run("redirects a known code without authentication", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/url/go1234", nil, nil)
		assertStatus(t, resp, http.StatusFound)
		if location := resp.Header.Get("Location"); location != "https://example.com/target" {
			t.Fatalf("expected Location header, got %q", location)
		}
	})

	t.Run("unresolved code is a validation failure", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/url/zzzzzz", nil, nil)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "URL not found.")
	})
}

func TestGetURL(t *testing.T) {
	env := setupTestEnv(t)
	user, token := createTestUser(t, env.db, "reader@example.com", "password123")
	team := createTestTeam(t, env.db, "Reads", user.ID)

	url := &models.URL{Code: "rd5678", OriginalURL: "https://example.com/read", UserID: &user.ID, TeamID: team.ID}
	if err := env.db.Create(url).Error; err != nil {
		t.Fatalf("failed creating url: %v", err)
	}

	t.Run("returns the link by id", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/url/id/"+url.ID.String(), nil, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)

		data := dataMap(t, decodeJSONMap(t, resp))
		if data["code"] != "rd5678" {
			t.Fatalf("expected code, got %v", data["code"])
		}
		if data["teamID"] != team.ID.String() {
			t.Fatalf("expected teamID, got %v", data["teamID"])
		}
		if data["userID"] != user.ID.String() {
			t.Fatalf("expected userID, got %v", data["userID"])
		}
	})

	t.Run("missing id is not found", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/url/id/"+uuid.NewString(), nil, authHeaders(token))
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "URL not found.")
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/url/id/not-a-uuid", nil, authHeaders(token))
		assertStatus(t, resp, http.StatusBadRequest)
	})
}

func TestListURLs(t *testing.T) {
	env := setupTestEnv(t)
	user, token := createTestUser(t, env.db, "pager@example.com", "password123")
	other, _ := createTestUser(t, env.db, "other@example.com", "password123")
	team := createTestTeam(t, env.db, "Pages", user.ID, other.ID)

	for i := 0; i < 3; i++ {
		url := &models.URL{
			Code:        fmt.Sprintf("pg%04d", i),
			OriginalURL: fmt.Sprintf("https://example.com/page/%d", i),
			UserID:      &user.ID,
			TeamID:      team.ID,
		}
		if err := env.db.Create(url).Error; err != nil {
			t.Fatalf("failed creating url %d: %v", i, err)
		}
	}
	foreign := &models.URL{Code: "fg0001", OriginalURL: "https://example.com/foreign", UserID: &other.ID, TeamID: team.ID}
	if err := env.db.Create(foreign).Error; err != nil {
		t.Fatalf("failed creating foreign url: %v", err)
	}

	t.Run("pages through the caller's links only", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/url/list?page=1&limit=2", nil, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)

		body := decodeJSONMap(t, resp)
		urls, ok := body["data"].([]any)
		if !ok || len(urls) != 2 {
			t.Fatalf("expected two urls on the first page, got %v", body["data"])
		}

		pagination, ok := body["pagination"].(map[string]any)
		if !ok {
			t.Fatalf("expected pagination block, got %v", body)
		}
		if pagination["total"] != float64(3) {
			t.Fatalf("expected total 3, got %v", pagination["total"])
		}
		if pagination["totalPages"] != float64(2) {
			t.Fatalf("expected two pages, got %v", pagination["totalPages"])
		}
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/url/list?page=2&limit=2", nil, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)

		body := decodeJSONMap(t, resp)
		urls, ok := body["data"].([]any)
		if !ok || len(urls) != 1 {
			t.Fatalf("expected one url on the second page, got %v", body["data"])
		}
	})
}

func TestUpdateURL(t *testing.T) {
	env := setupTestEnv(t)
	user, token := createTestUser(t, env.db, "updater@example.com", "password123")
	team := createTestTeam(t, env.db, "Updates", user.ID)

	url := &models.URL{Code: "up9999", OriginalURL: "https://example.com/old", UserID: &user.ID, TeamID: team.ID}
	if err := env.db.Create(url).Error; err != nil {
		t.Fatalf("failed creating url: %v", err)
	}

	t.Run("updates target and type, code stays", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/url/id/"+url.ID.String(), map[string]any{
			"originalUrl": "https://example.com/new",
			"type":        string(models.URLTypeTemporary),
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusOK)

		data := dataMap(t, decodeJSONMap(t, resp))
		if data["originalUrl"] != "https://example.com/new" {
			t.Fatalf("expected updated target, got %v", data["originalUrl"])
		}
		if data["type"] != string(models.URLTypeTemporary) {
			t.Fatalf("expected updated type, got %v", data["type"])
		}
		if data["code"] != "up9999" {
			t.Fatalf("expected code to be immutable, got %v", data["code"])
		}
	})

	t.Run("rejects malformed replacement target", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/url/id/"+url.ID.String(), map[string]any{
			"originalUrl": "nope",
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/url/id/"+uuid.NewString(), map[string]any{
			"alias": "new-alias",
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusNotFound)
	})
}
