package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avrek/wb-radar/internal/apperr"
	"github.com/avrek/wb-radar/internal/models"
	"github.com/avrek/wb-radar/internal/server"
	"github.com/avrek/wb-radar/test/mocks"
)

func newTestServer(t *testing.T) (*server.Server, *mocks.Comparator) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := mocks.NewComparator(t)

	return server.NewServer(logger, svc, ":0"), svc
}

func doRequest(t *testing.T, srv *server.Server, method, target, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (kind string) {
	t.Helper()

	var resp struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp.Kind
}

func TestCreateGroupHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, svc := newTestServer(t)
		group := &models.ArticleGroup{ID: "g1", UserID: 42, Name: "pans", GroupType: models.GroupTypeComparison}
		svc.On("CreateGroup", mock.Anything, int64(42), "pans", models.GroupTypeComparison).Return(group, nil).Once()

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/groups", "42", `{"name":"pans","group_type":"comparison"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got models.ArticleGroup
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "g1", got.ID)
	})

	t.Run("error: missing user header", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/groups", "", `{"group_type":"comparison"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", decodeError(t, rec))
	})

	t.Run("error: bad user header", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/groups", "not-a-number", `{"group_type":"comparison"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error: malformed body", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/groups", "42", `{broken`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error: invalid group type maps to 400", func(t *testing.T) {
		srv, svc := newTestServer(t)
		svc.On("CreateGroup", mock.Anything, int64(42), "", models.GroupType("bundle")).
			Return(nil, apperr.Validation("unknown group type")).Once()

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/groups", "42", `{"group_type":"bundle"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteGroupHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, svc := newTestServer(t)
		svc.On("DeleteGroup", mock.Anything, "g1", int64(42)).Return(nil).Once()

		rec := doRequest(t, srv, http.MethodDelete, "/api/v1/groups/g1", "42", "")

		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("error: unknown group maps to 404", func(t *testing.T) {
		srv, svc := newTestServer(t)
		svc.On("DeleteGroup", mock.Anything, "missing", int64(42)).
			Return(apperr.NotFound("group missing not found")).Once()

		rec := doRequest(t, srv, http.MethodDelete, "/api/v1/groups/missing", "42", "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", decodeError(t, rec))
	})
}

func TestQuickCompareHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, svc := newTestServer(t)
		resp := &models.ComparisonResponse{GroupID: "g1", GroupType: models.GroupTypeComparison}
		svc.On("QuickCompare", mock.Anything, int64(42), "111", "222", "", true).Return(resp, nil).Once()

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/compare/quick", "42",
			`{"own_article_number":"111","competitor_article_number":"222","scrape_now":true}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var got models.ComparisonResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "g1", got.GroupID)
	})

	t.Run("error: unreachable card API maps to 502", func(t *testing.T) {
		srv, svc := newTestServer(t)
		svc.On("QuickCompare", mock.Anything, int64(42), "111", "222", "", true).
			Return(nil, apperr.New(apperr.KindExternalFetch, "all member fetches failed")).Once()

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/compare/quick", "42",
			`{"own_article_number":"111","competitor_article_number":"222","scrape_now":true}`)

		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "external_fetch", decodeError(t, rec))
	})
}

func TestGetComparisonHandler(t *testing.T) {
	t.Run("success with refresh flag", func(t *testing.T) {
		srv, svc := newTestServer(t)
		resp := &models.ComparisonResponse{GroupID: "g1", IsFresh: true}
		svc.On("Compare", mock.Anything, "g1", int64(42), true).Return(resp, nil).Once()

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/groups/g1/comparison?refresh=true", "42", "")

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("refresh defaults to false", func(t *testing.T) {
		srv, svc := newTestServer(t)
		resp := &models.ComparisonResponse{GroupID: "g1"}
		svc.On("Compare", mock.Anything, "g1", int64(42), false).Return(resp, nil).Once()

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/groups/g1/comparison", "42", "")

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("error: duplicate own member maps to 409", func(t *testing.T) {
		srv, svc := newTestServer(t)
		svc.On("Compare", mock.Anything, "g1", int64(42), false).
			Return(nil, apperr.Conflict("group g1 already has an own member")).Once()

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/groups/g1/comparison", "42", "")

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "conflict", decodeError(t, rec))
	})

	t.Run("error: unexpected failure maps to 500", func(t *testing.T) {
		srv, svc := newTestServer(t)
		svc.On("Compare", mock.Anything, "g1", int64(42), false).Return(nil, assert.AnError).Once()

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/groups/g1/comparison", "42", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "unknown", decodeError(t, rec))
	})
}

func TestGetHistoryHandler(t *testing.T) {
	t.Run("days defaults to 7", func(t *testing.T) {
		srv, svc := newTestServer(t)
		resp := &models.HistoryResponse{GroupID: "g1", TotalCount: 2}
		svc.On("History", mock.Anything, "g1", int64(42), 7).Return(resp, nil).Once()

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/groups/g1/history", "42", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got models.HistoryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 2, got.TotalCount)
	})

	t.Run("explicit days", func(t *testing.T) {
		srv, svc := newTestServer(t)
		resp := &models.HistoryResponse{GroupID: "g1"}
		svc.On("History", mock.Anything, "g1", int64(42), 30).Return(resp, nil).Once()

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/groups/g1/history?days=30", "42", "")

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("error: non-numeric days", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/groups/g1/history?days=week", "42", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserStatsHandler(t *testing.T) {
	srv, svc := newTestServer(t)
	stats := &models.UserStats{TotalGroups: 3, ComparisonGroups: 2, TotalArticles: 5}
	svc.On("UserStats", mock.Anything, int64(42)).Return(stats, nil).Once()

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/users/stats", "42", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.UserStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.TotalGroups)
}
