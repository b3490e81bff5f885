package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Rakesh-27-git/WellnessSpace/pkg/errors"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/middleware"

	"github.com/Rakesh-27-git/WellnessSpace/internal/domain"
)

const testOwnerID = "22222222-2222-2222-2222-222222222222"

func authedRequest(t *testing.T, env *testEnv, method, target, body string) *http.Request {
	t.Helper()

	token, err := env.jwt.GenerateAccessToken(testOwnerID, "owner@example.com")
	require.NoError(t, err)

	req := jsonRequest(method, target, body)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
	return req
}

func testSession(id, status string) domain.Session {
	now := time.Now().UTC()
	return domain.Session{
		ID:         id,
		OwnerID:    testOwnerID,
		Title:      "Morning Yoga",
		Tags:       []string{"yoga", "morning"},
		PayloadURL: "https://cdn.example.com/sessions/yoga.json",
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestListPublished_Public(t *testing.T) {
	env := newTestEnv(t)

	sessions := []domain.Session{testSession("33333333-3333-3333-3333-333333333333", domain.StatusPublished)}
	env.sessionRepo.On("ListPublished", mock.Anything).Return(sessions, nil)

	// No auth cookie: the published list is public.
	req, _ := http.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec, body := doRequest(t, env, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Contains(t, string(body.Data), "Morning Yoga")
	assert.Equal(t, "public, max-age=30", rec.Header().Get("Cache-Control"))
}

func TestListPublished_Empty(t *testing.T) {
	env := newTestEnv(t)

	env.sessionRepo.On("ListPublished", mock.Anything).Return([]domain.Session{}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec, body := doRequest(t, env, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(body.Data))
}

func TestListMine_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/my-sessions", nil)
	rec, _ := doRequest(t, env, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env.sessionRepo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
}

func TestListMine_Success(t *testing.T) {
	env := newTestEnv(t)

	sessions := []domain.Session{
		testSession("33333333-3333-3333-3333-333333333333", domain.StatusDraft),
		testSession("44444444-4444-4444-4444-444444444444", domain.StatusPublished),
	}
	env.sessionRepo.On("ListByOwner", mock.Anything, testOwnerID).Return(sessions, nil)

	req := authedRequest(t, env, http.MethodGet, "/api/my-sessions", "")
	rec, body := doRequest(t, env, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	env.sessionRepo.AssertExpectations(t)
}

func TestGetMine_Success(t *testing.T) {
	env := newTestEnv(t)

	id := "33333333-3333-3333-3333-333333333333"
	session := testSession(id, domain.StatusDraft)
	env.sessionRepo.On("GetOwned", mock.Anything, id, testOwnerID).Return(&session, nil)

	req := authedRequest(t, env, http.MethodGet, "/api/my-sessions/"+id, "")
	rec, body := doRequest(t, env, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), id)
}

func TestGetMine_NotFound(t *testing.T) {
	env := newTestEnv(t)

	id := "33333333-3333-3333-3333-333333333333"
	env.sessionRepo.On("GetOwned", mock.Anything, id, testOwnerID).Return(nil, apperrors.NotFound("session", id))

	req := authedRequest(t, env, http.MethodGet, "/api/my-sessions/"+id, "")
	rec, _ := doRequest(t, env, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMine_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	req := authedRequest(t, env, http.MethodGet, "/api/my-sessions/not-a-uuid", "")
	rec, _ := doRequest(t, env, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.sessionRepo.AssertNotCalled(t, "GetOwned", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveDraft_CreatesNewSession(t *testing.T) {
	env := newTestEnv(t)

	env.sessionRepo.On("Insert", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
		return s.OwnerID == testOwnerID && s.Status == domain.StatusDraft
	})).Return(nil)

	req := authedRequest(t, env, http.MethodPost, "/api/my-sessions/save-draft",
		`{"title":"Morning Yoga","tags":["yoga"],"payloadUrl":"https://cdn.example.com/sessions/yoga.json"}`)
	rec, body := doRequest(t, env, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Contains(t, string(body.Data), `"draft"`)
	env.sessionRepo.AssertExpectations(t)
}

func TestSaveDraft_UpdatesExistingSession(t *testing.T) {
	env := newTestEnv(t)

	id := "33333333-3333-3333-3333-333333333333"
	stored := testSession(id, domain.StatusDraft)

	env.sessionRepo.On("UpdateIfOwner", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
		return s.ID == id && s.OwnerID == testOwnerID && s.Status == domain.StatusDraft
	})).Return(true, nil)
	env.sessionRepo.On("GetOwned", mock.Anything, id, testOwnerID).Return(&stored, nil)

	req := authedRequest(t, env, http.MethodPost, "/api/my-sessions/save-draft",
		`{"sessionId":"`+id+`","title":"Morning Yoga","payloadUrl":"https://cdn.example.com/sessions/yoga.json"}`)
	rec, _ := doRequest(t, env, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.sessionRepo.AssertExpectations(t)
}

func TestSaveDraft_SomeoneElsesSession(t *testing.T) {
	env := newTestEnv(t)

	id := "33333333-3333-3333-3333-333333333333"
	env.sessionRepo.On("UpdateIfOwner", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(false, nil)

	req := authedRequest(t, env, http.MethodPost, "/api/my-sessions/save-draft",
		`{"sessionId":"`+id+`","title":"Morning Yoga","payloadUrl":"https://cdn.example.com/sessions/yoga.json"}`)
	rec, _ := doRequest(t, env, req)

	// Not owned is indistinguishable from not existing.
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveDraft_MissingTitle(t *testing.T) {
	env := newTestEnv(t)

	req := authedRequest(t, env, http.MethodPost, "/api/my-sessions/save-draft",
		`{"payloadUrl":"https://cdn.example.com/sessions/yoga.json"}`)
	rec, _ := doRequest(t, env, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.sessionRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSaveDraft_RelativePayloadURL(t *testing.T) {
	env := newTestEnv(t)

	req := authedRequest(t, env, http.MethodPost, "/api/my-sessions/save-draft",
		`{"title":"Morning Yoga","payloadUrl":"/sessions/yoga.json"}`)
	rec, _ := doRequest(t, env, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.sessionRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestPublish_CreatesPublishedSession(t *testing.T) {
	env := newTestEnv(t)

	env.sessionRepo.On("Insert", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
		return s.OwnerID == testOwnerID && s.Status == domain.StatusPublished
	})).Return(nil)

	req := authedRequest(t, env, http.MethodPost, "/api/my-sessions/publish",
		`{"title":"Morning Yoga","tags":["yoga"],"payloadUrl":"https://cdn.example.com/sessions/yoga.json"}`)
	rec, body := doRequest(t, env, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), `"published"`)
	env.sessionRepo.AssertExpectations(t)
}

func TestPublish_PromotesDraft(t *testing.T) {
	env := newTestEnv(t)

	id := "33333333-3333-3333-3333-333333333333"
	stored := testSession(id, domain.StatusPublished)

	env.sessionRepo.On("UpdateIfOwner", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
		return s.ID == id && s.Status == domain.StatusPublished
	})).Return(true, nil)
	env.sessionRepo.On("GetOwned", mock.Anything, id, testOwnerID).Return(&stored, nil)

	req := authedRequest(t, env, http.MethodPost, "/api/my-sessions/publish",
		`{"sessionId":"`+id+`","title":"Morning Yoga","payloadUrl":"https://cdn.example.com/sessions/yoga.json"}`)
	rec, _ := doRequest(t, env, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.sessionRepo.AssertExpectations(t)
}

func TestPublish_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	req := jsonRequest(http.MethodPost, "/api/my-sessions/publish",
		`{"title":"Morning Yoga","payloadUrl":"https://cdn.example.com/sessions/yoga.json"}`)
	rec, _ := doRequest(t, env, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env.sessionRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
