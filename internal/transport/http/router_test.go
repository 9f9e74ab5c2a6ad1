package httptransport_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ayushdesk/internal/auth"
	"ayushdesk/internal/content"
	"ayushdesk/internal/directory"
	"ayushdesk/internal/domain"
	"ayushdesk/internal/remote"
	"ayushdesk/internal/remote/mocks"
	httptransport "ayushdesk/internal/transport/http"
	"ayushdesk/pkg/testutil"
)

var routerBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type RouterSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	upstream *mocks.MockUpstream
	handler  http.Handler
	token    string
}

func (s *RouterSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.upstream = mocks.NewMockUpstream(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := directory.NewStore(routerBase)
	dirService := directory.NewService(store, logger, directory.WithLatency(directory.Latency{}))
	stats := directory.NewStatsProvider(dirService, nil, logger)
	adapter := remote.NewAdapter(s.upstream, dirService, stats, logger, nil)

	tokens := auth.NewTokenService("router-test-key", "ayushdesk-test", time.Hour)
	authService := auth.NewService(s.upstream, tokens, auth.LocalOperator{
		Email: "admin@ayushdesk.local", Password: "admin123", DisplayName: "Super Admin",
	}, logger)

	contentService := content.NewService(content.NewInMemoryStore(), logger)

	s.handler = httptransport.NewRouter(httptransport.Deps{
		Auth:      httptransport.NewAuthHandler(authService, logger),
		Users:     httptransport.NewUserHandler(adapter, dirService, logger),
		Documents: httptransport.NewDocumentHandler(dirService, logger),
		Content:   httptransport.NewContentHandler(contentService, logger),
		System:    httptransport.NewSystemHandler(dirService, stats, logger),
		Validator: authService,
		Metrics:   nil,
		Logger:    logger,
	})

	token, err := tokens.Generate("admin@ayushdesk.local", "Super Admin")
	require.NoError(s.T(), err)
	s.token = token
}

func (s *RouterSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+s.token)
	return req
}

func (s *RouterSuite) TestHealthz() {
	rr := testutil.DoRequest(s.handler, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	assert.Equal(s.T(), http.StatusOK, rr.Code)
	assert.JSONEq(s.T(), `{"status":"ok"}`, rr.Body.String())
}

func (s *RouterSuite) TestProtectedRoutesRejectMissingToken() {
	rr := testutil.DoRequest(s.handler, testutil.NewRequest(s.T(), http.MethodGet, "/api/v1/admin/get-all-users"))
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
}

func (s *RouterSuite) TestLoginLocalFallback() {
	s.upstream.EXPECT().Login(gomock.Any(), "admin@ayushdesk.local", "admin123").
		Return(remote.LoginResult{}, errors.New("dial tcp: connection refused"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/v1/admin/admin-login", map[string]string{
		"email": "admin@ayushdesk.local", "password": "admin123",
	})
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	env := testutil.DecodeEnvelope(s.T(), rr)
	assert.True(s.T(), env.Success)
	assert.Equal(s.T(), "Login successful (local session)", env.Message)
}

func (s *RouterSuite) TestGetAllUsersEnvelope() {
	s.upstream.EXPECT().GetAllUsers(gomock.Any()).Return(nil, errors.New("dial tcp: connection refused"))

	req := s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/api/v1/admin/get-all-users?page=1&limit=10"))
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	page := testutil.DecodeData[directory.Page[domain.UserSummary]](s.T(), rr)
	assert.Len(s.T(), page.Data, 10)
	assert.Equal(s.T(), 36, page.Total)
}

func (s *RouterSuite) TestGetAllUsersSortAndFilter() {
	s.upstream.EXPECT().GetAllUsers(gomock.Any()).Return(nil, errors.New("dial tcp: connection refused"))

	req := s.authed(testutil.NewRequest(s.T(), http.MethodGet,
		"/api/v1/admin/get-all-users?page=1&limit=36&sortBy=fullname&sortOrder=desc&status=VERIFIED"))
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	page := testutil.DecodeData[directory.Page[domain.UserSummary]](s.T(), rr)
	require.NotEmpty(s.T(), page.Data)
	for _, u := range page.Data {
		assert.True(s.T(), u.IsEmailVerified)
	}
	for i := 1; i < len(page.Data); i++ {
		assert.GreaterOrEqual(s.T(), page.Data[i-1].Fullname, page.Data[i].Fullname)
	}
}

func (s *RouterSuite) TestGetAllUsersPageSizeAndSortDescParams() {
	s.upstream.EXPECT().GetAllUsers(gomock.Any()).Return(nil, errors.New("dial tcp: connection refused"))

	req := s.authed(testutil.NewRequest(s.T(), http.MethodGet,
		"/api/v1/admin/get-all-users?page=1&pageSize=5&sortBy=fullname&sortDesc=true"))
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	page := testutil.DecodeData[directory.Page[domain.UserSummary]](s.T(), rr)
	assert.Len(s.T(), page.Data, 5)
	assert.Equal(s.T(), 5, page.PageSize)
	for i := 1; i < len(page.Data); i++ {
		assert.GreaterOrEqual(s.T(), page.Data[i-1].Fullname, page.Data[i].Fullname)
	}
}

func (s *RouterSuite) TestGetUserStatsFallback() {
	s.upstream.EXPECT().GetUserStats(gomock.Any()).
		Return(remote.UserStats{}, errors.New("dial tcp: connection refused"))

	req := s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/api/v1/admin/get-user-stats"))
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	m := testutil.DecodeData[domain.DashboardMetrics](s.T(), rr)
	assert.Equal(s.T(), 36, m.TotalUsers)
}

func (s *RouterSuite) TestUpdateUserStatus() {
	req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPatch, "/api/v1/admin/users/user-1/status", map[string]string{
		"status": "VERIFIED",
		"note":   "All documents verified",
	}))
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	user := testutil.DecodeData[domain.User](s.T(), rr)
	assert.Equal(s.T(), domain.StatusVerified, user.Status)
	assert.Equal(s.T(), domain.AuditStatusUpdated, user.Audit[0].Action)
	// The authenticated operator is the audit actor.
	assert.Equal(s.T(), "admin@ayushdesk.local", user.Audit[0].Actor)
}

func (s *RouterSuite) TestUpdateUserStatusInvalid() {
	req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPatch, "/api/v1/admin/users/user-1/status", map[string]string{
		"status": "BOGUS",
	}))
	rr := testutil.DoRequest(s.handler, req)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)

	env := testutil.DecodeEnvelope(s.T(), rr)
	assert.False(s.T(), env.Success)
}

func (s *RouterSuite) TestBulkStatus() {
	req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/v1/admin/users/bulk-status", map[string]any{
		"ids":    []string{"user-2", "missing"},
		"status": "REJECTED",
	}))
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	updated := testutil.DecodeData[[]domain.User](s.T(), rr)
	require.Len(s.T(), updated, 1)
	assert.Equal(s.T(), "user-2", updated[0].ID)
}

func (s *RouterSuite) TestDeleteUser() {
	s.upstream.EXPECT().DeleteUser(gomock.Any(), "user-4").Return(nil)

	req := s.authed(testutil.NewRequest(s.T(), http.MethodDelete, "/api/v1/admin/users/user-4"))
	rr := testutil.DoRequest(s.handler, req)
	assert.Equal(s.T(), http.StatusOK, rr.Code)
}

func (s *RouterSuite) TestDocumentVerify() {
	req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/v1/admin/documents/doc-1-0/verify", map[string]string{
		"note": "legible",
	}))
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	result := testutil.DecodeData[directory.DocumentActionResult](s.T(), rr)
	assert.Equal(s.T(), domain.DocVerified, result.Document.VerifiedStatus)
	assert.Equal(s.T(), "user-1", result.Document.UserID)
}

func (s *RouterSuite) TestDocumentRejectUnknown() {
	req := s.authed(testutil.NewRequest(s.T(), http.MethodPost, "/api/v1/admin/documents/doc-404-9/reject"))
	rr := testutil.DoRequest(s.handler, req)
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)
}

func (s *RouterSuite) TestListDocuments() {
	req := s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/api/v1/admin/documents?page=1&limit=5&status=REJECTED"))
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	page := testutil.DecodeData[directory.Page[domain.DocumentRecord]](s.T(), rr)
	require.NotEmpty(s.T(), page.Data)
	for _, d := range page.Data {
		assert.Equal(s.T(), domain.DocRejected, d.VerifiedStatus)
	}
}

func (s *RouterSuite) TestListDocumentsPageSizeParam() {
	req := s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/api/v1/admin/documents?page=1&pageSize=3"))
	rr := testutil.DoRequest(s.handler, req)

	require.Equal(s.T(), http.StatusOK, rr.Code)
	page := testutil.DecodeData[directory.Page[domain.DocumentRecord]](s.T(), rr)
	assert.Len(s.T(), page.Data, 3)
	assert.Equal(s.T(), 3, page.PageSize)
}

func (s *RouterSuite) TestAnnouncementLifecycle() {
	createReq := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/v1/admin/announcements", map[string]string{
		"title": "Portal downtime", "message": "Sunday 02:00 IST", "audience": "ALL",
	}))
	createRR := testutil.DoRequest(s.handler, createReq)
	require.Equal(s.T(), http.StatusCreated, createRR.Code)
	created := testutil.DecodeData[domain.Announcement](s.T(), createRR)

	listRR := testutil.DoRequest(s.handler, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/api/v1/admin/announcements")))
	require.Equal(s.T(), http.StatusOK, listRR.Code)
	list := testutil.DecodeData[[]domain.Announcement](s.T(), listRR)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), created.ID, list[0].ID)

	deleteRR := testutil.DoRequest(s.handler, s.authed(testutil.NewRequest(s.T(), http.MethodDelete, "/api/v1/admin/announcements/"+created.ID)))
	assert.Equal(s.T(), http.StatusOK, deleteRR.Code)
}

func (s *RouterSuite) TestAnnouncementValidation() {
	req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/v1/admin/announcements", map[string]string{
		"title": "   ",
	}))
	rr := testutil.DoRequest(s.handler, req)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
}

func (s *RouterSuite) TestGalleryCreateAndUpdate() {
	createReq := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/v1/admin/gallery", map[string]string{
		"title": "Yoga Day", "category": "events", "imageUrl": "https://img.example/yoga.jpg",
	}))
	createRR := testutil.DoRequest(s.handler, createReq)
	require.Equal(s.T(), http.StatusCreated, createRR.Code)
	created := testutil.DecodeData[domain.GalleryItem](s.T(), createRR)

	updateReq := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPut, "/api/v1/admin/gallery/"+created.ID, map[string]any{
		"description": "",
		"title":       "Yoga Day 2025",
	}))
	updateRR := testutil.DoRequest(s.handler, updateReq)
	require.Equal(s.T(), http.StatusOK, updateRR.Code)
	updated := testutil.DecodeData[domain.GalleryItem](s.T(), updateRR)
	assert.Equal(s.T(), "Yoga Day 2025", updated.Title)
	assert.Empty(s.T(), updated.Description)
}

func (s *RouterSuite) TestReset() {
	req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPatch, "/api/v1/admin/users/user-1/status", map[string]string{
		"status": "REJECTED",
	}))
	require.Equal(s.T(), http.StatusOK, testutil.DoRequest(s.handler, req).Code)

	resetRR := testutil.DoRequest(s.handler, s.authed(testutil.NewRequest(s.T(), http.MethodPost, "/api/v1/admin/reset")))
	require.Equal(s.T(), http.StatusOK, resetRR.Code)

	s.upstream.EXPECT().GetAllUsers(gomock.Any()).Return(nil, errors.New("dial tcp: connection refused"))
	listRR := testutil.DoRequest(s.handler, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/api/v1/admin/get-all-users?page=1&limit=1&search=Diya+Chopra")))
	require.Equal(s.T(), http.StatusOK, listRR.Code)
	page := testutil.DecodeData[directory.Page[domain.UserSummary]](s.T(), listRR)
	require.NotEmpty(s.T(), page.Data)
	// user-1 is back to its seeded UNDER_REVIEW state after the reset.
	assert.False(s.T(), page.Data[0].IsEmailVerified)
}

func (s *RouterSuite) TestContextPropagation() {
	// A canceled request context must not corrupt store state; mutations are
	// applied synchronously before the handler returns.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPatch, "/api/v1/admin/users/user-3/status", map[string]string{
		"status": "VERIFIED",
	})).WithContext(ctx)
	rr := testutil.DoRequest(s.handler, req)
	assert.Equal(s.T(), http.StatusOK, rr.Code)
}
