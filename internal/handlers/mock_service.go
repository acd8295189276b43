package handlers

import (
	"context"
	"net/http"

	"taskdesk/internal/models"
	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRecords struct {
	list   []models.Record
	rec    models.Record
	err    error
	calls  int
	lastID int

	lastCaller int
	lastKind   string
	lastFields models.RecordFields
	lastPatch  models.RecordPatch
}

func (m *mockRecords) track(callerID int, kind string, id int) {
	m.calls++
	m.lastCaller = callerID
	m.lastKind = kind
	m.lastID = id
}

func (m *mockRecords) List(ctx context.Context, callerID int, kind string) ([]models.Record, error) {
	m.track(callerID, kind, 0)
	return m.list, m.err
}
func (m *mockRecords) Get(ctx context.Context, callerID int, kind string, id int) (models.Record, error) {
	m.track(callerID, kind, id)
	return m.rec, m.err
}
func (m *mockRecords) Create(ctx context.Context, callerID int, kind string, f models.RecordFields) (models.Record, error) {
	m.track(callerID, kind, 0)
	m.lastFields = f
	return m.rec, m.err
}
func (m *mockRecords) Update(ctx context.Context, callerID int, kind string, id int, p models.RecordPatch) (models.Record, error) {
	m.track(callerID, kind, id)
	m.lastPatch = p
	return m.rec, m.err
}
func (m *mockRecords) Delete(ctx context.Context, callerID int, kind string, id int) error {
	m.track(callerID, kind, id)
	return m.err
}

type mockActivity struct {
	resp       []models.Activity
	err        error
	lastCaller int
	lastFilter service.ActivityFilter
}

func (m *mockActivity) List(ctx context.Context, callerID int, f service.ActivityFilter) ([]models.Activity, error) {
	m.lastCaller = callerID
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Options{})
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
