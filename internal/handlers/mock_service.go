package handlers

import (
	"context"
	"net/http"
	"time"

	"fujical/internal/models"
	"fujical/internal/service"

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

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockCalendar struct {
	monthResp *models.CalendarResponse
	monthErr  error
	dayResp   []models.FujiEvent
	dayErr    error
	upResp    []models.FujiEvent
	upErr     error

	lastYear  int
	lastMonth int
	lastDate  string
	lastDays  int
	lastLimit int
	upCalls   int
}

func (m *mockCalendar) GetMonthlyCalendar(ctx context.Context, year, month int) (*models.CalendarResponse, error) {
	m.lastYear = year
	m.lastMonth = month
	return m.monthResp, m.monthErr
}
func (m *mockCalendar) GetDayEvents(ctx context.Context, date string) ([]models.FujiEvent, error) {
	m.lastDate = date
	return m.dayResp, m.dayErr
}
func (m *mockCalendar) GetUpcoming(ctx context.Context, days, limit int) ([]models.FujiEvent, error) {
	m.lastDays = days
	m.lastLimit = limit
	m.upCalls++
	return m.upResp, m.upErr
}

type mockWeather struct {
	resp     *models.WeatherInfo
	err      error
	lastDate string
}

func (m *mockWeather) GetByDate(ctx context.Context, date string) (*models.WeatherInfo, error) {
	m.lastDate = date
	return m.resp, m.err
}

type mockLocations struct {
	listResp []models.Location
	listErr  error
	getResp  *models.Location
	getErr   error
	lastID   int
}

func (m *mockLocations) List(ctx context.Context) ([]models.Location, error) {
	return m.listResp, m.listErr
}
func (m *mockLocations) Get(ctx context.Context, id int) (*models.Location, error) {
	m.lastID = id
	return m.getResp, m.getErr
}

type mockFavorites struct {
	addErr    error
	removeErr error
	listResp  []models.Location
	listErr   error

	lastUserID     int
	lastLocationID int
}

func (m *mockFavorites) Add(ctx context.Context, userID, locationID int) error {
	m.lastUserID = userID
	m.lastLocationID = locationID
	return m.addErr
}
func (m *mockFavorites) Remove(ctx context.Context, userID, locationID int) error {
	m.lastUserID = userID
	m.lastLocationID = locationID
	return m.removeErr
}
func (m *mockFavorites) List(ctx context.Context, userID int) ([]models.Location, error) {
	m.lastUserID = userID
	return m.listResp, m.listErr
}

type mockCalculator struct{}

func (m *mockCalculator) Run(ctx context.Context, tick time.Duration) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
