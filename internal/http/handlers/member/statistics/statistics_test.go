package statistics

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Statistics() models.Statistics {
	return m.Called().Get(0).(models.Statistics)
}

func TestStatisticsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockService := new(MockService)
	mockService.On("Statistics").Return(models.Statistics{
		"total": 3, "active": 2, "inactive": 1, "basic": 1, "premium": 1, "vip": 1,
	}).Once()

	w := httptest.NewRecorder()
	New(logger, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members/statistics", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Statistics map[string]int `json:"statistics"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.Statistics["total"])
	assert.Equal(t, 1, body.Data.Statistics["vip"])
	mockService.AssertExpectations(t)
}
