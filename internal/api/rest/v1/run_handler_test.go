//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kemaleren/lazyflow/internal/domain/runs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func sampleRun() *runs.Run {
	finished := time.Now()
	return &runs.Run{
		ID:         "abc-123",
		PlanName:   "lazyflow-development",
		Branch:     "master",
		Status:     runs.StatusSucceeded,
		StartedAt:  finished.Add(-2 * time.Minute),
		FinishedAt: &finished,
		Steps: []runs.StepResult{
			{
				Position: 0,
				Name:     "python-requirements",
				Kind:     "pip",
				Command:  "pip install -r requirements/development-stage1.txt",
				Status:   runs.StepSucceeded,
			},
		},
	}
}

func TestRunHandler_ListRuns_Success(t *testing.T) {
	mockHistoryService := new(MockRunHistoryService)
	handler := NewRunHandler(mockHistoryService)

	mockHistoryService.
		On("List", mock.Anything, mock.Anything).
		Return([]*runs.Run{sampleRun()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/runs", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListRuns(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc-123")
	assert.Contains(t, w.Body.String(), "lazyflow-development")
	mockHistoryService.AssertExpectations(t)
}

func TestRunHandler_ListRuns_QueryParameters(t *testing.T) {
	mockHistoryService := new(MockRunHistoryService)
	handler := NewRunHandler(mockHistoryService)

	mockHistoryService.
		On("List", mock.Anything, mock.MatchedBy(func(q *runs.RunQuery) bool {
			return q.PlanName == "lazyflow-development" &&
				q.Status == runs.StatusFailed &&
				q.Limit == 10 &&
				q.Offset == 20
		})).
		Return([]*runs.Run{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/runs?plan=lazyflow-development&status=failed&limit=10&offset=20", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListRuns(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockHistoryService.AssertExpectations(t)
}

func TestRunHandler_ListRuns_Error(t *testing.T) {
	mockHistoryService := new(MockRunHistoryService)
	handler := NewRunHandler(mockHistoryService)

	mockHistoryService.
		On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("invalid sort field"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/runs?sort_by=invalid", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListRuns(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockHistoryService.AssertExpectations(t)
}

func TestRunHandler_GetRunByID_Success(t *testing.T) {
	mockHistoryService := new(MockRunHistoryService)
	handler := NewRunHandler(mockHistoryService)

	mockHistoryService.
		On("GetByID", mock.Anything, "abc-123").
		Return(sampleRun(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/runs/abc-123", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: "abc-123"}}

	handler.GetRunByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "python-requirements")
	mockHistoryService.AssertExpectations(t)
}

func TestRunHandler_GetRunByID_NotFound(t *testing.T) {
	mockHistoryService := new(MockRunHistoryService)
	handler := NewRunHandler(mockHistoryService)

	mockHistoryService.
		On("GetByID", mock.Anything, "missing").
		Return(nil, errors.New("record not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/runs/missing", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: "missing"}}

	handler.GetRunByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockHistoryService.AssertExpectations(t)
}

func TestRunHandler_DeleteRunByID_Success(t *testing.T) {
	mockHistoryService := new(MockRunHistoryService)
	handler := NewRunHandler(mockHistoryService)

	mockHistoryService.
		On("DeleteByID", mock.Anything, "abc-123").
		Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/runs/abc-123", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: "abc-123"}}

	handler.DeleteRunByID(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockHistoryService.AssertExpectations(t)
}

func TestRunHandler_DeleteRunByID_Error(t *testing.T) {
	mockHistoryService := new(MockRunHistoryService)
	handler := NewRunHandler(mockHistoryService)

	mockHistoryService.
		On("DeleteByID", mock.Anything, "abc-123").
		Return(errors.New("delete failed"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/runs/abc-123", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: "abc-123"}}

	handler.DeleteRunByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockHistoryService.AssertExpectations(t)
}
