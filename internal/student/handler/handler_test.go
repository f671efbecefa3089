package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentorhub/teamformation/internal/middleware"
	studentModel "github.com/mentorhub/teamformation/internal/student/model"
	"github.com/mentorhub/teamformation/internal/student/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) AvailableStudents(
	ctx context.Context,
	callerID, search string,
) (*studentModel.AvailableStudentsResponse, error) {
	args := m.Called(ctx, callerID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*studentModel.AvailableStudentsResponse), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter(callerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.StudentIDKey, callerID)
	})
	return router
}

func TestHandler_AvailableStudents(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter("caller")
		router.GET("/teamformation/available-students", handler.AvailableStudents)

		resp := &studentModel.AvailableStudentsResponse{
			Students: []studentModel.AvailableStudent{
				{StudentID: "s1", Name: "Alice", Email: "alice@example.com", RollNo: "21CS001"},
				{StudentID: "s2", Name: "Bob", Email: "bob@example.com", RollNo: "21CS002", RequestPending: true},
			},
		}
		mockSvc.On("AvailableStudents", mock.Anything, "caller", "").Return(resp, nil)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/teamformation/available-students", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response studentModel.AvailableStudentsResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		require.Len(t, response.Students, 2)
		assert.True(t, response.Students[1].RequestPending)
		mockSvc.AssertExpectations(t)
	})

	t.Run("forwards search query", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter("caller")
		router.GET("/teamformation/available-students", handler.AvailableStudents)

		mockSvc.On("AvailableStudents", mock.Anything, "caller", "alice").
			Return(&studentModel.AvailableStudentsResponse{Students: []studentModel.AvailableStudent{}}, nil)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/teamformation/available-students?search=alice", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error returns 500", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter("caller")
		router.GET("/teamformation/available-students", handler.AvailableStudents)

		mockSvc.On("AvailableStudents", mock.Anything, "caller", "").
			Return(nil, errors.New("db down"))

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/teamformation/available-students", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "INTERNAL_ERROR", response.Error.Code)
	})
}
