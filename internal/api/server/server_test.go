package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-portfolio/internal/api/server"
	"github.com/feral-file/ff-portfolio/internal/mocks"
	"github.com/feral-file/ff-portfolio/internal/store"
)

func TestRouter_CORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := server.NewRouter(mocks.NewMockAPIExecutor(ctrl))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/portfolio?address=0x0", nil)
	req.Header.Set("Origin", "https://wallet.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockAPIExecutor(ctrl)
	exec.EXPECT().GetStats(gomock.Any()).DoAndReturn(func(context.Context) (*store.Stats, error) {
		panic("boom")
	})
	router := server.NewRouter(exec)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"internal_error","message":"Internal server error"}`, w.Body.String())
}
