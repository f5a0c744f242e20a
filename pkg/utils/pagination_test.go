package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetPaginationParams(t *testing.T) {
	params := GetPaginationParams(paginationContext("page=3&limit=50"))
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 50, params.PageSize)

	params = GetPaginationParams(paginationContext(""))
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, defaultPageSize, params.PageSize)

	params = GetPaginationParams(paginationContext("page=-1&limit=500"))
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, defaultPageSize, params.PageSize)
}
