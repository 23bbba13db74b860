package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRoleTestRouter(callerRole string, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if callerRole != "" {
			c.Set(RoleKey, callerRole)
		}
		c.Next()
	})
	router.Use(guard)
	router.GET("/guarded", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRoleMiddlewareAllows(t *testing.T) {
	router := newRoleTestRouter("manager", RoleMiddleware("manager", "admin"))
	assert.Equal(t, http.StatusOK, doRequest(router).Code)
}

func TestRoleMiddlewareForbids(t *testing.T) {
	router := newRoleTestRouter("viewer", RoleMiddleware("manager", "admin"))
	assert.Equal(t, http.StatusForbidden, doRequest(router).Code)
}

func TestRoleMiddlewareCaseInsensitive(t *testing.T) {
	router := newRoleTestRouter("Manager", RoleMiddleware("manager"))
	assert.Equal(t, http.StatusOK, doRequest(router).Code)
}

func TestRoleMiddlewareMissingRole(t *testing.T) {
	router := newRoleTestRouter("", RoleMiddleware("admin"))
	assert.Equal(t, http.StatusForbidden, doRequest(router).Code)
}

func TestAdminOnly(t *testing.T) {
	assert.Equal(t, http.StatusOK, doRequest(newRoleTestRouter("superadmin", AdminOnly())).Code)
	assert.Equal(t, http.StatusOK, doRequest(newRoleTestRouter("admin", AdminOnly())).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(newRoleTestRouter("manager", AdminOnly())).Code)
}

func TestManagerAndAbove(t *testing.T) {
	assert.Equal(t, http.StatusOK, doRequest(newRoleTestRouter("manager", ManagerAndAbove())).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(newRoleTestRouter("operator", ManagerAndAbove())).Code)
}

func TestOperatorAndAbove(t *testing.T) {
	assert.Equal(t, http.StatusOK, doRequest(newRoleTestRouter("operator", OperatorAndAbove())).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(newRoleTestRouter("viewer", OperatorAndAbove())).Code)
}
