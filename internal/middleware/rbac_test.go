package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func roleApp(role interface{}, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != nil {
			c.Locals(LocalUserRole, role)
		}
		return c.Next()
	})
	app.Use(guard)
	app.Post("/classes", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func TestRequireWriterAllowsTeacher(t *testing.T) {
	resp, err := roleApp("Teacher", RequireWriter()).Test(httptest.NewRequest(http.MethodPost, "/classes", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRequireWriterRejectsCoordinator(t *testing.T) {
	resp, err := roleApp("coordinator", RequireWriter()).Test(httptest.NewRequest(http.MethodPost, "/classes", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	resp, err := roleApp(nil, RequireRole("teacher", "coordinator")).Test(httptest.NewRequest(http.MethodPost, "/classes", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
