package approval

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func TestDecideWithoutUserIDIsUnauthorized(t *testing.T) {
	ac := NewApprovalController(nil)
	app := fiber.New()
	app.Post("/approvals/:id/decision", func(c *fiber.Ctx) error {
		c.Locals("user", jwt.MapClaims{"username": "root"})
		return c.Next()
	}, ac.Decide)

	req := httptest.NewRequest("POST", "/approvals/3/decision", strings.NewReader(`{"decision":"APPROVED"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestDecideRejectsBadInput(t *testing.T) {
	app := fiber.New()
	app.Post("/approvals/:id/decision", NewApprovalController(nil).Decide)

	tests := []struct {
		path string
		body string
		want int
	}{
		{"/approvals/abc/decision", `{"decision":"APPROVED"}`, fiber.StatusBadRequest},
		{"/approvals/3/decision", `{"decision":"MAYBE"}`, fiber.StatusBadRequest},
		{"/approvals/3/decision", `{`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("POST", tt.path, strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != tt.want {
			t.Errorf("%s %s status = %d, want %d", tt.path, tt.body, resp.StatusCode, tt.want)
		}
	}
}
