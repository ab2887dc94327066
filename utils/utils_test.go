package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"travel-booking/services/transaction"
	"travel-booking/types"
	approvalTypes "travel-booking/types/approval"

	"github.com/gofiber/fiber/v2"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{transaction.ErrAlreadyDecided, fiber.StatusConflict},
		{transaction.ErrAlreadyPending, fiber.StatusConflict},
		{transaction.ErrSerializationConflict, fiber.StatusConflict},
		{transaction.Errorf(transaction.KindNotFound, "approval 3 not found"), fiber.StatusNotFound},
		{transaction.ErrConstraintViolation, fiber.StatusBadRequest},
		{transaction.ErrInvalidInput, fiber.StatusBadRequest},
		{transaction.ErrPoolExhausted, fiber.StatusServiceUnavailable},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := ErrorStatus(tt.err); got != tt.want {
			t.Errorf("ErrorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRespondErrorHidesStoreText(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return RespondError(c, transaction.Classify(errors.New(`pq: relation "users" does not exist`)))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return RespondError(c, transaction.Errorf(transaction.KindNotFound, "approval 9 not found"))
	})

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/fail", fiber.StatusInternalServerError, "internal server error"},
		{"/missing", fiber.StatusNotFound, "approval 9 not found"},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != tt.status {
			t.Errorf("%s status = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
		body, _ := io.ReadAll(resp.Body)
		var got types.ApiResponse
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if got.Message != tt.message {
			t.Errorf("%s message = %q, want %q", tt.path, got.Message, tt.message)
		}
	}
}

func TestValidateStruct(t *testing.T) {
	ok := approvalTypes.DecisionRequest{Decision: "APPROVED"}
	if err := ValidateStruct(ok); err != nil {
		t.Errorf("ValidateStruct(valid) error = %v", err)
	}

	bad := approvalTypes.DecisionRequest{Decision: "MAYBE"}
	err := ValidateStruct(bad)
	if !errors.Is(err, transaction.ErrInvalidInput) {
		t.Fatalf("ValidateStruct(invalid) error = %v, want InvalidInput", err)
	}
	if UserMessage(err) != "decision failed on the 'oneof' rule" {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}

	if err := ValidateStruct(approvalTypes.SubmitApprovalRequest{BookingType: "HOTEL"}); !errors.Is(err, transaction.ErrInvalidInput) {
		t.Errorf("ValidateStruct(no booking id) error = %v, want InvalidInput", err)
	}
}

func TestParseDate(t *testing.T) {
	if d, err := ParseDate(""); d != nil || err != nil {
		t.Errorf("ParseDate(\"\") = %v, %v", d, err)
	}
	d, err := ParseDate("2024-03-09")
	if err != nil || d.Year() != 2024 || d.Month() != 3 || d.Day() != 9 {
		t.Errorf("ParseDate() = %v, %v", d, err)
	}
	if _, err := ParseDate("09/03/2024"); !errors.Is(err, transaction.ErrInvalidInput) {
		t.Errorf("ParseDate(bad) error = %v, want InvalidInput", err)
	}
}
