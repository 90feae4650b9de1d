package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		panic(err)
	}
	return w, body
}

func TestOKNormalizesNilSlice(t *testing.T) {
	var items []string
	w, body := record(func(c *gin.Context) { OK(c, items) })

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	data, ok := body["data"].([]interface{})
	if !ok {
		t.Fatalf("data = %v, want an empty array not null", body["data"])
	}
	if len(data) != 0 {
		t.Errorf("data = %v", data)
	}
}

func TestOKEnvelopeShape(t *testing.T) {
	w, body := record(func(c *gin.Context) { OK(c, gin.H{"x": 1}) })

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["success"] != true {
		t.Error("success must be true")
	}
	if body["message"] != "OK" {
		t.Errorf("message = %v", body["message"])
	}
	if _, present := body["errors"]; present {
		t.Error("errors must be omitted on success")
	}
}

func TestPaged(t *testing.T) {
	pag := Pagination{Total: 21, CurrentPage: 2, TotalPage: 3, Size: 10, HasNextPage: true}
	w, body := record(func(c *gin.Context) { Paged(c, []int{1, 2, 3}, pag) })

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	data := body["data"].(map[string]interface{})
	if len(data["items"].([]interface{})) != 3 {
		t.Errorf("items = %v", data["items"])
	}
	meta := data["pagination"].(map[string]interface{})
	if meta["total"].(float64) != 21 || meta["has_next_page"] != true {
		t.Errorf("pagination = %v", meta)
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		fn         func(c *gin.Context)
		wantStatus int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "nope") }, http.StatusBadRequest},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c) }, http.StatusUnauthorized},
		{"forbidden", func(c *gin.Context) { Forbidden(c) }, http.StatusForbidden},
		{"not found", func(c *gin.Context) { NotFound(c) }, http.StatusNotFound},
		{"method not allowed", func(c *gin.Context) { MethodNotAllowed(c) }, http.StatusMethodNotAllowed},
		{"unprocessable", func(c *gin.Context) { UnprocessableEntity(c, "bad") }, http.StatusUnprocessableEntity},
		{"too many requests", func(c *gin.Context) { TooManyRequests(c, "slow down") }, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := record(tt.fn)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if body["success"] != false {
				t.Error("success must be false")
			}
			if body["message"] == "" {
				t.Error("message must be set")
			}
		})
	}
}

func TestInternalErrorIsSanitized(t *testing.T) {
	secretErr := errors.New("dial tcp 10.0.0.5:3306: connection refused")
	w, body := record(func(c *gin.Context) { InternalError(c, secretErr) })

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if msg := body["message"].(string); strings.Contains(msg, "10.0.0.5") {
		t.Errorf("internal detail leaked to the client: %q", msg)
	}
}

func TestValidationFailed(t *testing.T) {
	type form struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"  binding:"required"`
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"email":"not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var f form
	err := c.ShouldBindJSON(&f)
	if err == nil {
		t.Fatal("binding should fail")
	}
	ValidationFailed(c, err)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	fields, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("errors = %v, want field map", body["errors"])
	}
	if _, ok := fields["email"]; !ok {
		t.Errorf("missing email error: %v", fields)
	}
	if _, ok := fields["name"]; !ok {
		t.Errorf("missing name error: %v", fields)
	}
}

func TestValidationFailedOnMalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst struct {
		X string `json:"x"`
	}
	err := c.ShouldBindJSON(&dst)
	if err == nil {
		t.Fatal("binding should fail")
	}
	ValidationFailed(c, err)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", w.Code)
	}
}
