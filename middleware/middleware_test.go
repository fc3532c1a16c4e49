package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"github.com/Jasith06/jlink-pos-web/globals"
)

func signToken(t *testing.T, userID string) string {
	t.Helper()
	claims := &Claims{
		Username: "operator",
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func protectedProbe(gotUser *string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if id, ok := r.Context().Value(globals.UserIDKey).(string); ok {
			*gotUser = id
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	var gotUser string
	handle := Authenticate(protectedProbe(&gotUser))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-42"))
	rec := httptest.NewRecorder()
	handle(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUser != "user-42" {
		t.Errorf("user id in context = %q, want user-42", gotUser)
	}
}

func TestAuthenticateRejections(t *testing.T) {
	var gotUser string
	handle := Authenticate(protectedProbe(&gotUser))

	cases := map[string]string{
		"missing":    "",
		"malformed":  "Token abc",
		"bad secret": "Bearer eyJhbGciOiJIUzI1NiJ9.e30.invalidsig",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handle(rec, req, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
	}
	if gotUser != "" {
		t.Errorf("handler ran for a rejected request (user %q)", gotUser)
	}
}

func TestValidateJWT(t *testing.T) {
	claims, err := ValidateJWT("Bearer " + signToken(t, "user-7"))
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "user-7" {
		t.Errorf("user id = %q, want user-7", claims.UserID)
	}

	if _, err := ValidateJWT("garbage"); err == nil {
		t.Error("expected error for garbage token")
	}
}
