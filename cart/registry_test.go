package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jasith06/jlink-pos-web/globals"
)

func TestRegistryGetReturnsSameCartPerOperator(t *testing.T) {
	r := NewRegistry()

	a := r.Get("op-1")
	if r.Get("op-1") != a {
		t.Fatal("second Get for the same operator returned a different cart")
	}
	if r.Get("op-2") == a {
		t.Fatal("different operators must not share a cart")
	}
}

func TestRegistryDropDiscardsCart(t *testing.T) {
	r := NewRegistry()

	m := r.Get("op-1")
	m.AddItem(panadol(), 2)

	r.Drop("op-1")

	fresh := r.Get("op-1")
	if fresh == m {
		t.Fatal("Get after Drop returned the discarded cart")
	}
	if !fresh.IsEmpty() {
		t.Fatal("cart after Drop should start empty")
	}
}

func TestEndSessionDropsOperatorCart(t *testing.T) {
	h := NewHandler(NewRegistry(), nil, nil)
	h.Carts.Get("op-1").AddItem(panadol(), 2)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/session", nil)
	req = req.WithContext(context.WithValue(req.Context(), globals.UserIDKey, "op-1"))
	rec := httptest.NewRecorder()
	h.EndSession(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !h.Carts.Get("op-1").IsEmpty() {
		t.Fatal("cart should be gone after the session ends")
	}
}

func TestEndSessionRequiresUser(t *testing.T) {
	h := NewHandler(NewRegistry(), nil, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/session", nil)
	rec := httptest.NewRecorder()
	h.EndSession(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
