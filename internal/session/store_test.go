package session

import (
	"context"
	"testing"
	"time"

	"github.com/sabai-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	data := &Data{
		UserID:   7,
		Username: "somchai",
		Email:    "somchai@example.com",
		Cart: []CartLine{
			{ProductID: 1, Title: "ตัวอย่าง", Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)), Qty: 2},
		},
	}

	token, err := store.Create(ctx, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session data")
	}
	if got.UserID != 7 || got.Username != "somchai" {
		t.Fatalf("unexpected data: %+v", got)
	}
	if len(got.Cart) != 1 || got.Cart[0].Qty != 2 {
		t.Fatalf("unexpected cart: %+v", got.Cart)
	}

	// 返回的是副本，修改不应影响存储
	got.Cart[0].Qty = 99
	again, _ := store.Get(ctx, token)
	if again.Cart[0].Qty != 2 {
		t.Fatalf("store mutated through returned copy: %+v", again.Cart)
	}
}

func TestMemoryStoreGetUnknownToken(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	got, err := store.Get(context.Background(), "no-such-token")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown token, got %+v", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	token, err := store.Create(context.Background(), &Data{UserID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	got, err := store.Get(context.Background(), token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatal("expected expired session to be gone")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, &Data{UserID: 3})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ := store.Get(ctx, token)
	if got != nil {
		t.Fatal("expected session removed")
	}
}
