package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sabai-next/internal/catalog"
	"github.com/sabai-next/internal/models"
	"github.com/sabai-next/internal/repository"
	"github.com/sabai-next/internal/session"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T, name string) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Credential{},
		&models.Profile{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })
}

func money(t *testing.T, s string) models.Money {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", s, err)
	}
	return models.NewMoneyFromDecimal(d)
}

func testCatalog(t *testing.T) catalog.Source {
	t.Helper()
	return catalog.NewStaticSource([]catalog.Product{
		{ID: 1, Brand: "Sony", Title: "หูฟังไร้สาย", Price: money(t, "9.99")},
		{ID: 2, Brand: "Apple", Title: "สายชาร์จ", Price: money(t, "12.50")},
	})
}

func TestAuthServiceRegisterAndAuthenticate(t *testing.T) {
	setupDB(t, "svc_auth")
	creds := repository.NewGormCredentialRepository(models.DB)
	profiles := repository.NewGormProfileRepository(models.DB)
	svc := NewAuthService(creds, profiles)

	cred, err := svc.Register(RegisterInput{Username: "somchai", Email: "somchai@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if cred.ID == 0 {
		t.Fatal("expected credential id assigned")
	}
	if cred.PasswordHash == "secret123" {
		t.Fatal("password stored in plaintext")
	}

	// 注册同时初始化收货资料
	profile, err := profiles.GetByUserID(cred.ID)
	if err != nil || profile == nil {
		t.Fatalf("profile not created: %v %v", profile, err)
	}
	if profile.Country != "Thailand" {
		t.Fatalf("unexpected default country: %s", profile.Country)
	}

	if _, err := svc.Register(RegisterInput{Username: "somchai", Email: "x@example.com", Password: "p"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "other", Email: "somchai@example.com", Password: "p"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// 重复注册不产生任何资料行
	var profileCount int64
	models.DB.Model(&models.Profile{}).Count(&profileCount)
	if profileCount != 1 {
		t.Fatalf("duplicate registration must not create profiles, got %d rows", profileCount)
	}

	if _, err := svc.Authenticate("somchai", "secret123"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if _, err := svc.Authenticate("somchai", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthServiceUpdateEmailConflict(t *testing.T) {
	setupDB(t, "svc_email")
	creds := repository.NewGormCredentialRepository(models.DB)
	profiles := repository.NewGormProfileRepository(models.DB)
	svc := NewAuthService(creds, profiles)

	a, _ := svc.Register(RegisterInput{Username: "a", Email: "a@example.com", Password: "p"})
	if _, err := svc.Register(RegisterInput{Username: "b", Email: "b@example.com", Password: "p"}); err != nil {
		t.Fatalf("Register b: %v", err)
	}

	if err := svc.UpdateEmail(a.ID, "b@example.com"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if err := svc.UpdateEmail(a.ID, "a2@example.com"); err != nil {
		t.Fatalf("UpdateEmail: %v", err)
	}
	got, _ := svc.GetByID(a.ID)
	if got.Email != "a2@example.com" {
		t.Fatalf("email not updated: %s", got.Email)
	}
}

func TestCartServiceAddAccumulatesQty(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	svc := NewCartService(testCatalog(t), store)
	ctx := context.Background()

	data := &session.Data{UserID: 1}
	token, err := store.Create(ctx, data)
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	if _, err := svc.Add(ctx, token, data, 1, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	lines, err := svc.Add(ctx, token, data, 1, 3)
	if err != nil {
		t.Fatalf("Add again: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected single line, got %d", len(lines))
	}
	if lines[0].Qty != 5 {
		t.Fatalf("expected qty 5, got %d", lines[0].Qty)
	}
	if lines[0].Price.String() != "9.99" {
		t.Fatalf("unexpected snapshot price: %s", lines[0].Price.String())
	}

	// 会话中也已持久化
	saved, _ := store.Get(ctx, token)
	if len(saved.Cart) != 1 || saved.Cart[0].Qty != 5 {
		t.Fatalf("cart not persisted to session: %+v", saved.Cart)
	}
}

func TestCartServiceAddUnknownProduct(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	svc := NewCartService(testCatalog(t), store)

	data := &session.Data{UserID: 1}
	token, _ := store.Create(context.Background(), data)

	if _, err := svc.Add(context.Background(), token, data, 999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(data.Cart) != 0 {
		t.Fatalf("cart must stay empty, got %+v", data.Cart)
	}
}

func TestCartServiceNegativeQtyDecrements(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	svc := NewCartService(testCatalog(t), store)
	ctx := context.Background()

	data := &session.Data{UserID: 1}
	token, _ := store.Create(ctx, data)

	if _, err := svc.Add(ctx, token, data, 1, 5); err != nil {
		t.Fatalf("Add: %v", err)
	}
	lines, err := svc.Add(ctx, token, data, 1, -3)
	if err != nil {
		t.Fatalf("Add negative: %v", err)
	}
	if lines[0].Qty != 2 {
		t.Fatalf("expected 5 + (-3) = 2, got %d", lines[0].Qty)
	}

	// 减到 1 以下时停在 1
	lines, err = svc.Add(ctx, token, data, 1, -10)
	if err != nil {
		t.Fatalf("Add negative below floor: %v", err)
	}
	if lines[0].Qty != 1 {
		t.Fatalf("expected floor at 1, got %d", lines[0].Qty)
	}
}

func TestCartServiceQtyClampedToOne(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	svc := NewCartService(testCatalog(t), store)

	data := &session.Data{UserID: 1}
	token, _ := store.Create(context.Background(), data)

	lines, err := svc.Add(context.Background(), token, data, 2, 0)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if lines[0].Qty != 1 {
		t.Fatalf("expected qty clamped to 1, got %d", lines[0].Qty)
	}
}

func newOrderEnv(t *testing.T, name string) (*OrderService, *CartService, *ProfileService, session.Store) {
	t.Helper()
	setupDB(t, name)
	store := session.NewMemoryStore(time.Hour)
	profiles := NewProfileService(repository.NewGormProfileRepository(models.DB))
	cart := NewCartService(testCatalog(t), store)
	orders := NewOrderService(repository.NewGormOrderRepository(models.DB), profiles, cart)
	return orders, cart, profiles, store
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	orders, _, _, store := newOrderEnv(t, "svc_order_empty")
	ctx := context.Background()

	data := &session.Data{UserID: 1}
	token, _ := store.Create(ctx, data)

	if _, err := orders.PlaceOrder(ctx, token, data); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	var count int64
	models.DB.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("empty cart must not create orders, got %d", count)
	}
}

func TestPlaceOrderIncompleteProfileKeepsCart(t *testing.T) {
	orders, cart, _, store := newOrderEnv(t, "svc_order_profile")
	ctx := context.Background()

	data := &session.Data{UserID: 1}
	token, _ := store.Create(ctx, data)
	if _, err := cart.Add(ctx, token, data, 1, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if _, err := orders.PlaceOrder(ctx, token, data); !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}

	// 下单失败不清空购物车
	saved, _ := store.Get(ctx, token)
	if len(saved.Cart) != 1 {
		t.Fatalf("cart must survive failed checkout: %+v", saved.Cart)
	}
	var count int64
	models.DB.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed checkout must not create orders, got %d", count)
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	orders, cart, profiles, store := newOrderEnv(t, "svc_order_ok")
	ctx := context.Background()

	data := &session.Data{UserID: 7, Username: "somchai", Email: "somchai@example.com"}
	token, _ := store.Create(ctx, data)

	if _, err := profiles.Upsert(7, ProfileInput{
		FirstName:  "Somchai",
		Address:    "123 Sukhumvit",
		City:       "Bangkok",
		PostalCode: "10110",
		Country:    "Thailand",
	}); err != nil {
		t.Fatalf("Upsert profile: %v", err)
	}
	if _, err := cart.Add(ctx, token, data, 1, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}

	order, err := orders.PlaceOrder(ctx, token, data)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.Status != "pending" {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if order.Total.String() != "19.98" {
		t.Fatalf("unexpected total: %s", order.Total.String())
	}
	if len(order.Items) != 1 || order.Items[0].Qty != 2 || order.Items[0].OrderID != order.ID {
		t.Fatalf("unexpected items: %+v", order.Items)
	}

	// 下单成功后购物车清空
	saved, _ := store.Get(ctx, token)
	if len(saved.Cart) != 0 {
		t.Fatalf("cart must be empty after checkout: %+v", saved.Cart)
	}

	got, err := orders.GetByIDAndUser(order.ID, 7)
	if err != nil {
		t.Fatalf("GetByIDAndUser: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items not persisted: %+v", got.Items)
	}

	if _, err := orders.GetByIDAndUser(order.ID, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestCheckoutSummaryTotals(t *testing.T) {
	orders, cart, _, store := newOrderEnv(t, "svc_summary")
	ctx := context.Background()

	data := &session.Data{UserID: 3}
	token, _ := store.Create(ctx, data)
	if _, err := cart.Add(ctx, token, data, 1, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := cart.Add(ctx, token, data, 2, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	summary, err := orders.Summary(data)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	// 9.99*2 + 12.50 = 32.48
	if summary.Total.String() != "32.48" {
		t.Fatalf("unexpected total: %s", summary.Total.String())
	}
	if summary.Profile == nil || summary.Profile.Country != "Thailand" {
		t.Fatalf("expected default profile, got %+v", summary.Profile)
	}
}

func TestProfileServiceDefaultAndComplete(t *testing.T) {
	setupDB(t, "svc_profile")
	svc := NewProfileService(repository.NewGormProfileRepository(models.DB))

	got, err := svc.Get(5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Country != "Thailand" || got.Address != "" {
		t.Fatalf("unexpected default profile: %+v", got)
	}
	if svc.IsComplete(got) {
		t.Fatal("default profile must be incomplete")
	}

	updated, err := svc.Upsert(5, ProfileInput{
		Address:    "9 Rama IV",
		City:       "Bangkok",
		PostalCode: "10330",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if updated.Country != "Thailand" {
		t.Fatalf("blank country must default to Thailand, got %q", updated.Country)
	}
	if !svc.IsComplete(updated) {
		t.Fatalf("profile should be complete: %+v", updated)
	}
}
