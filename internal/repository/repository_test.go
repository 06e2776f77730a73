package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/sabai-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T, name string) *gorm.DB {
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
	return db
}

func TestCredentialRepositoryUniqueConflicts(t *testing.T) {
	db := newTestDB(t, "repo_cred")
	repo := NewGormCredentialRepository(db)

	first := &models.Credential{Username: "somchai", Email: "somchai@example.com", PasswordHash: "x"}
	if err := repo.Create(first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Create(&models.Credential{Username: "somchai", Email: "other@example.com", PasswordHash: "x"}); err == nil {
		t.Fatal("expected duplicate username to fail")
	}
	if err := repo.Create(&models.Credential{Username: "other", Email: "somchai@example.com", PasswordHash: "x"}); err == nil {
		t.Fatal("expected duplicate email to fail")
	}

	got, err := repo.GetByUsername("somchai")
	if err != nil || got == nil {
		t.Fatalf("GetByUsername: got=%v err=%v", got, err)
	}
	if got.ID != first.ID {
		t.Fatalf("unexpected id: %d", got.ID)
	}

	missing, err := repo.GetByUsername("nobody")
	if err != nil {
		t.Fatalf("GetByUsername missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing, got %+v", missing)
	}
}

func TestCredentialRepositoryEmailTakenByOther(t *testing.T) {
	db := newTestDB(t, "repo_email")
	repo := NewGormCredentialRepository(db)

	a := &models.Credential{Username: "a", Email: "a@example.com", PasswordHash: "x"}
	b := &models.Credential{Username: "b", Email: "b@example.com", PasswordHash: "x"}
	if err := repo.Create(a); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if err := repo.Create(b); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	taken, err := repo.EmailTakenByOther(a.ID, "b@example.com")
	if err != nil {
		t.Fatalf("EmailTakenByOther: %v", err)
	}
	if !taken {
		t.Fatal("expected email taken by other account")
	}

	// 自己当前的邮箱不算冲突
	taken, err = repo.EmailTakenByOther(a.ID, "a@example.com")
	if err != nil {
		t.Fatalf("EmailTakenByOther self: %v", err)
	}
	if taken {
		t.Fatal("own email should not conflict")
	}

	if err := repo.UpdateEmail(a.ID, "new@example.com"); err != nil {
		t.Fatalf("UpdateEmail: %v", err)
	}
	got, _ := repo.GetByID(a.ID)
	if got.Email != "new@example.com" {
		t.Fatalf("email not updated: %s", got.Email)
	}
}

func TestProfileRepositoryUpsert(t *testing.T) {
	db := newTestDB(t, "repo_profile")
	repo := NewGormProfileRepository(db)

	missing, err := repo.GetByUserID(42)
	if err != nil {
		t.Fatalf("GetByUserID missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil profile, got %+v", missing)
	}

	p := &models.Profile{
		UserID:     42,
		FirstName:  "Somchai",
		Address:    "123 Sukhumvit",
		City:       "Bangkok",
		PostalCode: "10110",
		Country:    "Thailand",
	}
	if err := repo.Upsert(p); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}

	// 再次 Upsert 覆盖而不是新增
	update := &models.Profile{
		UserID:     42,
		FirstName:  "Somsak",
		LastName:   "S.",
		Phone:      "0812345678",
		Address:    "456 Silom",
		City:       "Bangkok",
		PostalCode: "10500",
		Country:    "Thailand",
	}
	if err := repo.Upsert(update); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	var count int64
	db.Model(&models.Profile{}).Where("user_id = ?", 42).Count(&count)
	if count != 1 {
		t.Fatalf("expected single row after upsert, got %d", count)
	}

	got, err := repo.GetByUserID(42)
	if err != nil || got == nil {
		t.Fatalf("GetByUserID: got=%v err=%v", got, err)
	}
	if got.FirstName != "Somsak" || got.Address != "456 Silom" || got.PostalCode != "10500" {
		t.Fatalf("upsert did not replace fields: %+v", got)
	}
}

func TestOrderRepositoryCreateAndOwnership(t *testing.T) {
	db := newTestDB(t, "repo_order")
	repo := NewGormOrderRepository(db)

	order := &models.Order{
		UserID: 1,
		Status: "pending",
		Total:  models.NewMoneyFromDecimal(decimal.NewFromFloat(19.98)),
	}
	items := []models.OrderItem{
		{ProductID: 5, Title: "หูฟังไร้สาย", Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)), Qty: 2},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected order id assigned")
	}

	got, err := repo.GetByIDAndUser(order.ID, 1)
	if err != nil || got == nil {
		t.Fatalf("GetByIDAndUser: got=%v err=%v", got, err)
	}
	if len(got.Items) != 1 || got.Items[0].OrderID != order.ID {
		t.Fatalf("items not linked: %+v", got.Items)
	}
	if got.Total.String() != "19.98" {
		t.Fatalf("unexpected total: %s", got.Total.String())
	}

	// 其他用户不可见
	other, err := repo.GetByIDAndUser(order.ID, 2)
	if err != nil {
		t.Fatalf("GetByIDAndUser other: %v", err)
	}
	if other != nil {
		t.Fatal("order should not be visible to another user")
	}
}

func TestOrderRepositoryListByUserDescending(t *testing.T) {
	db := newTestDB(t, "repo_order_list")
	repo := NewGormOrderRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		order := &models.Order{
			UserID:    9,
			Status:    "pending",
			Total:     models.NewMoneyFromDecimal(decimal.NewFromInt(int64(i + 1))),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(order, nil); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}
	// 其他用户的订单不应出现
	if err := repo.Create(&models.Order{UserID: 10, Status: "pending"}, nil); err != nil {
		t.Fatalf("Create other user: %v", err)
	}

	orders, total, err := repo.ListByUser(OrderListFilter{UserID: 9})
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if total != 3 || len(orders) != 3 {
		t.Fatalf("unexpected result: total=%d len=%d", total, len(orders))
	}
	for i := 1; i < len(orders); i++ {
		if orders[i].CreatedAt.After(orders[i-1].CreatedAt) {
			t.Fatalf("orders not sorted desc: %v before %v", orders[i-1].CreatedAt, orders[i].CreatedAt)
		}
	}
}

func TestOrderRepositoryListAllWithoutPageSize(t *testing.T) {
	db := newTestDB(t, "repo_order_all")
	repo := NewGormOrderRepository(db)

	for i := 0; i < 25; i++ {
		order := &models.Order{
			UserID: 9,
			Status: "pending",
			Total:  models.NewMoneyFromDecimal(decimal.NewFromInt(int64(i + 1))),
		}
		if err := repo.Create(order, nil); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	// 未指定分页时返回全部订单
	orders, total, err := repo.ListByUser(OrderListFilter{UserID: 9})
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if total != 25 || len(orders) != 25 {
		t.Fatalf("expected all 25 orders, got total=%d len=%d", total, len(orders))
	}

	// 显式分页仍然生效
	paged, total, err := repo.ListByUser(OrderListFilter{UserID: 9, Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("ListByUser paged: %v", err)
	}
	if total != 25 || len(paged) != 10 {
		t.Fatalf("unexpected page: total=%d len=%d", total, len(paged))
	}
}
