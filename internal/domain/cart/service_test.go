package cart

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/domain/product"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/apperror"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDSN() string {
	if dsn := os.Getenv("TEST_DATABASE_DSN"); dsn != "" {
		return dsn
	}
	return "host=localhost port=5432 user=proshop_user password=proshop_password dbname=proshop_test sslmode=disable"
}

func testRedisAddr() string {
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// setupTestService connects to the test database and Redis, skipping the test
// when either is unreachable. Cart and product tables are migrated and
// emptied; the guest cart key for sessionID is removed.
func setupTestService(t *testing.T, sessionID string) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(gormpostgres.Open(testDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("test database unreachable, skipping: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access underlying sql.DB: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("test database unreachable, skipping: %v", err)
	}

	if err := db.AutoMigrate(&product.Product{}, &CartItem{}); err != nil {
		t.Fatalf("migrate cart tables: %v", err)
	}
	if err := db.Exec("DELETE FROM cart_items").Error; err != nil {
		t.Fatalf("clean cart_items table: %v", err)
	}
	if err := db.Exec("DELETE FROM products").Error; err != nil {
		t.Fatalf("clean products table: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: testRedisAddr()})
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Skipf("test Redis unreachable, skipping: %v", err)
	}
	if sessionID != "" {
		if err := redisClient.Del(ctx, guestCartKey(sessionID)).Err(); err != nil {
			t.Fatalf("clean guest cart key: %v", err)
		}
	}

	return NewService(db, redisClient, &config.Config{}), db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *product.Product {
	t.Helper()
	p := &product.Product{
		Name:         name,
		Image:        "/images/sample.jpg",
		Brand:        "Sample Brand",
		Category:     "Sample Category",
		Price:        price,
		CountInStock: stock,
		UserID:       1,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestService_AddToCartUnknownProduct(t *testing.T) {
	service, _ := setupTestService(t, "")
	userID := uint(1)

	_, err := service.AddToCart(context.Background(), &userID, "", &AddToCartRequest{ProductID: 12345, Qty: 1})
	if err == nil {
		t.Fatal("unknown product added to cart")
	}
	appErr := apperror.From(err)
	if appErr.Status != http.StatusNotFound || appErr.Message != "Product not found" {
		t.Errorf("error = %d %q, want 404 \"Product not found\"", appErr.Status, appErr.Message)
	}
}

func TestService_AddToCartRejectsInsufficientStock(t *testing.T) {
	service, db := setupTestService(t, "")
	prod := seedProduct(t, db, "Modern Ergonomic Office Chair", 120, 3)
	userID := uint(1)

	_, err := service.AddToCart(context.Background(), &userID, "", &AddToCartRequest{ProductID: prod.ID, Qty: 4})
	if err == nil {
		t.Fatal("add exceeding stock accepted")
	}
	appErr := apperror.From(err)
	if appErr.Status != http.StatusBadRequest || appErr.Message != "Not enough stock available" {
		t.Errorf("error = %d %q, want 400 \"Not enough stock available\"", appErr.Status, appErr.Message)
	}

	resp, err := service.GetCart(context.Background(), &userID, "")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("cart after rejected add = %+v", resp.Items)
	}
}

func TestService_AddToCartIncrementsExistingLine(t *testing.T) {
	service, db := setupTestService(t, "")
	prod := seedProduct(t, db, "Xiaomi Redmi 8 Original", 35, 10)
	userID := uint(1)
	ctx := context.Background()

	if _, err := service.AddToCart(ctx, &userID, "", &AddToCartRequest{ProductID: prod.ID, Qty: 2}); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	resp, err := service.AddToCart(ctx, &userID, "", &AddToCartRequest{ProductID: prod.ID, Qty: 3})
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if len(resp.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(resp.Items))
	}
	if resp.Items[0].Qty != 5 || resp.Items[0].Price != 35 {
		t.Errorf("line = %+v, want qty 5 price 35", resp.Items[0])
	}
	if resp.Totals.ItemCount != 1 || resp.Totals.TotalQuantity != 5 || resp.Totals.TotalPrice != 175 {
		t.Errorf("totals = %+v", resp.Totals)
	}
}

func TestService_RemoveFromCart(t *testing.T) {
	service, db := setupTestService(t, "")
	prod := seedProduct(t, db, "Brown Winter Coat", 75, 5)
	userID := uint(1)
	ctx := context.Background()

	if _, err := service.AddToCart(ctx, &userID, "", &AddToCartRequest{ProductID: prod.ID, Qty: 3}); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	// Partial removal decrements the line
	resp, err := service.RemoveFromCart(ctx, &userID, "", &RemoveFromCartRequest{ProductID: prod.ID, QtyToRemove: 1})
	if err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Qty != 2 {
		t.Errorf("cart after partial remove = %+v", resp.Items)
	}

	// No quantity drops the line entirely
	resp, err = service.RemoveFromCart(ctx, &userID, "", &RemoveFromCartRequest{ProductID: prod.ID})
	if err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("cart after full remove = %+v", resp.Items)
	}

	_, err = service.RemoveFromCart(ctx, &userID, "", &RemoveFromCartRequest{ProductID: prod.ID})
	if err == nil {
		t.Fatal("removing an absent item succeeded")
	}
	appErr := apperror.From(err)
	if appErr.Status != http.StatusNotFound || appErr.Message != "Item not found in cart" {
		t.Errorf("error = %d %q, want 404 \"Item not found in cart\"", appErr.Status, appErr.Message)
	}
}

func TestService_GuestCart(t *testing.T) {
	sessionID := "guest-cart-test-session"
	service, db := setupTestService(t, sessionID)
	prod := seedProduct(t, db, "Wireless Bluetooth Headset", 45, 15)
	ctx := context.Background()

	// A missing guest cart reads as empty
	resp, err := service.GetCart(ctx, nil, sessionID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("fresh guest cart = %+v", resp.Items)
	}

	resp, err = service.AddToCart(ctx, nil, sessionID, &AddToCartRequest{ProductID: prod.ID, Qty: 2})
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Qty != 2 {
		t.Errorf("guest cart = %+v", resp.Items)
	}

	if err := service.ClearCart(ctx, nil, sessionID); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	resp, err = service.GetCart(ctx, nil, sessionID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("guest cart after clear = %+v", resp.Items)
	}
}

func TestService_MergeGuestCartToUser(t *testing.T) {
	sessionID := "guest-merge-test-session"
	service, db := setupTestService(t, sessionID)
	first := seedProduct(t, db, "Xiaomi Redmi 8 Original", 35, 10)
	second := seedProduct(t, db, "Brown Winter Coat", 75, 5)
	userID := uint(1)
	ctx := context.Background()

	// The user already holds one of the products; the guest adds both
	if _, err := service.AddToCart(ctx, &userID, "", &AddToCartRequest{ProductID: first.ID, Qty: 1}); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := service.AddToCart(ctx, nil, sessionID, &AddToCartRequest{ProductID: first.ID, Qty: 2}); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := service.AddToCart(ctx, nil, sessionID, &AddToCartRequest{ProductID: second.ID, Qty: 1}); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if err := service.MergeGuestCartToUser(ctx, userID, sessionID); err != nil {
		t.Fatalf("MergeGuestCartToUser: %v", err)
	}

	resp, err := service.GetCart(ctx, &userID, "")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("merged cart = %+v", resp.Items)
	}
	quantities := map[uint]int{}
	for _, item := range resp.Items {
		quantities[item.ProductID] = item.Qty
	}
	if quantities[first.ID] != 3 || quantities[second.ID] != 1 {
		t.Errorf("merged quantities = %v, want %d:3 %d:1", quantities, first.ID, second.ID)
	}

	// The guest cart is emptied by the merge
	guest, err := service.GetCart(ctx, nil, sessionID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(guest.Items) != 0 {
		t.Errorf("guest cart after merge = %+v", guest.Items)
	}
}

func TestService_MergeWithoutSessionIsNoop(t *testing.T) {
	service, _ := setupTestService(t, "")

	if err := service.MergeGuestCartToUser(context.Background(), 1, ""); err != nil {
		t.Errorf("merge with empty session ID: %v", err)
	}
}
