//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"vungtau_stay/internal/domain"
	mysqlrepo "vungtau_stay/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }
func pint(i int) *int       { return &i }
func pi64(n int64) *int64   { return &n }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestRepo_MySQL_FullCycle(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=vungtau",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "vungtau")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Catalog — upsert twice so the ON DUPLICATE KEY path runs.
	h := domain.Hotel{
		ID:           "h-1",
		Name:         "Biển Xanh Villa",
		Address:      "12 Trần Phú, Phường 5",
		Ward:         "Phường 5",
		PropertyType: domain.PropertyVilla,
		Description:  pstr("Villa sát biển"),
		Amenities:    []string{"pool", "wifi"},
		Images:       []string{},
		Featured:     true,
	}
	if err := repo.UpsertHotel(ctx, h); err != nil {
		t.Fatalf("UpsertHotel: %v", err)
	}
	h.Name = "Biển Xanh Villa Vũng Tàu"
	if err := repo.UpsertHotel(ctx, h); err != nil {
		t.Fatalf("UpsertHotel update: %v", err)
	}

	rm := domain.Room{
		ID:        "r-1",
		HotelID:   "h-1",
		Name:      "Phòng Deluxe",
		Type:      "deluxe",
		Price:     1_200_000,
		Capacity:  2,
		Size:      pint(28),
		Amenities: []string{"sea_view"},
		Images:    []string{},
		Available: true,
	}
	if err := repo.UpsertRoom(ctx, rm); err != nil {
		t.Fatalf("UpsertRoom: %v", err)
	}

	got, err := repo.GetHotel(ctx, "h-1")
	if err != nil {
		t.Fatalf("GetHotel: %v", err)
	}
	if got.Name != "Biển Xanh Villa Vũng Tàu" || !got.Featured {
		t.Fatalf("unexpected hotel: %+v", got)
	}
	if len(got.Amenities) != 2 {
		t.Fatalf("amenities round-trip: %v", got.Amenities)
	}

	hotels, err := repo.ListHotels(ctx, domain.HotelsQuery{Ward: pstr("Phường 5")})
	if err != nil {
		t.Fatalf("ListHotels: %v", err)
	}
	if len(hotels) != 1 {
		t.Fatalf("want 1 hotel in ward, got %d", len(hotels))
	}
	none, err := repo.ListHotels(ctx, domain.HotelsQuery{PropertyType: pstr(domain.PropertyHomestay)})
	if err != nil {
		t.Fatalf("ListHotels by type: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("want no homestays, got %d", len(none))
	}

	if _, err := repo.GetRoom(ctx, "r-missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing room: want ErrNotFound, got %v", err)
	}

	// Users — profile row inserted in the same transaction.
	u := domain.User{ID: "u-1", Email: "an@example.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	if err := repo.CreateUser(ctx, u, pstr("Nguyễn Văn An")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	dup := domain.User{ID: "u-2", Email: "an@example.com", PasswordHash: "y", CreatedAt: time.Now().UTC()}
	if err := repo.CreateUser(ctx, dup, nil); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email: want ErrConflict, got %v", err)
	}
	p, err := repo.GetProfile(ctx, "u-1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.FullName == nil || *p.FullName != "Nguyễn Văn An" {
		t.Fatalf("unexpected profile: %+v", p)
	}

	// Bookings — owner filter, joined history, status transitions.
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	b := domain.Booking{
		ID:            "b-1",
		UserID:        "u-1",
		HotelID:       "h-1",
		RoomID:        "r-1",
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 3),
		Guests:        2,
		GuestName:     "Nguyễn Văn An",
		GuestEmail:    "an@example.com",
		GuestPhone:    "0901234567",
		TotalPrice:    3_600_000,
		Status:        domain.StatusPending,
		PaymentMethod: domain.PayLater,
	}
	if err := repo.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if err := repo.CreateBooking(ctx, b); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate booking id: want ErrConflict, got %v", err)
	}

	gb, err := repo.GetBooking(ctx, "b-1", "u-1")
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if gb.Status != domain.StatusPending || gb.TotalPrice != 3_600_000 {
		t.Fatalf("unexpected booking: %+v", gb)
	}
	if !gb.CheckIn.Equal(checkIn) {
		t.Fatalf("check-in round-trip: %v", gb.CheckIn)
	}
	if _, err := repo.GetBooking(ctx, "b-1", "u-other"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign owner: want ErrNotFound, got %v", err)
	}

	views, err := repo.ListBookings(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("want 1 booking, got %d", len(views))
	}
	if views[0].HotelName != "Biển Xanh Villa Vũng Tàu" || views[0].RoomName != "Phòng Deluxe" {
		t.Fatalf("join fields: %+v", views[0])
	}

	if err := repo.UpdateBookingStatus(ctx, "b-1", domain.StatusCompleted); err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if err := repo.UpdateBookingStatus(ctx, "b-missing", domain.StatusCancelled); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing booking update: want ErrNotFound, got %v", err)
	}

	ok, err := repo.HasCompletedStay(ctx, "u-1", "h-1")
	if err != nil {
		t.Fatalf("HasCompletedStay: %v", err)
	}
	if !ok {
		t.Fatal("completed stay not detected")
	}
	ok, err = repo.HasCompletedStay(ctx, "u-1", "h-other")
	if err != nil {
		t.Fatalf("HasCompletedStay other hotel: %v", err)
	}
	if ok {
		t.Fatal("stay reported for the wrong hotel")
	}

	// Discounts — active window plus inactive and stale rows.
	now := time.Now().UTC()
	live := domain.Discount{
		ID:              "d-1",
		Code:            "TET2025",
		Description:     "Khuyến mãi Tết",
		DiscountPercent: 15,
		MinOrderAmount:  pi64(1_000_000),
		MaxUses:         pint(500),
		ValidUntil:      now.AddDate(0, 1, 0),
		ApplicableTo:    []string{"all"},
		IsActive:        true,
	}
	stale := domain.Discount{
		ID:              "d-2",
		Code:            "HETHAN",
		Description:     "Đã hết hạn",
		DiscountPercent: 10,
		ValidUntil:      now.AddDate(0, 0, -1),
		IsActive:        true,
	}
	off := domain.Discount{
		ID:              "d-3",
		Code:            "TATMA",
		Description:     "Đã tắt",
		DiscountPercent: 10,
		ValidUntil:      now.AddDate(0, 1, 0),
		IsActive:        false,
	}
	for _, d := range []domain.Discount{live, stale, off} {
		if err := repo.UpsertDiscount(ctx, d); err != nil {
			t.Fatalf("UpsertDiscount %s: %v", d.Code, err)
		}
	}

	gd, err := repo.GetActiveDiscount(ctx, "TET2025", now)
	if err != nil {
		t.Fatalf("GetActiveDiscount: %v", err)
	}
	if gd.DiscountPercent != 15 || gd.MinOrderAmount == nil || *gd.MinOrderAmount != 1_000_000 {
		t.Fatalf("unexpected discount: %+v", gd)
	}
	if _, err := repo.GetActiveDiscount(ctx, "HETHAN", now); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("stale discount: want ErrNotFound, got %v", err)
	}
	if _, err := repo.GetActiveDiscount(ctx, "TATMA", now); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("inactive discount: want ErrNotFound, got %v", err)
	}

	// Reviews
	rv := domain.Review{
		ID:      "rv-1",
		HotelID: "h-1",
		UserID:  "u-1",
		Rating:  5,
		Comment: pstr("Rất đáng tiền"),
	}
	if err := repo.CreateReview(ctx, rv); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	rvs, err := repo.ListReviews(ctx, "h-1", 20)
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(rvs) != 1 || rvs[0].Rating != 5 {
		t.Fatalf("unexpected reviews: %+v", rvs)
	}
}
