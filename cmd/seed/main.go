package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"groupstays/internal/app"
	"groupstays/internal/config"
	"groupstays/internal/database"
	"groupstays/internal/domain/booking"
	"groupstays/internal/domain/enquiry"
	"groupstays/internal/domain/listing"
	"groupstays/internal/domain/payment"
	"groupstays/internal/domain/plan"
	"groupstays/internal/domain/property"
	jwtsvc "groupstays/internal/pkg/jwt"
	"groupstays/internal/pkg/logger"
)

const (
	ownerID = 1
	adminID = 99
)

type seedProperty struct {
	title, town, county, kind string
	sleeps                    int
	price                     float64
	status                    property.Status
}

var properties = []seedProperty{
	{"The Oak Barn", "Stow-on-the-Wold", "Gloucestershire", "Barn Conversion", 16, 950, property.StatusApproved},
	{"Castle Keep", "Bath", "Somerset", "Castle", 24, 2400, property.StatusApproved},
	{"Harbour View House", "Padstow", "Cornwall", "Manor House", 14, 1100, property.StatusPending},
	{"Lakeside Lodge", "Windermere", "Cumbria", "Lodge", 12, 780, property.StatusPending},
	{"The Old Rectory", "Ludlow", "Shropshire", "Country House", 18, 1350, property.StatusPending},
	{"Mill Cottage", "Hay-on-Wye", "Powys", "Cottage", 8, 420, property.StatusRejected},
	{"Untitled Draft", "", "", "", 0, 0, property.StatusDraft},
}

func main() {
	cfg, err := config.Load(":0")
	if err != nil {
		logger.New(logger.Config{}).Fatal("config load failed", "error", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: logger.FormatText, Service: "seed"})
	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("db connect failed", "error", err)
	}

	j := jwtsvc.New(cfg.JWTSecret, 30*24*time.Hour)
	api := app.NewAPI(app.APIConfig{}, db, j, log)
	if err := api.Migrate(ctx, db); err != nil {
		log.Fatal("migrate failed", "error", err)
	}

	log.Info("cleaning old data")
	for _, table := range []string{"payments", "plan_purchases", "enquiries", "bookings", "property_calendar", "properties"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal("cleanup failed", "table", table, "error", err)
		}
	}

	ids := seedProperties(ctx, db, log)
	seedBookings(ctx, db, ids, log)
	seedEnquiries(ctx, db, ids, log)
	seedPurchases(ctx, db, log)

	ownerToken, _ := j.GenerateToken(ownerID, jwtsvc.RoleOwner)
	adminToken, _ := j.GenerateToken(adminID, jwtsvc.RoleAdmin)
	fmt.Printf("OWNER_TOKEN=%s\n", ownerToken)
	fmt.Printf("ADMIN_TOKEN=%s\n", adminToken)

	if plain := os.Getenv("INTERNAL_API_TOKEN"); plain != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("hash internal token", "error", err)
		}
		fmt.Printf("INTERNAL_TOKEN_HASH=%s\n", hash)
	}
	log.Info("seed completed")
}

func seedProperties(ctx context.Context, db *gorm.DB, log *logger.Logger) []string {
	ids := make([]string, 0, len(properties))
	for i, sp := range properties {
		id := uuid.NewString()
		p := &property.Property{
			ID:           id,
			OwnerID:      ownerID,
			Title:        sp.title,
			PropertyType: sp.kind,
			Slug:         fmt.Sprintf("seed-%d-%s", i+1, id[:8]),
			Town:         sp.town,
			County:       sp.county,
			Region:       sp.county,
			SleepsMin:    sp.sleeps / 2,
			SleepsMax:    sp.sleeps,
			Status:       sp.status,
			CheckInOut:   "Check-in: 15:00, Check-out: 10:00",
			MinimumStay:  2,
			Images:       "[]",
			BestFor:      "[]",
			Amenities:    mustJSON([]string{"Hot Tub", "Games Room"}),
		}
		if sp.town != "" {
			p.Address = fmt.Sprintf("%d Church Lane", i+1)
			p.Location = listing.ComposeLocation(p.Address, sp.town, sp.county)
			p.PriceFromMidweek = sp.price
			p.PriceFromWeekend = sp.price * 1.25
		}
		if sp.status != property.StatusDraft {
			p.IsPublished = 1
		}
		if sp.status == property.StatusRejected {
			p.RejectionReason = "Photos do not show the sleeping arrangements"
		}
		if err := db.WithContext(ctx).Create(p).Error; err != nil {
			log.Fatal("create property failed", "title", sp.title, "error", err)
		}
		ids = append(ids, id)
	}
	log.Info("properties created", "count", len(ids))
	return ids
}

func seedBookings(ctx context.Context, db *gorm.DB, ids []string, log *logger.Logger) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	guests := []string{"Amelia Hughes", "Oliver Patel", "Isla Morgan", "Harry Evans", "Sophie Clarke"}
	statuses := []booking.Status{booking.StatusConfirmed, booking.StatusPending, booking.StatusConfirmed, booking.StatusCancelled, booking.StatusPending}
	for i, guest := range guests {
		checkIn := now.AddDate(0, 0, 14*(i+1))
		b := &booking.Booking{
			PropertyID:    ids[i%2],
			GuestName:     guest,
			GuestEmail:    fmt.Sprintf("guest%d@example.co.uk", i+1),
			CheckIn:       checkIn,
			CheckOut:      checkIn.AddDate(0, 0, 3),
			Guests:        10 + i,
			TotalPrice:    2850 + float64(i)*300,
			BookingStatus: statuses[i],
		}
		if err := db.WithContext(ctx).Create(b).Error; err != nil {
			log.Fatal("create booking failed", "error", err)
		}
	}
	log.Info("bookings created", "count", len(guests))
}

func seedEnquiries(ctx context.Context, db *gorm.DB, ids []string, log *logger.Logger) {
	statuses := []enquiry.Status{enquiry.StatusNew, enquiry.StatusNew, enquiry.StatusNew, enquiry.StatusContacted, enquiry.StatusConverted, enquiry.StatusClosed}
	for i, st := range statuses {
		e := &enquiry.Enquiry{
			PropertyID: ids[i%3],
			GuestName:  fmt.Sprintf("Enquirer %d", i+1),
			Email:      fmt.Sprintf("enquiry%d@example.co.uk", i+1),
			Message:    "Is the house available for a hen weekend in September?",
			Guests:     12,
			Status:     st,
		}
		if err := db.WithContext(ctx).Create(e).Error; err != nil {
			log.Fatal("create enquiry failed", "error", err)
		}
	}
	log.Info("enquiries created", "count", len(statuses))
}

// seedPurchases records unused plans through the plan service so the
// matching payments are written too.
func seedPurchases(ctx context.Context, db *gorm.DB, log *logger.Logger) {
	svc := plan.NewService(plan.NewRepository(db), payment.NewService(payment.NewRepository(db)), log)
	for _, id := range []plan.ID{plan.Silver, plan.Gold} {
		pur, err := svc.RecordPurchase(ctx, &plan.RecordPurchaseRequest{
			UserID:          ownerID,
			PlanID:          id,
			PaymentIntentID: "pi_seed_" + string(id),
		})
		if err != nil {
			log.Fatal("record purchase failed", "plan", id, "error", err)
		}
		log.Info("plan purchase created", "plan", id, "purchase_id", pur.ID)
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
