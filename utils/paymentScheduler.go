package utils

import (
	"log"
	"ocms/database"
	courseModels "ocms/models/course"
	"time"

	"github.com/robfig/cron/v3"
)

// stalePaymentAge is how long a payment may sit in PENDING before the
// scheduler fails it.
const stalePaymentAge = 48 * time.Hour

// InitializePaymentScheduler starts the daily job that expires stale
// pending payments.
func InitializePaymentScheduler() {
	log.Println("[PAYMENT-SCHEDULER] Initializing payment scheduler...")

	c := cron.New()

	c.AddFunc("0 2 * * *", func() {
		log.Println("[PAYMENT-SCHEDULER] Running daily stale payment check...")
		ExpireStalePayments()
	})

	c.Start()
	log.Println("[PAYMENT-SCHEDULER] Payment scheduler started - runs daily at 2 AM")
}

// ExpireStalePayments fails payments that have been PENDING for longer
// than stalePaymentAge.
func ExpireStalePayments() {
	db := database.Database.Db
	cutoff := time.Now().Add(-stalePaymentAge)

	result := db.Model(&courseModels.Payment{}).
		Where("status = ? AND is_deleted = ? AND created_at < ?", courseModels.PaymentPending, false, cutoff).
		Update("status", courseModels.PaymentFailed)

	if result.Error != nil {
		log.Printf("[PAYMENT-SCHEDULER] Failed to expire stale payments: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[PAYMENT-SCHEDULER] Expired %d stale pending payments", result.RowsAffected)
	}
}
