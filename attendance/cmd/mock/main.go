package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"veritime.com/veritime/attendance/model"
	"veritime.com/veritime/utils"
)

var usernames = []string{
	"alice", "bob", "carol", "dave", "erin",
	"frank", "grace", "heidi", "ivan", "judy",
}

func main() {
	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/development?parseTime=true"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	startDate := utils.MustParseDate("2024-06-03")
	endDate := utils.MustParseDate("2024-06-28")

	mockAttendanceRecords(db, startDate, endDate)
}

func mockAttendanceRecords(db *gorm.DB, startDate, endDate time.Time) {
	var records []model.AttendanceRecord

	for _, username := range usernames {
		for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}

			// stagger clock-ins so late/flex flags vary per user
			minute := 55 + (len(username)*7+d.Day())%40
			clockIn := fmt.Sprintf("%02d:%02d", 8+minute/60, minute%60)

			records = append(records, model.AttendanceRecord{
				ID:         uuid.NewString(),
				Username:   username,
				Date:       d.Format("2006-01-02"),
				WorkMode:   "office",
				Status:     model.StatusPresent,
				ClockIn:    clockIn,
				ClockOut:   utils.Ptr("17:30"),
				TotalHours: utils.Ptr("8:30"),

				IsLateArrival:     minute > 90,
				IsFlexTime:        minute > 60 && minute <= 90,
				LocationValidated: true,
				FraudCheckPassed:  true,
			})
		}
	}

	if len(records) == 0 {
		fmt.Println("No records to insert.")
		return
	}

	fmt.Printf("Inserting %d mock attendance records for %d users...\n", len(records), len(usernames))

	// Batch insert (chunk size 100 to be safe)
	if err := db.CreateInBatches(records, 100).Error; err != nil {
		log.Fatalf("failed to insert mock records: %v", err)
	}

	fmt.Println("Successfully inserted mock attendance records.")
}
