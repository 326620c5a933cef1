package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"

	"veritime.com/veritime/attendance/model"
	"veritime.com/veritime/console"
	"veritime.com/veritime/core"
	"veritime.com/veritime/infrastructure/devops"
	"veritime.com/veritime/lambdas/checkout-reminder/helper"
)

type ReminderEvent struct {
	Tenants *[]string `json:"tenants"`
	Date    string    `json:"date"` // yyyy-MM-dd, defaults to today in each tenant's zone
	DryRun  bool      `json:"dryRun"`
	Env     string    `json:"env"`
}

type ReminderStats struct {
	Open int  `json:"open"`
	Sent bool `json:"sent"`
}

var senderAddress = "no-reply@veritime.com"

func RemindTenants(ctx context.Context, dsn string, event ReminderEvent) (map[string]ReminderStats, error) {
	dm, err := core.New(dsn, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	dm.LogLevel = core.LogLevelError
	defer dm.Close()

	var targets []string
	if event.Tenants == nil {
		fmt.Printf("[INFO] No tenants provided, fetching all tenants...\n")
		targets, err = dm.GetAllTenants(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get all tenants: %w", err)
		}
	} else {
		targets = *event.Tenants
	}

	consoleDB, err := console.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect console: %w", err)
	}

	results := make(map[string]ReminderStats)
	for _, tenant := range targets {
		stats, err := remindTenant(ctx, dm, consoleDB, tenant, event)
		if err != nil {
			fmt.Printf("[ERROR] failed to remind tenant %s: %v\n", tenant, err)
			continue
		}
		results[tenant] = stats
	}

	fmt.Printf("[INFO] Finished checkout reminders\n")
	return results, nil
}

func remindTenant(ctx context.Context, dm *core.DatabaseManager, consoleDB *gorm.DB, tenant string, event ReminderEvent) (ReminderStats, error) {
	pol, err := devops.LoadTenantPolicy(ctx, tenant)
	if err != nil {
		return ReminderStats{}, err
	}

	date := event.Date
	if date == "" {
		date = time.Now().In(pol.WorkHours.Location()).Format("2006-01-02")
	}

	var open []model.AttendanceRecord
	err = dm.Exec(ctx, tenant, func(db *gorm.DB) error {
		open, err = helper.FindOpenRecords(db, date)
		return err
	})
	if err != nil {
		return ReminderStats{}, err
	}

	stats := ReminderStats{Open: len(open)}
	if len(open) == 0 {
		return stats, nil
	}

	sub, err := console.FindSubscriptionByDomain(consoleDB, fmt.Sprintf("%s.veritime.com", tenant))
	if err != nil {
		return stats, err
	}
	if sub == nil || strings.TrimSpace(sub.Customer.Email) == "" {
		return stats, fmt.Errorf("no contact email for tenant %s", tenant)
	}

	email := helper.BuildReminderEmail(senderAddress, sub.Customer.Email, tenant, date, open)
	if event.DryRun {
		fmt.Printf("[INFO] Dry run: would email %s about %d open records in %s\n",
			sub.Customer.Email, len(open), tenant)
		return stats, nil
	}

	if err := helper.SendEmail(ctx, email); err != nil {
		return stats, err
	}
	stats.Sent = true
	return stats, nil
}

func HandleRequest(ctx context.Context, event ReminderEvent) (map[string]ReminderStats, error) {
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Event: %s\n", string(eventJson))

	dbs, err := devops.LoadDatabases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load databases from SSM: %w", err)
	}

	env := strings.ToLower(event.Env)
	if env == "" {
		return nil, fmt.Errorf("environment (env) is required")
	}

	entry, ok := dbs[env]
	if !ok {
		return nil, fmt.Errorf("environment '%s' not found in parameter store", env)
	}

	return RemindTenants(ctx, entry.GetDSN(""), event)
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
	} else {
		ctx := context.Background()
		dbs, err := devops.LoadDatabases(ctx)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			os.Exit(1)
		}

		results, err := RemindTenants(ctx, dbs["dev"].GetDSN(""), ReminderEvent{DryRun: true})
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			os.Exit(1)
		}
		resJson, _ := json.MarshalIndent(results, "", "  ")
		fmt.Printf("[SUCCESS] Results:\n%s\n", string(resJson))
	}
}
