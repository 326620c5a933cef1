package main

import (
	"context"
	"fmt"
	"os"
	"time"

	attcore "veritime.com/veritime/attendance/core"
	v1 "veritime.com/veritime/client/v1"
	"veritime.com/veritime/infrastructure/devops"
	"veritime.com/veritime/security"
	"veritime.com/veritime/utils"
)

// Pushes a device CSV export through the public API instead of importing it
// straight into the database. Each group becomes a mark plus, when the day
// has a closing punch, a checkout.

func CreateClient(url, tenant string) (*v1.VeritimeClient, error) {
	secret := os.Getenv("VERITIME_SIGNING_SECRET")
	token, err := security.CreateIdentityToken(&security.VeritimeIdentity{
		UserName: "device-sync",
		Tenant:   tenant,
	}, secret, 3600)
	if err != nil {
		return nil, err
	}

	return v1.NewVeritimeClient(url, token), nil
}

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: pushpunches <url> <tenant> <file.csv>")
		os.Exit(1)
	}
	url, tenant, path := os.Args[1], os.Args[2], os.Args[3]

	pol, err := devops.LoadTenantPolicy(context.Background(), tenant)
	if err != nil {
		fmt.Printf("Error loading policy: %v\n", err)
		os.Exit(1)
	}

	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	punches, err := attcore.ParsePunchCSV(file, pol.WorkHours.Location())
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}
	groups := attcore.GroupPunches(punches)
	fmt.Printf("Pushing %d groups from %d punches\n", len(groups), len(punches))

	client, err := CreateClient(url, tenant)
	if err != nil {
		fmt.Printf("Error creating client: %v\n", err)
		os.Exit(1)
	}

	created, closed, failed := 0, 0, 0
	for _, g := range groups {
		first := g.First()

		result, err := client.Attendance.Mark(&v1.MarkAttendanceDTO{
			Username:  g.Username,
			WorkMode:  attcore.WorkModeOffice,
			Timestamp: utils.Ptr(first.Timestamp),
			DeviceID:  first.DeviceID,
		})
		if err != nil {
			fmt.Printf("  %s %s: %v\n", g.Username, g.Date, err)
			failed++
			continue
		}
		created++
		fmt.Printf("  %s %s: clocked in %s\n", g.Username, g.Date, result.Record.ClockIn)

		if len(g.Punches) > 1 {
			if _, err := client.Attendance.Checkout(g.Username); err != nil {
				fmt.Printf("  %s %s checkout: %v\n", g.Username, g.Date, err)
				continue
			}
			closed++
		}
	}

	fmt.Printf("Done at %s: %d created, %d closed, %d failed\n",
		time.Now().Format(time.RFC3339), created, closed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
