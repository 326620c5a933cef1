package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"

	attcore "veritime.com/veritime/attendance/core"
	"veritime.com/veritime/core"
	"veritime.com/veritime/infrastructure/devops"
	"veritime.com/veritime/infrastructure/filesystem"
)

// Punch exports are dropped at s3://<bucket>/<tenant>/<file>.csv; the key
// prefix names the tenant schema the rows belong to.

func importObject(ctx context.Context, dm *core.DatabaseManager, bucket, key string) (attcore.ImportResult, error) {
	tenant := strings.SplitN(key, "/", 2)[0]
	if tenant == "" || tenant == key {
		return attcore.ImportResult{}, fmt.Errorf("key %s has no tenant prefix", key)
	}

	pol, err := devops.LoadTenantPolicy(ctx, tenant)
	if err != nil {
		return attcore.ImportResult{}, err
	}

	var buf bytes.Buffer
	if err := filesystem.ReadFile(bucket, key, ctx, &buf); err != nil {
		return attcore.ImportResult{}, fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}

	punches, err := attcore.ParsePunchCSV(&buf, pol.WorkHours.Location())
	if err != nil {
		return attcore.ImportResult{}, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	groups := attcore.GroupPunches(punches)
	fmt.Printf("[INFO] %s: %d punches in %d groups\n", key, len(punches), len(groups))

	var result attcore.ImportResult
	err = dm.Exec(ctx, tenant, func(db *gorm.DB) error {
		result = attcore.ImportPunches(db, pol, groups)
		return nil
	})
	return result, err
}

func HandleRequest(ctx context.Context, event events.S3Event) (map[string]attcore.ImportResult, error) {
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Event: %s\n", string(eventJson))

	env := strings.ToLower(os.Getenv("VERITIME_ENV"))
	if env == "" {
		env = "production"
	}

	dbs, err := devops.LoadDatabases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load databases from SSM: %w", err)
	}
	entry, ok := dbs[env]
	if !ok {
		return nil, fmt.Errorf("environment '%s' not found in parameter store", env)
	}

	dm, err := core.New(entry.GetDSN(""), 10)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	dm.LogLevel = core.LogLevelError
	defer dm.Close()

	results := make(map[string]attcore.ImportResult)
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key

		result, err := importObject(ctx, dm, bucket, key)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			continue
		}
		results[key] = result
		fmt.Printf("[INFO] %s: created %d, closed %d, rejected %d\n",
			key, result.Created, result.Closed, result.Rejected)
	}

	return results, nil
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	// Local run: go run ./lambdas/import <tenant> <file.csv>
	if len(os.Args) < 3 {
		fmt.Println("usage: import <tenant> <file.csv>")
		os.Exit(1)
	}
	tenant, path := os.Args[1], os.Args[2]

	ctx := context.Background()
	pol, err := devops.LoadTenantPolicy(ctx, tenant)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}

	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	punches, err := attcore.ParsePunchCSV(file, pol.WorkHours.Location())
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	groups := attcore.GroupPunches(punches)

	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/development?parseTime=true"
	}
	dm, err := core.New(dsn, 10)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	defer dm.Close()

	var result attcore.ImportResult
	err = dm.Exec(ctx, tenant, func(db *gorm.DB) error {
		result = attcore.ImportPunches(db, pol, groups)
		return nil
	})
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}

	resJson, _ := json.MarshalIndent(result, "", "  ")
	fmt.Printf("[SUCCESS] Result:\n%s\n", string(resJson))
}
