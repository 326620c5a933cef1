package main

import (
	"flag"
	"fmt"
	"os"

	"veritime.com/veritime/security"
)

func main() {
	username := flag.String("username", "device", "username the token acts as")
	tenant := flag.String("tenant", "", "tenant schema name")
	email := flag.String("email", "", "email claim")
	expires := flag.Int64("expires", 3600, "expiry in seconds")
	flag.Parse()

	secret := os.Getenv("VERITIME_SIGNING_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "VERITIME_SIGNING_SECRET is required")
		os.Exit(1)
	}

	token, err := security.CreateIdentityToken(&security.VeritimeIdentity{
		UserName: *username,
		Tenant:   *tenant,
		Email:    *email,
	}, secret, *expires)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
