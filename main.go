package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/inkpost/inkpost/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A .env file is optional; it carries INKPOST_CLIENT_ID for device login.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
