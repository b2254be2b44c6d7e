package main

import (
	"fmt"
	"os"
)

// @title Expense Workflow API
// @version 1.0
// @description Expense approval workflow: draft, submit, manager and finance approval, rejection and audit trail.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
