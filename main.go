// ABOUTME: Entry point for the seefirst CLI
// ABOUTME: Terminal storefront and admin/vendor panels for the SeeFirst marketplace

package main

import (
	"fmt"
	"os"

	"github.com/seefirst/seefirst-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
