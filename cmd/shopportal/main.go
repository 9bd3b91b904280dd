// @title        Shop Portal API
// @version      1.0
// @description  Session, authorization and backend-access layer of the shop-management portal.
// @BasePath     /
package main

import (
	"fmt"
	"os"

	"github.com/shopmanagement/portal/cmd/shopportal/commands"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
