package commands

import (
	"github.com/spf13/cobra"

	"github.com/shopmanagement/portal/internal/pkg/config"
	"github.com/shopmanagement/portal/pkg/logger"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "shopportal",
		Short:         "Shop management portal server and client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Output:  cmd.ErrOrStderr(),
				Service: "shopportal",
			})
		},
	}

	conf := func() *config.Config { return cfg }

	rootCmd.AddCommand(
		NewServeCommand(conf),
		NewDevBackendCommand(conf),
		NewLoginCommand(conf),
		NewLogoutCommand(conf),
		NewWhoAmICommand(conf),
		NewRegisterCommand(conf),
		NewOTPCommand(conf),
		NewPasswordCommand(conf),
		NewAssignProductsCommand(conf),
	)

	return rootCmd
}
