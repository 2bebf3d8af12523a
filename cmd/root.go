package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/jithpillai/zstore/cart/cmd"
	"github.com/jithpillai/zstore/internal/common/constants"
	"github.com/jithpillai/zstore/internal/log"
	orderCmd "github.com/jithpillai/zstore/order/cmd"
	productCmd "github.com/jithpillai/zstore/product/cmd"
	userCmd "github.com/jithpillai/zstore/user/cmd"
)

func Start() {
	logger := log.InitLogger("/var/log/zstore.log", os.Getenv("ZSTORE_ENV")).
		With().
		Str(log.KeyAppName, constants.AppMainZstore).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: constants.AppMainZstore}
	commands := []*cobra.Command{
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		{
			Use:   "order",
			Short: "Run order service",
			Run: func(cmd *cobra.Command, args []string) {
				orderCmd.RunOrderService(cmd.Context())
			},
		},
		{
			Use:   "product",
			Short: "Run product service",
			Run: func(cmd *cobra.Command, args []string) {
				productCmd.RunProductService(cmd.Context())
			},
		},
		{
			Use:   "user",
			Short: "Run user service",
			Run: func(cmd *cobra.Command, args []string) {
				userCmd.RunUserService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
