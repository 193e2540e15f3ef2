package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kevdome3000/infinite-canvas/pkg/core"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream external changes to the vault until interrupted",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openVault(true)
		defer store.Close()

		watchable, ok := store.(core.Watchable)
		if !ok {
			fatal("watching vault", fmt.Errorf("adapter does not support watching"))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := watchable.Watch(ctx, watchPattern)
		if err != nil {
			fatal("watching vault", err)
		}

		for e := range events {
			fmt.Printf("%s\t%s\t%s\n", e.At.Format("15:04:05"), e.Type, e.ID)
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Only report ids matching this glob")
	rootCmd.AddCommand(watchCmd)
}
