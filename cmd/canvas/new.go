package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	canvas "github.com/Kevdome3000/infinite-canvas"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create an empty document in the vault",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := "Untitled"
		if len(args) == 1 {
			name = args[0]
		}

		store := openVault(false)
		defer store.Close()

		now := time.Now()
		doc := canvas.Document{
			ID:        store.GenerateID(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.Save(context.Background(), doc); err != nil {
			fatal("creating document", err)
		}

		fmt.Println(doc.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
