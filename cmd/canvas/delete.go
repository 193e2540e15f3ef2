package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a document from the vault",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openVault(true)
		defer store.Close()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			fatal("deleting document", err)
		}

		fmt.Println("deleted", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
