package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	canvas "github.com/Kevdome3000/infinite-canvas"
)

var readCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Print a document's content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openVault(true)
		defer store.Close()

		doc, err := store.Load(context.Background(), args[0])
		if err != nil {
			if errors.Is(err, canvas.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "no document with id %q\n", args[0])
				os.Exit(1)
			}
			fatal("reading document", err)
		}

		fmt.Print(doc.Content)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
