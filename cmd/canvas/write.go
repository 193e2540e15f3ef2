package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	canvas "github.com/Kevdome3000/infinite-canvas"
)

var writeName string

var writeCmd = &cobra.Command{
	Use:   "write <id>",
	Short: "Replace a document's content with stdin",
	Long: `Reads the new content from stdin and overwrites the document.
CreatedAt is preserved for existing documents; a missing id creates one.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal("reading stdin", err)
		}

		store := openVault(false)
		defer store.Close()

		ctx := context.Background()
		now := time.Now()

		doc, err := store.Load(ctx, id)
		switch {
		case err == nil:
			doc.Content = string(content)
			doc.UpdatedAt = now
			if writeName != "" {
				doc.Name = writeName
			}
		case errors.Is(err, canvas.ErrNotFound):
			name := writeName
			if name == "" {
				name = id
			}
			doc = canvas.Document{
				ID:        id,
				Name:      name,
				Content:   string(content),
				CreatedAt: now,
				UpdatedAt: now,
			}
		default:
			fatal("loading document", err)
		}

		if err := store.Save(ctx, doc); err != nil {
			fatal("writing document", err)
		}

		fmt.Println(doc.ID)
	},
}

func init() {
	writeCmd.Flags().StringVar(&writeName, "name", "", "Set the document name")
	rootCmd.AddCommand(writeCmd)
}
