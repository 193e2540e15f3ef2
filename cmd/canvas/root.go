package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	canvas "github.com/Kevdome3000/infinite-canvas"
)

var (
	verbose   bool
	vaultPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "canvas",
	Short: "Manage a vault of infinite-canvas documents",
	Long: `canvas is the storage tooling for infinite-canvas vaults.
A vault is a directory of frontmatter markdown files, one per document,
with a metadata index for fast listings.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Vault directory (default: discovered from the working directory)")
}

// resolveVault returns the vault directory: the --vault flag if set,
// otherwise the nearest ancestor carrying a vault marker, otherwise the
// working directory itself.
func resolveVault() string {
	if vaultPath != "" {
		return vaultPath
	}

	wd, err := os.Getwd()
	if err != nil {
		fatal("getting working directory", err)
	}

	if root, err := canvas.FindVaultRoot(wd); err == nil {
		return root
	}
	return wd
}

func openVault(mustExist bool) canvas.Store {
	store, err := canvas.Open(resolveVault(),
		canvas.WithMustExist(mustExist),
		canvas.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("opening vault", err)
	}
	return store
}
