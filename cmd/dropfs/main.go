// Command dropfs is a small CLI over the dropfs client for poking at a
// configured remote store: list, fetch, push, delete and move files.
package main

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unalkalkan/dropfs"
	"github.com/unalkalkan/dropfs/internal/config"
)

var (
	configPath string
	token      string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dropfs",
	Short: "Typed file client for remote cloud storage",
	Long: `dropfs talks to a remote file store (Dropbox, S3 or a local
directory) through one normalized path convention.

Configuration comes from a YAML file (--config), DROPFS_-prefixed
environment variables, or --token for a Dropbox access token.`,
	SilenceUsage: true,
}

var lsCmd = &cobra.Command{
	Use:   "ls [folder]",
	Short: "List folder entries, sorted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := "/"
		if len(args) == 1 {
			folder = args[0]
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		names, err := client.List(context.Background(), folder)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <remote> [local]",
	Short: "Download a file ('-' for stdout)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := path.Base(args[0])
		if len(args) == 2 {
			target = args[1]
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		data, err := client.ReadFile(context.Background(), args[0])
		if err != nil {
			return err
		}
		if target == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(target, data, 0o644)
	},
}

var putCmd = &cobra.Command{
	Use:   "put <local> <remote>",
	Short: "Upload a file, overwriting existing content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		return client.WriteFile(context.Background(), data, args[1])
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file or folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		return client.Delete(context.Background(), args[0])
	},
}

var mvNoOverwrite bool

var mvCmd = &cobra.Command{
	Use:   "mv <src> <dest>",
	Short: "Move a file, replacing the destination unless --no-overwrite",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		return client.Move(context.Background(), args[0], args[1], !mvNoOverwrite)
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists <path>",
	Short: "Check whether a path exists (exit status 1 if not)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		ok, err := client.Exists(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("absent")
			os.Exit(1)
		}
		fmt.Println("exists")
		return nil
	},
}

var zipLsCmd = &cobra.Command{
	Use:   "zip-ls <archive>",
	Short: "List the members of a remote zip archive in physical order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		names, err := client.ZipNames(context.Background(), args[0])
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func newClient() (*dropfs.Client, error) {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	if token != "" {
		return dropfs.New(token, dropfs.WithLogger(log)), nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	store, err := config.OpenStore(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return dropfs.NewWithStore(store, dropfs.WithLogger(log)), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Dropbox access token (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every transfer")

	mvCmd.Flags().BoolVar(&mvNoOverwrite, "no-overwrite", false, "fail instead of replacing an existing destination")

	rootCmd.AddCommand(lsCmd, getCmd, putCmd, rmCmd, mvCmd, existsCmd, zipLsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
