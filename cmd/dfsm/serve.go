package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/dfsm/internal/cli"
	"github.com/aretw0/dfsm/internal/presentation/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a machine catalog over HTTP",
	Long: `Starts the HTTP API over a machine catalog. Machines are kept in memory, in a
directory of YAML files, in Redis, or read from a Loam repository (read-only, with
change notifications on /events).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		backend, err := cli.OpenBackend(storeConfig(cmd.Flags()), env.Logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		if tui.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr, _ := cmd.Flags().GetString("addr")
		return cli.Serve(ctx, addr, backend, env.Logger)
	},
}

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the machine catalog as MCP tools (list_machines, describe_machine,
run_machine, accepts) over Standard Input/Output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		backend, err := cli.OpenBackend(storeConfig(cmd.Flags()), env.Logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		return cli.ServeMCP(backend, env.Logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)

	serveCmd.Flags().String("addr", envOr("DFSM_ADDR", ":8080"), "Address to listen on [DFSM_ADDR]")
	addStoreFlags(serveCmd.Flags())
	addStoreFlags(mcpCmd.Flags())
}

func addStoreFlags(flags *pflag.FlagSet) {
	flags.String("store", envOr("DFSM_STORE", "file"), "Catalog backend: memory, file, redis or loam [DFSM_STORE]")
	flags.String("dir", envOr("DFSM_DIR", ".dfsm/machines"), "Directory of the file store or loam repository [DFSM_DIR]")
	flags.String("redis-addr", envOr("DFSM_REDIS_ADDR", "localhost:6379"), "Redis address [DFSM_REDIS_ADDR]")
	flags.String("redis-password", os.Getenv("DFSM_REDIS_PASSWORD"), "Redis password [DFSM_REDIS_PASSWORD]")
	flags.Int("redis-db", envIntOr("DFSM_REDIS_DB", 0), "Redis database [DFSM_REDIS_DB]")
	flags.String("redis-prefix", envOr("DFSM_REDIS_PREFIX", ""), "Redis key prefix [DFSM_REDIS_PREFIX]")
	flags.Duration("redis-ttl", 0, "Expire stored machines after this duration (0 keeps them)")
}

func storeConfig(flags *pflag.FlagSet) cli.StoreConfig {
	cfg := cli.StoreConfig{}
	cfg.Kind, _ = flags.GetString("store")
	cfg.Dir, _ = flags.GetString("dir")
	cfg.RedisAddr, _ = flags.GetString("redis-addr")
	cfg.RedisPassword, _ = flags.GetString("redis-password")
	cfg.RedisDB, _ = flags.GetInt("redis-db")
	cfg.RedisPrefix, _ = flags.GetString("redis-prefix")
	cfg.RedisTTL, _ = flags.GetDuration("redis-ttl")
	return cfg
}
