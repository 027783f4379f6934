package main

import (
	"context"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/weegigs/wee-ledger/support"
	"github.com/weegigs/wee-ledger/we"
)

var (
	envFile string
	store   string
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ledger",
		Short:         "Host counter and calculator contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	rootCmd.PersistentFlags().StringVar(&store, "store", "", "state store, overrides LEDGER_STORE")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(contractsCmd())
	rootCmd.AddCommand(callCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(stateCmd())
	rootCmd.AddCommand(removeCmd())

	return rootCmd
}

func loadConfig() (support.Config, error) {
	cfg, err := support.LoadConfig(envFile)
	if err != nil {
		return support.Config{}, err
	}

	if store != "" {
		cfg.Store = store
	}

	support.ConfigureLogging(cfg)

	return cfg, nil
}

func openRuntime(ctx context.Context) (*support.Runtime, support.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, support.Config{}, nil, err
	}

	runtime, cleanup, err := initializeRuntime(ctx, cfg)
	if err != nil {
		return nil, support.Config{}, nil, err
	}

	return runtime, cfg, cleanup, nil
}

func printJSON(out io.Writer, value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	_, err = out.Write(append(encoded, '\n'))
	return err
}

func contractId(args []string) (we.ContractId, error) {
	id := we.ContractId{Kind: we.ContractKind(args[0]), Key: args[1]}
	return id, id.Validate()
}

func contractsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contracts",
		Short: "List contract kinds with their methods and views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, _, cleanup, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			contracts := map[we.ContractKind]map[string][]we.MethodName{}
			for _, kind := range runtime.Registry.Kinds() {
				endpoint := runtime.Registry[kind]
				contracts[kind] = map[string][]we.MethodName{
					"methods": endpoint.Methods(),
					"views":   endpoint.Views(),
				}
			}

			return printJSON(cmd.OutOrStdout(), contracts)
		},
	}
}

func callCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <kind> <key> <method> [args]",
		Short: "Run a method; args is a JSON object or array",
		Example: `  ledger call counter main increment
  ledger call calculator main multiply '{"x": 5, "y": 20}'
  ledger call calculator main div '[20, 10]'`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, _, cleanup, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			endpoint, err := runtime.Registry.Lookup(we.ContractKind(args[0]))
			if err != nil {
				return err
			}

			call := we.RemoteCall{Method: we.MethodName(args[2])}
			if len(args) == 4 {
				call.Args = json.RawMessage(args[3])
			}

			result, err := endpoint.Call(cmd.Context(), args[1], call)
			if err != nil {
				return err
			}

			if !result.Committed {
				return printJSON(cmd.OutOrStdout(), map[string]any{"result": result.Result})
			}

			result.Resource["$logs"] = result.Logs
			return printJSON(cmd.OutOrStdout(), result.Resource)
		},
	}
}

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <kind> <key> [view]",
		Short: "Read a contract, or one of its views, without changing it",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, _, cleanup, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			endpoint, err := runtime.Registry.Lookup(we.ContractKind(args[0]))
			if err != nil {
				return err
			}

			if len(args) == 2 {
				resource, err := endpoint.Resource(cmd.Context(), args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resource)
			}

			result, err := endpoint.View(cmd.Context(), args[1], we.MethodName(args[2]))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"result": result})
		},
	}
}

func stateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <kind> <key>",
		Short: "Print the stored record of a contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := contractId(args)
			if err != nil {
				return err
			}

			runtime, _, cleanup, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			record, err := runtime.Store.Load(cmd.Context(), id)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), record)
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <kind> <key>",
		Short: "Delete the stored state of a contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := contractId(args)
			if err != nil {
				return err
			}

			runtime, _, cleanup, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			removed, err := runtime.Store.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]bool{"removed": removed})
		},
	}
}
