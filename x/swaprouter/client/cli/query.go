package cli

import (
	"context"
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// GetQueryCmd returns the cli query commands for the swaprouter module
func GetQueryCmd() *cobra.Command {
	swaprouterQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the swaprouter module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	swaprouterQueryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryFeeLedger(),
		GetCmdQueryQuote(),
		GetCmdQueryModules(),
		GetCmdQueryModuleOf(),
		GetCmdQueryTagsOf(),
	)

	return swaprouterQueryCmd
}

// GetCmdQueryParams returns the command to query module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current swaprouter module parameters",
		Long: `Query the current parameters of the swaprouter module including denoms, slippage bounds and fee tiers.

Example:
  $ vortexd query swaprouter params`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Params(context.Background(), &types.QueryParamsRequest{})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryFeeLedger returns the command to query the platform fee ledger
func GetCmdQueryFeeLedger() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fee-ledger",
		Short: "Query the platform fee configuration",
		Long: `Query the platform fee rate and the account fees accrue to.

Example:
  $ vortexd query swaprouter fee-ledger`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.FeeLedger(context.Background(), &types.QueryFeeLedgerRequest{})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryQuote returns the command to estimate a swap without executing it
func GetCmdQueryQuote() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [source-denom] [dest-denom] [amount-in]",
		Short: "Estimate the best route for a swap without executing it",
		Long: `Estimate the output of a swap across every supported pool generation.
The best venue wins; a quote with generation 0 means no route was found.

Example:
  $ vortexd query swaprouter quote uvtx uusdc 1000000
  $ vortexd query swaprouter quote uvtx uusdc 1000000 --via uwvtx
  $ vortexd query swaprouter quote uvtx uusdc 1000000 --prefer-generation 3`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			amountIn, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid amount-in: %s (must be integer)", args[2])
			}

			path := []string{args[0]}
			if via, _ := cmd.Flags().GetString(FlagVia); via != "" {
				path = append(path, strings.Split(via, ",")...)
			}
			path = append(path, args[1])

			routeData, err := readBase64Flag(cmd, FlagRouteData)
			if err != nil {
				return err
			}
			preference, err := cmd.Flags().GetUint32(FlagPreferGeneration)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Quote(context.Background(), &types.QueryQuoteRequest{
				Path:                path,
				AmountIn:            amountIn,
				RouteData:           routeData,
				RouteTypePreference: preference,
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	cmd.Flags().String(FlagVia, "", "Comma-separated intermediate denoms for multi-hop estimates")
	cmd.Flags().String(FlagRouteData, "", "Base64 pool-hop encoding for a generation-4 estimate")
	cmd.Flags().Uint32(FlagPreferGeneration, 0, "Restrict the estimate to one pool generation (2, 3 or 4)")
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryModules returns the command to list registered execution modules
func GetCmdQueryModules() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List every registered execution module with its operation tags",
		Long: `List every execution module currently registered behind the router
address, together with the operation tags each one serves.

Example:
  $ vortexd query swaprouter modules`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Modules(context.Background(), &types.QueryModulesRequest{})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryModuleOf returns the command to resolve one operation tag
func GetCmdQueryModuleOf() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module-of [tag-hex]",
		Short: "Resolve the module bound to an operation tag",
		Long: `Resolve which execution module an operation tag is currently bound to.
The tag is the 8-character hex form. An empty module address means the tag is unbound.

Example:
  $ vortexd query swaprouter module-of 1a2b3c4d`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.ModuleOf(context.Background(), &types.QueryModuleOfRequest{
				Tag: args[0],
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryTagsOf returns the command to list a module's operation tags
func GetCmdQueryTagsOf() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags-of [module-address]",
		Short: "List the operation tags bound to a module",
		Long: `List every operation tag currently bound to the given execution module.

Example:
  $ vortexd query swaprouter tags-of vtx1abcdef...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.TagsOf(context.Background(), &types.QueryTagsOfRequest{
				ModuleAddress: args[0],
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
