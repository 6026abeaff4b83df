package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// GetTxCmd returns the transaction commands for the swap router module
func GetTxCmd() *cobra.Command {
	routerTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Swap router transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	routerTxCmd.AddCommand(
		CmdExecuteSwap(),
		CmdApplyCuts(),
		CmdSetFeeLedger(),
		CmdSweepResidual(),
	)

	return routerTxCmd
}

// CmdExecuteSwap returns a CLI command handler for executing a swap
func CmdExecuteSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute-swap [source-denom] [dest-denom] [amount-in] [generation]",
		Short: "Execute a token swap through the best venue of one AMM generation",
		Long: `Execute a token swap. Generation 2 is the constant-product pair venue,
3 the concentrated-liquidity venue, and 4 the singleton pool manager.

A swap from the native currency must attach the input as payment. Any other
source token is pulled through the allowance delegate instead.

Examples:
  $ vortexd tx swaprouter execute-swap uatom uusdc 1000000 2 --from mykey
  $ vortexd tx swaprouter execute-swap uvtx uusdc 1000000 3 --payment 1000000uvtx --fee-tier-bps 30 --from mykey
  $ vortexd tx swaprouter execute-swap uatom uvtx 1000000 2 --slippage-bps 50 --mev-protect --from mykey`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			sourceDenom := args[0]
			destDenom := args[1]

			if sourceDenom == destDenom {
				return fmt.Errorf("source and destination denoms must be different")
			}

			amountIn, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid amount-in: %s (must be integer)", args[2])
			}
			if !amountIn.IsPositive() {
				return fmt.Errorf("amount-in must be positive")
			}

			generation, err := strconv.ParseUint(args[3], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid generation: %w", err)
			}

			route := types.Route{
				SourceDenom: sourceDenom,
				DestDenom:   destDenom,
				Generation:  uint32(generation),
			}

			feeTier, err := cmd.Flags().GetUint32(FlagFeeTierBps)
			if err != nil {
				return err
			}
			route.FeeTierBps = feeTier

			via, err := cmd.Flags().GetString(FlagVia)
			if err != nil {
				return err
			}
			route.HopPath = []string{sourceDenom}
			if via != "" {
				route.HopPath = append(route.HopPath, strings.Split(via, ",")...)
			}
			route.HopPath = append(route.HopPath, destDenom)

			routeData, err := readBase64Flag(cmd, FlagRouteData)
			if err != nil {
				return err
			}
			route.RouteData = routeData

			hookData, err := readBase64Flag(cmd, FlagHookData)
			if err != nil {
				return err
			}
			route.HookData = hookData

			expectedOutput := math.ZeroInt()
			if raw, _ := cmd.Flags().GetString(FlagExpectedOutput); raw != "" {
				expectedOutput, ok = math.NewIntFromString(raw)
				if !ok {
					return fmt.Errorf("invalid expected-output: %s (must be integer)", raw)
				}
			}

			slippageBps, err := cmd.Flags().GetUint32(FlagSlippageBps)
			if err != nil {
				return err
			}

			deadline, err := cmd.Flags().GetInt64(FlagDeadline)
			if err != nil {
				return err
			}

			msg := types.NewMsgExecuteSwap(
				clientCtx.GetFromAddress().String(),
				route,
				amountIn,
				expectedOutput,
				slippageBps,
				deadline,
			)

			if msg.Recipient, err = cmd.Flags().GetString(FlagRecipient); err != nil {
				return err
			}
			if msg.ReferralAccount, err = cmd.Flags().GetString(FlagReferral); err != nil {
				return err
			}
			if msg.ReferralFeeBps, err = cmd.Flags().GetUint32(FlagReferralBps); err != nil {
				return err
			}
			if msg.Metadata.IntegratorID, err = cmd.Flags().GetString(FlagIntegrator); err != nil {
				return err
			}
			if msg.Config.MevProtectionEnabled, err = cmd.Flags().GetBool(FlagMevProtect); err != nil {
				return err
			}

			msg.Config.GasPriceHint = math.ZeroInt()
			if raw, _ := cmd.Flags().GetString(FlagGasPriceHint); raw != "" {
				msg.Config.GasPriceHint, ok = math.NewIntFromString(raw)
				if !ok {
					return fmt.Errorf("invalid gas-price-hint: %s (must be integer)", raw)
				}
			}

			if raw, _ := cmd.Flags().GetString(FlagPayment); raw != "" {
				payment, err := sdk.ParseCoinNormalized(raw)
				if err != nil {
					return fmt.Errorf("invalid payment: %w", err)
				}
				msg.Payment = payment
			}

			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagRecipient, "", "Recipient of the swap output (defaults to the sender)")
	cmd.Flags().String(FlagExpectedOutput, "", "Expected output amount (defaults to a live quote)")
	cmd.Flags().Uint32(FlagSlippageBps, 0, "Slippage tolerance in basis points (defaults to the module parameter)")
	cmd.Flags().Int64(FlagDeadline, 0, "Unix timestamp after which the swap is rejected (0 = no deadline)")
	cmd.Flags().Uint32(FlagFeeTierBps, 0, "Fee tier in basis points for generation 3 and 4 venues")
	cmd.Flags().String(FlagVia, "", "Comma-separated intermediate hop denoms")
	cmd.Flags().String(FlagRouteData, "", "Base64 pool-hop encoding for generation 4 routes")
	cmd.Flags().String(FlagHookData, "", "Base64 hook payload passed to generation 4 pools")
	cmd.Flags().String(FlagPayment, "", "Attached native payment, e.g. 1000000uvtx (required for native source)")
	cmd.Flags().String(FlagReferral, "", "Referral fee recipient address")
	cmd.Flags().Uint32(FlagReferralBps, 0, "Referral fee in basis points")
	cmd.Flags().Bool(FlagMevProtect, false, "Tighten deadline and slippage against front-running")
	cmd.Flags().String(FlagGasPriceHint, "", "Gas price the MEV heuristic should assume")
	cmd.Flags().String(FlagIntegrator, "", "Integrator identifier carried into events")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApplyCuts returns a CLI command handler for mutating the operation registry
func CmdApplyCuts() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply-cuts [cuts-json]",
		Short: "Apply a batch of registry cuts (authority only)",
		Long: `Apply a batch of registry cuts atomically. The argument is a JSON array
of cuts; action 0 adds a binding, 1 replaces it, 2 removes it.

Example:
  $ vortexd tx swaprouter apply-cuts '[{"tag":"1f9840a8","module_address":"vtx1...","action":0}]' --from authority
  $ vortexd tx swaprouter apply-cuts '[]' --init-module vtx1... --init-data '{"native_denom":"uvtx"}' --from authority`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			var cuts []types.Cut
			if err := json.Unmarshal([]byte(args[0]), &cuts); err != nil {
				return fmt.Errorf("invalid cuts JSON: %w", err)
			}

			initModule, err := cmd.Flags().GetString(FlagInitModule)
			if err != nil {
				return err
			}
			initData, err := cmd.Flags().GetString(FlagInitData)
			if err != nil {
				return err
			}

			msg := types.NewMsgApplyCuts(
				clientCtx.GetFromAddress().String(),
				cuts,
				initModule,
				[]byte(initData),
			)

			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagInitModule, "", "Module whose init handler runs inside the batch")
	cmd.Flags().String(FlagInitData, "", "Raw payload handed to the init handler")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetFeeLedger returns a CLI command handler for configuring the platform fee
func CmdSetFeeLedger() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-fee-ledger [platform-fee-bps] [fee-recipient]",
		Short: "Configure the platform fee (authority only)",
		Long: `Configure the platform fee rate and recipient. A rate of zero with no
recipient disables the platform fee.

Examples:
  $ vortexd tx swaprouter set-fee-ledger 50 vtx1treasury... --from authority
  $ vortexd tx swaprouter set-fee-ledger 0 --from authority`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			feeBps, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid platform-fee-bps: %w", err)
			}

			recipient := ""
			if len(args) == 2 {
				recipient = args[1]
			}

			msg := types.NewMsgSetFeeLedger(
				clientCtx.GetFromAddress().String(),
				types.FeeLedger{
					FeeRecipient:   recipient,
					PlatformFeeBps: uint32(feeBps),
				},
			)

			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSweepResidual returns a CLI command handler for recovering stranded funds
func CmdSweepResidual() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep-residual [denom] [recipient]",
		Short: "Sweep stranded module funds to a recipient (authority only)",
		Long: `Send the module account's full balance of one denom to a recipient.
Settled swaps leave the account empty, so anything swept here arrived by
accident.

Example:
  $ vortexd tx swaprouter sweep-residual uatom vtx1recovery... --from authority`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := types.NewMsgSweepResidual(
				clientCtx.GetFromAddress().String(),
				args[0],
				args[1],
			)

			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// readBase64Flag decodes a base64-encoded flag value, empty meaning unset.
func readBase64Flag(cmd *cobra.Command, name string) ([]byte, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	bz, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return bz, nil
}
