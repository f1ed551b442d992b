package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"accessexplorer/internal/timelock/format"
)

func newChainsCmd(load Loader, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List supported chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, load, func(b *Backend) error {
				list := b.Chains.All()
				if flags.json {
					return printJSON(cmd.OutOrStdout(), list)
				}
				rows := make([][]string, 0, len(list))
				for _, c := range list {
					rows = append(rows, []string{fmt.Sprint(c.ID), c.Name, c.Symbol, yesNo(c.HasTimelock())})
				}
				return printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "SYMBOL", "TIMELOCK"}, rows)
			})
		},
	}
}

func newSignersCmd(load Loader, flags *globalFlags) *cobra.Command {
	var history bool
	cmd := &cobra.Command{
		Use:   "signers",
		Short: "List the signers of a timelock controller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAddress(flags); err != nil {
				return err
			}
			return withBackend(cmd, load, func(b *Backend) error {
				signers, err := b.Explorer.Signers(cmd.Context(), flags.chainID, flags.address, history)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), signers)
				}
				rows := make([][]string, 0, len(signers))
				for _, s := range signers {
					roles := make([]string, 0, len(s.Roles))
					for _, r := range s.Roles {
						roles = append(roles, format.RoleDisplayName(r))
					}
					revoked := "-"
					if s.RevokedAt != nil {
						revoked = format.Timestamp(*s.RevokedAt)
					}
					rows = append(rows, []string{s.Address, joinOrDash(roles), format.SignerStatus(s), format.Timestamp(s.GrantedAt), revoked})
				}
				return printTable(cmd.OutOrStdout(), []string{"ADDRESS", "ROLES", "STATUS", "GRANTED", "REVOKED"}, rows)
			})
		},
	}
	cmd.Flags().BoolVar(&history, "history", false, "include accounts whose roles were all revoked")
	return cmd
}

func newOperationsCmd(load Loader, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "Show the operation timeline of a timelock controller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAddress(flags); err != nil {
				return err
			}
			return withBackend(cmd, load, func(b *Backend) error {
				chain, err := b.Chains.Get(flags.chainID)
				if err != nil {
					return err
				}
				ops, err := b.Explorer.Operations(cmd.Context(), flags.chainID, flags.address)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), ops)
				}
				rows := make([][]string, 0, len(ops))
				for _, op := range ops {
					detail := format.Truncate(op.Target, 12)
					if op.Role != "" {
						detail = format.RoleDisplayName(op.Role) + " " + format.Truncate(op.Account, 12)
					}
					value := "-"
					if op.Value != "" {
						value = format.Value(op.Value, chain.Symbol, chain.Decimals)
					}
					rows = append(rows, []string{
						format.Timestamp(op.BlockTimestamp),
						format.OperationLabel(op.Type),
						format.Truncate(op.OperationID, 12),
						detail,
						value,
						format.Truncate(op.TransactionHash, 12),
					})
				}
				return printTable(cmd.OutOrStdout(), []string{"TIME", "TYPE", "OPERATION", "DETAIL", "VALUE", "TX"}, rows)
			})
		},
	}
}

func newInspectCmd(load Loader, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Inspect an address and summarize its timelock state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAddress(flags); err != nil {
				return err
			}
			return withBackend(cmd, load, func(b *Backend) error {
				o, err := b.Explorer.Overview(cmd.Context(), flags.chainID, flags.address)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), o)
				}
				c := o.Controller
				rows := [][]string{
					{"address", c.Address},
					{"timelock controller", yesNo(c.IsTimelockController)},
				}
				if c.IsTimelockController {
					rows = append(rows,
						[]string{"min delay", format.Delay(c.MinDelay)},
						[]string{"signers", fmt.Sprint(len(o.Signers))},
						[]string{"operations", fmt.Sprint(len(o.Operations))},
					)
				}
				for _, call := range c.Calls {
					status := "ok"
					if !call.OK {
						status = "failed: " + call.Error
					}
					rows = append(rows, []string{call.Function, status})
				}
				return printTable(cmd.OutOrStdout(), []string{"FIELD", "VALUE"}, rows)
			})
		},
	}
}

func newTokenCmd(load Loader) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the favorites API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}
			return withBackend(cmd, load, func(b *Backend) error {
				token, err := b.Tokens.GenerateToken(subject, ttl)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "owner of the favorites, usually a wallet address")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
