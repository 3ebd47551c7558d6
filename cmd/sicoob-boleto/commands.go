package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sicoobslip/internal/model"
	"sicoobslip/internal/sicoob"
)

func newIssueCmd(c *cli) *cobra.Command {
	var agreement model.Agreement

	cmd := &cobra.Command{
		Use:     "issue",
		Short:   "Issue a slip: derive the document identifier and the free field",
		Example: `  sicoob-boleto issue --branch 85 --member-code 841 --sequence 777`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slip, err := c.svc.Issue(cmd.Context(), agreement)
			if err != nil {
				return err
			}
			return writeJSON(c.stdout, slip)
		},
	}

	cmd.Flags().IntVar(&agreement.Branch, "branch", c.cfg.Agreement.Branch, "branch number (up to 4 digits)")
	cmd.Flags().IntVar(&agreement.MemberCode, "member-code", c.cfg.Agreement.MemberCode, "cooperating-member code (up to 5 digits)")
	cmd.Flags().IntVar(&agreement.Sequence, "sequence", 0, "document sequence number (up to 7 digits)")
	_ = cmd.MarkFlagRequired("sequence")
	return cmd
}

func newDecodeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <free-field>",
		Short: "Split a free field into its parts without checking digits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := c.svc.Parse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(c.stdout, fields)
		},
	}
}

type verifyResult struct {
	FreeField string `json:"free_field"`
	Valid     bool   `json:"valid"`
}

func newVerifyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <free-field>",
		Short: "Check the layout and both check digits of a free field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.svc.Verify(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeJSON(c.stdout, verifyResult{FreeField: args[0], Valid: true})
		},
	}
}

type identifierResult struct {
	Identifier string `json:"identifier"`
	Display    string `json:"display"`
}

func newIdentifierCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "identifier <sequence>",
		Short: "Print the document identifier (nosso número) for a sequence number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: sequence %q is not a number", errInvalidArgument, args[0])
			}
			id, err := sicoob.GenerateIdentifier(seq)
			if err != nil {
				return err
			}
			return writeJSON(c.stdout, identifierResult{Identifier: id.String(), Display: id.Display()})
		},
	}
}
