package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smnsjas/go-coreservice/session"
)

func bptCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bpt",
		Short: "Business process types (Web 8.1+)",
	}
	cmd.AddCommand(bptListCmd(opts))
	return cmd
}

func bptListCmd(opts *options) *cobra.Command {
	var topologyType string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List business process types for a topology type",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.sessionConfig(nil)
			if err != nil {
				return err
			}
			s, err := session.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			types, err := s.GetBusinessProcessTypes(cmd.Context(), topologyType)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(types)
			}
			if len(types) == 0 {
				fmt.Println("No business process types found")
				return nil
			}
			fmt.Printf("\n%-14s %s\n", "ID", "TITLE")
			fmt.Println(strings.Repeat("─", 50))
			for _, t := range types {
				fmt.Printf("%-14s %s\n", t.ID, t.Title)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&topologyType, "topology-type", "", "Topology type identifier")
	cmd.MarkFlagRequired("topology-type")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
