package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smnsjas/go-coreservice/session"
	"github.com/smnsjas/go-coreservice/tcm"
)

func uriCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uri",
		Short: "Work with TCM URIs",
	}
	cmd.AddCommand(uriTranslateCmd(opts))
	cmd.AddCommand(uriParseCmd())
	return cmd
}

func uriTranslateCmd(opts *options) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "translate <tcm-uri> <target-publication>",
		Short: "Rewrite a URI into another publication's context",
		Long: `Rewrite a URI into another publication's context.

The target may be a bare publication id or a publication TCM URI. When
an endpoint is configured the translation is performed by the server;
otherwise it is computed locally.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, target := args[0], args[1]

			if opts.endpoint == "" {
				out, err := tcm.RewritePublication(id, target, version)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}

			cfg, err := opts.sessionConfig(nil)
			if err != nil {
				return err
			}
			s, err := session.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			out, err := s.TranslateURI(cmd.Context(), id, target, version)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "Version suffix for the rewritten URI (0 preserves the original form)")
	return cmd
}

func uriParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <tcm-uri>",
		Short: "Break a TCM URI into its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := tcm.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Publication:  %d\n", u.PublicationID())
			fmt.Printf("Item:         %d\n", u.ItemID())
			if t, ok := u.ItemType(); ok {
				fmt.Printf("Item type:    %d\n", t)
			}
			if v, ok := u.Version(); ok {
				fmt.Printf("Version:      %d\n", v)
			}
			return nil
		},
	}
}
