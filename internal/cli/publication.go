package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smnsjas/go-coreservice/publication"
	"github.com/smnsjas/go-coreservice/session"
)

// fieldFlags binds the publication field flags shared by create and update.
type fieldFlags struct {
	title               string
	key                 string
	pubPath             string
	pubURL              string
	mmPath              string
	mmURL               string
	parents             []string
	businessProcessType string
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Publication title")
	cmd.Flags().StringVar(&f.key, "key", "", "Publication key (defaults to the title)")
	cmd.Flags().StringVar(&f.pubPath, "path", "", "Publication path")
	cmd.Flags().StringVar(&f.pubURL, "url", "", "Publication URL")
	cmd.Flags().StringVar(&f.mmPath, "mm-path", "", "Multimedia path")
	cmd.Flags().StringVar(&f.mmURL, "mm-url", "", "Multimedia URL")
	cmd.Flags().StringArrayVar(&f.parents, "parent", nil, "Parent publication (title or TCM URI, repeatable; replaces existing parents)")
	cmd.Flags().StringVar(&f.businessProcessType, "business-process-type", "", "Business process type TCM URI (Web 8.1+)")
}

func (f *fieldFlags) fields() publication.Fields {
	return publication.Fields{
		Title:               f.title,
		Key:                 f.key,
		PublicationPath:     f.pubPath,
		PublicationURL:      f.pubURL,
		MultimediaPath:      f.mmPath,
		MultimediaURL:       f.mmURL,
		Parents:             f.parents,
		BusinessProcessType: f.businessProcessType,
	}
}

func publicationCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "publication",
		Aliases: []string{"pub"},
		Short:   "List, read, create and update publications",
	}
	cmd.AddCommand(publicationListCmd(opts))
	cmd.AddCommand(publicationGetCmd(opts))
	cmd.AddCommand(publicationCreateCmd(opts))
	cmd.AddCommand(publicationUpdateCmd(opts))
	return cmd
}

func publicationListCmd(opts *options) *cobra.Command {
	var typeFilter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List publications",
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

			pubs, err := s.GetPublications(cmd.Context(), typeFilter)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(pubs)
			}
			if len(pubs) == 0 {
				fmt.Println("No publications found")
				return nil
			}
			fmt.Printf("\n%-14s %-30s %s\n", "ID", "TITLE", "KEY")
			fmt.Println(strings.Repeat("─", 64))
			for _, p := range pubs {
				fmt.Printf("%-14s %-30s %s\n", p.ID, p.Title, p.Key)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "", "Filter by publication type name (e.g. Web)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func publicationGetCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <tcm-uri>",
		Short: "Show one publication",
		Args:  cobra.ExactArgs(1),
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

			rec, err := s.GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(rec)
			}
			printRecord(rec)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func publicationCreateCmd(opts *options) *cobra.Command {
	var flags fieldFlags
	var yes bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new publication",
		Long: `Create a new publication.

Asks for confirmation before the remote call (unless --yes). Parent
entries that do not resolve are reported and skipped; the remaining
fields are still submitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.title == "" {
				return fmt.Errorf("--title is required")
			}

			cfg, err := opts.sessionConfig(confirmFunc(yes))
			if err != nil {
				return err
			}
			s, err := session.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, lookups, err := s.CreatePublication(cmd.Context(), flags.fields())
			printLookupErrors(lookups)
			if err != nil {
				return err
			}

			color.Green("✓ Created publication %s: %s", rec.ID, rec.Title)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func publicationUpdateCmd(opts *options) *cobra.Command {
	var flags fieldFlags
	var yes bool

	cmd := &cobra.Command{
		Use:   "update <tcm-uri>",
		Short: "Update an existing publication",
		Long: `Update an existing publication.

Only the supplied fields change. A supplied --parent list replaces the
existing parent links entirely. Asks for confirmation before the remote
call (unless --yes).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.sessionConfig(confirmFunc(yes))
			if err != nil {
				return err
			}
			s, err := session.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, lookups, err := s.UpdatePublication(cmd.Context(), args[0], flags.fields())
			printLookupErrors(lookups)
			if err != nil {
				return err
			}

			color.Green("✓ Updated publication %s: %s", rec.ID, rec.Title)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// printRecord renders one publication in long form.
func printRecord(rec *publication.Record) {
	bold := color.New(color.Bold)
	bold.Printf("%s", rec.Title)
	fmt.Printf("  (%s)\n", rec.ID)
	fmt.Printf("  Key:              %s\n", rec.Key)
	if rec.PublicationPath != "" {
		fmt.Printf("  Path:             %s\n", rec.PublicationPath)
	}
	if rec.PublicationURL != "" {
		fmt.Printf("  URL:              %s\n", rec.PublicationURL)
	}
	if rec.MultimediaPath != "" {
		fmt.Printf("  Multimedia path:  %s\n", rec.MultimediaPath)
	}
	if rec.MultimediaURL != "" {
		fmt.Printf("  Multimedia URL:   %s\n", rec.MultimediaURL)
	}
	if len(rec.Parents) > 0 {
		fmt.Printf("  Parents:          %s\n", strings.Join(rec.Parents, ", "))
	}
	if rec.BusinessProcessType != "" {
		fmt.Printf("  Business process: %s\n", rec.BusinessProcessType)
	}
}

// printLookupErrors reports non-fatal merge lookup failures. They do not
// change the exit code.
func printLookupErrors(lookups []publication.LookupError) {
	for _, le := range lookups {
		color.Yellow("warning: %v", le)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
