package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-boom/source-manager/internal/core/domain"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage shared source records",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list <region>",
	Short: "List the source records of a region",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesList,
}

var (
	addTitle     string
	addAuthor    string
	addPublisher string
	addYear      string
	addURL       string
	addNotes     string
	addScope     string
)

var sourcesAddCmd = &cobra.Command{
	Use:   "add <region>",
	Short: "Add a source record to a region",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesAdd,
}

var (
	updateTitle     string
	updateAuthor    string
	updatePublisher string
	updateYear      string
	updateURL       string
	updateNotes     string
)

var sourcesUpdateCmd = &cobra.Command{
	Use:   "update <region> <source-id>",
	Short: "Update fields of an existing source record",
	Long: `Updates only the fields whose flags are given; everything else is
left untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: runSourcesUpdate,
}

func init() {
	sourcesAddCmd.Flags().StringVar(&addTitle, "title", "", "citation title (required)")
	sourcesAddCmd.Flags().StringVar(&addAuthor, "author", "", "citation author")
	sourcesAddCmd.Flags().StringVar(&addPublisher, "publisher", "", "publishing organisation")
	sourcesAddCmd.Flags().StringVar(&addYear, "year", "", "publication year")
	sourcesAddCmd.Flags().StringVar(&addURL, "url", "", "citation location")
	sourcesAddCmd.Flags().StringVar(&addNotes, "notes", "", "usage notes")
	sourcesAddCmd.Flags().StringVar(&addScope, "scope", string(domain.ScopeRegional),
		"sharing scope: regional, global or project")
	_ = sourcesAddCmd.MarkFlagRequired("title")

	sourcesUpdateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	sourcesUpdateCmd.Flags().StringVar(&updateAuthor, "author", "", "new author")
	sourcesUpdateCmd.Flags().StringVar(&updatePublisher, "publisher", "", "new publisher")
	sourcesUpdateCmd.Flags().StringVar(&updateYear, "year", "", "new year")
	sourcesUpdateCmd.Flags().StringVar(&updateURL, "url", "", "new location")
	sourcesUpdateCmd.Flags().StringVar(&updateNotes, "notes", "", "new usage notes")

	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesUpdateCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	region, sources, err := sourceService.ListSources(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Region %s: %d source(s)\n", region, len(sources))
	for _, s := range sources {
		cmd.Printf("  %s  %s", s.ID, s.Title)
		if s.Author != "" {
			cmd.Printf(" — %s", s.Author)
		}
		if s.Year != "" {
			cmd.Printf(" (%s)", s.Year)
		}
		cmd.Println()
	}
	return nil
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	scope := domain.SourceScope(addScope)
	switch scope {
	case domain.ScopeRegional, domain.ScopeGlobal, domain.ScopeProject:
	default:
		return fmt.Errorf("unknown scope %q", addScope)
	}

	id, err := sourceService.AddSource(cmd.Context(), args[0], domain.SourceRecord{
		Title:     addTitle,
		Author:    addAuthor,
		Publisher: addPublisher,
		Year:      addYear,
		URL:       addURL,
		Notes:     addNotes,
		Scope:     scope,
	})
	if err != nil {
		return fmt.Errorf("add source: %w", err)
	}

	cmd.Printf("Added source %s to region %s\n", id, args[0])
	return nil
}

func runSourcesUpdate(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	var patch domain.SourcePatch
	if cmd.Flags().Changed("title") {
		patch.Title = &updateTitle
	}
	if cmd.Flags().Changed("author") {
		patch.Author = &updateAuthor
	}
	if cmd.Flags().Changed("publisher") {
		patch.Publisher = &updatePublisher
	}
	if cmd.Flags().Changed("year") {
		patch.Year = &updateYear
	}
	if cmd.Flags().Changed("url") {
		patch.URL = &updateURL
	}
	if cmd.Flags().Changed("notes") {
		patch.Notes = &updateNotes
	}

	ok, err := sourceService.UpdateSource(cmd.Context(), args[0], args[1], patch)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	if !ok {
		return fmt.Errorf("source %s not found in region %s", args[1], args[0])
	}

	cmd.Printf("Updated source %s in region %s\n", args[1], args[0])
	return nil
}
