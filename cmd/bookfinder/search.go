package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/kerbaras/bookfinder/pkg/app"
	"github.com/kerbaras/bookfinder/pkg/covers"
	"github.com/kerbaras/bookfinder/pkg/data"
	"github.com/kerbaras/bookfinder/pkg/logger"
)

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "Search for books",
	Long:  "Search Open Library by title and display the results in a table",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		source := app.NewSource(cfg)

		defer logger.Track(cmd.Context(), "search "+query)()
		results, err := source.Search(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), resultsTable(results, app.NewResolver(cfg)))
		return nil
	},
}

func resultsTable(books []data.Book, resolver covers.Resolver) *table.Table {
	var (
		purple = lipgloss.Color("99")

		headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		}).
		Headers("#", "Title", "Author", "Year", "Cover")

	for i, book := range books {
		t.Row(
			fmt.Sprintf("%d", i+1),
			ansi.Truncate(book.Title, 48, "…"),
			ansi.Truncate(book.Authors(), 30, "…"),
			book.Published(),
			resolver.URL(book, covers.Grid),
		)
	}
	return t
}
