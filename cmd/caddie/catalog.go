package main

import (
	"strconv"

	"caddie/internal/catalog"
	"caddie/internal/transport"
	"caddie/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the wizard's option sets",
		Long: `Print every option set the shot wizard offers, laid out in the rows
the chat keyboards use. With --summary only the set sizes are shown.`,
		Run: runCatalog,
	}
	catalogCmd.Flags().Bool("summary", false, "One line per option set instead of the full layout")
	rootCmd.AddCommand(catalogCmd)
}

// buildCatalog applies the configured glyph override to the stock set.
func buildCatalog() *catalog.Catalog {
	g := catalog.DefaultGlyphs()
	if v := viper.GetString("glyphs.check"); v != "" {
		g.Check = v
	}
	return catalog.New(g)
}

func runCatalog(cmd *cobra.Command, args []string) {
	cat := buildCatalog()
	sets := []catalog.OptionSet{
		cat.Modes, cat.Lies, cat.Clubs, cat.ShotTypes, cat.PuttDistances,
		cat.ResultsSwing, cat.ResultsPutt, cat.ContactsSwing, cat.ContactsPutt,
		cat.Plans, cat.Lags,
	}

	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		rows := make([][]string, 0, len(sets))
		for _, s := range sets {
			rows = append(rows, []string{s.Name(), strconv.Itoa(s.Len()), strconv.Itoa(s.Columns())})
		}
		cmd.Print(ui.Table([]string{"SET", "OPTIONS", "COLUMNS"}, rows))
		return
	}

	for _, s := range sets {
		cmd.Println(ui.Title(s.Name()))
		cmd.Print(ui.OptionGrid(transport.Chunk(s.Values(), s.Columns()), nil))
		cmd.Println()
	}
}
