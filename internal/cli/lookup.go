package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cardsearch/internal/cards"
	"cardsearch/internal/search"
	"cardsearch/internal/widget"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	lookupMode   string
	lookupSingle bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <term>",
	Short: "Search cards from the terminal",
	Long: `Runs one search against the card database and prints every match.
--mode picks the criterion: oneCard (exact name), similarCard (name
contains), archetype, or all for no filter.`,
	Args: cobra.ArbitraryArgs,
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupMode, "mode", "m", "", "search mode: oneCard, similarCard, archetype or all (default from config)")
	lookupCmd.Flags().BoolVar(&lookupSingle, "single", false, "show only the first match")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := cards.NewClient(cfg.ClientOptions())
	if err != nil {
		return fmt.Errorf("creating card client: %w", err)
	}

	display := cfg.Display()
	if lookupSingle {
		display = widget.DisplaySingle
	}

	req := search.NewRequest(strings.Join(args, " "), lookupMode, cmd.Flags().Changed("mode"), cfg.DefaultSearchMode())

	outcome := lookup(cmd.Context(), cmd.OutOrStdout(), client, cfg.Widget.Messages, display, req)
	if outcome.State == search.StateFailed {
		return fmt.Errorf("search failed")
	}
	return nil
}

// lookup runs one search and prints what the widget would show
func lookup(ctx context.Context, out io.Writer, fetcher search.Fetcher, messages search.Messages, display widget.DisplayMode, req search.Request) search.Outcome {
	controller := search.NewController(fetcher, newTerminalSurface(out, display), messages)
	return controller.Submit(ctx, req)
}

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Italic(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	nameStyle  = lipgloss.NewStyle().Bold(true)
	urlStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cardStyle  = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// terminalNotifier prints every notification. Clearing only resets the
// slot since printed lines stay in the scrollback.
type terminalNotifier struct {
	out io.Writer
	*widget.Notifier
}

func (n *terminalNotifier) Notify(message string, kind widget.Kind) {
	n.Notifier.Notify(message, kind)

	style := infoStyle
	if kind == widget.KindError {
		style = errorStyle
	}
	fmt.Fprintln(n.out, style.Render(message))
}

// terminalRenderer prints the cards the panel shows, one box per card
type terminalRenderer struct {
	out io.Writer
	*widget.Display
}

func (r *terminalRenderer) Render(result cards.SearchResult) {
	r.Display.Render(result)

	for _, card := range r.Display.Snapshot().Shown() {
		body := nameStyle.Render(card.Name)
		if card.HasImage() {
			body = lipgloss.JoinVertical(lipgloss.Left, body, urlStyle.Render(card.ImageURL))
		}
		fmt.Fprintln(r.out, cardStyle.Render(body))
	}
}

func newTerminalSurface(out io.Writer, mode widget.DisplayMode) search.Surface {
	return search.Surface{
		Notifier: &terminalNotifier{out: out, Notifier: widget.NewNotifier()},
		Renderer: &terminalRenderer{out: out, Display: widget.NewDisplay(mode)},
	}
}
