package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"hackerstories/internal/domain"
	"hackerstories/internal/fetch"
	"hackerstories/internal/query"
	"hackerstories/internal/results"
	"hackerstories/internal/store"
	"hackerstories/internal/ui/logic"
)

// Output formats of the search command
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type searchOptions struct {
	page    int
	sort    string
	reverse bool
	format  string
}

// storyRecord is the machine-readable form of a story
type storyRecord struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	URL       string    `json:"url,omitempty" yaml:"url,omitempty"`
	Author    string    `json:"author" yaml:"author"`
	Comments  int       `json:"comments" yaml:"comments"`
	Points    int       `json:"points" yaml:"points"`
	CreatedAt time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}

type searchRecord struct {
	Term     string        `json:"term" yaml:"term"`
	Page     int           `json:"page" yaml:"page"`
	Comments int           `json:"comments" yaml:"comments"`
	Stories  []storyRecord `json:"stories" yaml:"stories"`
}

func newSearchCommand(v *viper.Viper, version string) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search once and print the results",
		Long: `Search runs a single query against the story index and prints the stories
instead of opening the interactive list. Use --page to load further pages the
way scrolling to the end of the list does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, v, version, strings.TrimSpace(args[0]), opts)
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 0, "load pages 0 through N")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort by title, author, comments or points")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "reverse the sort order")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table, json or yaml")
	return cmd
}

func runSearch(cmd *cobra.Command, v *viper.Viper, version, term string, opts *searchOptions) error {
	if term == "" {
		return fmt.Errorf("search term must not be empty")
	}
	if opts.page < 0 {
		return fmt.Errorf("page must not be negative")
	}
	key, err := logic.ParseSortKey(opts.sort)
	if err != nil {
		return err
	}
	switch opts.format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	_, cfg, err := loadConfig(cmd, v)
	if err != nil {
		return err
	}
	logger, logCloser := openLog(cfg)
	defer logCloser.Close()

	// One-shot searches never replace the remembered term
	orch, err := fetch.New(fetch.Options{
		Fetcher: newSearchClient(cfg, version, logger),
		Term:    store.NewSemiPersistent(store.NewMemoryStore(), cfg.Store.Key, term, logger),
		Builder: query.New(cfg.API.BaseURL),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	req := orch.Submit(term)
	for req != nil {
		resp := orch.Execute(ctx, *req)
		orch.Complete(resp)
		if resp.Err != nil {
			return fmt.Errorf("search %q page %d: %w", term, req.Page, resp.Err)
		}
		if orch.State().Page >= opts.page {
			break
		}
		req = orch.SentinelVisible()
	}

	s := orch.State()
	sorted := logic.SortState{Key: key, Reverse: opts.reverse}.Sort(s.Items)
	record := searchRecord{
		Term:     term,
		Page:     s.Page,
		Comments: results.SumComments(s.Items),
		Stories:  make([]storyRecord, 0, len(sorted)),
	}
	for _, story := range sorted {
		record.Stories = append(record.Stories, newStoryRecord(story))
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(record); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeTable(out, record)
	}
}

func newStoryRecord(s domain.Story) storyRecord {
	return storyRecord{
		ID:        s.ID,
		Title:     s.Title,
		URL:       s.URL,
		Author:    s.Author,
		Comments:  s.CommentCount,
		Points:    s.Points,
		CreatedAt: s.CreatedAt,
	}
}

// writeTable prints an unstyled, borderless table so the output stays
// easy to grep and cut
func writeTable(out io.Writer, record searchRecord) error {
	rows := make([][]string, 0, len(record.Stories))
	for _, s := range record.Stories {
		rows = append(rows, []string{s.Title, s.Author, strconv.Itoa(s.Comments), strconv.Itoa(s.Points), s.URL})
	}

	cell := lipgloss.NewStyle().PaddingRight(1)
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(true).
		StyleFunc(func(row, col int) lipgloss.Style { return cell }).
		Headers("TITLE", "AUTHOR", "COMMENTS", "POINTS", "URL").
		Rows(rows...)

	if _, err := fmt.Fprintln(out, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d stories with %d comments for %q\n", len(record.Stories), record.Comments, record.Term)
	return err
}
