package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ecogenius/internal/bins"
	"ecogenius/internal/search"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		category string
		jsonOut  bool
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Look up how to dispose of an item",
		Long: "Search the built-in recycling guide. Items the guide does not know are\n" +
			"answered by the classification model when an API key is configured.\n" +
			"With --watch, terms are read from stdin one per line and searched once\n" +
			"typing pauses.",
		RunE: func(cmd *cobra.Command, args []string) error {
			guide := ctx.guide()
			if watch {
				return watchSearch(cmd, guide, category)
			}
			term := strings.Join(args, " ")
			if strings.TrimSpace(term) == "" {
				return printItems(cmd, "Popular items", search.PopularItems(), jsonOut)
			}
			results, err := guide.Search(cmd.Context(), term, category)
			if err != nil {
				var fbErr *search.FallbackError
				if errors.As(err, &fbErr) {
					if suggestions := guide.Suggest(term, 3); len(suggestions) > 0 {
						names := make([]string, len(suggestions))
						for i, s := range suggestions {
							names[i] = s.Name
						}
						fmt.Fprintf(cmd.ErrOrStderr(), "Did you mean: %s?\n", strings.Join(names, ", "))
					}
					return errors.New(fbErr.UserMessage())
				}
				return err
			}
			if jsonOut {
				return writeJSON(cmd, results)
			}
			title := fmt.Sprintf("Results for %q", results.Term)
			if results.AI {
				title += " (Eco-AI)"
			}
			return printItems(cmd, title, results.Items, false)
		},
	}

	cmd.Flags().StringVar(&category, "category", search.AllCategories,
		"Restrict to a category ("+strings.Join(search.FilterCategories(), ", ")+")")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "Read terms from stdin and search as you type")
	return cmd
}

func printItems(cmd *cobra.Command, title string, items []search.Item, jsonOut bool) error {
	if jsonOut {
		return writeJSON(cmd, items)
	}
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No items found")
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		bin := string(item.BinType)
		if info, ok := bins.Lookup(item.BinType); ok {
			bin = info.Icon + " " + info.Name
		}
		rows = append(rows, []string{item.Category.Emoji() + " " + item.Name, bin, item.Tip})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		title:      title,
		headers:    []string{"Item", "Bin", "Tip"},
		rows:       rows,
		wrapColumn: 3,
		maxWidth:   60,
	}))
	return nil
}

func watchSearch(cmd *cobra.Command, guide *search.Guide, category string) error {
	out := cmd.OutOrStdout()
	deliveries := make(chan search.Outcome, 1)
	debouncer := search.NewDebouncer(guide, search.DefaultDebounce, func(o search.Outcome) {
		select {
		case deliveries <- o:
		default:
		}
	})
	defer debouncer.Stop()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	pending := false
	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case line, ok := <-lines:
			if !ok {
				if pending {
					select {
					case outcome := <-deliveries:
						printOutcome(cmd, out, outcome)
					case <-cmd.Context().Done():
					}
				}
				if err := <-readErr; err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				return nil
			}
			debouncer.Submit(cmd.Context(), line, category)
			pending = strings.TrimSpace(line) != ""
		case outcome := <-deliveries:
			pending = false
			printOutcome(cmd, out, outcome)
		}
	}
}

func printOutcome(cmd *cobra.Command, out io.Writer, o search.Outcome) {
	if o.Err != nil {
		var fbErr *search.FallbackError
		if errors.As(o.Err, &fbErr) {
			fmt.Fprintln(out, fbErr.UserMessage())
			return
		}
		fmt.Fprintln(out, o.Err)
		return
	}
	_ = printItems(cmd, fmt.Sprintf("Results for %q", o.Results.Term), o.Results.Items, false)
}
