package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ecogenius/internal/billboard"
)

func newBillboardCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "billboard",
		Aliases: []string{"board"},
		Short:   "Browse and post to the community billboard",
	}
	cmd.AddCommand(newBillboardListCommand(ctx))
	cmd.AddCommand(newBillboardShowCommand(ctx))
	cmd.AddCommand(newBillboardPostCommand(ctx))
	cmd.AddCommand(newBillboardReplyCommand(ctx))
	return cmd
}

// withBoard opens the backend for the duration of fn.
func withBoard(cmd *cobra.Command, ctx *commandContext, fn func(*billboard.Board) error) error {
	backend, closeFn, err := ctx.boardBackend(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx.board(backend))
}

func newBillboardListCommand(ctx *commandContext) *cobra.Command {
	var (
		categories []string
		suburb     string
		query      string
		jsonOut    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := billboard.Filter{Suburb: suburb, Search: query}
			for _, raw := range categories {
				for _, part := range strings.Split(raw, ",") {
					if strings.TrimSpace(part) != "" {
						filter.Categories = append(filter.Categories, billboard.ParseCategory(part))
					}
				}
			}
			return withBoard(cmd, ctx, func(board *billboard.Board) error {
				posts, err := board.Posts(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, posts)
				}
				out := cmd.OutOrStdout()
				if len(posts) == 0 {
					fmt.Fprintln(out, "No posts found")
					return nil
				}
				rows := make([][]string, 0, len(posts))
				for _, p := range posts {
					rows = append(rows, []string{
						strconv.FormatInt(p.ID, 10),
						p.Title,
						string(p.Category),
						p.Location(),
						p.Nickname,
						formatPosted(p.CreatedAt),
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					title:      "Community billboard",
					headers:    []string{"ID", "Title", "Category", "Location", "By", "Posted"},
					rows:       rows,
					aligns:     []columnAlignment{alignRight},
					wrapColumn: 2,
					maxWidth:   40,
				}))
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Filter by category (Appliance, Furniture, Others)")
	cmd.Flags().StringVar(&suburb, "suburb", "", "Filter by suburb")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search titles and descriptions")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print posts as JSON")
	return cmd
}

func newBillboardShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a post and its responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			return withBoard(cmd, ctx, func(board *billboard.Board) error {
				post, responses, err := board.Post(cmd.Context(), id)
				if err != nil {
					if errors.Is(err, billboard.ErrPostNotFound) {
						return fmt.Errorf("post %d not found", id)
					}
					return err
				}
				if jsonOut {
					return writeJSON(cmd, struct {
						Post      billboard.Post       `json:"post"`
						Responses []billboard.Response `json:"responses"`
					}{post, responses})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "#%d %s [%s]\n", post.ID, post.Title, post.Category)
				fmt.Fprintf(out, "Pickup: %s\n", post.Location())
				fmt.Fprintf(out, "Posted by %s, %s\n", post.Nickname, formatPosted(post.CreatedAt))
				if post.Description != "" {
					fmt.Fprintf(out, "\n%s\n", post.Description)
				}
				if post.ImageURL != "" {
					fmt.Fprintf(out, "Image: %s\n", post.ImageURL)
				}
				fmt.Fprintln(out)
				if len(responses) == 0 {
					fmt.Fprintln(out, "No responses yet")
					return nil
				}
				rows := make([][]string, 0, len(responses))
				for _, r := range responses {
					rows = append(rows, []string{r.Nickname, r.Content, formatPosted(r.CreatedAt)})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					title:      "Responses",
					headers:    []string{"By", "Message", "When"},
					rows:       rows,
					wrapColumn: 2,
					maxWidth:   60,
				}))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func newBillboardPostCommand(ctx *commandContext) *cobra.Command {
	var input billboard.NewPost
	var category string
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Offer an item on the billboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Category = billboard.Category(category)
			if strings.TrimSpace(input.Nickname) == "" {
				nickname, err := generateNickname()
				if err != nil {
					return err
				}
				input.Nickname = nickname
			}
			return withBoard(cmd, ctx, func(board *billboard.Board) error {
				post, err := board.Submit(cmd.Context(), input)
				if err != nil {
					return boardError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Posted #%d %q as %s\n", post.ID, post.Title, post.Nickname)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input.Title, "title", "", "What you are giving away")
	cmd.Flags().StringVar(&input.Description, "description", "", "Condition, size and pickup notes")
	cmd.Flags().StringVar(&input.ImageURL, "image-url", "", "Hosted photo of the item")
	cmd.Flags().StringVar(&input.StreetName, "street", "", "Pickup street")
	cmd.Flags().StringVar(&input.Suburb, "suburb", "", "Pickup suburb")
	cmd.Flags().StringVar(&input.Postcode, "postcode", "", "Pickup postcode")
	cmd.Flags().StringVar(&category, "category", string(billboard.CategoryOthers), "Appliance, Furniture or Others")
	cmd.Flags().StringVar(&input.Nickname, "nickname", "", "Display name (generated when empty)")
	return cmd
}

func newBillboardReplyCommand(ctx *commandContext) *cobra.Command {
	var nickname string
	cmd := &cobra.Command{
		Use:   "reply <id> <message>",
		Short: "Respond to a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(nickname) == "" {
				if nickname, err = generateNickname(); err != nil {
					return err
				}
			}
			input := billboard.NewResponse{
				PostID:   id,
				Nickname: nickname,
				Content:  strings.Join(args[1:], " "),
			}
			return withBoard(cmd, ctx, func(board *billboard.Board) error {
				if _, err := board.Reply(cmd.Context(), input); err != nil {
					return boardError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Replied to #%d as %s\n", id, nickname)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&nickname, "nickname", "", "Display name (generated when empty)")
	return cmd
}

func generateNickname() (string, error) {
	gen, err := billboard.NewAliasGenerator()
	if err != nil {
		return "", fmt.Errorf("load nickname list: %w", err)
	}
	return gen.Generate(), nil
}

func parsePostID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(raw), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", raw)
	}
	return id, nil
}

// boardError flattens validation problems into one readable line.
func boardError(err error) error {
	var verr *billboard.ValidationError
	if errors.As(err, &verr) {
		msgs := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			msgs = append(msgs, f.Message)
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	if errors.Is(err, billboard.ErrCooldown) {
		return errors.New(billboard.CooldownMessage)
	}
	if errors.Is(err, billboard.ErrPostNotFound) {
		return errors.New("post not found")
	}
	return err
}

func formatPosted(ts billboard.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(time.DateTime)
}
