package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ecogenius/internal/council"
)

func newCouncilCommand(ctx *commandContext) *cobra.Command {
	var (
		list    bool
		id      string
		special bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "council [address]",
		Short: "Find your council and its bin and hard waste rules",
		Annotations: map[string]string{
			skipConfigLoad: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				return printCouncils(cmd, jsonOut)
			}
			if special {
				guide := council.SpecialWasteGuide()
				if jsonOut {
					return writeJSON(cmd, guide)
				}
				printSpecialWaste(cmd, guide)
				return nil
			}

			councilID := strings.TrimSpace(id)
			if councilID == "" {
				address := strings.Join(args, " ")
				if strings.TrimSpace(address) == "" {
					return errors.New("provide an address, --id or --list")
				}
				match, err := council.FindByAddress(address)
				if err != nil {
					return err
				}
				if !jsonOut {
					fmt.Fprintf(out, "Matched %s via %q (%s confidence)\n\n", match.Council.Name, match.Suburb, match.Confidence)
				}
				councilID = match.Council.ID
			}

			info, err := council.Lookup(councilID)
			if err != nil {
				if errors.Is(err, council.ErrUnknownCouncil) {
					return fmt.Errorf("unknown council %q; run 'ecogenius council --list'", councilID)
				}
				return err
			}
			if jsonOut {
				return writeJSON(cmd, info)
			}
			printCouncilInfo(cmd, info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List supported councils")
	cmd.Flags().StringVar(&id, "id", "", "Show a council by id instead of matching an address")
	cmd.Flags().BoolVar(&special, "special-waste", false, "Show the special waste drop-off guide")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func printCouncils(cmd *cobra.Command, jsonOut bool) error {
	all := council.All()
	if jsonOut {
		return writeJSON(cmd, all)
	}
	rows := make([][]string, 0, len(all))
	for _, c := range all {
		rows = append(rows, []string{c.ID, c.Logo + " " + c.Name, strings.Join(c.Keywords, ", ")})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
		title:      "Supported councils",
		headers:    []string{"ID", "Council", "Suburbs"},
		rows:       rows,
		wrapColumn: 3,
		maxWidth:   50,
	}))
	return nil
}

func printCouncilInfo(cmd *cobra.Command, info council.Info) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n%s\n\n", info.Council.Logo, info.Council.Name, info.Council.Description)

	binRows := make([][]string, 0, len(info.Bins))
	for _, b := range info.Bins {
		binRows = append(binRows, []string{b.Icon + " " + b.Name, strings.Join(b.Accepted, ", "), strings.Join(b.Rejected, ", ")})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		title:      "Kerbside bins",
		headers:    []string{"Bin", "Accepted", "Not accepted"},
		rows:       binRows,
		wrapColumn: 2,
		maxWidth:   50,
	}))

	bulky := info.BulkyWaste
	booking := "Not required"
	if bulky.BookingRequired {
		booking = "Required"
		if bulky.BookingURL != "" {
			booking += " (" + bulky.BookingURL + ")"
		}
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		title:   "Hard waste",
		headers: []string{"Detail", "Value"},
		rows: [][]string{
			{"Booking", booking},
			{"Cost", bulky.Cost},
			{"Limits", bulky.ItemLimits},
			{"How", bulky.Instructions},
			{"Accepted", strings.Join(bulky.Accepted, ", ")},
			{"Not accepted", strings.Join(bulky.Rejected, ", ")},
		},
		wrapColumn: 2,
		maxWidth:   60,
	}))

	contact := info.Contact
	fmt.Fprintln(out, renderTable(tableSpec{
		title:   "Contact",
		headers: []string{"Detail", "Value"},
		rows: [][]string{
			{"Phone", contact.Phone},
			{"Email", contact.Email},
			{"Website", contact.Website},
			{"Hours", contact.Hours},
		},
	}))
}

func printSpecialWaste(cmd *cobra.Command, guide []council.SpecialWaste) {
	rows := make([][]string, 0, len(guide))
	for _, s := range guide {
		rows = append(rows, []string{s.Title, strings.Join(s.Items, ", "), strings.Join(s.Locations, ", ")})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
		title:      "Special waste drop-off",
		headers:    []string{"Stream", "Items", "Where"},
		rows:       rows,
		wrapColumn: 2,
		maxWidth:   50,
	}))
}
