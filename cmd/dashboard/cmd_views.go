package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"treasury-dashboard/internal/indexer"
	"treasury-dashboard/internal/view"
)

var (
	listLimit   int
	listPage    int
	search      string
	actionType  string
	eventType   string
	eventProj   string
	vendorTable bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show landing stats, treasury and recent activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(newClient(cfg.PublicAPIURL))
		if err != nil {
			return err
		}
		l := svc.Landing(cmd.Context())
		if asJSON {
			return printJSON(cmd.OutOrStdout(), l)
		}

		w := newTable(cmd.OutOrStdout())
		fmt.Fprintf(w, "Transactions\t%s\n", l.Stats.Transactions)
		fmt.Fprintf(w, "Treasury addresses\t%s\n", l.Stats.TreasuryAddresses)
		fmt.Fprintf(w, "Projects\t%s\n", l.Stats.Projects)
		fmt.Fprintf(w, "Milestones\t%s\n", l.Stats.Milestones)
		fmt.Fprintf(w, "Latest block\t%s\n", l.Stats.LatestBlock)
		fmt.Fprintf(w, "Total balance\t%s ADA\n", l.Stats.TotalBalance)
		if t := l.Treasury; t != nil {
			fmt.Fprintf(w, "Treasury\t%s (%s)\n", t.Label, t.Status)
			fmt.Fprintf(w, "Script hash\t%s\n", t.ScriptHashShort)
			fmt.Fprintf(w, "Payment address\t%s\n", t.PaymentAddressShort)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		if err := printTransactions(cmd.OutOrStdout(), l.RecentTransactions); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return printProjects(cmd.OutOrStdout(), l.FeaturedProjects)
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(newClient(cfg.PublicAPIURL))
		if err != nil {
			return err
		}
		list := svc.Projects(cmd.Context(), indexer.ProjectQuery{Page: listPage, Limit: listLimit, Search: search})
		if asJSON {
			return printJSON(cmd.OutOrStdout(), list)
		}
		return printProjects(cmd.OutOrStdout(), list)
	},
}

var projectCmd = &cobra.Command{
	Use:   "project <id>",
	Short: "Show a project with its milestones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(newClient(cfg.PublicAPIURL))
		if err != nil {
			return err
		}
		p, err := svc.Project(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", view.ProjectNotFound, err)
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), p)
		}

		out := cmd.OutOrStdout()
		w := newTable(out)
		fmt.Fprintf(w, "Project\t%s (%s)\n", p.Project.Name, p.Project.ID)
		fmt.Fprintf(w, "Vendor\t%s %s\n", p.Project.VendorName, p.Project.VendorAddressShort)
		fmt.Fprintf(w, "Funded\t%s in %s\n", p.Project.FundedAt, p.Project.FundTxShort)
		fmt.Fprintf(w, "Progress\t%s (%s)\n", p.Project.ProgressLabel, p.Project.MilestonesLabel)
		fmt.Fprintf(w, "Balance\t%s ADA in %d UTxOs\n", p.Project.Balance, p.Project.UTXOCount)
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return printMilestones(out, p.Milestones)
	},
}

var txCmd = &cobra.Command{
	Use:   "tx [hash]",
	Short: "List transactions, or show one by hash",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(newClient(cfg.PublicAPIURL))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			tx, err := svc.Transaction(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", view.TransactionNotFound, err)
			}
			if asJSON {
				return printJSON(out, tx)
			}
			w := newTable(out)
			fmt.Fprintf(w, "Hash\t%s\n", tx.Hash)
			fmt.Fprintf(w, "Action\t%s\n", tx.Action)
			fmt.Fprintf(w, "Slot\t%s\n", tx.Slot)
			fmt.Fprintf(w, "Block\t%s\n", tx.Block)
			fmt.Fprintf(w, "Time\t%s (%s)\n", tx.Time, tx.Ago)
			fmt.Fprintf(w, "Amount\t%s ADA\n", tx.Amount)
			fmt.Fprintf(w, "Destination\t%s\n", tx.DestinationShort)
			fmt.Fprintf(w, "Metadata\t%s\n", tx.Metadata)
			return w.Flush()
		}

		var list view.List[view.TransactionRow]
		switch actionType {
		case "":
			list = svc.Transactions(cmd.Context(), indexer.TransactionQuery{Page: listPage, Limit: listLimit})
		default:
			// Dedicated endpoints first; other actions go through the filter.
			if _, perr := indexer.ActionPath(actionType); perr == nil {
				list, err = svc.ActionTransactions(cmd.Context(), actionType, indexer.PageQuery{Page: listPage, Limit: listLimit})
				if err != nil {
					return err
				}
			} else {
				list = svc.Transactions(cmd.Context(), indexer.TransactionQuery{Page: listPage, Limit: listLimit, ActionType: actionType})
			}
		}
		if asJSON {
			return printJSON(out, list)
		}
		return printTransactions(out, list)
	},
}

var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "List treasury addresses, or vendor contracts with --vendor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(newClient(cfg.PublicAPIURL))
		if err != nil {
			return err
		}
		table := svc.TreasuryAddresses(cmd.Context())
		if vendorTable {
			table = svc.VendorContracts(cmd.Context())
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), table)
		}

		out := cmd.OutOrStdout()
		if len(table.Items) == 0 {
			fmt.Fprintln(out, table.EmptyMessage)
			return nil
		}
		w := newTable(out)
		fmt.Fprintln(w, "ADDRESS\tBALANCE (ADA)\tUTXOS\tLATEST SLOT\tPROJECT")
		for _, a := range table.Items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", a.AddressShort, a.Balance, a.UTXOCount, a.LatestSlot, a.ProjectID)
		}
		fmt.Fprintf(w, "TOTAL\t%s\t%d\t\t\n", table.TotalBalance, table.TotalUtxos)
		return w.Flush()
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List TOM events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(newClient(cfg.PublicAPIURL))
		if err != nil {
			return err
		}
		list := svc.Events(cmd.Context(), indexer.EventQuery{
			Page:      listPage,
			Limit:     listLimit,
			Type:      eventType,
			ProjectID: eventProj,
		})
		if asJSON {
			return printJSON(cmd.OutOrStdout(), list)
		}

		out := cmd.OutOrStdout()
		if len(list.Items) == 0 {
			fmt.Fprintln(out, list.EmptyMessage)
			return nil
		}
		w := newTable(out)
		fmt.Fprintln(w, "TYPE\tPROJECT\tMILESTONE\tAMOUNT (ADA)\tTX\tWHEN")
		for _, e := range list.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", e.Type, e.ProjectName, e.MilestoneLabel, e.Amount, e.TxShort, e.Ago)
		}
		return w.Flush()
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the indexing API through API_URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := newClient(cfg.APIURL).Health(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", text)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{projectsCmd, txCmd, eventsCmd, browseCmd} {
		c.Flags().IntVar(&listLimit, "limit", 20, "Rows per page")
		c.Flags().IntVar(&listPage, "page", 0, "Page number")
	}
	projectsCmd.Flags().StringVar(&search, "search", "", "Filter projects by name")
	txCmd.Flags().StringVar(&actionType, "action", "", "Only transactions of this action type")
	eventsCmd.Flags().StringVar(&eventType, "type", "", "Only events of this type")
	eventsCmd.Flags().StringVar(&eventProj, "project", "", "Only events of this project")
	addressesCmd.Flags().BoolVar(&vendorTable, "vendor", false, "List vendor contracts instead of treasury addresses")
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

// printJSON writes v indented, in its legacy form when compat aliases are
// enabled.
func printJSON(out io.Writer, v any) error {
	if cfg.CompatAliases {
		v = view.Alias(v)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printProjects(out io.Writer, list view.List[view.ProjectCard]) error {
	if len(list.Items) == 0 {
		fmt.Fprintln(out, list.EmptyMessage)
		return nil
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tVENDOR\tPROGRESS\tBALANCE (ADA)")
	for _, p := range list.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.VendorName, p.MilestonesLabel, p.Balance)
	}
	return w.Flush()
}

func printMilestones(out io.Writer, list view.List[view.MilestoneRow]) error {
	if len(list.Items) == 0 {
		fmt.Fprintln(out, list.EmptyMessage)
		return nil
	}
	w := newTable(out)
	fmt.Fprintln(w, "#\tLABEL\tSTATUS\tAMOUNT (ADA)\tCOMPLETED\tDISBURSED")
	for _, m := range list.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", m.Order, m.Label, m.Status, m.Amount, m.CompleteTxShort, m.DisburseTxShort)
	}
	return w.Flush()
}

func printTransactions(out io.Writer, list view.List[view.TransactionRow]) error {
	if len(list.Items) == 0 {
		fmt.Fprintln(out, list.EmptyMessage)
		return nil
	}
	w := newTable(out)
	fmt.Fprintln(w, "HASH\tACTION\tSLOT\tAMOUNT (ADA)\tWHEN")
	for _, tx := range list.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", tx.HashShort, tx.Action, tx.Slot, tx.Amount, tx.Ago)
	}
	return w.Flush()
}
