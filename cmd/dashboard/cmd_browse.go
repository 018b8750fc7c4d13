package main

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"treasury-dashboard/internal/dashboard"
	"treasury-dashboard/internal/indexer"
	"treasury-dashboard/internal/view"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search projects interactively",
	Long: `Search projects interactively. Each line read from stdin is a new
search; a search typed before the previous one returned cancels it, and
only the latest results are printed.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	svc, err := newService(newClient(cfg.PublicAPIURL))
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	page := dashboard.NewPage[indexer.ProjectQuery, view.List[view.ProjectCard]]("browse_projects")
	defer page.Close()

	var (
		wg    sync.WaitGroup
		outMu sync.Mutex
	)
	fmt.Fprintln(out, "search> (empty line lists all, Ctrl-D quits)")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		q := indexer.ProjectQuery{Limit: listLimit, Search: strings.TrimSpace(scanner.Text())}
		// Begin in input order so a later search always supersedes an earlier one.
		ticket, lctx := page.Begin(ctx, q)
		wg.Add(1)
		go func() {
			defer wg.Done()
			list := svc.Projects(lctx, q)
			outMu.Lock()
			defer outMu.Unlock()
			if !page.Commit(ticket, list) {
				return
			}
			fmt.Fprintf(out, "results for %q:\n", q.Search)
			printProjects(out, list)
		}()
	}
	wg.Wait()
	return scanner.Err()
}
