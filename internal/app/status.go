package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/ui/output"
	"go.trai.ch/cwaimg/internal/ui/style"
	"go.trai.ch/zerr"
)

// Status writes the last journaled result of every category under root to w.
func (a *App) Status(root string, w io.Writer) error {
	if root == "" {
		root = domain.DefaultRootDir
	}

	results, err := a.journal.Open(root).List()
	if err != nil {
		return zerr.Wrap(err, "failed to read journal")
	}

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(output.ColorProfile())

	return writeStatus(w, renderer, root, results)
}

func writeStatus(w io.Writer, r *lipgloss.Renderer, root string, results []domain.TaskResult) error {
	header := style.Header.Renderer(r)
	muted := style.Muted.Renderer(r)
	success := style.Success.Renderer(r)
	failure := style.Failure.Renderer(r)

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, muted.Render("no runs recorded in "+root))
		return err
	}

	width := 0
	for _, res := range results {
		width = max(width, len(res.Category))
	}

	if _, err := fmt.Fprintln(w, header.Render("last run per category in "+root)); err != nil {
		return err
	}

	for _, res := range results {
		icon := success.Render(style.Check)
		if res.HasFailure() {
			icon = failure.Render(style.Cross)
		}

		line := fmt.Sprintf("%s %-*s  listed %d  matched %d  downloaded %d (%s)  skipped %d  failed %d",
			icon, width, res.Category,
			res.Listed, res.Matched, res.Downloaded, domain.HumanSize(res.Bytes), res.Skipped, res.Failed,
		)
		if !res.FinishedAt.IsZero() {
			line += muted.Render(fmt.Sprintf("  %s in %s",
				res.FinishedAt.UTC().Format(time.RFC3339), res.Duration().Round(time.Millisecond)))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		if res.Error != "" {
			if _, err := fmt.Fprintln(w, failure.Render("    "+oneLine(res.Error))); err != nil {
				return err
			}
		}
		for _, f := range res.Failures {
			if _, err := fmt.Fprintln(w, failure.Render("    "+f.Filename+": "+oneLine(f.Error))); err != nil {
				return err
			}
		}
	}
	return nil
}

// oneLine flattens a joined error message.
func oneLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", ": ")
}
