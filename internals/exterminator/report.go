package exterminator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Report writes the human-readable outcome of a sync to w. Styling is
// dropped when w is not a terminal.
func Report(w io.Writer, res Result) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true)
	link := r.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)

	switch res.Outcome {
	case OutcomeFound:
		_, err := fmt.Fprintf(w, "%s\n%s\n", heading.Render("Found existing Shortcut story:"), link.Render(res.URL()))
		return err

	case OutcomeCreated:
		_, err := fmt.Fprintf(w, "%s\n%s\n", heading.Render("Created new Shortcut story:"), link.Render(res.URL()))
		return err

	case OutcomePreview:
		payload, err := json.MarshalIndent(res.Params, "", "  ")
		if err != nil {
			return fmt.Errorf("render story preview: %w", err)
		}
		warn := r.NewStyle().Foreground(lipgloss.Color("11"))
		_, err = fmt.Fprintf(w, "%s\n%s\n\n%s\n",
			warn.Render("Running in dry run mode, so not writing to Shortcut"),
			heading.Render("Shortcut story that would have been created:"),
			payload,
		)
		return err
	}

	return fmt.Errorf("nothing to report: sync ended in state %s", res.State)
}
