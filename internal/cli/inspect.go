package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/shaftworks/shaftdraw/pkg/document"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
	"github.com/shaftworks/shaftdraw/pkg/units"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	interactive      bool    // browse components in a TUI
	unitsName        string  // display units override
	fallbackDiameter float64 // diameter for auto bodies with no neighbor
}

// newInspectCmd creates the inspect command, which prints the resolved
// component list and the measurement window without rendering anything.
func newInspectCmd() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the resolved components and measurement window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse components interactively")
	cmd.Flags().StringVar(&opts.unitsName, "units", "", "display units: mm, in, fractional-inch (default from document)")
	cmd.Flags().Float64Var(&opts.fallbackDiameter, "fallback-diameter", 0, "diameter for auto bodies with no neighbor (mm)")

	return cmd
}

func runInspect(cmd *cobra.Command, input string, opts *inspectOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	doc, err := document.Load(input)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	unitName := opts.unitsName
	if unitName == "" {
		unitName = doc.Units
	}
	unit, err := units.Parse(unitName)
	if err != nil {
		return err
	}

	var ropts []shaft.ResolveOption
	if opts.fallbackDiameter > 0 {
		ropts = append(ropts, shaft.WithFallbackDiameter(opts.fallbackDiameter))
	}
	resolved, err := shaft.Resolve(doc.OverallLength, doc.Segments(), ropts...)
	if err != nil {
		return err
	}
	logger.Debugf("Resolved %d components", len(resolved))

	span := doc.OverallLength
	for _, rc := range resolved {
		if end := rc.End(); end > span {
			span = end
		}
	}
	w, err := shaft.ComputeWindow(span, doc.Segments())
	if err != nil {
		return err
	}

	if opts.interactive {
		model := newComponentModel(doc.Title, resolved, w, unit)
		_, err := tea.NewProgram(model).Run()
		return err
	}

	printInspection(doc, resolved, w, unit)
	return nil
}

// printInspection prints the static (non-TUI) inspection report.
func printInspection(doc *document.Document, resolved []shaft.Resolved, w shaft.Window, unit units.Unit) {
	if doc.Title != "" {
		fmt.Println(StyleTitle.Render(doc.Title))
	}
	printKeyValue("overall", units.Format(doc.OverallLength, unit))
	printKeyValue("window", fmt.Sprintf("%s .. %s (%s)",
		units.Format(w.Start, unit), units.Format(w.End, unit), units.Format(w.Length(), unit)))
	fmt.Println()
	fmt.Println(componentTable(resolved, unit))

	auto := 0
	for _, rc := range resolved {
		if rc.IsAuto() {
			auto++
		}
	}
	if auto > 0 {
		printDetail("%d of %d components are auto-generated fill", auto, len(resolved))
	}
}

// componentTable renders the resolved components as a lipgloss table.
func componentTable(resolved []shaft.Resolved, unit units.Unit) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("ID", "KIND", "SOURCE", "START", "LENGTH", "DIAMETER")

	for _, rc := range resolved {
		t.Row(
			rc.ID,
			rc.Kind.String(),
			rc.Source.String(),
			units.Format(rc.Start, unit),
			units.Format(rc.Length, unit),
			diameterLabel(rc.Segment, unit),
		)
	}
	return t.Render()
}

// diameterLabel renders the kind-appropriate diameter column.
func diameterLabel(s shaft.Segment, unit units.Unit) string {
	if s.Kind == shaft.KindTaper {
		return fmt.Sprintf("%s %s %s",
			units.Format(s.AftDiameter, unit), iconArrow, units.Format(s.FwdDiameter, unit))
	}
	return units.Format(s.Diameter, unit)
}
