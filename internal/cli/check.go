package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaftworks/shaftdraw/pkg/document"
	"github.com/shaftworks/shaftdraw/pkg/errors"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
)

// newCheckCmd creates the check command, which validates a shaft document
// and reports problems without rendering.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate shaft documents without rendering",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := checkDocument(path); err != nil {
					printError("%s: %s", path, errors.UserMessage(err))
					failed++
					continue
				}
				printSuccess("%s", path)
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeInvalidDocument, "%d of %d documents failed validation", failed, len(args))
			}
			return nil
		},
	}
}

// checkDocument runs the full validation a render would: document-level
// checks plus a dry resolve, which catches geometry the validator tolerates
// but the engine rejects.
func checkDocument(path string) error {
	doc, err := document.Load(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if _, err := shaft.Resolve(doc.OverallLength, doc.Segments()); err != nil {
		return err
	}
	return nil
}
