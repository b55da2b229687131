package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-roster/internal/prompt"
	"github.com/goliatone/go-roster/pkg/frontend"
	"github.com/goliatone/go-roster/pkg/projection"
)

var (
	renderView        string
	renderSort        string
	renderID          string
	renderInteractive bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch the roster through the gateway and print the rendered HTML",
	Long: `Fetches records through the gateway and renders them.

  roster render                      full table
  roster render --view name-only     names only
  roster render --sort fecha         full table sorted by a record key
  roster render --id 359109270367961293
  roster render --interactive        choose with prompts`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderView, "view", projection.Full, "projection: full or name-only")
	renderCmd.Flags().StringVar(&renderSort, "sort", "", "record key to sort by (always renders the full table)")
	renderCmd.Flags().StringVar(&renderID, "id", "", "render a single record as a form")
	renderCmd.Flags().BoolVarP(&renderInteractive, "interactive", "i", false, "choose the view with prompts")
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	req, err := renderRequest(cmd)
	if err != nil {
		return err
	}
	logger.Debug("render", zap.String("request", prompt.Describe(req)))

	controller, err := newController(ctx, cmd.ErrOrStderr(), frontend.WithArticle(printer(out)))
	if err != nil {
		return err
	}
	view, err := controller.Run(ctx, req)
	if err != nil {
		return err
	}
	if view.Result != nil && view.Result.Degraded() {
		logger.Warn("rendered with unresolved fields", zap.Int("rows", len(view.Result.Issues)))
	}
	return nil
}

func renderRequest(cmd *cobra.Command) (frontend.Request, error) {
	if renderInteractive {
		return prompt.NewChooser(prompt.NewSurveyDriver(), nil).Choose(cmd.Context())
	}
	switch {
	case renderID != "":
		return frontend.Request{Kind: frontend.KindShow, ID: renderID}, nil
	case renderSort != "":
		return frontend.Request{Kind: frontend.KindSorted, Field: renderSort}, nil
	case renderView == projection.NameOnly:
		return frontend.Request{Kind: frontend.KindNames}, nil
	case renderView == projection.Full:
		return frontend.Request{Kind: frontend.KindList}, nil
	default:
		return frontend.Request{}, errors.New("render: --view must be full or name-only")
	}
}

func printer(out io.Writer) frontend.Article {
	return frontend.ArticleFunc(func(title, content string) {
		_, _ = fmt.Fprintf(out, "<!-- %s -->\n%s\n", title, content)
	})
}
