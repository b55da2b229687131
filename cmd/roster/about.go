package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-roster/pkg/frontend"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Print the backend author information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		controller, err := newController(cmd.Context(), cmd.ErrOrStderr(), frontend.WithArticle(printer(cmd.OutOrStdout())))
		if err != nil {
			return err
		}
		_, err = controller.About(cmd.Context())
		return err
	},
}
