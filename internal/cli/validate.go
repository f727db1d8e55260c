package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"robot-models/internal/app"
)

type validateOptions struct {
	Models []string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate model description files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Models, "models", nil, "Model description file paths")
	_ = viper.BindPFlag("models", cmd.Flags().Lookup("models"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		ModelPaths: resolveStrings(cmd, opts.Models, "models", "models"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("validated: %d services, %d components\n", result.Services, result.Components)
	return nil
}
