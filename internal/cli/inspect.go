package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"robot-models/internal/app"
)

type inspectOptions struct {
	Models    []string
	Component string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show a component type's ports and declared services",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Models, "models", nil, "Model description file paths")
	cmd.Flags().StringVar(&opts.Component, "component", "", "Component type to inspect")
	_ = viper.BindPFlag("models", cmd.Flags().Lookup("models"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		ModelPaths: resolveStrings(cmd, opts.Models, "models", "models"),
		Component:  opts.Component,
	})
	if err != nil {
		return err
	}
	fmt.Printf("component: %s (abstract=%t)\n", result.Name, result.Abstract)
	for _, port := range result.Ports {
		fmt.Printf("  port %s: %s %s\n", port.Name, port.Type, port.Direction)
	}
	for _, declared := range result.Services {
		fmt.Printf("  service %s: %s (main=%t)\n", declared.Instance, declared.Model, declared.Main)
		var abstracts []string
		for abstract := range declared.Mapping {
			abstracts = append(abstracts, abstract)
		}
		sort.Strings(abstracts)
		for _, abstract := range abstracts {
			fmt.Printf("    %s -> %s\n", abstract, declared.Mapping[abstract])
		}
	}
	return nil
}
