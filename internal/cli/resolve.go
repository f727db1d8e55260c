package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"robot-models/internal/app"
)

type resolveOptions struct {
	Models            []string
	Selected          string
	RequiredComponent string
	RequiredServices  []string
	Directives        []string
	OutputDir         string
	Instantiate       bool
	TaskName          string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a requirement against a selected component type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Models, "models", nil, "Model description file paths")
	cmd.Flags().StringVar(&opts.Selected, "selected", "", "Selected component type")
	cmd.Flags().StringVar(&opts.RequiredComponent, "require-component", "", "Required component type")
	cmd.Flags().StringSliceVar(&opts.RequiredServices, "require", nil, "Required service types")
	cmd.Flags().StringSliceVar(&opts.Directives, "hint", nil, "Selection hints (ServiceModel=instanceName)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Resolution report output directory")
	cmd.Flags().BoolVar(&opts.Instantiate, "instantiate", false, "Insert the resolved task into the plan")
	cmd.Flags().StringVar(&opts.TaskName, "task-name", "", "Name for the instantiated task")
	_ = viper.BindPFlag("models", cmd.Flags().Lookup("models"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		ModelPaths:        resolveStrings(cmd, opts.Models, "models", "models"),
		Selected:          opts.Selected,
		RequiredComponent: opts.RequiredComponent,
		RequiredServices:  opts.RequiredServices,
		Directives:        opts.Directives,
		OutputDir:         resolveString(cmd, opts.OutputDir, "output", "output"),
		Instantiate:       resolveBool(cmd, opts.Instantiate, "instantiate", "instantiate"),
		TaskName:          opts.TaskName,
	})
	if err != nil {
		return err
	}
	fmt.Printf("selected: %s\n", result.Selected)
	var requiredNames []string
	for required := range result.Selections {
		requiredNames = append(requiredNames, required)
	}
	sort.Strings(requiredNames)
	for _, required := range requiredNames {
		fmt.Printf("  %s -> %s\n", required, result.Selections[required])
	}
	var portNames []string
	for abstract := range result.PortMappings {
		portNames = append(portNames, abstract)
	}
	sort.Strings(portNames)
	for _, abstract := range portNames {
		fmt.Printf("  port %s -> %s\n", abstract, result.PortMappings[abstract])
	}
	if result.TaskName != "" {
		fmt.Printf("instantiated: %s\n", result.TaskName)
	}
	return nil
}
