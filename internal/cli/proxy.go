package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"robot-models/internal/app"
)

type proxyOptions struct {
	Models   []string
	Base     string
	Services []string
}

func newProxyCommand() *cobra.Command {
	opts := proxyOptions{}
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Synthesize the placeholder type for a component/service combination",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProxy(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Models, "models", nil, "Model description file paths")
	cmd.Flags().StringVar(&opts.Base, "base", "", "Base component type")
	cmd.Flags().StringSliceVar(&opts.Services, "service", nil, "Service types to proxy")
	_ = viper.BindPFlag("models", cmd.Flags().Lookup("models"))
	return cmd
}

func runProxy(ctx context.Context, cmd *cobra.Command, opts proxyOptions) error {
	service := newAppService()
	result, err := service.Proxy(ctx, app.ProxyRequest{
		ModelPaths: resolveStrings(cmd, opts.Models, "models", "models"),
		Base:       opts.Base,
		Services:   opts.Services,
	})
	if err != nil {
		return err
	}
	fmt.Printf("proxy: %s (abstract=%t)\n", result.Name, result.Abstract)
	fmt.Printf("  stands in for: %s\n", strings.Join(result.Proxied, ", "))
	for _, port := range result.Ports {
		fmt.Printf("  port %s: %s %s\n", port.Name, port.Type, port.Direction)
	}
	return nil
}
