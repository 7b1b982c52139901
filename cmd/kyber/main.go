package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"kyber/internal/av"
	"kyber/internal/config"
	"kyber/internal/edr"
	"kyber/internal/logging"
	"kyber/internal/rmm"
	"kyber/internal/soc"
	"kyber/internal/telemetry"
	"kyber/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "kyber",
		Short: "Terminal dashboard for the managed fleet",
		Long: "kyber is a terminal dashboard over the RMM platform, enriched with\n" +
			"the SOC incident feed and the antivirus and EDR security platforms.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Configure(cfg.DebugLog)
	shutdown, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer shutdown(context.Background())

	backends, err := buildBackends(ctx, cfg)
	if err != nil {
		return err
	}

	model := ui.NewAppModel(backends)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// buildBackends constructs and authenticates the backend clients. The RMM
// is mandatory; an optional backend that fails its setup is logged and left
// nil so the dashboard still comes up degraded.
func buildBackends(ctx context.Context, cfg *config.Config) (ui.Backends, error) {
	backends := ui.Backends{
		RMM: rmm.New(cfg.RMM.APIURL, cfg.RMM.APIKey, cfg.RMM.SecretKey),
	}
	if err := backends.RMM.Authenticate(ctx); err != nil {
		return backends, fmt.Errorf("rmm authentication: %w", err)
	}

	if cfg.HasSOC() {
		backends.SOC = soc.New(cfg.SOC.APIURL, cfg.SOC.APIKey)
	}
	if cfg.HasAV() {
		backends.AV = av.New(cfg.AV.APIURL, cfg.AV.Secret)
	}
	if cfg.HasEDR() {
		client := edr.New(cfg.EDR.ClientID, cfg.EDR.ClientSecret)
		if err := client.Authenticate(ctx); err != nil {
			logging.Error("edr.authenticate", err)
		} else if _, err := client.FetchWhoAmI(ctx); err != nil {
			logging.Error("edr.whoami", err)
		} else {
			backends.EDR = client
		}
	}
	return backends, nil
}
