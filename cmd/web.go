package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/boozedog/contextcrafter/internal/web"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the web UI",
	Long:  `Starts a local web server with the template catalog, questionnaire pages, generated prompts and history. Pages refresh live when the CLI changes the stored data.`,
	Args:  cobra.NoArgs,
	RunE:  runWeb,
}

var webPort int

func init() {
	webCmd.Flags().IntVar(&webPort, "port", 0, "port to listen on (default: [web] port from config)")
	rootCmd.AddCommand(webCmd)
}

func runWeb(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if webPort > 0 {
		a.cfg.Web.Port = webPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(a.cfg, a.catalog, a.records, a.log)
	return srv.ListenAndServe(ctx)
}
