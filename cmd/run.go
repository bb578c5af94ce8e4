package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/osint-cli/internal/config"
	"github.com/sells-group/osint-cli/internal/launcher"
	"github.com/sells-group/osint-cli/internal/osinterr"
	"github.com/sells-group/osint-cli/internal/pipeline"
	"github.com/sells-group/osint-cli/internal/report"
	"github.com/sells-group/osint-cli/pkg/geocode"
	"github.com/sells-group/osint-cli/pkg/hibp"
	"github.com/sells-group/osint-cli/pkg/shodan"
)

// runFlags holds the lookup's command-line input.
type runFlags struct {
	postcode    string
	shodanKey   string
	hibpKey     string
	shodanQuery string
	hibpEmail   string
}

var flags runFlags

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.postcode, "postcode", "", "postcode to perform OSINT on (e.g., 90210)")
	f.StringVar(&flags.shodanKey, "shodan_key", "", "Shodan API key")
	f.StringVar(&flags.hibpKey, "hibp_key", "", "HaveIBeenPwned API key")
	f.StringVar(&flags.shodanQuery, "shodan_query", "", "Shodan search query (e.g., 'apache')")
	f.StringVar(&flags.hibpEmail, "hibp_email", "", "email address to check for breaches")
	_ = rootCmd.MarkFlagRequired("postcode")
	_ = rootCmd.MarkFlagRequired("shodan_key")
	_ = rootCmd.MarkFlagRequired("hibp_key")
}

func runOSINT(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()

	p, err := newPipeline(cfg, flags, out)
	if err != nil {
		return err
	}

	_, err = p.Run(cmd.Context(), pipeline.Request{
		Postcode:    flags.postcode,
		ShodanQuery: flags.shodanQuery,
		HIBPEmail:   flags.hibpEmail,
	})
	if osinterr.IsHandled(err) {
		fmt.Fprintln(out, err.Error())
		return nil
	}
	return err
}

// newPipeline builds the run's clients from configuration and flags.
func newPipeline(c *config.Config, rf runFlags, out io.Writer) (*pipeline.Pipeline, error) {
	hc := &http.Client{Timeout: c.HTTP.Timeout()}

	geocoder, err := geocode.NewProvider(geocode.Config{
		Type:         geocode.ProviderType(c.Geocode.Provider),
		BaseURL:      c.Geocode.BaseURL,
		UserAgent:    c.Geocode.UserAgent,
		GoogleAPIKey: c.Geocode.GoogleAPIKey,
		HTTPClient:   hc,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init geocoder")
	}

	var mapLauncher launcher.Launcher
	if c.Map.Enabled {
		mapLauncher = launcher.NewGoogleEarth(c.Map.BinPath, out)
	} else {
		zap.L().Info("map launcher disabled by config")
	}

	shodanClient := shodan.NewClient(rf.shodanKey,
		shodan.WithBaseURL(c.Shodan.BaseURL),
		shodan.WithHTTPClient(hc),
	)
	hibpClient := hibp.NewClient(rf.hibpKey,
		hibp.WithBaseURL(c.HIBP.BaseURL),
		hibp.WithUserAgent(c.HIBP.UserAgent),
		hibp.WithHTTPClient(hc),
	)
	reports := report.NewWriter(c.Report.Dir, report.WithOutput(out))

	return pipeline.New(geocoder, mapLauncher, shodanClient, hibpClient, reports, out), nil
}
