// Package pipeline runs one OSINT lookup: geocode, map, searches, report.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/osint-cli/internal/launcher"
	"github.com/sells-group/osint-cli/internal/model"
	"github.com/sells-group/osint-cli/internal/report"
	"github.com/sells-group/osint-cli/pkg/geocode"
	"github.com/sells-group/osint-cli/pkg/hibp"
	"github.com/sells-group/osint-cli/pkg/shodan"
)

// ReportWriter persists a run's results and returns the file path.
type ReportWriter interface {
	Write(in report.Input) (string, error)
}

// Request is the operator's input for one run. Empty optional fields skip
// the corresponding search.
type Request struct {
	Postcode    string
	ShodanQuery string
	HIBPEmail   string
}

// Result is what a completed run produced.
type Result struct {
	RunID       string
	Coordinates model.Coordinates
	Shodan      *shodan.SearchResult
	HIBP        *hibp.Result
	ReportPath  string
}

// Pipeline wires the run's steps together.
type Pipeline struct {
	geocoder geocode.Geocoder
	launcher launcher.Launcher
	shodan   shodan.Client
	hibp     hibp.Client
	reports  ReportWriter
	out      io.Writer
}

// New creates a Pipeline. A nil launcher skips opening the map.
func New(
	geocoder geocode.Geocoder,
	mapLauncher launcher.Launcher,
	shodanClient shodan.Client,
	hibpClient hibp.Client,
	reports ReportWriter,
	out io.Writer,
) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{
		geocoder: geocoder,
		launcher: mapLauncher,
		shodan:   shodanClient,
		hibp:     hibpClient,
		reports:  reports,
		out:      out,
	}
}

// Run executes the steps in order and stops at the first error. Location
// not found and service errors are returned as-is so callers can tell them
// apart with errors.Is / errors.As; nothing is written to disk in that case.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := zap.L().With(zap.String("run_id", res.RunID), zap.String("postcode", req.Postcode))
	log.Info("pipeline: starting run",
		zap.Bool("shodan", req.ShodanQuery != ""),
		zap.Bool("hibp", req.HIBPEmail != ""),
	)

	coords, err := p.geocoder.Geocode(ctx, req.Postcode)
	if err != nil {
		log.Warn("pipeline: geocode failed", zap.Error(err))
		return nil, err
	}
	res.Coordinates = *coords
	fmt.Fprintf(p.out, "Postcode %s found at coordinates: Latitude: %s, Longitude: %s\n",
		req.Postcode, coords.Latitude, coords.Longitude)

	if p.launcher != nil {
		if err := p.launcher.Open(ctx, coords.Latitude, coords.Longitude); err != nil {
			return nil, eris.Wrap(err, "pipeline: open map")
		}
	} else {
		log.Debug("pipeline: map launcher disabled")
	}

	if req.ShodanQuery != "" {
		fmt.Fprintln(p.out, "\nPerforming Shodan Search...")
		sr, err := p.shodan.Search(ctx, req.ShodanQuery)
		if err != nil {
			log.Warn("pipeline: shodan search failed", zap.Error(err))
			return nil, err
		}
		if err := p.printJSON("Shodan Results:", sr); err != nil {
			return nil, err
		}
		log.Info("pipeline: shodan search complete",
			zap.Int("matches", len(sr.Matches)),
			zap.Int("total", sr.Total),
		)
		res.Shodan = sr
	}

	if req.HIBPEmail != "" {
		fmt.Fprintln(p.out, "\nPerforming HaveIBeenPwned Search...")
		hr, err := p.hibp.BreachedAccount(ctx, req.HIBPEmail)
		if err != nil {
			log.Warn("pipeline: hibp search failed", zap.Error(err))
			return nil, err
		}
		if hr.NoBreaches() {
			fmt.Fprintln(p.out, hibp.NoBreachesMessage)
		} else if err := p.printJSON("HaveIBeenPwned Results:", hr); err != nil {
			return nil, err
		}
		log.Info("pipeline: hibp search complete", zap.Int("breaches", len(hr.Breaches)))
		res.HIBP = hr
	}

	path, err := p.reports.Write(report.Input{
		Postcode:    req.Postcode,
		Coordinates: res.Coordinates,
		Shodan:      res.Shodan,
		HIBP:        res.HIBP,
	})
	if err != nil {
		return nil, err
	}
	res.ReportPath = path

	log.Info("pipeline: run complete", zap.String("report", path))
	return res, nil
}

func (p *Pipeline) printJSON(title string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return eris.Wrapf(err, "pipeline: encode %s", title)
	}
	fmt.Fprintf(p.out, "%s\n%s\n", title, data)
	return nil
}
