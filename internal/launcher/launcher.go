// Package launcher opens a desktop mapping application at a coordinate.
package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/osint-cli/internal/model"
)

// DefaultBinary is the Google Earth Pro launcher installed on Linux.
const DefaultBinary = "google-earth-pro"

// Launcher opens a map view at a latitude/longitude.
type Launcher interface {
	Open(ctx context.Context, lat, lon string) error
}

// GoogleEarth runs Google Earth Pro with --latlon and waits for it to exit.
type GoogleEarth struct {
	binPath string
	out     io.Writer
}

// NewGoogleEarth creates a GoogleEarth launcher. If binPath is empty,
// DefaultBinary is used. Status messages go to out.
func NewGoogleEarth(binPath string, out io.Writer) *GoogleEarth {
	if binPath == "" {
		binPath = DefaultBinary
	}
	if out == nil {
		out = io.Discard
	}
	return &GoogleEarth{binPath: binPath, out: out}
}

// Args returns the command-line arguments passed for a coordinate.
func Args(lat, lon string) []string {
	return []string{"--latlon=" + model.Coordinates{Latitude: lat, Longitude: lon}.LatLon()}
}

// Open launches the application. A missing binary is reported and
// tolerated; any other failure is returned.
func (g *GoogleEarth) Open(ctx context.Context, lat, lon string) error {
	cmd := exec.CommandContext(ctx, g.binPath, Args(lat, lon)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if isNotInstalled(err) {
			zap.L().Warn("map application not found", zap.String("bin", g.binPath), zap.Error(err))
			fmt.Fprintln(g.out, "Google Earth Pro is not installed or not found in the system PATH.")
			return nil
		}
		return eris.Wrapf(err, "launcher: %s failed: %s", g.binPath, stderr.String())
	}

	fmt.Fprintf(g.out, "Opened Google Earth Pro for location (%s, %s)\n", lat, lon)
	return nil
}

func isNotInstalled(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
