// Package display shows rendered charts to the user, either by launching an
// image viewer or by serving them over HTTP until the run is canceled.
package display

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/m-lab/go/httpx"
	pipe "gopkg.in/m-lab/pipe.v3"

	"github.com/m-lab/ns3-trace-plotter/logging"
)

// Display modes.
const (
	ModeNone = "none"
	ModeOpen = "open"
	ModeHTTP = "http"
)

// Modes lists the accepted modes, default first.
var Modes = []string{ModeNone, ModeOpen, ModeHTTP}

// Config selects how charts are shown.
type Config struct {
	Mode string
	// Viewer is the command run with the image path in ModeOpen.
	Viewer string
	// Addr is the listen address used in ModeHTTP.
	Addr string
}

// Show displays the images in paths according to c.Mode. In ModeHTTP it
// blocks until ctx is canceled.
func Show(ctx context.Context, c Config, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	switch c.Mode {
	case "", ModeNone:
		return nil
	case ModeOpen:
		return open(c.Viewer, paths)
	case ModeHTTP:
		return serve(ctx, c.Addr, paths)
	}
	return fmt.Errorf("unknown display mode %q", c.Mode)
}

func open(viewer string, paths []string) error {
	if viewer == "" {
		return errors.New("no viewer configured")
	}
	for _, p := range paths {
		logging.Logger.WithField("path", p).Info("Opening plot")
		if err := pipe.Run(pipe.Exec(viewer, p)); err != nil {
			return fmt.Errorf("%s %s: %w", viewer, p, err)
		}
	}
	return nil
}

// Handler serves each path under its base name, plus an index page
// embedding all of them.
func Handler(paths []string) http.Handler {
	mux := http.NewServeMux()
	index := "<!DOCTYPE html>\n<html><body>\n"
	for _, p := range paths {
		p := p
		name := filepath.Base(p)
		mux.HandleFunc("/"+name, func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, p)
		})
		index += fmt.Sprintf("<img src=%q alt=%q><br>\n", "/"+name, name)
	}
	index += "</body></html>\n"
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, index)
	})
	return mux
}

func serve(ctx context.Context, addr string, paths []string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: logging.MakeAccessLogHandler(Handler(paths)),
	}
	// ListenAndServeAsync rewrites srv.Addr with the bound address.
	if err := httpx.ListenAndServeAsync(srv); err != nil {
		return err
	}
	logging.Logger.WithField("url", "http://"+srv.Addr+"/").Info("Serving plots until interrupted")
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
