// Package results saves archival summaries of pipeline runs.
package results

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/m-lab/go/warnonerror"

	"github.com/m-lab/ns3-trace-plotter/logging"
)

// summaryFile is an open summary file, optionally gzipped.
type summaryFile struct {
	name string
	fp   *os.File
	gzip *gzip.Writer
	w    io.Writer
}

// path returns where a summary of the named pipeline, taken at ts, is
// stored: <datadir>/<what>/YYYY/MM/DD/<what>-<ts>.<uuid>.json[.gz].
func path(datadir, what, uuid string, ts time.Time, compress bool) string {
	name := what + "-" + ts.Format("20060102T150405.000000000Z") + "." + uuid + ".json"
	if compress {
		name += ".gz"
	}
	return filepath.Join(datadir, what, ts.Format("2006/01/02"), name)
}

func create(name string, compress bool) (*summaryFile, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, err
	}
	// O_EXCL reports the unlikely case of two runs with the same name.
	fp, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	sf := &summaryFile{name: name, fp: fp, w: fp}
	if compress {
		sf.gzip, err = gzip.NewWriterLevel(fp, gzip.BestSpeed)
		if err != nil {
			fp.Close()
			return nil, err
		}
		sf.w = sf.gzip
	}
	return sf, nil
}

func (sf *summaryFile) Close() error {
	if sf.gzip != nil {
		if err := sf.gzip.Close(); err != nil {
			sf.fp.Close()
			return err
		}
	}
	return sf.fp.Close()
}

// Save writes result as JSON to a new file below datadir and returns the
// file name. The what argument names the pipeline ("cwnd", "queue" or
// "throughput"). An empty datadir disables archiving and returns "".
// On failure no file is left behind.
func Save(datadir, what, uuid string, compress bool, result interface{}) (string, error) {
	if datadir == "" {
		return "", nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	name := path(datadir, what, uuid, time.Now().UTC(), compress)
	sf, err := create(name, compress)
	if err != nil {
		logging.Logger.WithError(err).WithField("path", name).Warn("Could not create summary file")
		return "", err
	}
	if _, err := sf.w.Write(data); err != nil {
		warnonerror.Close(sf, "Could not close summary file")
		os.Remove(name)
		return "", err
	}
	if err := sf.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
