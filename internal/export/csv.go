package export

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

// CSVExporter writes the buffered history to a CSV file, one row per
// reading, same column order as the wire format.
type CSVExporter struct {
	// Path is the output file. When Timestamped is set, the file name
	// gets a time suffix so periodic exports do not overwrite each
	// other.
	Path        string
	Timestamped bool
}

func (e *CSVExporter) Export(snap model.Snapshot) error {
	path := e.Path
	if e.Timestamped {
		path = timestampedPath(path, snap.GeneratedAt)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"sensor_id", "timestamp", "value", "unit"}); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	for _, r := range snap.Readings {
		row := []string{r.SensorID, r.Timestamp.Format(time.RFC3339Nano), strconv.Itoa(r.Value), r.Unit}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}

	log.Printf("export: wrote %d readings to %s", len(snap.Readings), path)
	return nil
}

func timestampedPath(path string, at time.Time) string {
	ext := ""
	base := path
	if i := len(path) - len(".csv"); i > 0 && path[i:] == ".csv" {
		base, ext = path[:i], ".csv"
	}
	return fmt.Sprintf("%s_%s%s", base, at.Format("20060102_150405"), ext)
}
