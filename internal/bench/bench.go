// Package bench compares PNG compression levels on filtered images so a
// -compression setting can be picked from real data.
package bench

import (
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"bgclear/internal/codec"
	"bgclear/internal/filter"
)

// LevelStat accumulates encode timings and output sizes for one compression level.
type LevelStat struct {
	Name      string
	Level     png.CompressionLevel
	Total     time.Duration // Total encode duration for all files
	Minimum   time.Duration
	Maximum   time.Duration
	Processed int   // Number of encoded files
	InBytes   int64 // Source bytes of those files
	OutBytes  int64
}

func (s LevelStat) TimeAvg() time.Duration {
	if s.Processed == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Processed)
}

func (s LevelStat) SizeRatio() float64 {
	if s.InBytes == 0 {
		return 0
	}
	return 100 * float64(s.OutBytes) / float64(s.InBytes)
}

// Levels is the set of compression levels compared by Measure, in report order.
var Levels = []struct {
	Name  string
	Level png.CompressionLevel
}{
	{"none", png.NoCompression},
	{"fast", png.BestSpeed},
	{"default", png.DefaultCompression},
	{"best", png.BestCompression},
}

// Measure filters each file once at threshold and encodes the result at every
// level in Levels. Files that cannot be read or decoded are logged and skipped.
func Measure(files []string, threshold uint8, log logrus.FieldLogger) LevelStats {
	stats := make(LevelStats, 0, len(Levels))
	codecs := make([]*codec.Codec, 0, len(Levels))
	for _, l := range Levels {
		stats = append(stats, &LevelStat{
			Name:    l.Name,
			Level:   l.Level,
			Minimum: math.MaxInt64,
			Maximum: math.MinInt64,
		})
		codecs = append(codecs, codec.New(l.Level))
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.WithField("path", path).WithError(err).Warn("Skipping unreadable file")
			continue
		}
		img, err := codecs[0].Decode(data)
		if err != nil {
			log.WithField("path", path).WithError(err).Warn("Skipping undecodable file")
			continue
		}
		out, _ := filter.RemoveWhite(img, threshold)

		for i, c := range codecs {
			start := time.Now()
			encoded, err := c.Encode(out)
			dur := time.Since(start)
			if err != nil {
				log.WithField("path", path).WithError(err).Warn("Encode failed")
				continue
			}
			s := stats[i]
			s.Processed++
			s.Total += dur
			s.InBytes += int64(len(data))
			s.OutBytes += int64(len(encoded))
			if dur < s.Minimum {
				s.Minimum = dur
			}
			if dur > s.Maximum {
				s.Maximum = dur
			}
		}
	}
	return stats
}

type LevelStats []*LevelStat

func (s LevelStats) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	_, _ = fmt.Fprintf(cw, "\nResults\n-------\n")
	for _, st := range s {
		_, _ = fmt.Fprintf(cw, "Compression: %s\n", st.Name)
		if st.Processed == 0 {
			_, _ = fmt.Fprintf(cw, "No files encoded\n\n")
			continue
		}
		_, _ = fmt.Fprintf(cw, "Files: %d\n", st.Processed)
		_, _ = fmt.Fprintf(cw, "Total: %.3fs\n", st.Total.Seconds())
		_, _ = fmt.Fprintf(cw, "Time (file avg): %15.3fs\n", st.TimeAvg().Seconds())
		_, _ = fmt.Fprintf(cw, "Minimum: %.3fs\n", st.Minimum.Seconds())
		_, _ = fmt.Fprintf(cw, "Maximum: %.3fs\n", st.Maximum.Seconds())
		_, _ = fmt.Fprintf(cw, "Size: %d KB -> %d KB (%.1f%%)\n", st.InBytes/1024, st.OutBytes/1024, st.SizeRatio())
		_, _ = fmt.Fprintf(cw, "\n")
	}
	return cw.n, cw.err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
