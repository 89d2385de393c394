// Command compressiontest filters a sample of PNGs and reports encode time and
// output size for every PNG compression level bgclear supports.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"bgclear/internal/batch"
	"bgclear/internal/bench"
)

var (
	threshold = flag.Int("threshold", 240, "Background threshold (0-255)")
	limit     = flag.Int("limit", 10, "Maximum number of files to sample")
	cpuProf   = flag.Bool("cpuprofile", false, "Write a CPU profile to the working directory")
)

func main() {
	flag.Parse()
	if *cpuProf {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	dir := "./test-images"
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}
	if *threshold < 0 || *threshold > 255 {
		fmt.Fprintf(os.Stderr, "compressiontest: threshold must be between 0 and 255\n")
		os.Exit(1)
	}

	files, err := batch.Discover(dir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compressiontest: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No PNG files found in", dir)
		return
	}
	fmt.Printf("Found %d PNG files in %s\n", len(files), dir)
	if len(files) > *limit {
		files = files[:*limit]
	}

	stats := bench.Measure(files, uint8(*threshold), log)
	_, _ = stats.WriteTo(os.Stdout)
}
