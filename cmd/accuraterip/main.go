// Command accuraterip verifies a ripped audio CD against the AccurateRip
// database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	accuraterip "github.com/ZaparooProject/go-accuraterip"
	"github.com/ZaparooProject/go-accuraterip/archive"
	"github.com/ZaparooProject/go-accuraterip/checksum"
	"github.com/ZaparooProject/go-accuraterip/response"
)

var (
	minOffset    = flag.Int("min-offset", checksum.MinSupportedOffset, "lower bound of the drive offset search window")
	maxOffset    = flag.Int("max-offset", checksum.MaxSupportedOffset, "upper bound of the drive offset search window")
	cacheDir     = flag.String("cache", "", "directory for cached database responses")
	responseFile = flag.String("response", "", "verify against a local dBAR response file instead of fetching")
	urlOnly      = flag.Bool("url", false, "print the database URL for the disc and exit")
	timeout      = flag.Duration("timeout", 30*time.Second, "database fetch timeout")
	version      = flag.Bool("version", false, "print version and exit")
)

const appVersion = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <disc.cue | rip archive>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Verifies a ripped audio CD against the AccurateRip database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s album.cue\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -url album.cue\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -response dBAR-002.bin album.zip\n", os.Args[0])
	}
	flag.Parse()

	if *version {
		fmt.Printf("accuraterip version %s\n", appVersion)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: input file required\n")
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)

	rip, err := processInput(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing rip: %v\n", err)
		os.Exit(1)
	}

	if *urlOnly {
		fmt.Println(rip.Generator.DataURL())
		os.Exit(0)
	}

	discs, err := loadResponse(rip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving reference data: %v\n", err)
		os.Exit(1)
	}

	matches, err := accuraterip.Match(rip.Generator, discs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error matching: %v\n", err)
		os.Exit(1)
	}

	printReport(rip, matches)

	for _, match := range matches {
		if match.Accurate() {
			os.Exit(0)
		}
	}
	os.Exit(2)
}

func processInput(input string) (*accuraterip.Rip, error) {
	if archive.IsArchiveExtension(filepath.Ext(input)) {
		return accuraterip.ProcessArchiveWindow(input, *minOffset, *maxOffset)
	}
	return accuraterip.ProcessCueWindow(input, *minOffset, *maxOffset)
}

func loadResponse(rip *accuraterip.Rip) ([]response.Disc, error) {
	if *responseFile != "" {
		f, err := os.Open(*responseFile)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return response.Decode(f)
	}

	dataURL := rip.Generator.DataURL()

	var store *accuraterip.Store
	if *cacheDir != "" {
		store = accuraterip.NewStore(*cacheDir)
		if discs, found, err := store.Load(dataURL); err == nil && found {
			return discs, nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	discs, err := accuraterip.Fetch(ctx, nil, dataURL)
	if err != nil {
		if errors.Is(err, accuraterip.ErrNotInDatabase) {
			fmt.Fprintln(os.Stderr, "The disc is not in the AccurateRip database.")
			os.Exit(2)
		}
		return nil, err
	}

	if store != nil {
		if err := store.Save(dataURL, discs); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not cache response: %v\n", err)
		}
	}
	return discs, nil
}

func printReport(rip *accuraterip.Rip, matches []accuraterip.PressingMatch) {
	fmt.Printf("Disc: %d tracks, %s\n", rip.Generator.Tracks(), rip.Generator.TOC().TotalLength())
	fmt.Printf("URL:  %s\n", rip.Generator.DataURL())

	if len(matches) == 0 {
		fmt.Println("\nNo pressing in the response matches the disc layout.")
		return
	}

	for i, match := range matches {
		fmt.Printf("\nPressing %d:", i+1)
		if match.Accurate() {
			fmt.Printf(" accurately ripped\n")
		} else {
			fmt.Printf(" NOT accurate\n")
		}
		for _, track := range match.Tracks {
			status := "no match"
			switch {
			case track.V2 && track.V1:
				status = "match (v1+v2)"
			case track.V2:
				status = "match (v2)"
			case track.V1:
				status = "match (v1)"
			case track.OffsetFound:
				status = fmt.Sprintf("match at drive offset %+d", track.Offset)
			case track.Frame450:
				status = "frame 450 match only"
			}
			fmt.Printf("  Track %02d: %-28s confidence %d\n", track.Track+1, status, track.Confidence)
		}
	}
}
