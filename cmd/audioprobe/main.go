// Command audioprobe fetches a remote audio resource and reports its
// structural properties: file size, duration, channel layout, sample rate,
// and bitrate.
//
// Usage:
//
//	audioprobe <audio_url>
//
// The tool probes the resource size, streams the body to a temporary file,
// parses the container, prints either an "Audio Metadata:" or an "Error:"
// block, and removes the temporary file on every exit path. The exit status
// is 0 whenever the reporting stage is reached - an error block is a normal,
// reported outcome - and 1 only for invocation misuse.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/simonhull/audioprobe"
	"github.com/simonhull/audioprobe/internal/fetch"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: audioprobe <audio_url>")
		os.Exit(1)
	}

	url := os.Args[1]
	fmt.Printf("Fetching metadata from: %s\n", url)
	start := time.Now()

	outcome := run(url)

	fmt.Printf("Process completed in %.2f seconds\n", time.Since(start).Seconds())

	printOutcome(outcome)
}

// run fetches the resource and extracts its metadata. Every failure mode is
// folded into the Outcome; run itself never aborts the process.
func run(url string) audioprobe.Outcome {
	ctx := context.Background()
	client := fetch.New()

	totalSize, err := client.Probe(ctx, url)
	if err != nil {
		return audioprobe.Outcome{Err: "Error retrieving metadata: " + err.Error()}
	}

	fmt.Printf("Downloading the entire file (%.2f MB)...\n", float64(totalSize)/(1024*1024))

	path, err := client.Download(ctx, url)
	if err != nil {
		return audioprobe.Outcome{Err: "Error retrieving metadata: " + err.Error()}
	}
	// The temporary file is owned by this invocation alone; remove it on
	// every exit path, whatever extraction does
	defer os.Remove(path)

	outcome := audioprobe.Inspect(path, fetch.ExtensionFromURL(url), totalSize)

	if outcome.HasRawLength {
		if outcome.UsedFallback {
			fmt.Printf("Raw length value from fallback: %v\n", outcome.RawLength)
		} else {
			fmt.Printf("Raw length value from file: %v\n", outcome.RawLength)
		}
	}
	if outcome.HeadersNotFound {
		fmt.Println("MP3 headers not found in the file.")
	}

	return outcome
}

// printOutcome renders the final metadata or error block.
func printOutcome(outcome audioprobe.Outcome) {
	separator := strings.Repeat("-", 40)

	if outcome.Err != "" {
		fmt.Println("\nError:")
		fmt.Println(separator)
		fmt.Println(outcome.Err)
		return
	}

	fmt.Println("\nAudio Metadata:")
	fmt.Println(separator)
	for _, field := range outcome.Report.Fields() {
		fmt.Printf("%s: %s\n", titleKey(field.Key), field.Value)
	}
}

// titleKey renders a snake_case field key as a display label:
// underscores become spaces and each word is capitalized.
func titleKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
