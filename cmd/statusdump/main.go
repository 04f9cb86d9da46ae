// Command statusdump runs one resynchronization pass over a screenshot file
// and prints the resulting roster state.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/arocarlisle/WAI2K/internal/capture"
	"github.com/arocarlisle/WAI2K/internal/game"
	"github.com/arocarlisle/WAI2K/internal/ocr"
	"github.com/arocarlisle/WAI2K/internal/status"
	"github.com/arocarlisle/WAI2K/internal/vision"
)

func main() {
	screenshot := flag.String("screenshot", "", "Path to status screen capture (TIFF, PNG, or JPEG)")
	templates := flag.String("templates", "templates", "Directory of marker template PNGs")
	layoutPath := flag.String("layout", "", "Layout descriptor JSON (default: built-in calibration)")
	flag.Parse()

	if *screenshot == "" {
		fmt.Println("Usage: statusdump -screenshot <path> [-templates dir] [-layout file.json]")
		os.Exit(1)
	}

	layout := status.DefaultLayout()
	if *layoutPath != "" {
		var err error
		layout, err = status.LoadLayout(*layoutPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load layout: %v\n", err)
			os.Exit(1)
		}
	}

	lib := vision.NewLibrary(*templates)
	defer lib.Close()

	engine, err := ocr.NewEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start OCR engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	updater := status.NewUpdater(
		status.NopNavigator{},
		capture.NewFileSource(*screenshot),
		vision.NewMatcher(lib),
		engine,
		layout,
	)

	state := game.NewState()
	start := time.Now()
	if err := updater.Run(context.Background(), state); err != nil {
		fmt.Fprintf(os.Stderr, "Update pass failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Update pass completed in %v\n\n", time.Since(start).Round(time.Millisecond))

	now := time.Now()
	fmt.Printf("%-9s %-12s %-22s %s\n", "Echelon", "Logistics", "ETA", "Repairs")
	for _, e := range state.Echelons() {
		logistics, eta := "-", "-"
		if e.Logistics != nil {
			logistics = e.Logistics.Support.String()
			eta = e.Logistics.ETA.Format(time.RFC3339)
		}

		repairs := ""
		for _, m := range e.Members {
			if m.UnderRepair(now) {
				if repairs != "" {
					repairs += " "
				}
				repairs += fmt.Sprintf("#%d:%v", m.Number, time.Until(m.RepairETA).Round(time.Second))
			}
		}
		if repairs == "" {
			repairs = "-"
		}

		fmt.Printf("%-9d %-12s %-22s %s\n", e.Number, logistics, eta, repairs)
	}
}
