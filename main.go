// motorwatch simulates a factory motor's temperature and vibration
// sensors, logs every reading to a CSV machine log, renders a live
// dashboard, and projects time-to-failure until the first CRITICAL
// reading halts the loop.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arlo/motorwatch/internal/config"
	"github.com/arlo/motorwatch/internal/logging"
	"github.com/arlo/motorwatch/internal/monitor"
	"github.com/arlo/motorwatch/internal/viewer"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "motorwatch: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "history":
			path := cfg.Log.DataFile
			if len(os.Args) > 2 {
				path = os.Args[2]
			}
			viewer.Run(path, cfg.SensorLimits())
			return
		case "help", "-h", "--help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "motorwatch: unknown command %q\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	runMonitor(cfg)
}

func runMonitor(cfg *config.Config) {
	ops, err := logging.New(cfg.Log.OpsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "motorwatch: %v\n", err)
		os.Exit(1)
	}
	defer ops.Sync()

	fmt.Println("Booting motorwatch...")
	fmt.Println("Connecting to sensors...")

	p := tea.NewProgram(
		monitor.New(cfg, ops),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "motorwatch: %v\n", err)
		os.Exit(1)
	}

	if m, ok := final.(monitor.Model); ok {
		if m.Halted() {
			fmt.Println("*** CRITICAL FAILURE DETECTED ***")
			fmt.Println("*** SYSTEM HALTED ***")
		}
		fmt.Printf("Session ended after %d ticks.\n", m.Ticks())
	}
	fmt.Printf("Session data saved to %q.\n", cfg.Log.DataFile)
}

func printUsage() {
	fmt.Println("motorwatch - simulated motor monitoring")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  motorwatch            run the live monitor")
	fmt.Println("  motorwatch history    browse the recorded session log")
	fmt.Println("  motorwatch history <file>")
}
