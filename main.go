package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/schollz/mt32panel/internal/clock"
	"github.com/schollz/mt32panel/internal/display"
	"github.com/schollz/mt32panel/internal/midiconnector"
	"github.com/schollz/mt32panel/internal/monitor"
	"github.com/schollz/mt32panel/internal/oscout"
	"github.com/schollz/mt32panel/internal/patches"
	"github.com/schollz/mt32panel/internal/storage"
	"github.com/schollz/mt32panel/internal/types"
)

var (
	Version = "dev"

	// Command-line configuration
	config struct {
		midiPort  string
		listMIDI  bool
		noInput   bool
		volume    int
		oscHost   string
		oscPort   int
		configDir string
		debug     string
	}
)

var rootCmd = &cobra.Command{
	Use:   "mt32panel",
	Short: "An MT-32 front panel emulator for the terminal",
	Long: `mt32panel emulates the control panel of a Roland MT-32: the
20-character LCD and the MIDI MESSAGE LED, driven by real MIDI input.

Program changes, sysex display messages and checksum failures show up on
the LCD exactly as on the hardware, including the timed fall-back to the
master volume screen. Without a MIDI port the panel can be driven from
the keyboard.`,
	Version: Version,
	Run:     runPanel,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.midiPort, "midi", "m", "",
		"MIDI input port to listen on (substring match)")
	rootCmd.PersistentFlags().BoolVar(&config.listMIDI, "list-midi", false,
		"List available MIDI input ports and exit")
	rootCmd.PersistentFlags().BoolVar(&config.noInput, "no-input", false,
		"Run without MIDI input, keyboard-driven events only")
	rootCmd.PersistentFlags().IntVarP(&config.volume, "volume", "v", -1,
		"Master volume 0-100 (overrides the saved setting)")
	rootCmd.PersistentFlags().StringVar(&config.oscHost, "osc-host", "localhost",
		"Host to broadcast panel state to over OSC")
	rootCmd.PersistentFlags().IntVar(&config.oscPort, "osc-port", 0,
		"Port to broadcast panel state to over OSC (0 disables)")
	rootCmd.PersistentFlags().StringVar(&config.configDir, "config-dir", "",
		"Settings directory (default ~/.config/mt32panel)")
	rootCmd.PersistentFlags().StringVarP(&config.debug, "log", "l", "",
		"Write debug logs to specified file (empty disables)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configDir() string {
	if config.configDir != "" {
		return config.configDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mt32panel"
	}
	return filepath.Join(home, ".config", "mt32panel")
}

func runPanel(cmd *cobra.Command, args []string) {
	// Set up debug logging early
	if config.debug != "" {
		f, err := tea.LogToFile(config.debug, "debug")
		if err != nil {
			log.Printf("Fatal: %v", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetOutput(io.Discard)
	}

	defer midiconnector.CloseDriver()

	if config.listMIDI {
		devices := midiconnector.Devices()
		if len(devices) == 0 {
			fmt.Println("No MIDI input ports found")
			return
		}
		for _, name := range devices {
			fmt.Println(name)
		}
		return
	}

	settings, err := storage.Load(configDir())
	if err != nil {
		log.Printf("Error loading settings, using defaults: %v", err)
	}
	if cmd.PersistentFlags().Changed("volume") {
		settings.MasterVolume = clampFlagVolume(config.volume)
	}
	if cmd.PersistentFlags().Changed("midi") {
		settings.MIDIPort = config.midiPort
	}
	if cmd.PersistentFlags().Changed("osc-host") {
		settings.OSCHost = config.oscHost
	}
	if cmd.PersistentFlags().Changed("osc-port") {
		settings.OSCPort = config.oscPort
	}

	parts := types.NewPartsState()

	cfg := display.DefaultConfig()
	cfg.TextHold = display.TicksForMillis(settings.TextHoldMillis)
	cfg.LEDHold = display.TicksForMillis(settings.LEDHoldMillis)
	cfg.RhythmHold = display.TicksForMillis(settings.RhythmHoldMillis)
	cfg.PatchName = func(part uint8) string {
		if part == display.RhythmPart {
			return patches.PartLabel(part)
		}
		return patches.Name(parts.Program(part))
	}

	disp := display.New(cfg)
	disp.SetMasterVolume(settings.MasterVolume)
	clk := clock.New()

	if !config.noInput {
		conn, err := midiconnector.New(settings.MIDIPort, disp, clk, parts)
		if err != nil {
			log.Printf("MIDI unavailable, keyboard events only: %v", err)
		} else if err := conn.Open(); err != nil {
			log.Printf("MIDI unavailable, keyboard events only: %v", err)
		} else {
			settings.MIDIPort = conn.Name()
			defer conn.Close()
		}
	}

	var broadcaster *oscout.Broadcaster
	if settings.OSCPort > 0 {
		broadcaster = oscout.New(settings.OSCHost, settings.OSCPort)
		log.Printf("Broadcasting panel state to %s:%d", settings.OSCHost, settings.OSCPort)
	}

	p := tea.NewProgram(monitor.New(disp, clk, parts, broadcaster), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		log.Printf("Error: %v", err)
	}
	if m, ok := finalModel.(monitor.Model); ok {
		log.Printf("Exiting with %s", m.Status())
	}

	settings.MasterVolume = disp.MasterVolume()
	if err := storage.Save(configDir(), settings); err != nil {
		log.Printf("Error saving settings: %v", err)
	}
}

func clampFlagVolume(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return uint8(v)
}
