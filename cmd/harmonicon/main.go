package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/harmonicon/harmonicon"
	"github.com/harmonicon/harmonicon/compiler"
	"github.com/harmonicon/harmonicon/config"
	"github.com/harmonicon/harmonicon/graph"
	"github.com/harmonicon/harmonicon/oto"
	"github.com/harmonicon/harmonicon/reload"
	"github.com/harmonicon/harmonicon/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("harmonicon", flag.ContinueOnError)
	flags.SetOutput(stderr)
	help := flags.Bool("h", false, "Show help.")
	versionFlag := flags.Bool("v", false, "Print version.")
	configPath := flags.String("config", "", "Configuration file. By default, config.yml in the Harmonicon folder of the user configuration directory.")
	gain := flags.Float64("gain", -1, "Master gain. Overrides the configuration file.")
	dump := flags.Bool("dump", false, "Print the compiled graph and exit.")
	output := flags.String("o", "", "Render to this .wav or .raw file instead of playing.")
	duration := flags.Duration("d", 10*time.Second, "Length of the rendered file.")
	pcm := flags.Bool("c", false, "Convert audio to 16-bit signed PCM when rendering.")
	noWatch := flags.Bool("no-watch", false, "Do not reload the patch when the file changes.")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Harmonicon live-codable modular synthesizer.\nUsage: harmonicon [flags] path\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *versionFlag {
		fmt.Fprintln(stdout, version.VersionOrHash)
		return 0
	}
	if *help {
		flags.Usage()
		return 0
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	log.SetFlags(log.Ltime)
	log.SetPrefix("harmonicon: ")
	filename := flags.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Printf("warning: %v, using defaults", err)
	}
	if *gain >= 0 {
		cfg.Gain = float32(*gain)
	}

	registry, err := compiler.CompileFile(filename)
	if err != nil {
		fmt.Fprintf(stderr, "could not compile %v: %v\n", filename, err)
		return 1
	}
	if *dump {
		if err := graph.Dump(stdout, registry); err != nil {
			fmt.Fprintf(stderr, "could not dump the graph: %v\n", err)
			return 1
		}
		return 0
	}
	driver := graph.NewDriver(registry)
	if *output != "" {
		if err := render(driver, *output, *duration, *pcm, cfg.Gain); err != nil {
			fmt.Fprintf(stderr, "could not render %v: %v\n", filename, err)
			return 1
		}
		return 0
	}
	if err := play(driver, filename, cfg, !*noWatch); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Default(), err
		}
	}
	return config.Load(path)
}

func render(driver *graph.Driver, path string, duration time.Duration, pcm bool, gain float32) error {
	buffer := make(harmonicon.AudioBuffer, harmonicon.Frames(duration.Seconds()))
	driver.Render(buffer)
	if gain != 1 {
		for i := range buffer {
			buffer[i][0] *= gain
			buffer[i][1] *= gain
		}
	}
	if peak := buffer.Peak(); peak > 1 {
		log.Printf("warning: output clips, peak level %.2f", peak)
	}
	var contents []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".raw") {
		contents, err = buffer.Raw(pcm)
	} else {
		contents, err = buffer.Wav(pcm)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("could not write file %v: %w", path, err)
	}
	return nil
}

func play(driver *graph.Driver, filename string, cfg config.Config, watch bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	audioContext, err := oto.NewContext(oto.Options{BufferSize: cfg.BufferSize, Gain: cfg.Gain})
	if err != nil {
		return fmt.Errorf("could not acquire oto AudioContext: %w", err)
	}
	defer audioContext.Close()
	out, err := audioContext.Play(driver)
	if err != nil {
		return err
	}
	defer out.Close()

	if watch {
		watcher, err := reload.New(filename, driver, cfg.Debounce)
		if err != nil {
			log.Printf("warning: hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			go watcher.Run()
		}
	}
	log.Printf("playing %s, press Ctrl+C to stop", filepath.Base(filename))

	meter, _ := out.(interface{ Peak() float32 })
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if meter == nil {
				continue
			}
			if peak := meter.Peak(); peak > 1 {
				log.Printf("warning: output clips, peak level %.2f", peak)
			}
		}
	}
}
