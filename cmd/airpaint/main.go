package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ayusman/airpaint/internal/app"
	"github.com/ayusman/airpaint/internal/capture"
	"github.com/ayusman/airpaint/internal/server"
	"github.com/ayusman/airpaint/internal/store"
	"github.com/ayusman/airpaint/internal/tray"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "replay" {
		if err := runReplay(os.Args[2:]); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	if err := runLive(os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func runLive(args []string) error {
	fs := flag.NewFlagSet("airpaint", flag.ExitOnError)
	opts := capture.DefaultOptions()
	fs.IntVar(&opts.DeviceID, "camera", opts.DeviceID, "camera device id")
	fs.IntVar(&opts.Width, "width", opts.Width, "capture width")
	fs.IntVar(&opts.Height, "height", opts.Height, "capture height")
	fs.IntVar(&opts.FPS, "fps", opts.FPS, "capture frame rate")
	fs.BoolVar(&opts.Mirror, "mirror", opts.Mirror, "flip frames horizontally")
	motion := fs.Float64("motion", app.DefaultMotionThreshold, "percent of changed pixels that wakes detection; negative disables the gate")
	addr := fs.String("addr", ":8080", "HTTP listen address; empty disables the server")
	record := fs.String("record", "", "append landmarks of every tick to this file as JSON lines")
	headless := fs.Bool("headless", false, "do not open a preview window")
	withTray := fs.Bool("tray", false, "show a system tray menu")
	dataDir := fs.String("data", defaultDataDir(), "directory for the settings database")
	fs.Parse(args)

	fmt.Println("Air Painter - draw with your index finger")

	st, err := openStore(*dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := app.Config{
		Store:        st,
		Capture:      opts,
		MotionThresh: *motion,
		RecordPath:   *record,
	}
	if !*headless {
		cfg.Window = app.DefaultWindow
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	var srv *server.Server
	if *addr != "" {
		webDir := findWebDir()
		if webDir != "" {
			fmt.Printf("Serving static files from: %s\n", webDir)
		}
		srv = server.New(server.Config{StaticDir: webDir, Painter: a})
		defer srv.Close()

		go func() {
			fmt.Printf("Starting server on %s\n", *addr)
			if err := srv.ListenAndServe(*addr); err != nil {
				log.Printf("Server failed: %v", err)
			}
		}()
	}

	if err := a.Start(); err != nil {
		return fmt.Errorf("failed to start camera: %w", err)
	}
	defer a.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	if !*withTray {
		select {
		case <-a.Done():
		case sig := <-sigCh:
			log.Printf("Received %v, shutting down", sig)
		}
		return nil
	}

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnClear(a.RequestClear)
	t.OnPreview(func() {
		if *addr == "" {
			log.Println("Preview needs the HTTP server; start without -addr=\"\"")
			return
		}
		openBrowser("http://localhost" + *addr)
	})

	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.SetTool(a.Snapshot().Tool)
			case <-a.Done():
				t.Quit()
				return
			case <-sigCh:
				t.Quit()
				return
			}
		}
	}()

	// Blocks until Quit from the menu, the window or a signal
	t.Run()
	return nil
}

func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	in := fs.String("in", "", "recorded landmark track (JSON lines)")
	dataDir := fs.String("data", defaultDataDir(), "directory for the settings database")
	fs.Parse(args)

	if *in == "" {
		fs.Usage()
		return fmt.Errorf("-in is required")
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	var settings map[string]string
	if _, err := os.Stat(filepath.Join(*dataDir, "airpaint.db")); err == nil {
		st, err := openStore(*dataDir)
		if err != nil {
			return err
		}
		settings, err = st.Settings().All()
		st.Close()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
	}

	report, err := app.Replay(f, settings)
	if err != nil {
		return err
	}

	fmt.Printf("Frames:      %d (%d with a hand, %d skipped)\n", report.Frames, report.HandFrames, report.Skipped)
	fmt.Printf("Canvas:      %dx%d, %d pixels painted\n", report.Width, report.Height, report.Coverage)
	fmt.Printf("Strokes:     %d (%d segments)\n", report.Stats.Strokes, report.Stats.Segments)
	fmt.Printf("Clears:      %d\n", report.Stats.Clears)
	fmt.Printf("Transitions: %d\n", report.Transitions)
	fmt.Printf("Final tool:  %s %s (%dpx)\n", report.Tool.Kind, report.Tool.Name, report.Tool.Thickness)
	return nil
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".airpaint"
	}
	return filepath.Join(homeDir, ".airpaint")
}

// openStore creates the data directory and opens the settings database.
func openStore(dir string) (*store.Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.New(filepath.Join(dir, "airpaint.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	return st, nil
}

// openBrowser opens url with the platform's default handler.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.airpaint/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(defaultDataDir(), "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
