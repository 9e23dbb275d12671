// Package tray provides a system tray menu for Air Painter.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ayusman/airpaint/internal/paint"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle  func(enabled bool)
	onClear   func()
	onPreview func()
	onQuit    func()
	enabled   bool
	tool      string
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuTool   *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
		tool:    ToolLabel(paint.DefaultConfig().DefaultTool()),
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnClear sets the callback for the clear canvas item.
func (t *Tray) OnClear(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClear = fn
}

// OnPreview sets the callback for the open preview item.
func (t *Tray) OnPreview(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onPreview = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray and unblocks Run.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Air Painter")
	systray.SetTooltip("Air Painter")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Toggle painting")
	systray.AddSeparator()

	t.menuTool = systray.AddMenuItem(t.tool, "Current tool")
	t.menuTool.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuClear := systray.AddMenuItem("Clear canvas", "Erase all strokes")
	menuPreview := systray.AddMenuItem("Open preview...", "Open the live preview in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Air Painter")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuClear.ClickedCh:
				t.handleClear()
			case <-menuPreview.ClickedCh:
				t.handlePreview()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Enabled"
	}
	return "○ Disabled"
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleClear handles the clear canvas menu item click.
func (t *Tray) handleClear() {
	t.mu.RLock()
	callback := t.onClear
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handlePreview handles the open preview menu item click.
func (t *Tray) handlePreview() {
	t.mu.RLock()
	callback := t.onPreview
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetTool updates the current tool line in the menu.
func (t *Tray) SetTool(tool paint.Tool) {
	label := ToolLabel(tool)

	t.mu.Lock()
	defer t.mu.Unlock()

	if label == t.tool {
		return
	}
	t.tool = label
	if t.menuTool != nil {
		t.menuTool.SetTitle(label)
	}
}

// Tool returns the current tool line.
func (t *Tray) Tool() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tool
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// ToolLabel formats a tool for the menu, e.g. "Red brush, 8px". Zone names
// are upper case on the bar; the menu uses title case.
func ToolLabel(tool paint.Tool) string {
	if tool.Kind == paint.ToolEraser {
		return fmt.Sprintf("Eraser, %dpx", tool.Thickness)
	}
	return fmt.Sprintf("%s %s, %dpx", cases.Title(language.English).String(tool.Name), tool.Kind, tool.Thickness)
}
