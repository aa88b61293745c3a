// Package tray provides a system tray interface showing the live finger count.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/handcount/internal/config"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle   func(enabled bool)
	onMaxHands func(n int)
	onSettings func()
	onQuit     func()
	enabled    bool
	maxHands   int
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuToggle   *systray.MenuItem
	menuCount    *systray.MenuItem
	menuMaxHands []*systray.MenuItem
}

// New creates a new Tray instance, enabled and counting maxHands hands.
func New(maxHands int) *Tray {
	return &Tray{
		enabled:  true,
		maxHands: maxHands,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnMaxHands sets the callback called when a hands-per-frame limit is picked.
func (t *Tray) OnMaxHands(fn func(n int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMaxHands = fn
}

// OnSettings sets the callback function to be called when the settings menu item is clicked.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
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

func (t *Tray) onReady() {
	systray.SetTitle(titleFor(0, false))
	systray.SetTooltip("handcount finger counter")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleLabel(t.enabled), "Toggle counting")
	systray.AddSeparator()

	t.menuCount = systray.AddMenuItem(countLabel(0, false), "Current finger count")
	t.menuCount.Disable()
	systray.AddSeparator()

	menuHands := systray.AddMenuItem("Hands per frame", "How many hands are counted")
	t.menuMaxHands = make([]*systray.MenuItem, 0, config.MaxHands-config.MinHands+1)
	for n := config.MinHands; n <= config.MaxHands; n++ {
		item := menuHands.AddSubMenuItemCheckbox(fmt.Sprintf("%d", n), "", n == t.maxHands)
		t.menuMaxHands = append(t.menuMaxHands, item)
		go t.watchMaxHands(item, n)
	}
	t.mu.Unlock()

	menuSettings := systray.AddMenuItem("Open Preview...", "Open preview in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit handcount")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) watchMaxHands(item *systray.MenuItem, n int) {
	for range item.ClickedCh {
		t.handleMaxHands(n)
	}
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	t.menuToggle.SetTitle(toggleLabel(enabled))
	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleMaxHands(n int) {
	t.mu.Lock()
	t.setMaxHandsLocked(n)
	callback := t.onMaxHands
	t.mu.Unlock()

	if callback != nil {
		callback(n)
	}
}

// SetMaxHands mirrors a limit changed elsewhere without firing OnMaxHands.
func (t *Tray) SetMaxHands(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setMaxHandsLocked(n)
}

func (t *Tray) setMaxHandsLocked(n int) {
	t.maxHands = n
	for i, item := range t.menuMaxHands {
		if config.MinHands+i == n {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// Quit stops the tray event loop, making Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetCount updates the displayed count. ok false hides the value.
func (t *Tray) SetCount(count int, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuCount == nil {
		return
	}
	systray.SetTitle(titleFor(count, ok))
	t.menuCount.SetTitle(countLabel(count, ok))
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// MaxHands returns the hands-per-frame limit last picked in the menu.
func (t *Tray) MaxHands() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.maxHands
}

func titleFor(count int, ok bool) string {
	if !ok {
		return "✋ -"
	}
	return fmt.Sprintf("✋ %d", count)
}

func countLabel(count int, ok bool) string {
	if !ok {
		return "Count: -"
	}
	return fmt.Sprintf("Count: %d", count)
}

func toggleLabel(enabled bool) string {
	if enabled {
		return "● Counting"
	}
	return "○ Paused"
}
