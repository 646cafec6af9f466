package progress

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// Status represents the state of a task
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusFailed
)

// Item represents a single task being tracked
type Item struct {
	Name     string
	Status   Status
	Duration time.Duration
	Error    error
}

// Tracker manages progress display for multiple sequential tasks, such as
// the per-service workflow waits during instance provisioning.
type Tracker struct {
	mu           sync.Mutex
	wg           sync.WaitGroup
	items        []Item
	current      int
	total        int
	startTime    time.Time
	isTTY        bool
	useColor     bool
	caps         terminalCapabilities
	stopChan     chan struct{}
	stopOnce     sync.Once
	spinnerFrame int
	actionVerb   string // e.g., "Provisioning", "Deprovisioning"
}

var spinnerFrames = []string{"✦", "✸", "✹", "❋", "✹", "✸"}

// NewTracker creates a new progress tracker with a custom action verb
func NewTracker(names []string, verb string) *Tracker {
	items := make([]Item, len(names))
	for i, name := range names {
		items[i] = Item{Name: name, Status: StatusPending}
	}

	_, noColor := os.LookupEnv("NO_COLOR")
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	caps := detectCapabilities()

	return &Tracker{
		items:      items,
		current:    -1,
		total:      len(names),
		isTTY:      isTTY,
		useColor:   !noColor && isTTY && caps.supportsANSI,
		caps:       caps,
		stopChan:   make(chan struct{}),
		actionVerb: verb,
	}
}

// Start begins tracking and starts the spinner animation if in TTY mode
func (t *Tracker) Start() {
	if t.isTTY {
		t.wg.Add(1)
		go t.animate()
	}
}

// StartItem marks an item as running
func (t *Tracker) StartItem(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = index
	t.items[index].Status = StatusRunning
	t.startTime = time.Now()

	if !t.isTTY {
		// Non-TTY mode: print timestamped start message
		ts := time.Now().Format("15:04:05")
		fmt.Printf("[%s] [%d/%d] %s %s...\n", ts, index+1, t.total, t.actionVerb, t.items[index].Name)
	}
}

// CompleteItem marks an item as completed (success or failure)
func (t *Tracker) CompleteItem(index int, err error) {
	t.mu.Lock()
	t.items[index].Duration = time.Since(t.startTime)

	if err != nil {
		t.items[index].Status = StatusFailed
		t.items[index].Error = err
	} else {
		t.items[index].Status = StatusSuccess
	}

	if !t.isTTY {
		// Non-TTY mode: print timestamped completion
		ts := time.Now().Format("15:04:05")
		sym := "+"
		status := "completed"
		if err != nil {
			sym = "x"
			status = "FAILED"
		}
		fmt.Printf("[%s] %s %s %s (%s)\n", ts, sym, t.items[index].Name, status, formatDuration(t.items[index].Duration))
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	t.printItemComplete(index)
}

// Stop ends the progress tracking
func (t *Tracker) Stop() {
	t.stopOnce.Do(
		func() {
			close(t.stopChan)
		},
	)

	// Wait for animate goroutine to finish
	t.wg.Wait()

	if t.isTTY {
		t.mu.Lock()
		if t.useColor {
			fmt.Print("\033[0m") // Ensure terminal state is reset
		}
		fmt.Print(clearLine(t.caps))
		t.mu.Unlock()
	}
}

func (t *Tracker) animate() {
	defer t.wg.Done()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopChan:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.current >= 0 && t.items[t.current].Status == StatusRunning {
				t.spinnerFrame++
				fmt.Print(clearLine(t.caps) + t.statusLine())
			}
			t.mu.Unlock()
		}
	}
}

// statusLine renders the spinner line for the running item. Callers must
// hold the mutex.
func (t *Tracker) statusLine() string {
	item := t.items[t.current]
	elapsed := time.Since(t.startTime)
	spinner := spinnerFrames[t.spinnerFrame%len(spinnerFrames)]
	counter := fmt.Sprintf("[%d/%d]", t.current+1, t.total)

	var line string
	if t.useColor {
		line = fmt.Sprintf(
			"  \033[1m%s %s  %s\033[0m  \033[2m%s\033[0m",
			spinner, counter, item.Name, formatDuration(elapsed))
	} else {
		line = fmt.Sprintf("  %s %s  %s  %s", spinner, counter, item.Name, formatDuration(elapsed))
	}

	// Truncate to terminal width to prevent line wrapping
	return truncateToWidth(line, t.caps.terminalWidth)
}

// printItemComplete replaces the spinner line with the item's final status.
func (t *Tracker) printItemComplete(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	item := t.items[index]

	fmt.Print(clearLine(t.caps))

	var sym, suffix string
	switch item.Status {
	case StatusSuccess:
		sym = "+"
		if t.useColor {
			sym = "\033[32m+\033[0m" // green
		}
		suffix = fmt.Sprintf("(%s)", formatDuration(item.Duration))
	case StatusFailed:
		sym = "x"
		if t.useColor {
			sym = "\033[31mx\033[0m" // red
		}
		suffix = fmt.Sprintf("(%s) FAILED", formatDuration(item.Duration))
	}

	counter := fmt.Sprintf("[%d/%d]", index+1, t.total)
	if t.useColor {
		counter = fmt.Sprintf("\033[2m%s\033[0m", counter)
		suffix = fmt.Sprintf("\033[2m%s\033[0m", suffix)
	}

	fmt.Printf("  %s %s  %s  %s\n", sym, counter, item.Name, suffix)
	// Note: Error details are printed by the root error handler, not here
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second

	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// Summary returns a summary string of completed tasks
func (t *Tracker) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var totalDuration time.Duration
	successCount := 0
	failCount := 0

	for _, item := range t.items {
		totalDuration += item.Duration
		switch item.Status {
		case StatusSuccess:
			successCount++
		case StatusFailed:
			failCount++
		}
	}

	var parts []string
	if successCount > 0 {
		parts = append(parts, fmt.Sprintf("%d succeeded", successCount))
	}
	if failCount > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failCount))
	}

	return fmt.Sprintf("%s in %s", strings.Join(parts, ", "), formatDuration(totalDuration))
}
