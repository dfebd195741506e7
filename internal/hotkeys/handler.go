// Package hotkeys binds configured key chords to engine commands. Chords are
// registered as global X11 grabs on the root window; each press enqueues the
// bound argv command onto the event pipeline.
package hotkeys

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/stripwm/stripwm/internal/config"
	"github.com/stripwm/stripwm/internal/event"
	"github.com/stripwm/stripwm/internal/x11"
)

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
	emit   func(event.Event)

	mu         sync.Mutex
	registered []string
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(conn *x11.Connection, logger *slog.Logger, emit func(event.Event)) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})

	return &Handler{
		xu:     conn.XUtil,
		root:   conn.Root,
		logger: logger,
		emit:   emit,
	}
}

// Apply registers every binding in cfg, replacing whatever was registered
// before. A chord that fails to grab is logged and skipped; the rest of the
// bindings still apply.
func (h *Handler) Apply(cfg *config.Config) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.registered) > 0 {
		keybind.Detach(h.xu, h.root)
		h.registered = h.registered[:0]
	}

	for _, command := range cfg.SortedBindings() {
		raw := cfg.Bindings[command]
		chord, err := config.ParseChord(raw)
		if err != nil {
			h.logger.Warn("skipping unparseable binding", "chord", raw, "error", err)
			continue
		}
		argv := commandArgv(command)
		if argv == nil {
			h.logger.Warn("skipping binding with unknown command", "chord", raw, "command", command)
			continue
		}

		seq := chord.X11Sequence()
		if err := h.registerFunc(seq, func() {
			h.emit(event.Command{Argv: argv})
		}); err != nil {
			h.logger.Warn("hotkey grab failed", "chord", raw, "error", err)
			continue
		}
		h.registered = append(h.registered, seq)
		h.logger.Debug("hotkey registered", "chord", raw, "command", command)
	}
}

// registerFunc registers an arbitrary hotkey callback.
func (h *Handler) registerFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// commandArgv translates a config command name into pipeline argv.
func commandArgv(command string) []string {
	if command == "quit" {
		return []string{"quit"}
	}
	parts := strings.Split(command, "_")
	if len(parts) < 2 || parts[0] != "window" {
		return nil
	}
	switch parts[1] {
	case "focus", "swap", "stack":
		if len(parts) != 3 {
			return nil
		}
		return []string{"window", parts[1], parts[2]}
	case "center", "resize", "manage", "unstack":
		if len(parts) != 2 {
			return nil
		}
		return []string{"window", parts[1]}
	default:
		return nil
	}
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
