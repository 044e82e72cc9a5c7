package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/peek/internal/term"
)

// Mode is the input state of the browser.
type Mode uint8

const (
	ModeBrowse Mode = iota
	ModePrompt
)

// Action is what a key asks the browser to do.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionEnter
	ActionParent
	ActionReload
	ActionEdit
	ActionOpen
	ActionExecute
	ActionShell
	ActionToggleHidden
	ActionRedraw
	ActionSuspend

	ActionPromptStart
	ActionPromptInsert
	ActionPromptDelete
	ActionPromptSubmit
	ActionPromptCancel
)

var actionNames = map[Action]string{
	ActionNone:         "none",
	ActionQuit:         "quit",
	ActionUp:           "up",
	ActionDown:         "down",
	ActionLeft:         "left",
	ActionRight:        "right",
	ActionEnter:        "enter",
	ActionParent:       "parent",
	ActionReload:       "reload",
	ActionEdit:         "edit",
	ActionOpen:         "open",
	ActionExecute:      "execute",
	ActionShell:        "shell",
	ActionToggleHidden: "toggle-hidden",
	ActionRedraw:       "redraw",
	ActionSuspend:      "suspend",
	ActionPromptStart:  "prompt",
	ActionPromptInsert: "prompt-insert",
	ActionPromptDelete: "prompt-delete",
	ActionPromptSubmit: "prompt-submit",
	ActionPromptCancel: "prompt-cancel",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// InputHandler converts decoded keys to Actions for the current mode.
type InputHandler struct {
	mode Mode
}

// NewInputHandler creates a handler in browse mode.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Mode returns the current input mode.
func (ih *InputHandler) Mode() Mode {
	return ih.mode
}

// SetMode switches between browsing and the command prompt.
func (ih *InputHandler) SetMode(m Mode) {
	ih.mode = m
}

// ProcessKey maps one key to an Action. Unbound keys give ActionNone.
func (ih *InputHandler) ProcessKey(k term.Key) Action {
	if ih.mode == ModePrompt {
		return ih.processPromptKey(k)
	}
	return ih.processBrowseKey(k)
}

func (ih *InputHandler) processBrowseKey(k term.Key) Action {
	switch k.Code {
	case tcell.KeyCtrlC, tcell.KeyF10:
		return ActionQuit
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyEnter:
		return ActionEnter
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionParent
	case tcell.KeyCtrlL:
		return ActionRedraw
	case tcell.KeyCtrlZ:
		return ActionSuspend
	case tcell.KeyRune:
		return browseRune(k)
	}
	return ActionNone
}

func browseRune(k term.Key) Action {
	switch {
	case k.IsRune('q'):
		return ActionQuit
	case k.IsRune('k'):
		return ActionUp
	case k.IsRune('j'):
		return ActionDown
	case k.IsRune('h'):
		return ActionLeft
	case k.IsRune('l'):
		return ActionRight
	case k.IsRune('r'):
		return ActionReload
	case k.IsRune('e'):
		return ActionEdit
	case k.IsRune('o'):
		return ActionOpen
	case k.IsRune('x'):
		return ActionExecute
	case k.IsRune('s'):
		return ActionShell
	case k.IsRune('.'):
		return ActionToggleHidden
	case k.IsRune(':'):
		return ActionPromptStart
	}
	return ActionNone
}

func (ih *InputHandler) processPromptKey(k term.Key) Action {
	switch k.Code {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return ActionPromptCancel
	case tcell.KeyEnter:
		return ActionPromptSubmit
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionPromptDelete
	case tcell.KeyRune:
		if unicode.IsPrint(k.Rune) {
			return ActionPromptInsert
		}
	}
	return ActionNone
}
