package view

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/soocke/note-bot-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// StatusWindow is the read-only status panel. It owns its widgets and
// satisfies presenter.StatusView and presenter.PreviewView.
type StatusWindow struct {
	stateLbl    *TLabelWidget
	pauseBtn    *TButtonWidget
	countersLbl *LabelWidget
	lastLbl     *LabelWidget
	activityLbl *LabelWidget
	processLbl  *LabelWidget
	debugTxt    *TextWidget
	preview     LanePreview
}

// NewStatusWindow returns an unbuilt window.
func NewStatusWindow() *StatusWindow { return &StatusWindow{} }

// Build constructs the layout on the root window. showDebug adds the debug
// log and the lane preview.
func (w *StatusWindow) Build(title string, showDebug bool, onTogglePause func(), onExit func()) {
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", onExit)
	theme.InitStyles()

	w.stateLbl = TLabel(Txt("State: -"), Style(theme.StyleStateLabel))
	Grid(w.stateLbl, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(1), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	w.pauseBtn = TButton(Txt("Pause"), Style(theme.StylePrimaryButton), Command(onTogglePause))
	Grid(w.pauseBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	w.countersLbl = Label(Txt("Keypresses: 0   FPS: 0.0"), Anchor("w"))
	Grid(w.countersLbl, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))
	w.lastLbl = Label(Txt("Last: -"), Anchor("w"))
	Grid(w.lastLbl, Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))
	w.activityLbl = Label(Txt("Running 00:00   Active 00:00   Paused 00:00"), Anchor("w"))
	Grid(w.activityLbl, Row(3), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))
	w.processLbl = Label(Txt(""), Anchor("w"), Foreground(theme.ColorTextMuted))
	Grid(w.processLbl, Row(4), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))

	if showDebug {
		w.debugTxt = Text(Height(5), Width(48), Borderwidth(1), Relief("sunken"))
		Grid(w.debugTxt, Row(5), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
		w.preview = NewLanePreview(6)
	}
}

// Run blocks in the Tk event loop until the window is destroyed.
func (w *StatusWindow) Run() { App.Wait() }

// Close destroys the root window, ending Run.
func (w *StatusWindow) Close() { Destroy(App) }

func (w *StatusWindow) SetState(text string, paused bool) {
	if w == nil || w.stateLbl == nil {
		return
	}
	w.stateLbl.Configure(Txt(text), Style(theme.StateStyle(paused)))
}

func (w *StatusWindow) SetPauseLabel(text string) {
	if w == nil || w.pauseBtn == nil {
		return
	}
	w.pauseBtn.Configure(Txt(text))
}

func (w *StatusWindow) SetCounters(keypresses uint64, fps float64) {
	if w == nil || w.countersLbl == nil {
		return
	}
	w.countersLbl.Configure(Txt(fmt.Sprintf("Keypresses: %d   FPS: %.1f", keypresses, fps)))
}

func (w *StatusWindow) SetLastAction(text string) {
	if w == nil || w.lastLbl == nil {
		return
	}
	w.lastLbl.Configure(Txt(text))
}

func (w *StatusWindow) SetActivity(stretch, active, paused time.Duration) {
	if w == nil || w.activityLbl == nil {
		return
	}
	w.activityLbl.Configure(Txt(fmt.Sprintf("Current %s   Active %s   Paused %s",
		clock(stretch), clock(active), clock(paused))))
}

func (w *StatusWindow) SetProcess(text string) {
	if w == nil || w.processLbl == nil {
		return
	}
	w.processLbl.Configure(Txt(text))
}

func (w *StatusWindow) SetDebugLog(lines []string) {
	if w == nil || w.debugTxt == nil {
		return
	}
	w.debugTxt.Delete("1.0", END)
	w.debugTxt.Insert("1.0", strings.Join(lines, "\n"))
}

func (w *StatusWindow) UpdatePreview(img image.Image) {
	if w == nil || w.preview == nil {
		return
	}
	w.preview.Update(img)
}

func (w *StatusWindow) ResetPreview() {
	if w == nil || w.preview == nil {
		return
	}
	w.preview.Reset()
}

// clock formats d as mm:ss.
func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
