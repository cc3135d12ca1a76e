package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphedit/config"
	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/glyphsrc"
	"github.com/npillmayer/glyphedit/interact"
	"github.com/npillmayer/glyphedit/session"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyph.edit'
func tracer() tracing.Trace {
	return tracing.Select("glyph.edit")
}

func main() {
	initDisplay()

	// command line flags
	confpath := flag.String("config", "", "Settings file (TOML)")
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error], overrides settings")
	fontname := flag.String("font", "", "Font to load glyphs from")
	backend := flag.String("backend", "sfnt", "Font backend [sfnt|gotext]")
	docname := flag.String("open", "", "Glyph document to open")
	flag.Parse()

	// set up logging
	conf, err := config.Load(*confpath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	if *tlevel != "" {
		conf.Trace.Level = *tlevel
	}
	if err := conf.SetupTracing(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	pterm.Info.Println("Welcome to the glyph editing CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("glyph > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := NewIntp(conf, session.New())
	intp.repl = repl
	//
	// load font and glyph document to use
	if *fontname != "" {
		if err := intp.openFont(*fontname, *backend); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	if *docname != "" {
		if err, _ := openOp(intp, []string{*docname}); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	tracer().Infof("Trace level is %s", conf.Trace.Level)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object. It drives one editor; the session is
// shared with editors of other glyphs.
type Intp struct {
	conf    config.Config
	repl    *readline.Instance
	session *session.Session
	state   *editstate.State
	ctrl    *interact.Controller
	src     glyphsrc.Source
	glyph   string // name of the glyph being edited
}

// NewIntp creates an interpreter with an empty glyph.
func NewIntp(conf config.Config, sess *session.Session) *Intp {
	intp := &Intp{conf: conf, session: sess}
	intp.reset("untitled")
	sess.Subscribe(func(ev session.Event) {
		tracer().Debugf("session: %s changed, focus on %q", ev.Kind, ev.Glyph)
	})
	return intp
}

// reset starts editing a new, empty glyph.
func (intp *Intp) reset(name string) {
	intp.state = editstate.New(intp.conf.StateOptions()...)
	intp.ctrl = interact.New(intp.state, intp.conf.ControllerOptions(interact.WithClipboard(intp.session))...)
	intp.glyph = name
	intp.session.SetFocusedGlyph(name)
}

func (intp *Intp) String() string {
	s := intp.state
	dirty := ""
	if s.IsDirty() {
		dirty = "*"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( glyph=%s%s tool=%s layer=%s", intp.glyph, dirty, s.ToolMode(), s.ActiveLayer()))
	if path, ok := s.ActiveComponent(); ok {
		sb.WriteString(fmt.Sprintf(" component=%v", path))
	}
	if n := len(s.Selection().PointIDs()); n > 0 {
		sb.WriteString(fmt.Sprintf(" selected=%d", n))
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a parsed input line.
type Command struct {
	code int
	args []string
}

const (
	QUIT int = iota
	HELP
	OPEN
	LOAD
	SAVE
	SHOW
	SELECT
	TOOL
	MOVE
	SCALE
	ROTATE
	CONVERT
	DELETE
	UNDO
	REDO
	COPY
	CUT
	PASTE
	KEY
	CLICK
	DRAG
	VIEW
	LAYER
	RENDER
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"open":    OPEN,
	"load":    LOAD,
	"save":    SAVE,
	"show":    SHOW,
	"select":  SELECT,
	"tool":    TOOL,
	"move":    MOVE,
	"scale":   SCALE,
	"rotate":  ROTATE,
	"convert": CONVERT,
	"delete":  DELETE,
	"undo":    UNDO,
	"redo":    REDO,
	"copy":    COPY,
	"cut":     CUT,
	"paste":   PASTE,
	"key":     KEY,
	"click":   CLICK,
	"drag":    DRAG,
	"view":    VIEW,
	"layer":   LAYER,
	"render":  RENDER,
}

var errUnknownCommand = errors.New("unknown command, try 'help'")

func parseCommand(line string) (*Command, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil, errUnknownCommand
	}
	code, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownCommand, words[0])
	}
	tracer().Debugf("parsed command: %v", words)
	return &Command{code: code, args: words[1:]}, nil
}

var commandFn map[int]func(*Intp, []string) (error, bool)

func init() {
	commandFn = map[int]func(*Intp, []string) (error, bool){
		QUIT:    quitOp,
		HELP:    helpOp,
		OPEN:    openOp,
		LOAD:    loadOp,
		SAVE:    saveOp,
		SHOW:    showOp,
		SELECT:  selectOp,
		TOOL:    toolOp,
		MOVE:    moveOp,
		SCALE:   scaleOp,
		ROTATE:  rotateOp,
		CONVERT: convertOp,
		DELETE:  actionOp(editstate.DeleteSelection{}),
		UNDO:    actionOp(editstate.Undo{}),
		REDO:    actionOp(editstate.Redo{}),
		COPY:    keyShortcut(interact.KeyC),
		CUT:     keyShortcut(interact.KeyX),
		PASTE:   keyShortcut(interact.KeyV),
		KEY:     keyOp,
		CLICK:   clickOp,
		DRAG:    dragOp,
		VIEW:    viewOp,
		LAYER:   layerOp,
		RENDER:  renderOp,
	}
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	f, ok := commandFn[cmd.code]
	if !ok {
		return fmt.Errorf("unknown command code: %d", cmd.code), false
	}
	return f(intp, cmd.args)
}

func quitOp(intp *Intp, args []string) (error, bool) {
	if intp.state.IsDirty() {
		pterm.Warning.Printf("glyph %s has unsaved changes\n", intp.glyph)
	}
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) openFont(fontname, backend string) (err error) {
	switch strings.ToLower(backend) {
	case "sfnt":
		intp.src, err = glyphsrc.OpenSFNT(fontname)
	case "gotext", "go-text", "typesetting":
		intp.src, err = glyphsrc.OpenTypesetting(fontname)
	default:
		err = fmt.Errorf("unknown font backend %q", backend)
	}
	if err == nil {
		pterm.Printf("font %q has %d glyphs\n", intp.src.FontName(), intp.src.NumGlyphs())
	}
	return
}
