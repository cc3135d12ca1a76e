package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, args []string) (error, bool) {
	topic := ""
	if len(args) > 0 {
		topic = args[0]
	}
	help(topic)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "pointer", "click", "drag", "key":
		pterm.Info.Println("Pointer and keyboard")
		pterm.Println(`
	Positions are screen pixels, mapped to font units by the view.
	  click x y [mods]          press and release the primary button
	  drag x0 y0 x1 y1 [mods]   drag from (x0,y0) to (x1,y1)
	  key name [mods]           press a key, e.g. 'key z ctrl', 'key left shift'
	Modifiers are shift, ctrl and alt, combined with '+'.
	Dragging a point moves it, dragging empty space selects by rubber band,
	dragging a selection handle scales or rotates (shift constrains).
	`)
	case "layer", "layers":
		pterm.Info.Println("Layers")
		pterm.Println(`
	  layer               list layers
	  layer add <id>      add a drawing layer
	  layer use <id>      edit a drawing layer; edit history is cleared
	  layer remove <id>   remove a layer; the outline layer stays
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	  open <file>          open a glyph document (.toml, .yaml)
	  load <char|U+XXXX>   load a glyph from the font given by -font
	  save <file>          save the glyph as a document
	  render <file.png>    write a preview image
	  show                 print contours and history
	  select all|none|<id>...
	  tool select|pen|hand
	  move dx dy | scale sx [sy] | rotate deg     transform the selection
	  convert line|quad|cubic                    convert selected segments
	  delete | undo | redo | copy | cut | paste
	  click | drag | key   see 'help pointer'
	  view [scale ox oy]   print or set the view
	  layer ...            see 'help layers'
	  quit
	`)
	}
}
