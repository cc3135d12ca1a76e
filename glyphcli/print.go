package main

import (
	"fmt"

	"github.com/npillmayer/glyphedit/editstate"
	"github.com/npillmayer/glyphedit/outline"
	"github.com/pterm/pterm"
)

func showOp(intp *Intp, args []string) (error, bool) {
	s := intp.state
	cs := s.Contours()
	if len(cs) == 0 {
		pterm.Println("glyph has no contours")
	}
	sel := s.Selection()
	for _, c := range cs {
		state := "open"
		if c.IsClosed() {
			state = "closed"
		}
		pterm.Printf("contour %s (%s)\n", c.ID, state)
		pterm.DefaultTable.WithHasHeader().WithData(contourTable(c, sel)).Render()
	}
	if label, ok := s.UndoLabel(); ok {
		pterm.Printf("undo: %s (%d steps)\n", label, s.UndoDepth())
	}
	if label, ok := s.RedoLabel(); ok {
		pterm.Printf("redo: %s (%d steps)\n", label, s.RedoDepth())
	}
	return nil, false
}

func contourTable(c outline.Contour, sel outline.Selection) [][]string {
	data := [][]string{
		{"Cmd", "Point", "Kind", "X", "Y", "Sel"},
	}
	for _, cmd := range c.Commands {
		if cmd.Op == outline.OpClose {
			data = append(data, []string{cmd.Op.Letter(), "", "", "", "", ""})
			continue
		}
		for i, p := range cmd.Points() {
			letter := ""
			if i == 0 {
				letter = cmd.Op.Letter()
			}
			mark := ""
			if sel.HasPoint(p.ID) {
				mark = "*"
			}
			data = append(data, []string{
				letter,
				p.ID.String(),
				p.Kind.String(),
				fmt.Sprintf("%g", p.X),
				fmt.Sprintf("%g", p.Y),
				mark,
			})
		}
	}
	return data
}

func printLayers(s *editstate.State) {
	data := [][]string{
		{"ID", "Name", "Kind", "Active", "Focused"},
	}
	for _, l := range s.Layers() {
		kind := "image"
		if d, ok := l.(*outline.DrawingLayer); ok {
			kind = fmt.Sprintf("drawing (%d contours)", len(d.Contours))
		}
		data = append(data, []string{
			l.LayerID(),
			l.LayerName(),
			kind,
			yesNo(l.LayerID() == s.ActiveLayer()),
			yesNo(l.LayerID() == s.FocusedLayer()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
