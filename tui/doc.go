// Package tui is a terminal front end for a single local map.
//
// Each tile is one terminal cell, colored with its palette color and drawn
// with its palette glyph; the actor is an arrow showing its facing. Mouse
// motion previews the brush, holding the left button paints, arrow keys
// walk the actor, digits and [ ] change the brush, r resets and q quits.
package tui
