package asm

// Label is a named anchor in an assembly unit. Before resolution it has
// only a name; after resolution (spec §4.6 pass 1) it carries the byte
// offset of the instruction immediately following its definition.
//
// A Label is similar to a bookmark in a book that lets you jump straight to
// a page: "start" and "stop" let a `call stop` instruction refer to a
// position in the machine code without knowing its numeric offset ahead of
// time.
type Label struct {
	Identifier string
	Offset     int
	Resolved   bool
}
