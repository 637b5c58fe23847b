package ui

// ClippedShape is an untessellated shape. Its contents belong to the toolkit.
type ClippedShape struct {
	ClipRect Rect
	Shape    any
}

// Primitive is either a *Mesh or a *PaintCallback.
type Primitive interface {
	isPrimitive()
}

type Vertex struct {
	Pos   Pos2
	UV    Pos2
	Color Color32
}

// Mesh is a triangle list. Indices are local to Vertices.
type Mesh struct {
	Indices   []uint32
	Vertices  []Vertex
	TextureID TextureID
}

// PaintCallback asks the backend to run custom rendering code.
type PaintCallback struct {
	Rect     Rect
	Callback any
}

func (*Mesh) isPrimitive()          {}
func (*PaintCallback) isPrimitive() {}

type ClippedPrimitive struct {
	ClipRect  Rect
	Primitive Primitive
}
