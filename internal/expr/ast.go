package expr

// Node is a parsed expression.
type Node interface {
	Span() Span
}

// Literal is a number, string or symbol literal. Text holds the lexeme.
type Literal struct {
	Kind Kind
	Text string
	Pos  Span
}

// Unary is -X or +X.
type Unary struct {
	Op  Kind
	X   Node
	Pos Span
}

// Binary is X op Y.
type Binary struct {
	Op   Kind
	X, Y Node
	Pos  Span
}

// Call is name(args...).
type Call struct {
	Name string
	Args []Node
	Pos  Span
}

func (n *Literal) Span() Span { return n.Pos }
func (n *Unary) Span() Span   { return n.Pos }
func (n *Binary) Span() Span  { return n.Pos }
func (n *Call) Span() Span    { return n.Pos }
