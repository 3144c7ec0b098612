package node

// Op tags the operation that produced a node. The local-gradient rule of a
// node is selected by this tag, so the set is closed.
type Op int

const (
	// None marks a leaf: an input, parameter or constant.
	None Op = iota
	// Add is binary addition.
	Add
	// Mul is binary multiplication. Negation is built on it.
	Mul
	// Pow raises the first parent to the power of the second.
	Pow
	// Relu is the rectified linear unit.
	Relu
)

// String returns the display tag of the operation. Leaves render as an
// empty tag.
func (o Op) String() string {
	switch o {
	case None:
		return ""
	case Add:
		return "+"
	case Mul:
		return "*"
	case Pow:
		return "^"
	case Relu:
		return "ReLU"
	default:
		return "?"
	}
}

// Arity is the number of parents a node with this tag has.
func (o Op) Arity() int {
	switch o {
	case Add, Mul, Pow:
		return 2
	case Relu:
		return 1
	default:
		return 0
	}
}
