package truss

import "fmt"

type Node struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is a two-force member between nodes I and J. Length and Angle are
// derived from the node coordinates when the topology is built.
type Element struct {
	I      int     `json:"i"`
	J      int     `json:"j"`
	Length float64 `json:"length"`
	Angle  float64 `json:"angle"`
}

type Topology struct {
	Nodes    []Node    `json:"nodes"`
	Elements []Element `json:"elements"`
}

// DOF returns the number of degrees of freedom, two per node.
func (t Topology) DOF() int {
	return 2 * len(t.Nodes)
}

// NewTopology builds a topology from node coordinates and member
// connectivity, computing every member's length and angle.
func NewTopology(nodes []Node, members [][2]int) (Topology, error) {
	t := Topology{
		Nodes:    append([]Node(nil), nodes...),
		Elements: make([]Element, 0, len(members)),
	}
	for k, m := range members {
		i, j := m[0], m[1]
		if i < 0 || i >= len(nodes) || j < 0 || j >= len(nodes) {
			return Topology{}, fmt.Errorf("element %d (%d-%d): %w", k, i, j, ErrInvalidNode)
		}
		length, angle, err := Properties(nodes[i], nodes[j])
		if err != nil {
			return Topology{}, fmt.Errorf("element %d (%d-%d): %w", k, i, j, err)
		}
		t.Elements = append(t.Elements, Element{I: i, J: j, Length: length, Angle: angle})
	}
	return t, nil
}

// Ladder generates a ladder truss with unit panel width and unit height.
func Ladder(panels int) (Topology, error) {
	return LadderScaled(panels, 1, 1)
}

// LadderScaled generates 2*panels nodes in two rows. Node 2i sits on the
// bottom chord at (i*panelWidth, 0), node 2i+1 on the top chord at
// (i*panelWidth, height). Every panel gets a bottom chord, a top chord and two
// crossing diagonals; every panel line gets a vertical.
func LadderScaled(panels int, panelWidth, height float64) (Topology, error) {
	if panels < 2 {
		return Topology{}, fmt.Errorf("%d panels: %w", panels, ErrInvalidPanelCount)
	}
	if panelWidth <= 0 || height <= 0 {
		return Topology{}, fmt.Errorf("panel width %g, height %g: %w", panelWidth, height, ErrDegenerateElement)
	}

	nodes := make([]Node, 0, 2*panels)
	for i := 0; i < panels; i++ {
		x := float64(i) * panelWidth
		nodes = append(nodes, Node{X: x, Y: 0}, Node{X: x, Y: height})
	}

	members := make([][2]int, 0, ElementCount(panels))
	for i := 0; i < panels-1; i++ {
		members = append(members,
			[2]int{2 * i, 2 * (i + 1)},   // bottom chord
			[2]int{2*i + 1, 2*(i+1) + 1}, // top chord
			[2]int{2 * i, 2*(i+1) + 1},   // rising diagonal
			[2]int{2*i + 1, 2 * (i + 1)}, // falling diagonal
		)
	}
	for i := 0; i < panels; i++ {
		members = append(members, [2]int{2 * i, 2*i + 1})
	}
	return NewTopology(nodes, members)
}

// ElementCount is the number of members Ladder produces for the given panel
// count: four per panel gap plus one vertical per panel line.
func ElementCount(panels int) int {
	if panels < 2 {
		return 0
	}
	return 4*(panels-1) + panels
}

// LadderSupports returns the constrained DOFs of a ladder truss: both
// directions at the bottom-left node and at the bottom-right node.
func LadderSupports(panels int) []int {
	right := 2 * (panels - 1)
	return []int{0, 1, 2 * right, 2*right + 1}
}

// LadderTipDOF is the horizontal DOF of the far-end top node.
func LadderTipDOF(panels int) int {
	return 4*(panels-1) + 2
}

// dofs maps an element to its four global degrees of freedom.
func dofs(e Element) [4]int {
	return [4]int{2 * e.I, 2*e.I + 1, 2 * e.J, 2*e.J + 1}
}
