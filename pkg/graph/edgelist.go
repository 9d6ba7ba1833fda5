package graph

import (
	"fmt"
)

// Column indices into EdgeList.Nodes.
const (
	ColI = 0
	ColJ = 1
)

// EdgeList is a columnar list of undirected edges. Nodes[ColI][e] and
// Nodes[ColJ][e] are the endpoints of edge e, and ID[e] is its stable
// identifier. IDs survive sorting, so the original insertion order can
// always be recovered.
type EdgeList struct {
	Nodes [2][]int `json:"-"`
	ID    []int    `json:"-"`
}

// NewEdgeList creates an edge list with room for length edges and
// identifiers preassigned to 0..length-1.
func NewEdgeList(length int) *EdgeList {
	el := &EdgeList{
		Nodes: [2][]int{make([]int, length), make([]int, length)},
		ID:    make([]int, length),
	}
	el.ResetIDs()
	return el
}

// Len returns the number of edges.
func (el *EdgeList) Len() int {
	return len(el.ID)
}

// ResetIDs reassigns edge identifiers so that ID[e] = e.
func (el *EdgeList) ResetIDs() {
	for i := range el.ID {
		el.ID[i] = i
	}
}

// Clone returns a deep copy of the edge list.
func (el *EdgeList) Clone() *EdgeList {
	clone := NewEdgeList(el.Len())
	copy(clone.Nodes[ColI], el.Nodes[ColI])
	copy(clone.Nodes[ColJ], el.Nodes[ColJ])
	copy(clone.ID, el.ID)
	return clone
}

// LargestEndpoint returns the largest node id in the given column. It
// bounds the number of radix passes in SortByColumn.
func (el *EdgeList) LargestEndpoint(col int) int {
	largest := 0
	for _, v := range el.Nodes[col] {
		if v > largest {
			largest = v
		}
	}
	return largest
}

// SortByColumn stable-sorts the edge list by one endpoint column using an
// LSD radix sort, base 10. Rows move as a unit: both endpoints and the
// edge id stay together. Runs in O(m * log10(max id)).
func (el *EdgeList) SortByColumn(col int) error {
	if col != ColI && col != ColJ {
		return fmt.Errorf("sort column out of range: %d", col)
	}

	const base = 10
	var bucket [base]int

	m := el.Len()
	scratch := NewEdgeList(m)
	largest := el.LargestEndpoint(col)

	for sigDigit := 1; largest/sigDigit > 0; sigDigit *= base {
		for i := range bucket {
			bucket[i] = 0
		}

		// Counting pass: how many keys land in each bucket.
		for i := 0; i < m; i++ {
			bucket[(el.Nodes[col][i]/sigDigit)%base]++
		}

		// Prefix sums give the end of each bucket's slot range.
		for i := 1; i < base; i++ {
			bucket[i] += bucket[i-1]
		}

		// Walk backwards so equal keys keep their relative order.
		for i := m - 1; i >= 0; i-- {
			loc := bucket[(el.Nodes[col][i]/sigDigit)%base] - 1
			bucket[(el.Nodes[col][i]/sigDigit)%base] = loc
			scratch.Nodes[col][loc] = el.Nodes[col][i]
			scratch.Nodes[1-col][loc] = el.Nodes[1-col][i]
			scratch.ID[loc] = el.ID[i]
		}

		copy(el.Nodes[col], scratch.Nodes[col])
		copy(el.Nodes[1-col], scratch.Nodes[1-col])
		copy(el.ID, scratch.ID)
	}
	return nil
}
