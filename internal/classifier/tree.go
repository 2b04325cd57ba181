package classifier

import (
	"math/rand"
	"slices"
)

// leaf marks a terminal node.
const leaf = -1

// Node is one node of a flattened decision tree. Internal nodes send
// x[Feature] <= Threshold to Left and everything else to Right; leaves carry
// class probabilities in Value.
type Node struct {
	Feature   int       `json:"f"`
	Threshold float64   `json:"t,omitempty"`
	Left      int       `json:"l,omitempty"`
	Right     int       `json:"r,omitempty"`
	Value     []float64 `json:"v,omitempty"`
}

// Tree is a CART classification tree stored as a node slice rooted at 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) predict(x []float64) []float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Feature == leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// grower builds one tree with Gini splits, growing until leaves are pure.
type grower struct {
	x           [][]float64
	y           []int
	classes     int
	maxFeatures int
	rng         *rand.Rand
	nodes       []Node
}

func growTree(x [][]float64, y []int, sample []int, classes, maxFeatures int, rng *rand.Rand) Tree {
	g := &grower{x: x, y: y, classes: classes, maxFeatures: maxFeatures, rng: rng}
	g.build(sample)
	return Tree{Nodes: g.nodes}
}

func (g *grower) build(idx []int) int {
	counts := make([]int, g.classes)
	for _, i := range idx {
		counts[g.y[i]]++
	}

	if len(idx) < 2 || isPure(counts) {
		return g.leaf(counts, len(idx))
	}

	feature, threshold, ok := g.bestSplit(idx)
	if !ok {
		return g.leaf(counts, len(idx))
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if g.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	at := len(g.nodes)
	g.nodes = append(g.nodes, Node{Feature: feature, Threshold: threshold})
	l := g.build(left)
	r := g.build(right)
	g.nodes[at].Left = l
	g.nodes[at].Right = r
	return at
}

func (g *grower) leaf(counts []int, n int) int {
	value := make([]float64, g.classes)
	for c, k := range counts {
		value[c] = float64(k) / float64(n)
	}
	g.nodes = append(g.nodes, Node{Feature: leaf, Value: value})
	return len(g.nodes) - 1
}

// bestSplit draws maxFeatures candidate features and keeps drawing past that
// only while none of the drawn features can split the node.
func (g *grower) bestSplit(idx []int) (int, float64, bool) {
	order := g.rng.Perm(len(g.x[0]))

	bestFeature, bestThreshold, bestScore := 0, 0.0, -1.0
	found := false
	for k, f := range order {
		if k >= g.maxFeatures && found {
			break
		}
		threshold, score, ok := g.splitOn(idx, f)
		if ok && score > bestScore {
			bestFeature, bestThreshold, bestScore = f, threshold, score
			found = true
		}
	}
	return bestFeature, bestThreshold, found
}

// splitOn scans the sorted values of one feature and returns the midpoint
// threshold maximizing sum(cL^2)/nL + sum(cR^2)/nR, which minimizes the
// weighted Gini impurity of the children.
func (g *grower) splitOn(idx []int, f int) (float64, float64, bool) {
	sorted := slices.Clone(idx)
	slices.SortFunc(sorted, func(a, b int) int {
		switch va, vb := g.x[a][f], g.x[b][f]; {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		return 0
	})

	n := len(sorted)
	left := make([]int, g.classes)
	right := make([]int, g.classes)
	for _, i := range sorted {
		right[g.y[i]]++
	}

	bestThreshold, bestScore := 0.0, -1.0
	found := false
	for pos := 0; pos < n-1; pos++ {
		c := g.y[sorted[pos]]
		left[c]++
		right[c]--

		lo, hi := g.x[sorted[pos]][f], g.x[sorted[pos+1]][f]
		if lo == hi {
			continue
		}

		score := sumSquares(left)/float64(pos+1) + sumSquares(right)/float64(n-pos-1)
		if score > bestScore {
			threshold := lo + (hi-lo)/2
			if threshold >= hi {
				threshold = lo
			}
			bestThreshold, bestScore = threshold, score
			found = true
		}
	}
	return bestThreshold, bestScore, found
}

func sumSquares(counts []int) float64 {
	s := 0
	for _, c := range counts {
		s += c * c
	}
	return float64(s)
}

func isPure(counts []int) bool {
	seen := false
	for _, c := range counts {
		if c == 0 {
			continue
		}
		if seen {
			return false
		}
		seen = true
	}
	return true
}
