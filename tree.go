package arcade

import (
	"cmp"
	"math"
	"slices"
)

// treeBBox is an axis-aligned box in min/max form.
type treeBBox struct {
	minX, minY, maxX, maxY float64
}

func emptyBBox() treeBBox {
	return treeBBox{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
}

func bodyBBox(b *Body) treeBBox {
	return treeBBox{minX: b.Left(), minY: b.Top(), maxX: b.Right(), maxY: b.Bottom()}
}

func rectBBox(r Rect) treeBBox {
	return treeBBox{minX: r.X, minY: r.Y, maxX: r.Right(), maxY: r.Bottom()}
}

func (a *treeBBox) extend(b treeBBox) {
	a.minX = math.Min(a.minX, b.minX)
	a.minY = math.Min(a.minY, b.minY)
	a.maxX = math.Max(a.maxX, b.maxX)
	a.maxY = math.Max(a.maxY, b.maxY)
}

func (a treeBBox) area() float64 {
	return (a.maxX - a.minX) * (a.maxY - a.minY)
}

func (a treeBBox) margin() float64 {
	return (a.maxX - a.minX) + (a.maxY - a.minY)
}

func (a treeBBox) enlargedArea(b treeBBox) float64 {
	return (math.Max(b.maxX, a.maxX) - math.Min(b.minX, a.minX)) *
		(math.Max(b.maxY, a.maxY) - math.Min(b.minY, a.minY))
}

func (a treeBBox) intersectionArea(b treeBBox) float64 {
	minX := math.Max(a.minX, b.minX)
	minY := math.Max(a.minY, b.minY)
	maxX := math.Min(a.maxX, b.maxX)
	maxY := math.Min(a.maxY, b.maxY)
	return math.Max(0, maxX-minX) * math.Max(0, maxY-minY)
}

func (a treeBBox) contains(b treeBBox) bool {
	return a.minX <= b.minX && a.minY <= b.minY && b.maxX <= a.maxX && b.maxY <= a.maxY
}

func (a treeBBox) intersects(b treeBBox) bool {
	return b.minX <= a.maxX && b.minY <= a.maxY && b.maxX >= a.minX && b.maxY >= a.minY
}

// treeNode is either an inner node, a leaf node (whose children are item
// entries) or an item entry (body != nil).
type treeNode struct {
	treeBBox
	children []*treeNode
	body     *Body
	height   int
	leaf     bool
}

func newTreeNode(children []*treeNode) *treeNode {
	return &treeNode{treeBBox: emptyBBox(), children: children, height: 1, leaf: true}
}

// calcBBox recomputes the node's box from its children.
func (n *treeNode) calcBBox() {
	n.distBBox(0, len(n.children), n)
}

// distBBox computes the box of children[k:p] into dst.
func (n *treeNode) distBBox(k, p int, dst *treeNode) {
	dst.treeBBox = emptyBBox()
	for i := k; i < p; i++ {
		dst.extend(n.children[i].treeBBox)
	}
}

func compareMinX(a, b *treeNode) int { return cmp.Compare(a.minX, b.minX) }
func compareMinY(a, b *treeNode) int { return cmp.Compare(a.minY, b.minY) }

// rtree is an R-tree of bodies using the R*-style split heuristics and OMT
// bulk loading of rbush. Each body's indexed box is cached on the body so it
// can be removed after it moved.
type rtree struct {
	maxEntries int
	minEntries int
	root       *treeNode
}

func newRTree(maxEntries int) *rtree {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	t := &rtree{maxEntries: max(4, maxEntries)}
	t.minEntries = max(2, int(math.Ceil(float64(t.maxEntries)*0.4)))
	t.Clear()
	return t
}

// Clear removes every body.
func (t *rtree) Clear() {
	t.root = newTreeNode(nil)
}

// Len returns the number of indexed bodies.
func (t *rtree) Len() int {
	return len(t.appendAll(nil, t.root))
}

// All returns every indexed body.
func (t *rtree) All() []*Body {
	return t.appendAll(nil, t.root)
}

// Search returns every body whose box intersects r. Touching edges count.
func (t *rtree) Search(r Rect) []*Body {
	return t.appendSearch(nil, rectBBox(r))
}

func (t *rtree) appendSearch(dst []*Body, bb treeBBox) []*Body {
	node := t.root
	if !bb.intersects(node.treeBBox) {
		return dst
	}
	var stack []*treeNode
	for node != nil {
		for _, child := range node.children {
			if !bb.intersects(child.treeBBox) {
				continue
			}
			switch {
			case node.leaf:
				dst = append(dst, child.body)
			case bb.contains(child.treeBBox):
				dst = t.appendAll(dst, child)
			default:
				stack = append(stack, child)
			}
		}
		node = nil
		if n := len(stack); n > 0 {
			node = stack[n-1]
			stack = stack[:n-1]
		}
	}
	return dst
}

func (t *rtree) appendAll(dst []*Body, node *treeNode) []*Body {
	var stack []*treeNode
	for node != nil {
		if node.leaf {
			for _, c := range node.children {
				dst = append(dst, c.body)
			}
		} else {
			stack = append(stack, node.children...)
		}
		node = nil
		if n := len(stack); n > 0 {
			node = stack[n-1]
			stack = stack[:n-1]
		}
	}
	return dst
}

// Insert adds one body.
func (t *rtree) Insert(b *Body) {
	item := &treeNode{treeBBox: bodyBBox(b), body: b}
	b.treeBox = item.treeBBox
	t.insert(item, t.root.height-1)
}

// Load bulk-inserts bodies. Loading into an empty tree builds it in one pass.
func (t *rtree) Load(bodies []*Body) {
	if len(bodies) == 0 {
		return
	}
	if len(bodies) < t.minEntries {
		for _, b := range bodies {
			t.Insert(b)
		}
		return
	}

	items := make([]*treeNode, len(bodies))
	for i, b := range bodies {
		b.treeBox = bodyBBox(b)
		items[i] = &treeNode{treeBBox: b.treeBox, body: b}
	}
	node := t.build(items, 0, len(items)-1, 0)

	switch {
	case len(t.root.children) == 0:
		t.root = node
	case t.root.height == node.height:
		t.splitRoot(t.root, node)
	default:
		if t.root.height < node.height {
			t.root, node = node, t.root
		}
		t.insert(node, t.root.height-node.height-1)
	}
}

// Remove deletes b using the box it was indexed with. Returns false if b was
// not in the tree.
func (t *rtree) Remove(b *Body) bool {
	bb := b.treeBox
	node := t.root
	var (
		path    []*treeNode
		indexes []int
		parent  *treeNode
		i       int
		goingUp bool
	)

	for node != nil || len(path) > 0 {
		if node == nil {
			node = path[len(path)-1]
			path = path[:len(path)-1]
			parent = nil
			if len(path) > 0 {
				parent = path[len(path)-1]
			}
			i = indexes[len(indexes)-1]
			indexes = indexes[:len(indexes)-1]
			goingUp = true
		}

		if node.leaf {
			for j, c := range node.children {
				if c.body == b {
					node.children = slices.Delete(node.children, j, j+1)
					path = append(path, node)
					t.condense(path)
					return true
				}
			}
		}

		switch {
		case !goingUp && !node.leaf && node.contains(bb):
			path = append(path, node)
			indexes = append(indexes, i)
			i = 0
			parent = node
			node = node.children[0]
		case parent != nil:
			i++
			node = nil
			if i < len(parent.children) {
				node = parent.children[i]
			}
			goingUp = false
		default:
			node = nil
		}
	}
	return false
}

func (t *rtree) build(items []*treeNode, left, right, height int) *treeNode {
	n := right - left + 1
	m := t.maxEntries

	if n <= m {
		node := newTreeNode(slices.Clone(items[left : right+1]))
		node.calcBBox()
		return node
	}

	if height == 0 {
		height = int(math.Ceil(math.Log(float64(n)) / math.Log(float64(m))))
		m = int(math.Ceil(float64(n) / math.Pow(float64(m), float64(height-1))))
	}

	node := newTreeNode(nil)
	node.leaf = false
	node.height = height

	n2 := int(math.Ceil(float64(n) / float64(m)))
	n1 := n2 * int(math.Ceil(math.Sqrt(float64(m))))

	slices.SortStableFunc(items[left:right+1], compareMinX)
	for i := left; i <= right; i += n1 {
		right2 := min(i+n1-1, right)
		slices.SortStableFunc(items[i:right2+1], compareMinY)
		for j := i; j <= right2; j += n2 {
			right3 := min(j+n2-1, right2)
			node.children = append(node.children, t.build(items, j, right3, height-1))
		}
	}
	node.calcBBox()
	return node
}

func (t *rtree) chooseSubtree(bb treeBBox, node *treeNode, level int, path []*treeNode) (*treeNode, []*treeNode) {
	for {
		path = append(path, node)
		if node.leaf || len(path)-1 == level {
			return node, path
		}

		minArea := math.Inf(1)
		minEnlargement := math.Inf(1)
		var target *treeNode
		for _, child := range node.children {
			area := child.area()
			enlargement := bb.enlargedArea(child.treeBBox) - area
			if enlargement < minEnlargement {
				minEnlargement = enlargement
				minArea = math.Min(area, minArea)
				target = child
			} else if enlargement == minEnlargement && area < minArea {
				minArea = area
				target = child
			}
		}
		if target == nil {
			target = node.children[0]
		}
		node = target
	}
}

func (t *rtree) insert(item *treeNode, level int) {
	node, path := t.chooseSubtree(item.treeBBox, t.root, level, nil)
	node.children = append(node.children, item)
	node.extend(item.treeBBox)

	for level >= 0 {
		if len(path[level].children) <= t.maxEntries {
			break
		}
		t.split(path, level)
		level--
	}

	for i := level; i >= 0; i-- {
		path[i].extend(item.treeBBox)
	}
}

func (t *rtree) split(path []*treeNode, level int) {
	node := path[level]
	total := len(node.children)
	m := t.minEntries

	t.chooseSplitAxis(node, m, total)
	idx := t.chooseSplitIndex(node, m, total)

	sibling := newTreeNode(slices.Clone(node.children[idx:]))
	clear(node.children[idx:])
	node.children = node.children[:idx]
	sibling.height = node.height
	sibling.leaf = node.leaf

	node.calcBBox()
	sibling.calcBBox()

	if level > 0 {
		path[level-1].children = append(path[level-1].children, sibling)
	} else {
		t.splitRoot(node, sibling)
	}
}

func (t *rtree) splitRoot(node, sibling *treeNode) {
	t.root = newTreeNode([]*treeNode{node, sibling})
	t.root.height = node.height + 1
	t.root.leaf = false
	t.root.calcBBox()
}

func (t *rtree) chooseSplitIndex(node *treeNode, m, total int) int {
	index := 0
	minOverlap := math.Inf(1)
	minArea := math.Inf(1)
	var b1, b2 treeNode

	for i := m; i <= total-m; i++ {
		node.distBBox(0, i, &b1)
		node.distBBox(i, total, &b2)

		overlap := b1.intersectionArea(b2.treeBBox)
		area := b1.area() + b2.area()

		if overlap < minOverlap {
			minOverlap = overlap
			index = i
			minArea = math.Min(area, minArea)
		} else if overlap == minOverlap && area < minArea {
			minArea = area
			index = i
		}
	}
	if index == 0 {
		return total - m
	}
	return index
}

// chooseSplitAxis sorts the node's children along the axis with the smaller
// total split margin.
func (t *rtree) chooseSplitAxis(node *treeNode, m, total int) {
	xMargin := t.allDistMargin(node, m, total, compareMinX)
	yMargin := t.allDistMargin(node, m, total, compareMinY)
	if xMargin < yMargin {
		slices.SortStableFunc(node.children, compareMinX)
	}
}

func (t *rtree) allDistMargin(node *treeNode, m, total int, compare func(a, b *treeNode) int) float64 {
	slices.SortStableFunc(node.children, compare)

	var left, right treeNode
	node.distBBox(0, m, &left)
	node.distBBox(total-m, total, &right)
	margin := left.margin() + right.margin()

	for i := m; i < total-m; i++ {
		left.extend(node.children[i].treeBBox)
		margin += left.margin()
	}
	for i := total - m - 1; i >= m; i-- {
		right.extend(node.children[i].treeBBox)
		margin += right.margin()
	}
	return margin
}

// condense drops empty nodes along path and refits the rest.
func (t *rtree) condense(path []*treeNode) {
	for i := len(path) - 1; i >= 0; i-- {
		if len(path[i].children) > 0 {
			path[i].calcBBox()
			continue
		}
		if i == 0 {
			t.Clear()
			continue
		}
		siblings := path[i-1].children
		if j := slices.Index(siblings, path[i]); j >= 0 {
			path[i-1].children = slices.Delete(siblings, j, j+1)
		}
	}
}
