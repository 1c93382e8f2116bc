package pattern

// A small backtracking interpreter for parsed trees. It gives the restricted
// form an executable meaning in Go, so equivalence with RE2 can be checked
// without a JavaScript engine. Inputs are expected to be short form values.

func matchTree(body *Node, requires []*Node, s string) bool {
	in := []rune(s)
	for _, req := range requires {
		look := &Node{Op: OpConcat, Sub: []*Node{
			{Op: OpRepeat, Min: 0, Max: -1, Sub: []*Node{{Op: OpClass, Negated: true, Items: req.Items}}},
			req,
		}}
		if !matchNode(look, in, 0, func(int) bool { return true }) {
			return false
		}
	}
	if body == nil {
		return true
	}
	return matchNode(body, in, 0, func(end int) bool { return end == len(in) })
}

func matchNode(n *Node, in []rune, i int, k func(int) bool) bool {
	switch n.Op {
	case OpLiteral:
		return i < len(in) && in[i] == n.Rune && k(i+1)
	case OpClass:
		return i < len(in) && n.matchesRune(in[i]) && k(i+1)
	case OpConcat:
		return matchSeq(n.Sub, in, i, k)
	case OpAlternate:
		for _, sub := range n.Sub {
			if matchNode(sub, in, i, k) {
				return true
			}
		}
		return false
	case OpRepeat:
		return matchRepeat(n, in, i, 0, k)
	}
	return false
}

func matchSeq(subs []*Node, in []rune, i int, k func(int) bool) bool {
	if len(subs) == 0 {
		return k(i)
	}
	return matchNode(subs[0], in, i, func(j int) bool {
		return matchSeq(subs[1:], in, j, k)
	})
}

// matchRepeat is greedy. An iteration that consumes nothing once the minimum is
// met ends the loop, which keeps empty-matching bodies from spinning.
func matchRepeat(n *Node, in []rune, i, count int, k func(int) bool) bool {
	if n.Max < 0 || count < n.Max {
		more := matchNode(n.Sub[0], in, i, func(j int) bool {
			if j == i && count >= n.Min {
				return false
			}
			return matchRepeat(n, in, j, count+1, k)
		})
		if more {
			return true
		}
	}
	return count >= n.Min && k(i)
}
