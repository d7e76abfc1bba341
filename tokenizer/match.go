package tokenizer

import "slices"

// matcher maps a set of start positions to every position at which the
// pattern can end. Position sets are sorted and free of duplicates.
type matcher func(in *input, from []int) []int

func class(set symbolSet) matcher {
	return func(in *input, from []int) []int {
		var out []int
		for _, p := range from {
			if c, w := in.at(p); w > 0 && set.has(c) {
				out = append(out, p+w)
			}
		}
		return out
	}
}

// lit matches an ASCII literal.
func lit(s string) matcher {
	return func(in *input, from []int) []int {
		var out []int
		for _, p := range from {
			if p+len(s) <= len(in.s) && in.s[p:p+len(s)] == s {
				out = append(out, p+len(s))
			}
		}
		return out
	}
}

func seq(ms ...matcher) matcher {
	return func(in *input, from []int) []int {
		cur := from
		for _, m := range ms {
			if len(cur) == 0 {
				return nil
			}
			cur = m(in, cur)
		}
		return cur
	}
}

func alt(ms ...matcher) matcher {
	return func(in *input, from []int) []int {
		var out []int
		for _, m := range ms {
			out = append(out, m(in, from)...)
		}
		return dedupe(out)
	}
}

func opt(m matcher) matcher {
	return func(in *input, from []int) []int {
		return dedupe(append(slices.Clone(from), m(in, from)...))
	}
}

// star repeats m zero or more times. Every m must consume input.
func star(m matcher) matcher {
	return func(in *input, from []int) []int {
		seen := make(map[int]struct{}, len(from))
		out := make([]int, 0, len(from))
		frontier := from
		for _, p := range from {
			seen[p] = struct{}{}
			out = append(out, p)
		}
		for len(frontier) > 0 {
			var next []int
			for _, p := range m(in, frontier) {
				if _, ok := seen[p]; !ok {
					seen[p] = struct{}{}
					out = append(out, p)
					next = append(next, p)
				}
			}
			frontier = next
		}
		return dedupe(out)
	}
}

func plus(m matcher) matcher {
	return seq(m, star(m))
}

func dedupe(ps []int) []int {
	slices.Sort(ps)
	return slices.Compact(ps)
}
