package exclusion

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// Describe explains an exclusion set in one sentence. history is the size of
// the history window the rule is evaluated against; pairwise marks the
// variant that only applies exclusions when the last two targets repeat.
func Describe(exclusions []int, history int, pairwise bool) string {
	offsets := slices.Clone(exclusions)
	slices.Sort(offsets)
	offsets = slices.Compact(offsets)
	if len(offsets) == 0 {
		return "The next target will be chosen randomly."
	}

	var b strings.Builder
	b.WriteString("The next chosen target cannot be")

	if offsets[0] == 0 {
		offsets = offsets[1:]
		if len(offsets) > 0 {
			b.WriteString(" the same or")
		} else {
			b.WriteString(" the same as")
		}
	}

	if len(offsets) > 0 {
		words := make([]string, len(offsets))
		for i, k := range offsets {
			words[i] = strconv.Itoa(k)
		}
		fmt.Fprintf(&b, " %s %s away from", listify(words, "or"), plural("place", offsets[len(offsets)-1]))
	}

	if pairwise || history <= 0 {
		history = 2
	}
	if history > 1 {
		fmt.Fprintf(&b, " the last %d chosen targets", history)
	} else {
		b.WriteString(" the previously chosen target")
	}
	if pairwise {
		b.WriteString(" (provided both previous targets were the same)")
	}
	b.WriteByte('.')
	return b.String()
}

// Randomize draws a random exclusion set for n targets: between 1 and n-2
// distinct offsets from 1..n-2. Fewer than three targets yield no
// exclusions, since any exclusion would make some target unreachable.
func Randomize(rng *rand.Rand, n int) []int {
	if n < 3 {
		return nil
	}
	candidates := make([]int, n-2)
	for i := range candidates {
		candidates[i] = i + 1
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	size := 1 + rng.IntN(n-2)
	out := candidates[:size]
	slices.Sort(out)
	return out
}

func listify(words []string, final string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}
	return strings.Join(words[:len(words)-1], ", ") + " " + final + " " + words[len(words)-1]
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
