package llvmgen

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// irFixtures snapshot the full emitted module for representative programs,
// catching accidental formatting or instruction-ordering drift that a
// substring assertion would miss.
var irFixtures = []struct {
	name   string
	source string
}{
	{
		name: "fibonacci_function",
		source: `def fib(n):
    if n < 2:
        return n
    return fib(n - 1) + fib(n - 2)
print(fib(10))
`,
	},
	{
		name: "array_sum_for_loop",
		source: `arr = [1, 2, 3, 4, 5]
s = 0
for i = 0; i < len(arr); i = i + 1:
    s = s + arr[i]
print(s)
`,
	},
}

func TestEmitIRFixtures(t *testing.T) {
	for _, tc := range irFixtures {
		t.Run(tc.name, func(t *testing.T) {
			ir := emitOK(t, tc.source)
			snaps.MatchSnapshot(t, ir)
		})
	}
}
