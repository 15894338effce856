package interp

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// stdoutFixtures are longer example programs snapshotted end to end rather
// than asserted line by line, covering recursion, loops, and every
// collection kind exercising their methods together in one run.
var stdoutFixtures = []struct {
	name   string
	source string
}{
	{
		name: "fibonacci_sequence",
		source: `def fib(n):
    if n < 2:
        return n
    return fib(n - 1) + fib(n - 2)

for i = 0; i < 10; i = i + 1:
    print(fib(i))
`,
	},
	{
		name: "collections_pipeline",
		source: `parts = "3 1 2".split(" ")
nums = []
for i = 0; i < len(parts); i = i + 1:
    nums.push(int(parts[i]))
nums.sort()
print(nums)

m = Map()
m.set("a", 1)
m.set("b", 2)
print(m.get("a"))
print(m.get("b"))
print(m.has("c"))

s = {1, 2, 2, 3}
print(len(s))
s.add(4)
print(s.has(4))
`,
	},
}

func TestInterpreterStdoutFixtures(t *testing.T) {
	for _, tc := range stdoutFixtures {
		t.Run(tc.name, func(t *testing.T) {
			result, out := run(t, tc.source)
			requireNotError(t, result)
			snaps.MatchSnapshot(t, out)
		})
	}
}
