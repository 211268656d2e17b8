package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/markbook/core/distribution"
)

// WriteSummary prints the grade distribution in the console format. The
// failed list is omitted when nobody failed and the trailer is omitted when
// output is empty.
func WriteSummary(w io.Writer, s distribution.Summary, output string) error {
	var b strings.Builder
	b.WriteString("\n===== Grade Distribution =====\n")
	fmt.Fprintf(&b, "First Class: %d\n", s.First)
	fmt.Fprintf(&b, "Second Class: %d\n", s.Second)
	fmt.Fprintf(&b, "Third Class: %d\n", s.Third)
	fmt.Fprintf(&b, "Failed: %d\n", s.Fail)
	if len(s.Failed) > 0 {
		fmt.Fprintf(&b, "Failed Students: %s\n", formatList(s.Failed))
	}
	if output != "" {
		fmt.Fprintf(&b, "\nResults saved in %s.\n", output)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
