package cli

import (
	"fmt"
	"io"

	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/ui"
)

// DisplayTrace prints the limb walkthrough: the low limb, the high limb
// with its four components, then the expected and actual products in
// decimal and binary.
func DisplayTrace(t limb.Trace, out io.Writer) {
	fmt.Fprintf(out, "l0 expected: %d\n", t.Res0)
	fmt.Fprintf(out, "l1 %d components:\n", t.Res1)
	for _, c := range t.Components() {
		fmt.Fprintf(out, "- %d\n", c)
	}
	fmt.Fprintf(out, "%d %#b\n", t.Expected, t.Expected)
	fmt.Fprintf(out, "%d %#b\n", t.Actual, t.Actual)
}

// DisplayDemo prints a header describing the operands, the walkthrough and
// a verdict line.
func DisplayDemo(t limb.Trace, verbose bool, out io.Writer) {
	lines := []string{
		fmt.Sprintf("a = %d  (hi:lo %s)", t.A, t.ALimbs),
		fmt.Sprintf("b = %d  (hi:lo %s)", t.B, t.BLimbs),
		fmt.Sprintf("checked width: %s bits", t.Width),
	}
	if verbose {
		lines = append(lines,
			fmt.Sprintf("a limbs: %s %s", format.FormatBinary(t.ALimbs.Hi, limb.HighBits), format.FormatBinary(t.ALimbs.Lo, limb.LowBits)),
			fmt.Sprintf("b limbs: %s %s", format.FormatBinary(t.BLimbs.Hi, limb.HighBits), format.FormatBinary(t.BLimbs.Lo, limb.LowBits)),
		)
	}
	fmt.Fprintln(out, ui.HeaderBox("11-bit / 21-bit limb multiplication", lines...))
	fmt.Fprintln(out)

	DisplayTrace(t, out)

	fmt.Fprintln(out)
	if t.OK() {
		fmt.Fprintf(out, "Status: %s\n", ui.StatusStyle(true).Render("OK, actual matches a*b mod 2^"+t.Width.String()))
	} else {
		fmt.Fprintf(out, "Status: %s\n", ui.StatusStyle(false).Render("MISMATCH, actual differs from a*b mod 2^"+t.Width.String()))
	}
}

// DisplayQuietTrace prints only the recombined product.
func DisplayQuietTrace(t limb.Trace, out io.Writer) {
	fmt.Fprintln(out, t.Actual)
}
