package mappaint

import (
	"strings"
)

// LegendText renders legend entries as tab-separated "color<TAB>label"
// lines, one per entry. It is the plain-text legend form used by the CLI
// and handy for piping into other tools.
func LegendText(entries []LegendEntry) string {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(HexString(entry.Color))
		sb.WriteString("\t")
		sb.WriteString(entry.Label)
		sb.WriteString("\n")
	}

	return sb.String()
}
