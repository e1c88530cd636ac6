package awards

import (
	"fmt"
	"strings"
)

// Markdown renders the award list as a markdown table for terminal output.
func Markdown(seasonLabel string, list []Award) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Season %s awards\n\n", seasonLabel)
	b.WriteString("| Award | Team | For | Value |\n|---|---|---|---|\n")
	for _, a := range list {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", cell(a.Title), cell(a.Team), cell(a.Reason), cell(a.Value))
	}
	return b.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
