package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a rendered tree.
type TreeItem struct {
	Title  string
	ID     string
	Level  int
	IsLast bool
	// Open holds, for each ancestor below the root, whether it still has
	// siblings after it; open ancestors draw a vertical guide.
	Open   []bool
	Status domain.Status
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// Finished items are dimmed behind a green check, in-progress ones are bold
// amber, and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	badges := make([]string, len(items))
	maxWidth := 0

	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 0; i < item.Level-1; i++ {
				if i < len(item.Open) && item.Open[i] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		marker := ""
		switch item.Status {
		case domain.StatusConcluido:
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		case domain.StatusEmAndamento:
			marker = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		case domain.StatusCancelado:
			marker = StyleDim.Render("✖ ")
			title = Dim(title)
		}
		if item.ID != "" {
			title += " " + TruncID(item.ID)
		}

		contents[idx] = StyleDim.Render(prefix.String()) + marker + title
		if item.Detail != "" {
			badges[idx] = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		maxWidth = max(maxWidth, lipgloss.Width(contents[idx]))
	}

	var b strings.Builder
	for i, content := range contents {
		b.WriteString(content)
		if badges[i] != "" {
			b.WriteString(strings.Repeat(" ", maxWidth-lipgloss.Width(content)) + "  " + badges[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}
