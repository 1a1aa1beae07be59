package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/rollup"
)

// TreeItems flattens a scope tree into render order.
func TreeItems(tree *domain.TreeNode) []TreeItem {
	var items []TreeItem
	var walk func(tn *domain.TreeNode, depth int, last bool, open []bool)
	walk = func(tn *domain.TreeNode, depth int, last bool, open []bool) {
		items = append(items, TreeItem{
			Title:  tn.Node.Name,
			ID:     tn.Node.ID,
			Level:  depth,
			IsLast: last,
			Open:   open,
			Status: tn.Node.Status,
			Detail: nodeDetail(tn.Node),
		})
		childOpen := open
		if depth > 0 {
			childOpen = append(append([]bool(nil), open...), !last)
		}
		for i, c := range tn.Children {
			walk(c, depth+1, i == len(tn.Children)-1, childOpen)
		}
	}
	walk(tree, 0, true, nil)
	return items
}

func nodeDetail(n *domain.Node) string {
	var parts []string
	if n.TypeID != "" {
		parts = append(parts, n.TypeID)
	}
	if n.EstimatedHours != nil || n.WorkedHours != nil {
		worked := domain.Float64FromPtrWithDefault(0, n.WorkedHours)
		est := domain.Float64FromPtrWithDefault(0, n.EstimatedHours)
		parts = append(parts, FormatHours(worked)+"/"+FormatHours(est))
	}
	if n.TargetDate != nil {
		parts = append(parts, "até "+n.TargetDate.Format(domain.DateLayout))
	}
	return strings.Join(parts, " · ")
}

// FormatTree renders a functional scope and its four levels.
func FormatTree(tree *domain.TreeNode) string {
	return RenderTree(TreeItems(tree))
}

// FormatNodeList renders sibling nodes of one level as a table.
func FormatNodeList(level domain.Level, nodes []*domain.Node) string {
	headers := []string{"ID", "NOME", "STATUS", "ORDEM", "DATAS"}
	spec := level.Spec()
	if spec.Typed {
		headers = append(headers, "TIPO")
	}
	if spec.Hours {
		headers = append(headers, "HORAS")
	}

	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		row := []string{
			TruncID(n.ID),
			Bold(n.Name),
			StatusPill(n.Status),
			fmt.Sprint(n.Order),
			FormatRange(n.StartDate, n.TargetDate),
		}
		if spec.Typed {
			row = append(row, StylePurple.Render(n.TypeID))
		}
		if spec.Hours {
			row = append(row, nodeDetail(&domain.Node{EstimatedHours: n.EstimatedHours, WorkedHours: n.WorkedHours}))
		}
		rows = append(rows, row)
	}
	return Table{Headers: headers, Rows: rows, Right: []int{3}}.Render()
}

// FormatNode renders a single node's fields.
func FormatNode(n *domain.Node) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim(fmt.Sprintf("%-9s", label)), value))
	}

	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(n.Name), Dim(n.Level.String())))
	line("ID", n.ID)
	line("PARENT", Dim(n.Level.Spec().ParentColumn+" ")+n.ParentID)
	line("STATUS", StatusPill(n.Status))
	line("ORDEM", fmt.Sprint(n.Order))
	line("DATAS", FormatRange(n.StartDate, n.TargetDate))
	if n.TypeID != "" {
		line("TIPO", StylePurple.Render(n.TypeID))
	}
	if n.Level.Spec().Hours {
		est := domain.Float64FromPtrWithDefault(0, n.EstimatedHours)
		worked := domain.Float64FromPtrWithDefault(0, n.WorkedHours)
		line("HORAS", fmt.Sprintf("%s / %s", FormatHours(worked), FormatHours(est)))
	}
	if n.Description != "" {
		b.WriteString("\n  " + n.Description + "\n")
	}
	return b.String()
}

// FormatSummary renders a rollup with one row per category.
func FormatSummary(title string, s rollup.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", RenderProgress(s.Progress, 20),
		Dim(fmt.Sprintf("%s of %s", FormatHours(s.WorkedHoursTotal), FormatHours(s.EstimatedHoursTotal)))))

	statuses := []domain.Status{domain.StatusPlanejado, domain.StatusEmAndamento, domain.StatusConcluido, domain.StatusCancelado}
	var counts []string
	for _, st := range statuses {
		counts = append(counts, fmt.Sprintf("%s %d", StatusPill(st), s.ByStatus[st]))
	}
	b.WriteString(fmt.Sprintf("%d items  %s\n\n", s.Total, strings.Join(counts, "  ")))

	rows := make([][]string, 0, len(s.ByCategory))
	for _, name := range s.Categories() {
		c := s.ByCategory[name]
		rows = append(rows, []string{
			StylePurple.Render(name),
			fmt.Sprint(c.Count),
			fmt.Sprint(c.Completed),
			FormatHours(c.EstimatedHours),
			FormatHours(c.WorkedHours),
		})
	}
	if len(rows) > 0 {
		b.WriteString(Table{
			Headers: []string{"TIPO", "ITENS", "CONCLUÍDOS", "ESTIMADAS", "TRABALHADAS"},
			Rows:    rows,
			Right:   []int{1, 2, 3, 4},
		}.Render())
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}
