package cli

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lmgraph/pkg/landmarks"
	"github.com/matzehuels/lmgraph/pkg/sccs"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listCyclicStyle   = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Browse items
// =============================================================================

// browseEdge is one ordering seen from a landmark.
type browseEdge struct {
	ID    int
	Label string
	Type  landmarks.EdgeType
}

// browseItem is a landmark flattened for display.
type browseItem struct {
	ID       int
	Label    string
	Kind     landmarks.Kind
	Goal     bool
	SCC      int
	Cyclic   bool
	Parents  []browseEdge
	Children []browseEdge
}

// browseItems flattens g in id order. Ids must be fresh.
func browseItems(g *landmarks.Graph, names landmarks.FactNamer) []browseItem {
	_, succ := g.Adjacency()
	comps := sccs.Compute(succ)
	compOf := sccs.ComponentIndex(comps, len(succ))
	cyclic := make([]bool, len(comps))
	for k, c := range comps {
		cyclic[k] = sccs.IsCyclic(succ, c)
	}

	edges := func(seq iter.Seq2[landmarks.Handle, landmarks.EdgeType]) []browseEdge {
		var out []browseEdge
		for h, t := range seq {
			other, ok := g.Node(h)
			if !ok {
				continue
			}
			out = append(out, browseEdge{ID: other.ID(), Label: other.Landmark().Label(names), Type: t})
		}
		slices.SortFunc(out, func(a, b browseEdge) int { return cmp.Compare(a.ID, b.ID) })
		return out
	}

	items := make([]browseItem, 0, g.NumLandmarks())
	for id := range g.NumLandmarks() {
		n, ok := g.NodeByID(id)
		if !ok {
			break
		}
		items = append(items, browseItem{
			ID:       id,
			Label:    n.Landmark().Label(names),
			Kind:     n.Kind(),
			Goal:     n.Landmark().TrueInGoal(),
			SCC:      compOf[id],
			Cyclic:   cyclic[compOf[id]],
			Parents:  edges(n.Parents()),
			Children: edges(n.Children()),
		})
	}
	return items
}

// =============================================================================
// LandmarkListModel - Interactive landmark browser
// =============================================================================

// LandmarkListModel is the bubbletea model for `lmgraph browse`.
type LandmarkListModel struct {
	Items  []browseItem
	Cursor int
	Height int
	Offset int
}

// NewLandmarkListModel creates a browser over items.
func NewLandmarkListModel(items []browseItem) LandmarkListModel {
	return LandmarkListModel{Items: items, Height: 12}
}

func (m LandmarkListModel) Init() tea.Cmd {
	return nil
}

func (m LandmarkListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveTo(m.Cursor - 1)
		case "down", "j":
			m = m.moveTo(m.Cursor + 1)
		case "home", "g":
			m = m.moveTo(0)
		case "end", "G":
			m = m.moveTo(len(m.Items) - 1)
		case "p":
			if len(m.Items) > 0 && len(m.Items[m.Cursor].Parents) > 0 {
				m = m.moveTo(m.Items[m.Cursor].Parents[0].ID)
			}
		case "c":
			if len(m.Items) > 0 && len(m.Items[m.Cursor].Children) > 0 {
				m = m.moveTo(m.Items[m.Cursor].Children[0].ID)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height/2 - 4
		if m.Height < 5 {
			m.Height = 5
		}
		m = m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor on i, clamped to the list, and scrolls it into view.
func (m LandmarkListModel) moveTo(i int) LandmarkListModel {
	if len(m.Items) == 0 {
		return m
	}
	m.Cursor = max(0, min(i, len(m.Items)-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m LandmarkListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Landmarks"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  p parent  c child  q quit"))
	b.WriteString("\n\n")

	if len(m.Items) == 0 {
		b.WriteString(listDimStyle.Render("  (empty graph)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Items))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		goal := ""
		if it.Goal {
			goal = "✓"
		}
		rows = append(rows, []string{cursor, strconv.Itoa(it.ID), it.Kind.String(), goal, strconv.Itoa(it.SCC), it.Label})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Kind", "Goal", "SCC", "Landmark").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case col == 4 && m.Items[idx].Cyclic:
				return listCyclicStyle
			case col == 5:
				return listNormalStyle
			}
			return listDimStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))
	b.WriteString("\n\n")
	b.WriteString(m.detail(m.Items[m.Cursor]))
	return b.String()
}

// detail renders the orderings around it.
func (m LandmarkListModel) detail(it browseItem) string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("#%d %s", it.ID, it.Label)))
	if it.Cyclic {
		b.WriteString(" " + listCyclicStyle.Render(fmt.Sprintf("(cyclic scc %d)", it.SCC)))
	}
	b.WriteString("\n")
	writeEdges := func(title, arrow string, edges []browseEdge) {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%s (%d)", title, len(edges))))
		b.WriteString("\n")
		for _, e := range edges {
			fmt.Fprintf(&b, "  %s %s %s\n",
				StyleDim.Render(arrow),
				listNormalStyle.Render(fmt.Sprintf("#%d %s", e.ID, e.Label)),
				renderEdgeType(e.Type))
		}
	}
	writeEdges("parents", "←", it.Parents)
	writeEdges("children", "→", it.Children)
	return b.String()
}
