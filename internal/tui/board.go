package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xavierca1/lintra-console/internal/usecase"
)

const frameInterval = 16 * time.Millisecond

type syncDoneMsg struct {
	dealID string
	err    error
}

type frameMsg struct{}

type loadedMsg struct{ err error }

// Loader recarrega os dados do quadro.
type Loader func(ctx context.Context) error

// BoardModel is the keyboard driven Kanban board. Space picks a card up and drops it
// on the focused column; the move is applied at once and synced in the background.
type BoardModel struct {
	ctx    context.Context
	board  *usecase.Board
	load   Loader
	styles Styles

	width, height int
	col, row      int
	dragCol       int
	scroller      usecase.AutoScroller

	pending int
	status  string
	err     string
}

func NewBoardModel(ctx context.Context, board *usecase.Board, load Loader) BoardModel {
	return BoardModel{
		ctx:     ctx,
		board:   board,
		load:    load,
		styles:  DefaultStyles(),
		dragCol: -1,
		width:   columnWidth * 3,
		// meia coluna de margem, uma coluna por quadro
		scroller: usecase.AutoScroller{EdgeSize: columnWidth / 2, Speed: columnWidth},
	}
}

func (m BoardModel) Init() tea.Cmd {
	return m.reload()
}

func (m BoardModel) reload() tea.Cmd {
	if m.load == nil {
		return nil
	}
	ctx, load := m.ctx, m.load
	return func() tea.Msg { return loadedMsg{err: load(ctx)} }
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampScroll()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.status = "Quadro atualizado"
		}
		m.clampCursor()
		return m, nil

	case syncDoneMsg:
		m.pending--
		if msg.err != nil {
			m.err = msg.err.Error()
			m.status = ""
		} else {
			m.err = ""
			m.status = "Movimento sincronizado"
		}
		m.clampCursor()
		return m, nil

	case frameMsg:
		if m.dragCol < 0 {
			m.scroller.Stop()
			return m, nil
		}
		if m.scroller.Step(m.pointerX(), 0, m.width) != 0 {
			return m, frame()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.board.Columns()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < len(cols)-1 {
			m.col++
		}
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.col < len(cols) && m.row < len(cols[m.col].Deals)-1 {
			m.row++
		}
	case "esc":
		m.board.CancelDrag()
		m.dragCol = -1
		m.scroller.Stop()
		m.status = "Arraste cancelado"
	case "r":
		return m, m.reload()
	case " ", "enter":
		return m.toggleDrag(cols)
	}
	if m.dragCol < 0 {
		m.clampCursor()
		return m, nil
	}
	// arrastando: rola quando o cursor encosta na borda
	if m.scroller.Step(m.pointerX(), 0, m.width) != 0 {
		return m, frame()
	}
	return m, nil
}

func (m BoardModel) toggleDrag(cols []usecase.Column) (tea.Model, tea.Cmd) {
	if m.col >= len(cols) {
		return m, nil
	}
	if m.dragCol < 0 {
		deals := cols[m.col].Deals
		if m.row >= len(deals) {
			return m, nil
		}
		if err := m.board.BeginDrag(deals[m.row].ID, cols[m.col].Stage.ID); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.dragCol = m.col
		m.err = ""
		m.status = "Arrastando " + deals[m.row].Title
		return m, nil
	}

	m.dragCol = -1
	m.scroller.Stop()
	t, err := m.board.Drop(cols[m.col].Stage.ID)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	if t == nil {
		m.status = ""
		return m, nil
	}
	m.pending++
	m.status = "Sincronizando..."
	ctx := m.ctx
	return m, func() tea.Msg {
		return syncDoneMsg{dealID: t.DealID(), err: t.Sync(ctx)}
	}
}

// pointerX é a posição horizontal do centro da coluna focada na tela.
func (m *BoardModel) pointerX() int {
	m.clampScroll()
	return m.col*columnWidth + columnWidth/2 - m.scroller.Offset
}

func (m *BoardModel) clampScroll() {
	n := len(m.board.Columns())
	m.scroller.MaxOffset = n*columnWidth - m.width
	if m.scroller.MaxOffset < 0 {
		m.scroller.MaxOffset = 0
	}
	if m.scroller.Offset > m.scroller.MaxOffset {
		m.scroller.Offset = m.scroller.MaxOffset
	}
}

func (m *BoardModel) clampCursor() {
	cols := m.board.Columns()
	if m.col >= len(cols) {
		m.col = len(cols) - 1
	}
	if m.col < 0 {
		m.col = 0
		m.row = 0
		return
	}
	if n := len(cols[m.col].Deals); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m BoardModel) View() string {
	f, ok := m.board.Store().ActiveFunnel()
	if !ok {
		return m.styles.Muted.Render("Nenhum funil selecionado. Pressione r para recarregar, q para sair.")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(f.Name))
	b.WriteString("\n\n")

	cols := m.board.Columns()
	first := m.scroller.Offset / columnWidth
	var rendered []string
	for i := first; i < len(cols); i++ {
		rendered = append(rendered, m.renderColumn(i, cols[i]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(m.styles.Error.Render(m.err))
	} else if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
	}
	if m.pending > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  (%d pendente(s))", m.pending)))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("←/→ coluna  ↑/↓ card  espaço pegar/soltar  esc cancelar  r recarregar  q sair"))
	return b.String()
}

func (m BoardModel) renderColumn(i int, col usecase.Column) string {
	draggedID, _, dragging := m.board.Dragging()

	lines := []string{
		stageHeader(col.Stage.Name, col.Stage.Color),
		m.styles.Muted.Render(fmt.Sprintf("%d · %s", col.Count, usecase.FormatBRL(col.Total))),
	}
	for j, d := range col.Deals {
		style := m.styles.Card
		switch {
		case dragging && d.ID == draggedID:
			style = m.styles.Dragged
		case i == m.col && j == m.row && !dragging:
			style = m.styles.Selected
		}
		lines = append(lines, style.Render(d.Title+"\n"+usecase.FormatBRL(d.Value)))
	}
	if len(col.Deals) == 0 {
		lines = append(lines, m.styles.Muted.Render("Sem oportunidades"))
	}

	style := m.styles.Column.BorderForeground(lipgloss.Color(col.Stage.Color))
	if i == m.col && dragging {
		style = style.BorderStyle(lipgloss.ThickBorder())
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Run abre o quadro em tela cheia.
func Run(ctx context.Context, board *usecase.Board, load Loader) error {
	p := tea.NewProgram(NewBoardModel(ctx, board, load), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
