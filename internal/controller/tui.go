package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "codelens.dev/pkg/codelens/internal/model"
)

// reservedLines is the space the pager keeps for its footer.
const reservedLines = 3

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// TUI implements UI by collecting sections and showing them in a pager
// when they do not fit on the terminal.
type TUI struct {
	output io.Writer

	mu       sync.Mutex
	mode     StartMode
	sections []string
	width    int
	height   int
	run      func(model tea.Model) error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	t := &TUI{output: output}
	t.run = t.runProgram

	return t
}

// Start resets the collected content and sets the mode.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := &StartConfig{mode: ModeScan}
	for _, opt := range options {
		opt(cfg)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.mode = cfg.mode
	p.sections = nil

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			p.width = width
			p.height = height
		}
	}

	return nil
}

// Close finalizes the UI.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait shows the collected content and blocks until the user quits the pager.
func (p *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.mu.Lock()
	content := p.render()
	height := p.height
	p.mu.Unlock()

	if !needsPagination(content, height) {
		_, _ = fmt.Fprint(p.output, content)
		return
	}

	model := newPagerModel(content, p.width, height)
	if err := p.run(model); err != nil {
		_, _ = fmt.Fprint(p.output, content)
	}
}

// DisplayScanReport adds the scan report tables.
func (p *TUI) DisplayScanReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.add("📊 Summary", renderSummaryTable(report))

	if len(report.Summary.UniqueFields) > 0 {
		p.add("🧬 Demographic fields", renderFieldTable(report.ScanResult))
	} else {
		p.add("🧬 Demographic fields", mutedStyle.Render("  none found")+"\n")
	}

	if len(report.Patterns) > 0 {
		p.add("🔌 Integration patterns", renderPatternTable(report.ScanResult))
	}

	if len(report.Summary.FileDetails) > 0 {
		p.add("📁 Files", renderFileTable(report.ScanResult))
	}

	return nil
}

// DisplayReportFiles adds the stored report list.
func (p *TUI) DisplayReportFiles(ctx context.Context, files []m.ReportFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(files) == 0 {
		p.add("📭 Reports", mutedStyle.Render("  no reports found")+"\n")
		return nil
	}

	p.add("🗂  Reports", renderReportFileTable(files))

	return nil
}

// DisplayMatchResult adds the match table and summary.
func (p *TUI) DisplayMatchResult(ctx context.Context, result m.MatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(result.Matches) == 0 {
		p.add("🔍 Matches", warnStyle.Render(fmt.Sprintf("  no matches found for column %q", result.Column))+"\n")
		return nil
	}

	p.add("🔍 Matches", renderMatchTable(result)+"\n"+renderMatchSummary(result))

	return nil
}

// DisplayColumnComparison adds the column match table.
func (p *TUI) DisplayColumnComparison(ctx context.Context, result m.ColumnComparison) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := renderDatasetShapes(result)
	if len(result.Matches) == 0 {
		body += warnStyle.Render(fmt.Sprintf("  no matching columns found with threshold %d", result.Threshold)) + "\n"
	} else {
		body += renderColumnTable(result)
	}

	p.add("🧬 Columns", body)

	return nil
}

// DisplayPreprocessStats adds a preprocessing line.
func (p *TUI) DisplayPreprocessStats(ctx context.Context, dataset string, stats m.PreprocessStats) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.add("🧹 Preprocessing", renderPreprocessStats(dataset, stats))
}

func (p *TUI) add(title, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sections = append(p.sections, sectionStyle.Render(title)+"\n"+body)
}

func (p *TUI) render() string {
	var b strings.Builder

	renderHeader(&b, p.mode.title())

	for _, section := range p.sections {
		b.WriteString(section)
		b.WriteString("\n")
	}

	return b.String()
}

func (p *TUI) runProgram(model tea.Model) error {
	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	_, err := program.Run()

	return err
}

func renderHeader(b *strings.Builder, title string) {
	const inner = 64

	label := "CodeLens - " + title
	pad := inner - lipgloss.Width(label)

	if pad < 0 {
		pad = 0
	}

	left := pad / 2

	b.WriteString("╔" + strings.Repeat("═", inner) + "╗\n")
	b.WriteString("║" + strings.Repeat(" ", left) + label + strings.Repeat(" ", pad-left) + "║\n")
	b.WriteString("╚" + strings.Repeat("═", inner) + "╝\n\n")
}

// needsPagination reports whether content is taller than a known terminal height.
func needsPagination(content string, height int) bool {
	if height <= 0 {
		return false
	}

	return strings.Count(content, "\n") > height-1
}

// pagerModel is the Bubble Tea model that scrolls the collected output.
type pagerModel struct {
	viewport viewport.Model
	quitting bool
}

func newPagerModel(content string, width, height int) pagerModel {
	vp := viewport.New(width, pagerHeight(height))
	vp.SetContent(content)

	return pagerModel{viewport: vp}
}

func pagerHeight(height int) int {
	h := height - reservedLines
	if h < 1 {
		return 1
	}

	return h
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = pagerHeight(msg.Height)

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

//nolint:exhaustive // only navigation keys are handled
func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		pm.quitting = true
		return pm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		pm.quitting = true
		return pm, tea.Quit
	case "down", "j":
		pm.viewport.ScrollDown(1)
	case "up", "k":
		pm.viewport.ScrollUp(1)
	case "g", "home":
		pm.viewport.GotoTop()
	case "G", "end":
		pm.viewport.GotoBottom()
	case "d", "pgdown":
		pm.viewport.PageDown()
	case "u", "pgup":
		pm.viewport.PageUp()
	}

	return pm, nil
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	footer := fmt.Sprintf("  %3.f%% | ↑/k: up | ↓/j: down | d/u: page | g/G: top/bottom | q: quit",
		pm.viewport.ScrollPercent()*100)

	return pm.viewport.View() + "\n\n" + mutedStyle.Render(footer)
}
