package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTUI_WaitPrintsWhenContentFits(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)
	ctx := context.Background()

	if err := tui.Start(ctx, WithScanMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := tui.DisplayScanReport(ctx, testReport()); err != nil {
		t.Fatalf("DisplayScanReport() error = %v", err)
	}

	if buf.Len() != 0 {
		t.Fatal("output should be buffered until Wait")
	}

	tui.Wait(ctx)

	output := buf.String()
	if !strings.Contains(output, "CodeLens - Repository Scan") {
		t.Errorf("output should contain header, got:\n%s", output)
	}
	if !strings.Contains(output, "/repo/src/Orders.java") {
		t.Errorf("output should contain file table, got:\n%s", output)
	}
}

func TestTUI_WaitUsesPagerWhenTooTall(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)
	ctx := context.Background()

	var ran tea.Model
	tui.run = func(model tea.Model) error {
		ran = model
		return nil
	}

	if err := tui.Start(ctx, WithMatchMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tui.height = 5
	tui.width = 80

	if err := tui.DisplayMatchResult(ctx, testMatchResult()); err != nil {
		t.Fatalf("DisplayMatchResult() error = %v", err)
	}

	tui.Wait(ctx)

	if ran == nil {
		t.Fatal("pager should run when content is taller than the terminal")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be printed directly, got:\n%s", buf.String())
	}
}

func TestTUI_WaitFallsBackToPrintOnPagerError(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)
	ctx := context.Background()
	tui.run = func(tea.Model) error { return errors.New("no tty") }

	_ = tui.Start(ctx, WithReportsMode())
	tui.height = 2

	if err := tui.DisplayReportFiles(ctx, nil); err != nil {
		t.Fatalf("DisplayReportFiles() error = %v", err)
	}

	tui.Wait(ctx)

	if !strings.Contains(buf.String(), "no reports found") {
		t.Errorf("content should be printed after pager failure, got:\n%s", buf.String())
	}
}

func TestTUI_StartResetsSections(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)
	ctx := context.Background()

	_ = tui.Start(ctx)
	_ = tui.DisplayMatchResult(ctx, testMatchResult())
	_ = tui.Start(ctx, WithReportsMode())
	tui.Wait(ctx)

	if strings.Contains(buf.String(), "customer_id") {
		t.Errorf("Start should drop earlier sections, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "CodeLens - Reports") {
		t.Errorf("header should follow the mode, got:\n%s", buf.String())
	}
}

func TestNeedsPagination(t *testing.T) {
	tests := []struct {
		name    string
		content string
		height  int
		want    bool
	}{
		{"unknown height", "a\nb\nc\n", 0, false},
		{"fits", "a\nb\n", 10, false},
		{"too tall", strings.Repeat("x\n", 20), 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsPagination(tt.content, tt.height); got != tt.want {
				t.Errorf("needsPagination() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPagerModel_Keys(t *testing.T) {
	content := strings.Repeat("line\n", 50)
	model := newPagerModel(content, 80, 13)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	pm := updated.(pagerModel)

	if pm.viewport.YOffset != 1 {
		t.Errorf("j should scroll one line, YOffset = %d", pm.viewport.YOffset)
	}

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	pm = updated.(pagerModel)

	if !pm.viewport.AtBottom() {
		t.Error("G should go to the bottom")
	}

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	pm = updated.(pagerModel)

	if !pm.viewport.AtTop() {
		t.Error("g should go to the top")
	}

	updated, cmd := pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	pm = updated.(pagerModel)

	if !pm.quitting || cmd == nil {
		t.Error("q should quit")
	}
	if pm.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestPagerModel_WindowResize(t *testing.T) {
	model := newPagerModel("a\nb\n", 80, 24)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	pm := updated.(pagerModel)

	if pm.viewport.Width != 100 || pm.viewport.Height != 40-reservedLines {
		t.Errorf("viewport = %dx%d, want 100x%d", pm.viewport.Width, pm.viewport.Height, 40-reservedLines)
	}
}
