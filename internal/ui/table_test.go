package ui

import (
	"strings"
	"testing"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	output := FormatTable(
		[]string{"ID", "TITLE", "DUE"},
		[][]string{
			{"a1", "write report", "today"},
			{"b22", "mow lawn", "-"},
		},
	)

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), output)
	}

	titleCol := strings.Index(lines[0], "TITLE")
	if titleCol < 0 {
		t.Fatalf("missing TITLE header: %q", lines[0])
	}
	for _, line := range lines[1:] {
		cell := line[titleCol:]
		if !strings.HasPrefix(cell, "write report") && !strings.HasPrefix(cell, "mow lawn") {
			t.Errorf("misaligned row: %q", line)
		}
	}
}

func TestFormatTableIgnoresColorCodesForWidth(t *testing.T) {
	styled := "\x1b[1mhigh\x1b[0m"
	output := FormatTable(
		[]string{"PRIORITY", "TITLE"},
		[][]string{
			{styled, "first"},
			{"medium", "second"},
		},
	)

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	wantCol := strings.Index(lines[0], "TITLE")
	for _, line := range lines[1:] {
		plain := stripEscapes(line)
		gotCol := strings.Index(plain, "first")
		if gotCol < 0 {
			gotCol = strings.Index(plain, "second")
		}
		if gotCol != wantCol {
			t.Errorf("title column at %d, want %d: %q", gotCol, wantCol, line)
		}
	}
}

func TestFormatTableNormalizesNewlines(t *testing.T) {
	output := FormatTable([]string{"TITLE"}, [][]string{{"line one\nline two"}})
	if strings.Count(output, "\n") != 2 {
		t.Errorf("embedded newline should be flattened: %q", output)
	}
}

func TestTruncateTableCell(t *testing.T) {
	short := "fits"
	if got := TruncateTableCell(short); got != short {
		t.Errorf("TruncateTableCell(%q) = %q", short, got)
	}

	long := strings.Repeat("x", tableCellMaxWidth+10)
	got := TruncateTableCell(long)
	if !strings.HasSuffix(got, tableCellEllipsis) {
		t.Errorf("expected ellipsis suffix: %q", got)
	}
	if len(got) > tableCellMaxWidth {
		t.Errorf("truncated cell too wide: %d", len(got))
	}
}

func TestTableBuilder(t *testing.T) {
	builder := NewTableBuilder([]string{"ID"}, 2)
	builder.AddRow([]string{"a"})
	builder.AddRow([]string{"b"})

	want := FormatTable([]string{"ID"}, [][]string{{"a"}, {"b"}})
	if got := builder.String(); got != want {
		t.Errorf("builder output = %q, want %q", got, want)
	}
}

func stripEscapes(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
