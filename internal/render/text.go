package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/recall-stream/pkg/types"
)

// Printer formats user-facing text for one locale.
type Printer struct {
	p    *message.Printer
	tag  language.Tag
	isJA bool
}

// NewPrinter returns a Printer for lang ("ja", "en", ...). Unknown or empty
// tags fall back to Japanese, the backend's locale.
func NewPrinter(lang string) *Printer {
	tag, err := language.Parse(lang)
	if err != nil || lang == "" {
		tag = language.Japanese
	}
	base, _ := tag.Base()
	return &Printer{
		p:    message.NewPrinter(tag),
		tag:  tag,
		isJA: base.String() == "ja",
	}
}

// Progress formats received/total counts.
func (pr *Printer) Progress(p types.Progress) string {
	if pr.isJA {
		return pr.p.Sprintf("%d件 / %d件", p.Received, p.Total)
	}
	return pr.p.Sprintf("%d / %d results", p.Received, p.Total)
}

// Status formats a session status.
func (pr *Printer) Status(s types.Status) string {
	if !pr.isJA {
		return string(s)
	}
	switch s {
	case types.StatusSearching:
		return "検索中..."
	case types.StatusCompleted:
		return "完了"
	case types.StatusEmpty:
		return "該当なし"
	default:
		return "待機中"
	}
}

// Text writes a plain-text report of the snapshot.
func (pr *Printer) Text(w io.Writer, snap types.Snapshot) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  %s\n", pr.Status(snap.Status), pr.Progress(snap.Progress))
	if snap.TerminalMessage != "" {
		fmt.Fprintf(&sb, "%s\n", snap.TerminalMessage)
	}

	for i, a := range snap.Artifacts {
		sb.WriteString("\n")
		switch {
		case a.Result != nil:
			fmt.Fprintf(&sb, "[%d] 製品ID: %s\n", i+1, a.Result.ProductID)
			fmt.Fprintf(&sb, "    回収理由: %s\n", oneLine(a.Result.Reason))
			fmt.Fprintf(&sb, "    危惧される具体的な健康被害: %s\n", oneLine(a.Result.HealthRisk))
			fmt.Fprintf(&sb, "    現象・リスク分析: %s\n", oneLine(a.Result.RiskAnalysis))
		case a.Link != nil:
			fmt.Fprintf(&sb, "[%d] 📥 %s\n", i+1, a.Link.URL)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// oneLine indents continuation lines so multi-line fields stay readable.
func oneLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n      ")
}
