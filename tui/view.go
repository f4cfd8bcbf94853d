package tui

import (
	"fmt"
	"strings"

	"texttovideo/media"
	"texttovideo/session"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	counter := m.form.Counter()
	b.WriteString(counterStyle(counter.Level).Render(counter.Text()))
	if m.form.File != nil {
		attached := fmt.Sprintf("   📎 %s (%s)", m.form.File.Name, media.FormatFileSize(int64(len(m.form.File.Content))))
		b.WriteString(InfoStyle.Render(attached))
	}
	b.WriteString("\n\n")

	switch m.mode {
	case modePrompt:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	case modeConfirm:
		b.WriteString(WarningStyle.Render(TextConfirmReset))
		b.WriteString("\n\n")
	}

	if m.alert != "" {
		b.WriteString(AlertStyle.Render(m.alert + "\n" + TextDismissAlert))
		b.WriteString("\n\n")
	}

	snap := m.session.Snapshot()
	if panel := m.renderPanel(snap); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n\n")
	}

	if m.note != "" {
		b.WriteString(InfoStyle.Render(m.note))
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render(m.footer(snap.Panel)))
	return b.String()
}

// renderPanel maps the panel state to the one visible panel
func (m Model) renderPanel(snap session.Snapshot) string {
	switch snap.Panel {
	case session.PanelProcessing:
		body := StatusStyle.Render("⏳ Processing") + "\n\n" +
			m.progress.ViewAs(float64(snap.Progress)/100) + "\n" +
			snap.Message
		return BoxStyle.Render(body)
	case session.PanelResults:
		body := HighlightStyle.Render("✅ Video ready") + "\n\n" +
			"Preview:  " + m.client.PreviewURL(snap.VideoPath) + "\n" +
			"Download: " + m.client.DownloadURL(snap.VideoPath)
		return BoxStyle.Render(body)
	case session.PanelError:
		body := ErrorStyle.Render("❌ Error") + "\n\n" + snap.ErrorMessage
		return ErrorBoxStyle.Render(body)
	default:
		return ""
	}
}

func (m Model) footer(panel session.Panel) string {
	switch {
	case m.mode == modePrompt:
		return TextFooterPrompt
	case panel == session.PanelResults:
		return TextFooterResults
	default:
		return TextFooterEdit
	}
}
