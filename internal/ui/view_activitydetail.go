package ui

import (
	"strings"

	"kyber/internal/timefmt"
	"kyber/internal/ui/textutil"
)

func (m *AppModel) renderActivityDetail() string {
	ad := m.activityDetail
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Activity") + "\n\n")
	b.WriteString(m.statusLine())

	fact := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(textutil.PadRightVisual(label, 14) + value + "\n")
	}
	fact("When", timefmt.Format(ad.log.Date))
	fact("Host", ad.log.Hostname)
	fact("Category", ad.log.Category)
	fact("Action", ad.log.Action)
	fact("Details", ad.log.Details)

	if ad.log.JobUID != "" {
		b.WriteString("\n" + Styles.Header.Render("Job result") + "\n")
		switch {
		case ad.result == nil && m.slots.Err(slotJobResult(ad.log.JobUID)) != "":
			b.WriteString(Styles.Error.Render("failed to load result: "+m.slots.Err(slotJobResult(ad.log.JobUID))) + "\n")
		case ad.result == nil:
			b.WriteString(m.spin.View() + " loading result…\n")
		default:
			fact("Status", jobStatus(ad.result.JobDeploymentStatus))
			fact("Ran on", timefmt.Format(ad.result.RanOn))
			for _, cr := range ad.result.ComponentResults {
				line := "  " + cr.ComponentName + ": " + jobStatus(cr.ComponentStatus)
				if cr.NumberOfWarnings > 0 {
					line += Styles.Warning.Render("  warnings")
				}
				b.WriteString(line + "\n")
			}
		}

		b.WriteString("\n")
		outErr := m.slots.Err(slotJobOutput(ad.log.JobUID))
		if ad.showStderr {
			renderOutputBlock(&b, "stderr", ad.stderr, outErr)
		} else {
			renderOutputBlock(&b, "stdout", ad.stdout, outErr)
		}
		b.WriteString("\n" + Styles.Hint.Render("o: stdout  E: stderr  r: refresh result"))
	}

	b.WriteString("\n" + m.helpLine())
	return b.String()
}

func renderOutputBlock(b *strings.Builder, stream, text, errMsg string) {
	b.WriteString(Styles.Header.Render(stream) + "\n")
	if text == "" {
		if errMsg != "" {
			b.WriteString(Styles.Error.Render("fetch failed: "+errMsg) + "\n")
			return
		}
		b.WriteString(Styles.Empty.Render("not fetched") + "\n")
		return
	}
	b.WriteString(Styles.Box.Render(text) + "\n")
}

func jobStatus(status string) string {
	switch strings.ToLower(status) {
	case "succeeded", "success", "completed":
		return Styles.OK.Render(status)
	case "failed", "error":
		return Styles.Error.Render(status)
	case "":
		return Styles.Muted.Render("unknown")
	default:
		return status
	}
}
