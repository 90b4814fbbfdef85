package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/hhsim/internal/sim"
)

// Summary is what the summary command shows for one run.
type Summary struct {
	Final        sim.State
	Steps        int
	Elapsed      time.Duration
	Metrics      map[string]float64
	MeanInterval float64 // ms, 0 if fewer than two spikes
	StimulusMs   float32 // length of the stimulus window
}

func FromResult(r *sim.Result, elapsed time.Duration) Summary {
	return Summary{
		Final:   r.Final,
		Steps:   r.Steps,
		Elapsed: elapsed,
		Metrics: r.Metrics,
	}
}

// FiringRate is spikes per second over the stimulus window.
func (s Summary) FiringRate() float64 {
	if s.StimulusMs <= 0 {
		return 0
	}
	return s.Metrics["spikes"] / (float64(s.StimulusMs) / 1000)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, Label.Render(label), Value.Render(value))
}

func Render(s Summary) string {
	var b strings.Builder

	b.WriteString(Title.Render("Hodgkin-Huxley run"))
	b.WriteString("\n\n")

	if len(s.Final) == sim.StateDim {
		b.WriteString(row("V final (mV)", fmt.Sprint(s.Final[sim.IdxV])) + "\n")
		b.WriteString(row("N final", fmt.Sprint(s.Final[sim.IdxN])) + "\n")
		b.WriteString(row("M final", fmt.Sprint(s.Final[sim.IdxM])) + "\n")
		b.WriteString(row("H final", fmt.Sprint(s.Final[sim.IdxH])) + "\n")
	}
	b.WriteString(row("steps", fmt.Sprint(s.Steps)) + "\n")
	b.WriteString(row("elapsed", s.Elapsed.Round(time.Millisecond).String()) + "\n")

	if s.StimulusMs > 0 {
		b.WriteString(row("firing rate (Hz)", fmt.Sprintf("%.2f", s.FiringRate())) + "\n")
	}
	if s.MeanInterval > 0 {
		b.WriteString(row("mean ISI (ms)", fmt.Sprintf("%.3f", s.MeanInterval)) + "\n")
	}

	if len(s.Metrics) > 0 {
		b.WriteString("\n" + Subtle.Render("metrics") + "\n")
		names := make([]string, 0, len(s.Metrics))
		for name := range s.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(row(name, fmt.Sprintf("%.6g", s.Metrics[name])) + "\n")
		}
	}

	if len(s.Final) > 0 && !s.Final.IsValid() {
		b.WriteString("\n" + Warn.Render("final state is not finite") + "\n")
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}
