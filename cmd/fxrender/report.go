package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/spectrum"
	"github.com/Darbouka/VRMusic-Studio-sub002/stats/frequency"
	timestats "github.com/Darbouka/VRMusic-Studio-sub002/stats/time"
)

const spectrumSize = 2048

var (
	accentColor = lipgloss.Color("#5FAFD7")
	mutedColor  = lipgloss.Color("#888888")
	errorColor  = lipgloss.Color("#D70000")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	keyStyle   = lipgloss.NewStyle().Foreground(mutedColor).Width(14)
	valueStyle = lipgloss.NewStyle().Bold(true).Width(12).Align(lipgloss.Right)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
)

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("Error:"), err)
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", v)
}

func row(key string, values ...string) string {
	cells := make([]string, 0, len(values)+1)
	cells = append(cells, keyStyle.Render(key))
	for _, v := range values {
		cells = append(cells, valueStyle.Render(v))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func split(buf []float32) (l, r []float64) {
	n := len(buf) / core.StereoChannels
	l = make([]float64, n)
	r = make([]float64, n)
	core.Deinterleave(l, r, buf, n)
	return l, r
}

// spectralShape returns the centroid in Hz and the flatness of the mean
// magnitude spectrum over consecutive frames of the mono mixdown.
func spectralShape(buf []float32, sampleRate float64) (centroid, flatness float64, err error) {
	analyzer, err := spectrum.NewAnalyzer(spectrumSize)
	if err != nil {
		return 0, 0, err
	}

	frames := len(buf) / 2
	mono := make([]float64, max(frames, spectrumSize))
	for i := range frames {
		mono[i] = 0.5 * (float64(buf[2*i]) + float64(buf[2*i+1]))
	}

	avg := make([]float64, spectrumSize/2+1)
	count := 0
	for start := 0; start+spectrumSize <= len(mono); start += spectrumSize {
		mag, err := analyzer.Analyze(mono[start : start+spectrumSize])
		if err != nil {
			return 0, 0, err
		}
		for i, v := range mag {
			avg[i] += v
		}
		count++
	}
	for i := range avg {
		avg[i] /= float64(count)
	}

	return frequency.Centroid(avg, sampleRate), frequency.Flatness(avg), nil
}

// writeReport prints per-channel level statistics of the input and rendered
// buffers followed by stereo correlation and spectral shape.
func writeReport(w io.Writer, effects []string, input, output []float32, sampleRate float64) error {
	var sb strings.Builder

	title := "fxrender: " + strings.Join(effects, " -> ")
	if len(effects) == 0 {
		title = "fxrender: (empty chain)"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(row("", "RMS", "Peak", "Crest"))
	sb.WriteString("\n")

	inL, inR := split(input)
	outL, outR := split(output)
	for _, ch := range []struct {
		name string
		buf  []float64
	}{
		{"in L", inL},
		{"in R", inR},
		{"out L", outL},
		{"out R", outR},
	} {
		s := timestats.Calculate(ch.buf)
		sb.WriteString(row(ch.name, formatDB(s.RMS_dB), formatDB(s.Peak_dB), formatDB(s.CrestFactor_dB)))
		sb.WriteString("\n")
	}

	frames := len(output) / 2
	sb.WriteString(row("correlation",
		fmt.Sprintf("%.3f", timestats.StereoCorrelation(input, len(input)/2)),
		fmt.Sprintf("%.3f", timestats.StereoCorrelation(output, frames))))
	sb.WriteString("\n")

	centroid, flatness, err := spectralShape(output, sampleRate)
	if err != nil {
		return fmt.Errorf("spectrum: %w", err)
	}
	sb.WriteString(row("centroid", fmt.Sprintf("%.0f Hz", centroid)))
	sb.WriteString("\n")
	sb.WriteString(row("flatness", fmt.Sprintf("%.3f", flatness)))
	sb.WriteString("\n")

	_, err = io.WriteString(w, sb.String())
	return err
}
