package main

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kass/go-quake-geo/pkg/geo"
	"github.com/kass/go-quake-geo/pkg/index"
	"github.com/kass/go-quake-geo/pkg/models"
)

const (
	numSites   = 500000
	numQueries = 1000
	radiusKm   = 50.0
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))
)

type stage int

const (
	stageIndexing stage = iota
	stageIndexComplete
	stageRadiusSearch
	stageRadiusComplete
	stageTraceOps
	stageDone
)

type model struct {
	stage           stage
	spinner         spinner.Model
	progress        progress.Model
	progressPercent float64

	sitesIndexed int64
	indexTime    time.Duration
	radiusStats  benchmarkResult
	traceReport  string

	width int
}

type benchmarkResult struct {
	totalQueries  int64
	totalTime     time.Duration
	totalResults  int64
	queriesPerSec float64
}

type progressMsg float64

type stageStartMsg stage

type stageCompleteMsg struct {
	stage stage
	stats interface{}
}

type indexStats struct {
	sites    int64
	duration time.Duration
}

func initialModel() model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))

	return model{
		stage:    stageIndexing,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
		width:    80,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, startDemo())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		m.progressPercent = float64(msg)
		return m, m.progress.SetPercent(float64(msg))

	case stageStartMsg:
		m.stage = stage(msg)
		m.progressPercent = 0
		return m, m.progress.SetPercent(0)

	case stageCompleteMsg:
		switch msg.stage {
		case stageIndexing:
			if stats, ok := msg.stats.(indexStats); ok {
				m.sitesIndexed = stats.sites
				m.indexTime = stats.duration
			}
			m.stage = stageIndexComplete
		case stageRadiusSearch:
			if stats, ok := msg.stats.(benchmarkResult); ok {
				m.radiusStats = stats
			}
			m.stage = stageRadiusComplete
		case stageTraceOps:
			if report, ok := msg.stats.(string); ok {
				m.traceReport = report
			}
			m.stage = stageDone
		}
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("quakegeo demo"))
	b.WriteString("\n\n")

	switch m.stage {
	case stageIndexing:
		b.WriteString(subtitleStyle.Render("Indexing Sites"))
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + fmt.Sprintf(" Indexing %d random hazard sites...\n\n", numSites))
		b.WriteString(m.progress.ViewAs(m.progressPercent))

	case stageIndexComplete, stageRadiusSearch:
		b.WriteString(renderIndexStats(m.sitesIndexed, m.indexTime))
		if m.stage == stageRadiusSearch {
			b.WriteString("\n")
			b.WriteString(m.spinner.View() + fmt.Sprintf(" Running %d radius searches (%.0f km)...\n\n", numQueries, radiusKm))
			b.WriteString(m.progress.ViewAs(m.progressPercent))
		}

	case stageRadiusComplete, stageTraceOps:
		b.WriteString(renderRadiusStats(m.radiusStats))
		if m.stage == stageTraceOps {
			b.WriteString("\n")
			b.WriteString(m.spinner.View() + " Resampling and partitioning a fault trace...\n")
		}

	case stageDone:
		b.WriteString(renderRadiusStats(m.radiusStats))
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(successStyle.Render("Trace Geometry\n\n") + m.traceReport))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press 'q' to quit"))

	return b.String()
}

func renderIndexStats(sites int64, duration time.Duration) string {
	content := fmt.Sprintf(
		"✓ Indexed %s sites in %s\n"+
			"✓ Sites per second: %s\n"+
			"✓ Workers: %s",
		statStyle.Render(fmt.Sprintf("%d", sites)),
		statStyle.Render(duration.String()),
		statStyle.Render(fmt.Sprintf("%.0f", float64(sites)/duration.Seconds())),
		statStyle.Render(fmt.Sprintf("%d", runtime.NumCPU())),
	)
	return boxStyle.Render(successStyle.Render("Indexing Complete!\n\n") + content)
}

func renderRadiusStats(stats benchmarkResult) string {
	content := fmt.Sprintf(
		"✓ Total queries: %s\n"+
			"✓ Total time: %s\n"+
			"✓ Queries per second: %s\n"+
			"✓ Sites found: %s",
		statStyle.Render(fmt.Sprintf("%d", stats.totalQueries)),
		statStyle.Render(stats.totalTime.String()),
		statStyle.Render(fmt.Sprintf("%.0f", stats.queriesPerSec)),
		statStyle.Render(fmt.Sprintf("%d", stats.totalResults)),
	)
	return boxStyle.Render(successStyle.Render("Radius Searches Complete!\n\n") + content)
}

var program *tea.Program

func startDemo() tea.Cmd {
	return func() tea.Msg {
		go executeDemo()
		return nil
	}
}

func executeDemo() {
	idx := buildIndex()
	time.Sleep(500 * time.Millisecond)
	program.Send(stageStartMsg(stageRadiusSearch))
	runRadiusSearches(idx)
	time.Sleep(500 * time.Millisecond)
	program.Send(stageStartMsg(stageTraceOps))
	runTraceOps(idx)
}

func buildIndex() *index.SiteIndex {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	sites := make([]models.Site, numSites)
	for i := range sites {
		sites[i] = models.Site{
			ID:    fmt.Sprintf("site_%d", i),
			Lat:   r.Float64()*180 - 90,
			Lon:   r.Float64()*360 - 180,
			Depth: r.Float64() * 20,
		}
	}

	idx := index.NewSiteIndex()

	start := time.Now()
	if err := idx.IndexSites(sites); err != nil {
		log.Fatal(err)
	}

	program.Send(progressMsg(1.0))
	program.Send(stageCompleteMsg{
		stage: stageIndexing,
		stats: indexStats{sites: idx.Size(), duration: time.Since(start)},
	})
	return idx
}

func runRadiusSearches(idx *index.SiteIndex) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var totalResults atomic.Int64
	var queryCount atomic.Int32

	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		for range ticker.C {
			program.Send(progressMsg(float64(queryCount.Load()) / float64(numQueries)))
			if queryCount.Load() >= int32(numQueries) {
				break
			}
		}
	}()

	start := time.Now()
	for i := 0; i < numQueries; i++ {
		center := geo.MustPoint(r.Float64()*160-80, r.Float64()*340-170, 0)
		results, err := idx.SearchRadius(center, radiusKm)
		if err == nil {
			totalResults.Add(int64(len(results)))
		}
		queryCount.Add(1)
	}
	elapsed := time.Since(start)

	program.Send(stageCompleteMsg{
		stage: stageRadiusSearch,
		stats: benchmarkResult{
			totalQueries:  int64(numQueries),
			totalTime:     elapsed,
			totalResults:  totalResults.Load(),
			queriesPerSec: float64(numQueries) / elapsed.Seconds(),
		},
	})
}

func runTraceOps(idx *index.SiteIndex) {
	// a rough rendition of the San Andreas fault trace
	trace, err := geo.NewTrace(
		geo.MustPoint(34.3163, -118.1000, 0),
		geo.MustPoint(34.8731, -118.8903, 0),
		geo.MustPoint(35.2692, -119.5503, 0),
		geo.MustPoint(36.0000, -120.4000, 0),
		geo.MustPoint(36.8063, -121.4155, 0),
	)
	if err != nil {
		log.Fatal(err)
	}

	resampled, err := trace.Resample(5.0)
	if err != nil {
		log.Fatal(err)
	}

	parts, err := trace.Partition(100.0)
	if err != nil {
		log.Fatal(err)
	}

	centroid := geo.Centroid(trace.Points())
	nearby, err := idx.SearchRadius(centroid, 200)
	if err != nil {
		log.Fatal(err)
	}

	report := fmt.Sprintf(
		"Trace length: %s km, %s points\n"+
			"Resampled at 5 km: %s points\n"+
			"Partitioned at 100 km: %s sub-traces\n"+
			"Sites within 200 km of centroid: %s",
		statStyle.Render(fmt.Sprintf("%.1f", trace.Length())),
		statStyle.Render(fmt.Sprintf("%d", trace.Size())),
		statStyle.Render(fmt.Sprintf("%d", resampled.Size())),
		statStyle.Render(fmt.Sprintf("%d", len(parts))),
		statStyle.Render(fmt.Sprintf("%d", len(nearby))),
	)

	program.Send(stageCompleteMsg{stage: stageTraceOps, stats: report})
}

func main() {
	program = tea.NewProgram(initialModel())

	if _, err := program.Run(); err != nil {
		log.Fatal(err)
	}
}
