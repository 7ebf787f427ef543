package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

var lang = language.English

// Dist summarizes one metric over all rounds.
type Dist struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	P50  float64 `json:"p50"`
	P90  float64 `json:"p90"`
	Max  float64 `json:"max"`
}

// Summary aggregates a run.
type Summary struct {
	Rounds     int  `json:"rounds"`
	GameOvers  int  `json:"game_overs"`
	Score      Dist `json:"score"`
	Level      Dist `json:"level"`
	Moves      Dist `json:"moves"`
	Cascades   Dist `json:"cascades"`
	MaxCombo   Dist `json:"max_combo"`
	Stalemates Dist `json:"stalemates"`
}

// Report is the result of Run.
type Report struct {
	Board struct {
		Rows       int  `json:"rows"`
		Columns    int  `json:"columns"`
		Types      int  `json:"types"`
		WrapAround bool `json:"wrap_around"`
	} `json:"board"`
	Strategy Strategy      `json:"strategy"`
	Seed     int64         `json:"seed"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Summary  Summary       `json:"summary"`
	Results  []RoundResult `json:"results"`
}

// NewReport summarizes results.
func NewReport(opts Options, results []RoundResult, elapsed time.Duration) *Report {
	r := &Report{
		Strategy: opts.Strategy,
		Seed:     opts.Seed,
		Elapsed:  elapsed,
		Summary:  Summarize(results),
		Results:  results,
	}
	r.Board.Rows = opts.Board.Rows
	r.Board.Columns = opts.Board.Columns
	r.Board.Types = opts.Board.Types
	r.Board.WrapAround = opts.Board.WrapAround
	return r
}

// Summarize computes per-metric distributions.
func Summarize(results []RoundResult) Summary {
	s := Summary{Rounds: len(results)}
	for _, r := range results {
		if r.GameOver {
			s.GameOvers++
		}
	}
	s.Score = distOf(results, func(r RoundResult) int { return r.Score })
	s.Level = distOf(results, func(r RoundResult) int { return r.Level })
	s.Moves = distOf(results, func(r RoundResult) int { return r.Moves })
	s.Cascades = distOf(results, func(r RoundResult) int { return r.Cascades })
	s.MaxCombo = distOf(results, func(r RoundResult) int { return r.MaxCombo })
	s.Stalemates = distOf(results, func(r RoundResult) int { return r.Stalemates })
	return s
}

func distOf(results []RoundResult, f func(RoundResult) int) Dist {
	if len(results) == 0 {
		return Dist{}
	}
	xs := make([]float64, len(results))
	for i, r := range results {
		xs[i] = float64(f(r))
	}
	slices.Sort(xs)

	d := Dist{Min: xs[0], Max: xs[len(xs)-1]}
	if len(xs) > 1 {
		d.Mean, d.Std = stat.MeanStdDev(xs, nil)
	} else {
		d.Mean = xs[0]
	}
	d.P50 = stat.Quantile(0.5, stat.Empirical, xs, nil)
	d.P90 = stat.Quantile(0.9, stat.Empirical, xs, nil)
	return d
}

// Format writes a human readable table of the summary.
func (r *Report) Format(w io.Writer) error {
	p := message.NewPrinter(lang)

	mode := "linear"
	if r.Board.WrapAround {
		mode = "wrap"
	}
	title := p.Sprintf("%dx%d, %d types, %s, %s bot", r.Board.Rows, r.Board.Columns, r.Board.Types, mode, r.Strategy)

	header := []string{"metric", "mean", "std", "min", "p50", "p90", "max"}
	rows := [][]string{header}
	for _, m := range []struct {
		name string
		d    Dist
	}{
		{"score", r.Summary.Score},
		{"level", r.Summary.Level},
		{"moves", r.Summary.Moves},
		{"cascades", r.Summary.Cascades},
		{"max combo", r.Summary.MaxCombo},
		{"stalemates", r.Summary.Stalemates},
	} {
		rows = append(rows, []string{
			m.name,
			p.Sprintf("%.1f", m.d.Mean),
			p.Sprintf("%.1f", m.d.Std),
			p.Sprintf("%.0f", m.d.Min),
			p.Sprintf("%.0f", m.d.P50),
			p.Sprintf("%.0f", m.d.P90),
			p.Sprintf("%.0f", m.d.Max),
		})
	}

	var b strings.Builder
	b.WriteString(fmtTable(title, rows))
	b.WriteString(p.Sprintf("rounds: %d  game overs: %d  seed: %d\n", r.Summary.Rounds, r.Summary.GameOvers, r.Seed))
	b.WriteString(formatDuration(p, r.Elapsed, r.Summary.Rounds))

	_, err := io.WriteString(w, b.String())
	return err
}

// fmtTable renders rows as a boxed table. The first row is the header;
// the first column is left aligned, the others right aligned.
func fmtTable(title string, rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	inner := len(widths) - 1
	for _, w := range widths {
		inner += w + 2
	}
	inner = max(inner, runewidth.StringWidth(title)+2)
	// Give any extra title width to the first column.
	extra := inner - (len(widths) - 1)
	for _, w := range widths {
		extra -= w + 2
	}
	widths[0] += extra

	var divider strings.Builder
	divider.WriteString("+")
	for _, w := range widths {
		divider.WriteString(strings.Repeat("-", w+2))
		divider.WriteString("+")
	}
	divider.WriteString("\n")

	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	tw := runewidth.StringWidth(title)
	left := (inner - tw) / 2
	b.WriteString("|" + blank(left) + title + blank(inner-tw-left) + "|\n")
	b.WriteString(divider.String())
	for n, row := range rows {
		b.WriteString("|")
		for i, cell := range row {
			pad := blank(widths[i] - runewidth.StringWidth(cell))
			if i == 0 {
				b.WriteString(" " + cell + pad + " |")
			} else {
				b.WriteString(" " + pad + cell + " |")
			}
		}
		b.WriteString("\n")
		if n == 0 {
			b.WriteString(divider.String())
		}
	}
	b.WriteString(divider.String())
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}

func formatDuration(p *message.Printer, d time.Duration, rounds int) string {
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	return p.Sprintf("used: %.2f seconds (%d rounds/sec)\n", sec, int(float64(rounds)/sec))
}

// WriteJSON encodes the report as indented JSON, zstd compressed when
// compress is set.
func (r *Report) WriteJSON(w io.Writer, compress bool) error {
	if !compress {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("sim: zstd writer: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(r); err != nil {
		zw.Close()
		return fmt.Errorf("sim: encode report: %w", err)
	}
	return zw.Close()
}

// Save writes the report to path. A ".zst" suffix selects compression.
func (r *Report) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sim: cannot create report: %w", err)
	}
	if err := r.WriteJSON(f, strings.HasSuffix(path, ".zst")); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadReport reads a report written by Save.
func LoadReport(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sim: cannot open report: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("sim: zstd reader: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	var r Report
	if err := json.NewDecoder(src).Decode(&r); err != nil {
		return nil, fmt.Errorf("sim: decode report: %w", err)
	}
	return &r, nil
}
