// Command ephysbatch analyzes a folder of current-clamp recordings and
// prints per-file charge and capacitance results plus aggregate
// statistics.
//
// Usage:
//
//	ephysbatch [flags] [dir]
//
// Without arguments it scans the current directory for .atf and .csv
// recordings. Failed files are reported and excluded from the
// aggregates.
//
// Examples:
//
//	ephysbatch recordings/
//	ephysbatch -recursive -area 1e-4 recordings/
//	ephysbatch -out results.csv recordings/
//	ephysbatch -out results.json -format json recordings/
//	ephysbatch -demo
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-ephys/ephys/analysis"
	"github.com/cwbudde/algo-ephys/ephys/synth"
	"github.com/cwbudde/algo-ephys/ephys/trace"
)

type fileResult struct {
	File                string  `json:"file"`
	Cycles              int     `json:"cycles"`
	DepolChargeC        float64 `json:"depol_charge_C"`
	DepolCapUFPerCm2    float64 `json:"depol_capacitance_uF_per_cm2"`
	HyperpolChargeC     float64 `json:"hyperpol_charge_C"`
	HyperpolCapUFPerCm2 float64 `json:"hyperpol_capacitance_uF_per_cm2"`
	Err                 string  `json:"error,omitempty"`
}

type summary struct {
	Files           int     `json:"files"`
	Failed          int     `json:"failed"`
	MeanDepolCharge float64 `json:"mean_depol_charge_C"`
	MeanDepolCap    float64 `json:"mean_depol_capacitance_uF_per_cm2"`
	MeanHyperpolCap float64 `json:"mean_hyperpol_capacitance_uF_per_cm2"`
	TotalCycles     int     `json:"total_cycles"`
}

func main() {
	nCycles := flag.Int("ncycles", 2, "stimulus cycles to analyze per file")
	t1 := flag.Float64("t1", 100, "cycle period estimate in ms")
	t2 := flag.Float64("t2", 100, "second time constant in ms")
	v0 := flag.Float64("v0", -80, "holding potential in mV")
	v1 := flag.Float64("v1", 100, "step potential in mV")
	v2 := flag.Float64("v2", 10, "second step potential in mV")
	area := flag.Float64("area", 1, "membrane area in cm2")
	recursive := flag.Bool("recursive", false, "descend into subdirectories")
	demo := flag.Bool("demo", false, "analyze a generated synthetic recording instead of scanning files")
	out := flag.String("out", "", "write per-file results to this path")
	format := flag.String("format", "csv", "export format: csv or json")
	verbose := flag.Bool("v", false, "verbose stage logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ephysbatch [flags] [dir]\n\n")
		fmt.Fprintf(os.Stderr, "Analyzes .atf/.csv recordings and aggregates charge and capacitance.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	params := analysis.Params{
		NCycles:     *nCycles,
		T1:          *t1,
		T2:          *t2,
		V0:          *v0,
		V1:          *v1,
		V2:          *v2,
		CellAreaCm2: *area,
	}

	if err := params.Validate(); err != nil {
		logger.Error("invalid parameters", "err", err)
		os.Exit(1)
	}

	var results []fileResult
	if *demo {
		results = []fileResult{analyzeDemo(params, logger)}
	} else {
		dir := "."
		if flag.NArg() > 0 {
			dir = flag.Arg(0)
		}

		files, err := collectFiles(dir, *recursive)
		if err != nil {
			logger.Error("scan failed", "dir", dir, "err", err)
			os.Exit(1)
		}

		if len(files) == 0 {
			logger.Error("no .atf or .csv recordings found", "dir", dir)
			os.Exit(1)
		}

		results = make([]fileResult, 0, len(files))
		for _, file := range files {
			results = append(results, analyzeFile(file, params, logger))
		}
	}

	sum := summarize(results)
	printResults(results, sum)

	if *out != "" {
		if err := export(*out, *format, results, sum); err != nil {
			logger.Error("export failed", "path", *out, "err", err)
			os.Exit(1)
		}

		logger.Info("results exported", "path", *out, "format", *format)
	}

	if sum.Failed > 0 {
		os.Exit(1)
	}
}

func collectFiles(dir string, recursive bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if !recursive && path != dir {
				return fs.SkipDir
			}

			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".atf", ".csv":
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	return files, nil
}

// analyzeFile runs the full pipeline on one recording with a fresh
// processor. Failures are captured in the result, never defaulted.
func analyzeFile(path string, params analysis.Params, logger *slog.Logger) fileResult {
	tr, err := loadTrace(path)
	if err != nil {
		logger.Warn("load failed", "file", path, "err", err)

		return fileResult{File: path, Err: err.Error()}
	}

	return runAnalysis(path, tr, params, logger)
}

// analyzeDemo runs the pipeline on a generated depolarizing step so the
// whole stack can be exercised without input files.
func analyzeDemo(params analysis.Params, logger *slog.Logger) fileResult {
	g := synth.NewGenerator(synth.WithSeed(7))

	tr, err := g.Step(500, 828, 1028, 2000)
	if err == nil {
		tr, err = g.WithNoise(tr, 2)
	}
	if err != nil {
		logger.Error("synthetic trace generation failed", "err", err)

		return fileResult{File: "synthetic", Err: err.Error()}
	}

	return runAnalysis("synthetic", tr, params, logger)
}

func runAnalysis(name string, tr trace.Trace, params analysis.Params, logger *slog.Logger) fileResult {
	out := fileResult{File: name}

	res, err := analysis.New(analysis.WithLogger(logger.With("file", name))).Analyze(tr, params)
	if err != nil {
		logger.Warn("analysis failed", "file", name, "err", err)
		out.Err = err.Error()

		return out
	}

	out.Cycles = len(res.Cycles)
	out.DepolChargeC = res.Integration.Depol.ChargeC
	out.DepolCapUFPerCm2 = res.Integration.Depol.CapacitanceUFPerCm2
	out.HyperpolChargeC = res.Integration.Hyperpol.ChargeC
	out.HyperpolCapUFPerCm2 = res.Integration.Hyperpol.CapacitanceUFPerCm2

	return out
}

// summarize aggregates successful results only.
func summarize(results []fileResult) summary {
	var s summary

	s.Files = len(results)
	ok := 0

	for _, r := range results {
		if r.Err != "" {
			s.Failed++
			continue
		}

		ok++
		s.TotalCycles += r.Cycles
		s.MeanDepolCharge += r.DepolChargeC
		s.MeanDepolCap += r.DepolCapUFPerCm2
		s.MeanHyperpolCap += r.HyperpolCapUFPerCm2
	}

	if ok > 0 {
		s.MeanDepolCharge /= float64(ok)
		s.MeanDepolCap /= float64(ok)
		s.MeanHyperpolCap /= float64(ok)
	}

	return s
}

func printResults(results []fileResult, sum summary) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "File\tCycles\tDepol Q [C]\tDepol C [uF/cm2]\tHyperpol Q [C]\tHyperpol C [uF/cm2]\tStatus\n")
	fmt.Fprintf(tw, "----\t------\t-----------\t----------------\t--------------\t-------------------\t------\n")

	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\tfailed: %s\n", r.File, r.Err)
			continue
		}

		fmt.Fprintf(tw, "%s\t%d\t%.4e\t%.4f\t%.4e\t%.4f\tok\n",
			r.File, r.Cycles,
			r.DepolChargeC, r.DepolCapUFPerCm2,
			r.HyperpolChargeC, r.HyperpolCapUFPerCm2)
	}

	tw.Flush()

	fmt.Printf("\n%d files, %d failed, %d cycles total\n", sum.Files, sum.Failed, sum.TotalCycles)
	if sum.Files > sum.Failed {
		fmt.Printf("mean depol charge: %.4e C, mean depol capacitance: %.4f uF/cm2\n",
			sum.MeanDepolCharge, sum.MeanDepolCap)
	}
}

func export(path, format string, results []fileResult, sum summary) error {
	switch format {
	case "json":
		return exportJSON(path, results, sum)
	case "csv":
		return exportCSV(path, results)
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", format)
	}
}

func exportJSON(path string, results []fileResult, sum summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	return enc.Encode(struct {
		Results []fileResult `json:"results"`
		Summary summary      `json:"summary"`
	}{results, sum})
}

func exportCSV(path string, results []fileResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"file", "cycles",
		"depol_charge_C", "depol_capacitance_uF_per_cm2",
		"hyperpol_charge_C", "hyperpol_capacitance_uF_per_cm2",
		"error",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.File,
			strconv.Itoa(r.Cycles),
			strconv.FormatFloat(r.DepolChargeC, 'e', 6, 64),
			strconv.FormatFloat(r.DepolCapUFPerCm2, 'f', 6, 64),
			strconv.FormatFloat(r.HyperpolChargeC, 'e', 6, 64),
			strconv.FormatFloat(r.HyperpolCapUFPerCm2, 'f', 6, 64),
			r.Err,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
