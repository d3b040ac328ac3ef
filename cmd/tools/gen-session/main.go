// Command gen-session generates a synthetic session CSV for testing the
// metrics pipeline. Each trial draws a random onset delay, moves the ideal
// target along the minimum-jerk trajectory, and synthesises a pointer trace
// that follows it with configurable lag and noise.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/motorlab/tracking.report/internal/stimulus"
)

func main() {
	output := flag.String("o", "session.csv", "output path")
	participants := flag.String("participants", "p01", "comma-separated participant ids")
	conditions := flag.String("conditions", "1,2", "comma-separated condition ids")
	trials := flag.Int("trials", 5, "trials per participant and condition")
	hz := flag.Float64("hz", 60.0, "sampling rate in frames per second")
	l := flag.Float64("L", 400.0, "travel distance in px")
	motionT := flag.Float64("T", 1.0, "motion duration in s")
	mu := flag.Float64("mu", 0.5, "mean onset delay in s")
	sigma := flag.Float64("sigma", 0.12, "onset delay standard deviation in s")
	delta := flag.Float64("delta", 0.3, "extra recording time after the motion ends in s")
	lagMS := flag.Float64("lag-ms", 0.0, "pointer tracking lag in ms")
	noisePx := flag.Float64("noise-px", 0.0, "pointer Gaussian noise sigma in px")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"participant", "condition", "trial", "tau", "t", "y_t", "x_p", "y_p"}); err != nil {
		log.Fatalf("Failed to write header: %v", err)
	}

	rows := 0
	for _, participant := range splitList(*participants) {
		for _, condition := range splitList(*conditions) {
			for trial := 0; trial < *trials; trial++ {
				tau := math.Max(0, rng.NormFloat64()*(*sigma)+(*mu))
				n := writeTrial(w, rng, participant, condition, trial, tau,
					*hz, *l, *motionT, *delta, *lagMS/1000, *noisePx)
				rows += n
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("Failed to write session: %v", err)
	}

	log.Printf("✓ Created: %s (%d rows)", *output, rows)
}

// writeTrial emits one trial's samples over [0, tau+T+delta] and returns
// the row count.
func writeTrial(w *csv.Writer, rng *rand.Rand, participant, condition string,
	trial int, tau, hz, l, motionT, delta, lag, noisePx float64) int {

	dt := 1.0 / hz
	end := tau + motionT + delta
	n := 0
	for t := 0.0; t <= end; t += dt {
		yTruth := stimulus.Position(t, tau, l, motionT)
		yPointer := stimulus.Position(t-lag, tau, l, motionT)
		if noisePx > 0 {
			yPointer += rng.NormFloat64() * noisePx
		}
		xPointer := 0.0
		if noisePx > 0 {
			xPointer = rng.NormFloat64() * noisePx
		}
		record := []string{
			participant,
			condition,
			strconv.Itoa(trial),
			formatFloat(tau),
			formatFloat(t),
			formatFloat(yTruth),
			formatFloat(xPointer),
			formatFloat(yPointer),
		}
		if err := w.Write(record); err != nil {
			log.Fatalf("Failed to write row: %v", err)
		}
		n++
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		log.Fatal(fmt.Errorf("empty id list %q", s))
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
