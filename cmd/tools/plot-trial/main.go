// Command plot-trial renders one trial's target and pointer traces to PNG,
// for eyeballing detection thresholds against the raw signal.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/motorlab/tracking.report/internal/kinematics"
	"github.com/motorlab/tracking.report/internal/session"
)

func main() {
	input := flag.String("csv", "", "session CSV path")
	participant := flag.String("participant", "", "participant id (defaults to the first in the file)")
	condition := flag.String("condition", "", "condition id (defaults to the first for the participant)")
	trial := flag.Int("trial", 0, "trial number")
	output := flag.String("o", "trial.png", "output PNG path")
	withVelocity := flag.Bool("velocity", false, "plot estimated pointer velocity instead of position")
	flag.Parse()

	if *input == "" {
		log.Fatal("CSV path is required (-csv)")
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open session file: %v", err)
	}
	sess, err := session.LoadCSV(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to load session file: %v", err)
	}

	tr, err := findTrial(sess, *participant, *condition, *trial)
	if err != nil {
		log.Fatal(err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s / %s / trial %d", tr.Participant, tr.Condition, tr.Number)
	p.X.Label.Text = "t (s)"

	t := tr.Times()
	if *withVelocity {
		p.Y.Label.Text = "velocity (px/s)"
		vLine, err := plotter.NewLine(toXYs(t, kinematics.Velocity(tr.PointerY(), t)))
		if err != nil {
			log.Fatalf("Failed to build velocity line: %v", err)
		}
		vLine.Color = color.RGBA{R: 196, A: 255}
		p.Add(vLine)
		p.Legend.Add("pointer velocity", vLine)
	} else {
		p.Y.Label.Text = "position (px)"
		truthLine, err := plotter.NewLine(toXYs(t, tr.TruthY()))
		if err != nil {
			log.Fatalf("Failed to build target line: %v", err)
		}
		truthLine.Color = color.RGBA{B: 196, A: 255}

		pointerLine, err := plotter.NewLine(toXYs(t, tr.PointerY()))
		if err != nil {
			log.Fatalf("Failed to build pointer line: %v", err)
		}
		pointerLine.Color = color.RGBA{R: 196, A: 255}

		p.Add(truthLine, pointerLine)
		p.Legend.Add("target", truthLine)
		p.Legend.Add("pointer", pointerLine)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, *output); err != nil {
		log.Fatalf("Failed to save plot: %v", err)
	}
	log.Printf("✓ Created: %s", *output)
}

// findTrial locates the requested trial, defaulting participant and
// condition to the first present in key order.
func findTrial(sess *session.Session, participant, condition string, number int) (session.Trial, error) {
	trials := sess.Trials()
	if len(trials) == 0 {
		return session.Trial{}, fmt.Errorf("no trials in session")
	}
	if participant == "" {
		participant = trials[0].Participant
	}
	for _, tr := range trials {
		if tr.Participant != participant {
			continue
		}
		if condition == "" {
			condition = tr.Condition
		}
		if tr.Condition == condition && tr.Number == number {
			return tr, nil
		}
	}
	return session.Trial{}, fmt.Errorf("trial %s/%s/%d not found", participant, condition, number)
}

func toXYs(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
