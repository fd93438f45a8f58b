// Command lmfitcli fits one of a few built-in models to a CSV observation
// table via the Levenberg-Marquardt engine and prints the result.
package main

import (
	"fmt"
	"math"
	"os"

	"lmfit"
	"lmfit/models"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: lmfitcli <model> <observations.csv>")
		fmt.Println("Models: const, line, sine")
		return
	}
	model := os.Args[1]
	path := os.Args[2]

	obs, err := loadObservationsCSV(path)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Loaded %d observations from %s\n", len(obs.X), path)

	fitter := lmfit.NewFitter1D()
	if err := fitter.SetInputData(obs.X, obs.Y, obs.Sigma); err != nil {
		panic(err)
	}

	var evalFn func(x float64, a []float64) float64
	switch model {
	case "const":
		if err := fitter.SetEvaluator(models.Constant()); err != nil {
			panic(err)
		}
		evalFn = func(_ float64, a []float64) float64 { return a[0] }
	case "line":
		if err := fitter.SetEvaluator(models.Line()); err != nil {
			panic(err)
		}
		evalFn = func(x float64, a []float64) float64 { return a[0]*x + a[1] }
	case "sine":
		if err := fitter.SetEvaluator(models.Sine()); err != nil {
			panic(err)
		}
		evalFn = func(x float64, a []float64) float64 {
			return a[0] * math.Sin(a[1]*x+a[2])
		}
	default:
		panic("Unsupported model: " + model + ". Options: const, line, sine")
	}

	if err := fitter.Fit(); err != nil {
		panic(err)
	}

	fmt.Println(fitter.String())

	fitted := make([]float64, len(obs.X))
	a := fitter.A()
	for i, x := range obs.X {
		fitted[i] = evalFn(x, a)
	}
	if err := writeFitResultCSV("fit_result.csv", obs, fitted); err != nil {
		panic(err)
	}
	fmt.Println("Wrote fit_result.csv")
}
