package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/spread-sim/internal/models"
)

// GenerateCSVExport writes the headline numbers of a run for spreadsheets
func GenerateCSVExport(result *models.SimulationResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString("metric,value\n")
	builder.WriteString(fmt.Sprintf("run_id,%s\n", result.ID))
	if result.Inputs != nil {
		builder.WriteString(fmt.Sprintf("home,%s\n", result.Inputs.HomeCode))
		builder.WriteString(fmt.Sprintf("away,%s\n", result.Inputs.AwayCode))
	}
	builder.WriteString(fmt.Sprintf("samples,%d\n", result.SampleCount))
	builder.WriteString(fmt.Sprintf("model_spread,%.4f\n", result.ModelSpread))
	builder.WriteString(fmt.Sprintf("average_margin,%.4f\n", result.AverageMargin))
	builder.WriteString(fmt.Sprintf("home_cover_probability,%.4f\n", result.HomeCoverProbability))
	builder.WriteString(fmt.Sprintf("away_cover_probability,%.4f\n", result.AwayCoverProbability))
	builder.WriteString(fmt.Sprintf("push_probability,%.4f\n", result.PushProbability))
	if result.Market != nil {
		builder.WriteString(fmt.Sprintf("market_line,%.4f\n", result.Market.Line))
		builder.WriteString(fmt.Sprintf("market_cover_probability,%.4f\n", result.Market.CoverProbability))
		builder.WriteString(fmt.Sprintf("edge,%.4f\n", result.Market.Edge))
		builder.WriteString(fmt.Sprintf("signal,%s\n", result.Market.Signal))
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}
