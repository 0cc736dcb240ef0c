package forecast

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"steel-procurement/internal/model"
)

// Baseline is an offline baseline index forecast, one value per month from the start date.
type Baseline struct {
	Model      string    `yaml:"model,omitempty"`
	StartYear  int       `yaml:"start_year"`
	StartMonth int       `yaml:"start_month"`
	Index      []float64 `yaml:"index"`
}

func (b Baseline) Validate() error {
	if b.StartYear <= 0 {
		return fmt.Errorf("start_year must be > 0")
	}
	if b.StartMonth < 1 || b.StartMonth > 12 {
		return fmt.Errorf("start_month must be in [1, 12]")
	}
	if len(b.Index) == 0 {
		return fmt.Errorf("index is empty")
	}
	for i, v := range b.Index {
		if !(v > 0) {
			return fmt.Errorf("index[%d] must be > 0, got %v", i, v)
		}
	}
	return nil
}

// BaselineFromPoints rebuilds a baseline from consecutive monthly points.
func BaselineFromPoints(modelName string, points []model.ForecastPoint) (Baseline, error) {
	if len(points) == 0 {
		return Baseline{}, model.ErrEmptyInput
	}
	b := Baseline{
		Model:      modelName,
		StartYear:  points[0].Year,
		StartMonth: points[0].Month,
		Index:      make([]float64, len(points)),
	}
	for i, p := range points {
		y, m := addMonths(b.StartYear, b.StartMonth, i)
		if p.Year != y || p.Month != m {
			return Baseline{}, fmt.Errorf("point %d is %04d-%02d, want %04d-%02d", i, p.Year, p.Month, y, m)
		}
		b.Index[i] = p.Index
	}
	return b, b.Validate()
}

// FileSource serves scenarios from a baseline file; scenarios are flat multipliers on it.
type FileSource struct {
	baseline Baseline
}

func NewFileSource(b Baseline) (*FileSource, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid baseline: %w", err)
	}
	return &FileSource{baseline: b}, nil
}

// LoadFile reads a YAML baseline.
func LoadFile(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast file: %w", err)
	}
	var b Baseline
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("failed to parse forecast file: %w", err)
	}
	return NewFileSource(b)
}

// SaveFile writes a YAML baseline, creating parent directories.
func SaveFile(path string, b Baseline) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("invalid baseline: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write forecast file: %w", err)
	}
	return nil
}

func (s *FileSource) Baseline() Baseline { return s.baseline }

func (s *FileSource) Scenarios() []model.Scenario { return model.Scenarios() }

func (s *FileSource) Forecast(_ context.Context, scenario model.Scenario, months int) ([]model.ForecastPoint, error) {
	if err := validateRequest(scenario, months); err != nil {
		return nil, err
	}
	if months > len(s.baseline.Index) {
		return nil, model.InvalidParam("months", fmt.Sprintf("baseline covers %d months, requested %d", len(s.baseline.Index), months))
	}
	mult, _ := scenario.Multiplier()
	out := make([]model.ForecastPoint, months)
	for i := 0; i < months; i++ {
		y, m := addMonths(s.baseline.StartYear, s.baseline.StartMonth, i)
		out[i] = model.ForecastPoint{Year: y, Month: m, Index: s.baseline.Index[i] * mult}
	}
	return out, nil
}
