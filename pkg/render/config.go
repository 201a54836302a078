package render

import "log/slog"

// DefaultGamma is the display gamma used to encode anti-aliasing weights.
const DefaultGamma = 2.2

// Config controls how the pipeline rasterizes and what it traces.
type Config struct {
	Clip      bool    // Drop pixels outside the viewport
	AntiAlias bool    // Xiaolin Wu style line anti-aliasing
	Gamma     float64 // Gamma-encode anti-aliasing weights with 1/Gamma; 0 disables
	Color     Color   // Line and point color for models without vertex colors

	Debug     bool         // Trace every stage for the whole scene
	RastDebug bool         // While tracing, also trace every pixel written or clipped
	Logger    *slog.Logger // Destination for traces and warnings; nil means slog.Default()
}

// DefaultConfig returns the configuration the pipeline uses when none is
// given: clipping on, no anti-aliasing, white lines.
func DefaultConfig() Config {
	return Config{
		Clip:  true,
		Color: ColorWhite,
	}
}

func (cfg Config) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.Default()
}

func (cfg Config) color() Color {
	if cfg.Color == (Color{}) {
		return ColorWhite
	}
	return cfg.Color
}
