package scenefile

import (
	_ "embed"
	"strings"

	"github.com/taigrr/wire3d/pkg/scene"
)

//go:embed demo.toml
var demoTOML string

// Demo builds the built-in demonstration scene.
func Demo() (*scene.Scene, error) {
	return Decode(strings.NewReader(demoTOML), TOML)
}
