package scenefile

import (
	"fmt"
	"math"
	"slices"

	"github.com/taigrr/wire3d/pkg/models"
	"github.com/taigrr/wire3d/pkg/scene"
)

type buildFunc func(cam *scene.Camera, args []float64) (*scene.Model, error)

// builders maps builder names to constructors. Each takes its arguments
// positionally; missing trailing arguments take the listed defaults.
var builders = map[string]buildFunc{
	// square [r=1]
	"square": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 1)
		if err != nil {
			return nil, err
		}
		if err := positive(a, 0); err != nil {
			return nil, err
		}
		return models.Square(a[0]), nil
	},
	// cube [size=1]
	"cube": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 1)
		if err != nil {
			return nil, err
		}
		if err := positive(a, 0); err != nil {
			return nil, err
		}
		return models.Cube(a[0]), nil
	},
	// grid [size=2, step=0.25, y=0]
	"grid": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 2, 0.25, 0)
		if err != nil {
			return nil, err
		}
		if err := positive(a, 0, 1); err != nil {
			return nil, err
		}
		return models.Grid(a[0], a[1], a[2]), nil
	},
	// axes2d [xMin=-1, xMax=1, yMin=-1, yMax=1, xMarks=8, yMarks=8, z=0]
	"axes2d": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, -1, 1, -1, 1, 8, 8, 0)
		if err != nil {
			return nil, err
		}
		xMarks, err := count(a[4])
		if err != nil {
			return nil, err
		}
		yMarks, err := count(a[5])
		if err != nil {
			return nil, err
		}
		return models.Axes2D(a[0], a[1], a[2], a[3], xMarks, yMarks, a[6]), nil
	},
	// axes3d [xMin=-1, xMax=1, yMin=-1, yMax=1, zMin=-1, zMax=1]
	"axes3d": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, -1, 1, -1, 1, -1, 1)
		if err != nil {
			return nil, err
		}
		return models.Axes3D(a[0], a[1], a[2], a[3], a[4], a[5]), nil
	},
	// frustum [far=10]: the view volume of the scene's camera
	"frustum": func(cam *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 10)
		if err != nil {
			return nil, err
		}
		if !(a[0] > cam.Near) {
			return nil, fmt.Errorf("far (%v) must exceed the camera near plane (%v)", a[0], cam.Near)
		}
		return models.ViewFrustum(cam, a[0]), nil
	},
	// sierpinski [levels=3, length=1]
	"sierpinski": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 3, 1)
		if err != nil {
			return nil, err
		}
		n, err := levels(a[0])
		if err != nil {
			return nil, err
		}
		return models.Sierpinski(n, a[1]), nil
	},
	// hilbert [levels=3, length=1]
	"hilbert": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 3, 1)
		if err != nil {
			return nil, err
		}
		n, err := levels(a[0])
		if err != nil {
			return nil, err
		}
		return models.Hilbert(n, a[1]), nil
	},
	// sierpinskicurve [levels=5, length=1]
	"sierpinskicurve": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 5, 1)
		if err != nil {
			return nil, err
		}
		n, err := levels(a[0])
		if err != nil {
			return nil, err
		}
		return models.SierpinskiCurve(n, a[1]), nil
	},
	// polygasket [sides=6, levels=3]
	"polygasket": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 6, 3)
		if err != nil {
			return nil, err
		}
		sides, n, err := gasket(a[0], a[1])
		if err != nil {
			return nil, err
		}
		return models.Polygasket(sides, n), nil
	},
	// pentagasket [levels=3]
	"pentagasket": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 3)
		if err != nil {
			return nil, err
		}
		_, n, err := gasket(5, a[0])
		if err != nil {
			return nil, err
		}
		return models.Pentagasket(n), nil
	},
	// ninja [blades=12]
	"ninja": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 12)
		if err != nil {
			return nil, err
		}
		n, err := count(a[0])
		if err != nil {
			return nil, err
		}
		return models.Ninja(n), nil
	},
	// conesector [r=1, h=1, top=1, theta1=π/2, theta2=3π/2, latitudes=16, longitudes=8]
	"conesector": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 1, 1, 1, math.Pi/2, 3*math.Pi/2, 16, 8)
		if err != nil {
			return nil, err
		}
		if err := positive(a, 0, 1); err != nil {
			return nil, err
		}
		if a[2] < 0 || a[2] > a[1] {
			return nil, fmt.Errorf("top (%v) must lie between 0 and the height (%v)", a[2], a[1])
		}
		n, err := count(a[5])
		if err != nil {
			return nil, err
		}
		k, err := count(a[6])
		if err != nil {
			return nil, err
		}
		if n < 2 || k < 4 || n*k > 1<<20 {
			return nil, fmt.Errorf("need at least 2 latitudes and 4 longitudes, got %d and %d", n, k)
		}
		return models.ConeSector(a[0], a[1], a[2], a[3], a[4], n, k), nil
	},
	// spiral [segments=50]
	"spiral": func(_ *scene.Camera, args []float64) (*scene.Model, error) {
		a, err := argsOf(args, 50)
		if err != nil {
			return nil, err
		}
		n, err := count(a[0])
		if err != nil {
			return nil, err
		}
		return models.Spiral(n), nil
	},
}

// Builders returns the names of the available model builders, sorted.
func Builders() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// argsOf fills missing trailing arguments from defaults.
func argsOf(args []float64, defaults ...float64) ([]float64, error) {
	if len(args) > len(defaults) {
		return nil, fmt.Errorf("takes at most %d arguments, got %d", len(defaults), len(args))
	}
	out := slices.Clone(defaults)
	copy(out, args)
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("argument %d is not finite", i)
		}
	}
	return out, nil
}

func positive(args []float64, idx ...int) error {
	for _, i := range idx {
		if args[i] <= 0 {
			return fmt.Errorf("argument %d must be positive, got %v", i, args[i])
		}
	}
	return nil
}

// count converts a whole, non-negative argument to an int.
func count(v float64) (int, error) {
	if v < 0 || v != math.Trunc(v) || v > 1<<20 {
		return 0, fmt.Errorf("%v is not a valid count", v)
	}
	return int(v), nil
}

// maxLevels bounds fractal recursion; each level multiplies the segment
// count by 3 or 4.
const maxLevels = 10

func levels(v float64) (int, error) {
	n, err := count(v)
	if err != nil {
		return 0, err
	}
	if n > maxLevels {
		return 0, fmt.Errorf("at most %d levels, got %d", maxLevels, n)
	}
	return n, nil
}

// maxSegments bounds the size of generated gaskets.
const maxSegments = 1 << 20

// gasket validates a polygasket's side and level counts; a gasket has
// sides^(levels+1) segments.
func gasket(sidesArg, levelsArg float64) (int, int, error) {
	sides, err := count(sidesArg)
	if err != nil {
		return 0, 0, err
	}
	if sides < 3 {
		return 0, 0, fmt.Errorf("a gasket needs at least 3 sides, got %d", sides)
	}
	n, err := levels(levelsArg)
	if err != nil {
		return 0, 0, err
	}
	if math.Pow(float64(sides), float64(n+1)) > maxSegments {
		return 0, 0, fmt.Errorf("%d levels of a %d-gon exceed %d segments", n, sides, maxSegments)
	}
	return sides, n, nil
}
