package scene

import "fmt"

// Camera is fixed at the origin looking down the negative z-axis.
//
// Its view rectangle lies in the image plane z = -Near with edges
// x = Left, x = Right, y = Bottom, y = Top. A perspective camera sees the
// infinite pyramid with its apex at the origin through that rectangle; an
// orthographic camera sees the infinite box parallel to the z-axis.
type Camera struct {
	Perspective bool

	Near   float64
	Left   float64
	Right  float64
	Bottom float64
	Top    float64
}

// Default view volume: a symmetric unit rectangle one unit in front of the camera.
const (
	DefaultNear   = 1.0
	DefaultLeft   = -1.0
	DefaultRight  = 1.0
	DefaultBottom = -1.0
	DefaultTop    = 1.0
)

// NewCamera creates a perspective camera with the default view volume.
func NewCamera() *Camera {
	c := &Camera{}
	c.ProjPerspective(DefaultLeft, DefaultRight, DefaultBottom, DefaultTop, DefaultNear)
	return c
}

// NewOrthoCamera creates an orthographic camera with the default view volume.
func NewOrthoCamera() *Camera {
	c := &Camera{}
	c.ProjOrtho(DefaultLeft, DefaultRight, DefaultBottom, DefaultTop)
	return c
}

// ProjPerspective switches to a perspective projection through the view
// rectangle [left,right]x[bottom,top] on the plane z = -near.
func (c *Camera) ProjPerspective(left, right, bottom, top, near float64) {
	c.mustRect(left, right, bottom, top)
	if near <= 0 {
		panic(fmt.Sprintf("scene: camera near plane must be positive, got %v", near))
	}
	c.Perspective = true
	c.Left, c.Right, c.Bottom, c.Top = left, right, bottom, top
	c.Near = near
}

// ProjOrtho switches to an orthographic projection of the view rectangle
// [left,right]x[bottom,top]. Near keeps its previous value, or the default.
func (c *Camera) ProjOrtho(left, right, bottom, top float64) {
	c.mustRect(left, right, bottom, top)
	c.Perspective = false
	c.Left, c.Right, c.Bottom, c.Top = left, right, bottom, top
	if c.Near <= 0 {
		c.Near = DefaultNear
	}
}

// Validate reports a view volume that cannot be projected.
func (c *Camera) Validate() error {
	if !(c.Right > c.Left) {
		return fmt.Errorf("camera: right (%v) must exceed left (%v)", c.Right, c.Left)
	}
	if !(c.Top > c.Bottom) {
		return fmt.Errorf("camera: top (%v) must exceed bottom (%v)", c.Top, c.Bottom)
	}
	if c.Perspective && !(c.Near > 0) {
		return fmt.Errorf("camera: near (%v) must be positive", c.Near)
	}
	return nil
}

func (c *Camera) mustRect(left, right, bottom, top float64) {
	if !(right > left) || !(top > bottom) {
		panic(fmt.Sprintf("scene: degenerate view rectangle [%v,%v]x[%v,%v]", left, right, bottom, top))
	}
}

func (c *Camera) String() string {
	mode := "orthographic"
	if c.Perspective {
		mode = "perspective"
	}
	return fmt.Sprintf("Camera: %s, near = %v, view rectangle = [%v, %v] x [%v, %v]",
		mode, c.Near, c.Left, c.Right, c.Bottom, c.Top)
}
