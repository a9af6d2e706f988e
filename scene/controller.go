package scene

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/groundstation/logging"
	"go.viam.com/groundstation/rimage"
	"go.viam.com/groundstation/spatialmath"
)

// State is the controller's lifecycle stage.
type State int

const (
	// Empty means no raster has been committed. Overlay updates are stored but not drawn.
	Empty State = iota
	// DemLoaded means a raster is committed and overlays are live.
	DemLoaded
)

func (s State) String() string {
	if s == DemLoaded {
		return "dem_loaded"
	}
	return "empty"
}

const minGoalFontSize = 3.

// Options configures a Controller.
type Options struct {
	Downsample int
	Margin     float64
	Palette    Palette
}

// SettingsStore is the host's opaque settings storage.
type SettingsStore interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
}

// Controller owns the raster and every overlay on a Surface and applies telemetry to them. It is
// not safe for concurrent use; all calls are expected from a single processing goroutine.
type Controller struct {
	logger  logging.Logger
	surface Surface
	mapper  *Mapper
	palette Palette

	rasterReady bool
	rasterSize  image.Point
	bounds      r2.Rect

	dem    Pixmap
	hazard Pixmap
	robot  Item
	goal   Marker
	arrow  Item

	// last received values, drawn once the raster is ready
	hazardTint *image.NRGBA
	pose       spatialmath.Pose
	goalID     string
	goalPos    r2.Point
	haveGoal   bool
	steer      float64
	haveSteer  bool
}

// NewController returns an empty controller drawing onto surface.
func NewController(surface Surface, opts Options, logger logging.Logger) (*Controller, error) {
	if surface == nil {
		return nil, errors.New("scene controller needs a surface")
	}
	if opts.Downsample == 0 {
		opts.Downsample = DefaultDownsample
	}
	mapper, err := NewMapper(opts.Downsample, opts.Margin)
	if err != nil {
		return nil, err
	}
	palette := opts.Palette
	if palette.Robot == nil {
		palette.Robot = DefaultPalette.Robot
	}
	if palette.Goal == nil {
		palette.Goal = DefaultPalette.Goal
	}
	if palette.Arrow == nil {
		palette.Arrow = DefaultPalette.Arrow
	}
	return &Controller{
		logger:  logger,
		surface: surface,
		mapper:  mapper,
		palette: palette,
	}, nil
}

// State returns the lifecycle stage.
func (c *Controller) State() State {
	if c.rasterReady {
		return DemLoaded
	}
	return Empty
}

// Ready reports whether a raster has been committed.
func (c *Controller) Ready() bool {
	return c.rasterReady
}

// Mapper returns the controller's world to view transform.
func (c *Controller) Mapper() *Mapper {
	return c.mapper
}

// RasterSize returns the size of the committed raster in view units.
func (c *Controller) RasterSize() image.Point {
	return c.rasterSize
}

// SceneRect returns the current scene bounds. It is empty until a raster is committed.
func (c *Controller) SceneRect() r2.Rect {
	if !c.rasterReady {
		return r2.EmptyRect()
	}
	return c.bounds
}

// DEM returns the raster item, or nil.
func (c *Controller) DEM() Pixmap {
	return c.dem
}

// Hazard returns the hazard overlay, or nil.
func (c *Controller) Hazard() Pixmap {
	return c.hazard
}

// Robot returns the robot marker, or nil.
func (c *Controller) Robot() Item {
	return c.robot
}

// Goal returns the goal marker, or nil.
func (c *Controller) Goal() Marker {
	return c.goal
}

// Arrow returns the steering arrow, or nil.
func (c *Controller) Arrow() Item {
	return c.arrow
}

// HandleElevation downsamples and normalizes grid and commits it as the scene's raster, replacing
// any previous one. Existing overlays are kept where they are. The first commit draws every
// overlay update received so far.
func (c *Controller) HandleElevation(grid *rimage.ElevationGrid) error {
	if grid == nil {
		return errors.New("nil elevation grid")
	}
	small, err := rimage.Downsample(grid, c.mapper.Downsample())
	if err != nil {
		return err
	}
	if _, _, err := small.DynamicRange(); err != nil {
		c.logger.Warnw("elevation grid has no dynamic range, drawing it black", "error", err)
	}
	raster := rimage.BuildGrayscale(small)

	if c.dem != nil {
		c.surface.RemoveItem(c.dem)
	}
	c.dem = c.surface.AddPixmap(DEMLayer, raster)
	c.dem.SetPos(r2.Point{})

	c.rasterSize = image.Pt(small.Width(), small.Height())
	c.bounds = c.mapper.SceneBounds(small.Width(), small.Height())
	c.surface.SetSceneRect(c.bounds)
	c.surface.FitInView(c.bounds)

	first := !c.rasterReady
	c.rasterReady = true
	c.logger.Debugw("committed raster", "width", small.Width(), "height", small.Height(), "first", first)

	if c.hazard != nil {
		c.hazard.SetTransform(rimage.ScaleTransform(c.hazard.Image().Bounds(), raster.Bounds()))
	}
	if first {
		c.drawDeferred()
	}
	return nil
}

func (c *Controller) drawDeferred() {
	if c.hazardTint != nil {
		c.drawHazard()
	}
	if c.haveGoal {
		c.drawGoal()
	}
	if c.pose != nil {
		c.drawRobot()
	}
	if c.haveSteer {
		c.drawArrow()
	}
}

// HandleHazard rebuilds the hazard overlay from grid, stretched over the raster.
func (c *Controller) HandleHazard(grid *rimage.HazardGrid) error {
	if grid == nil {
		return errors.New("nil hazard grid")
	}
	c.hazardTint = rimage.HazardTint(grid)
	if !c.rasterReady {
		return NewMissingRasterError(HazardOverlay)
	}
	c.drawHazard()
	return nil
}

func (c *Controller) drawHazard() {
	if c.hazard != nil {
		c.surface.RemoveItem(c.hazard)
	}
	c.hazard = c.surface.AddPixmap(HazardOverlay, c.hazardTint)
	c.hazard.SetPos(r2.Point{})
	c.hazard.SetTransform(rimage.ScaleTransform(c.hazardTint.Bounds(), image.Rectangle{Max: c.rasterSize}))
}

// HandleRobotState moves the robot marker to pose and drags the steering arrow along with it.
func (c *Controller) HandleRobotState(pose spatialmath.Pose) error {
	if pose == nil {
		return errors.New("nil pose")
	}
	c.pose = pose
	if !c.rasterReady {
		return NewMissingRasterError(RobotMarker)
	}
	c.drawRobot()
	if c.arrow != nil {
		c.drawArrow()
	}
	return nil
}

func (c *Controller) drawRobot() {
	if c.robot == nil {
		c.robot = c.surface.AddArrow(RobotMarker, c.palette.Robot)
	}
	p := c.pose.Point()
	placeCentered(c.mapper, c.robot, p.X, p.Y)
	orient(c.robot, c.pose.Orientation().EulerAngles().Yaw)
}

// HandleGoal moves the goal marker and relabels it with id.
func (c *Controller) HandleGoal(id string, x, y float64) error {
	c.goalID = id
	c.goalPos = r2.Point{X: x, Y: y}
	c.haveGoal = true
	if !c.rasterReady {
		return NewMissingRasterError(GoalMarker)
	}
	c.drawGoal()
	return nil
}

func (c *Controller) drawGoal() {
	if c.goal == nil {
		c.goal = c.surface.AddMarker(GoalMarker, c.goalID, c.palette.Goal)
		c.goal.SetFontSize(math.Max(float64(c.rasterSize.Y)/20, minGoalFontSize))
	}
	c.goal.SetLabel(c.goalID)
	placeCentered(c.mapper, c.goal, c.goalPos.X, c.goalPos.Y)
}

// HandleSteer points the steering arrow, drawn on the robot, at angle radians.
func (c *Controller) HandleSteer(angle float64) error {
	c.steer = angle
	c.haveSteer = true
	if !c.rasterReady {
		return NewMissingRasterError(SteeringArrow)
	}
	c.drawArrow()
	return nil
}

func (c *Controller) drawArrow() {
	if c.arrow == nil {
		c.arrow = c.surface.AddArrow(SteeringArrow, c.palette.Arrow)
	}
	if c.pose == nil {
		c.logger.Debug("no robot coordinates yet, steering arrow not placed")
		return
	}
	p := c.pose.Point()
	placeCentered(c.mapper, c.arrow, p.X, p.Y)
	orient(c.arrow, c.steer)
}

// Resize reapplies the scene bounds and refits the view. It does nothing before the first raster.
func (c *Controller) Resize() {
	if !c.rasterReady {
		return
	}
	c.surface.SetSceneRect(c.bounds)
	c.surface.FitInView(c.bounds)
}

// SaveSettings is a hook for the host application. Nothing is persisted.
func (c *Controller) SaveSettings(store SettingsStore) error {
	return nil
}

// RestoreSettings is a hook for the host application. Nothing is restored.
func (c *Controller) RestoreSettings(store SettingsStore) error {
	return nil
}

// Close removes every item from the surface and returns the controller to Empty.
func (c *Controller) Close() {
	for _, item := range []Item{c.arrow, c.robot, c.goal, c.hazard, c.dem} {
		if item != nil {
			c.surface.RemoveItem(item)
		}
	}
	*c = Controller{
		logger:  c.logger,
		surface: c.surface,
		mapper:  c.mapper,
		palette: c.palette,
	}
}
