package host

import "unsafe"

// AddSceneLightFunc is the signature of the renderer's per-scene-light entry
// point.
type AddSceneLightFunc func(sceneLight, lightEntity unsafe.Pointer, addToPrevious bool) bool

// SceneLight is the light source record handed to AddSceneLight each frame.
type SceneLight struct {
	X, Y      float64
	Radius    float64
	Intensity float64
}

// Renderer owns the global blackout switches and the per-frame scene light
// list. While DisableArtificialLights is set, ordinary entity lights are
// rejected; DisableArtificialVehLights does the same for vehicle-owned
// lights. Both cells are plain booleans read from several places in a frame,
// which is why hook code must restore them immediately after each overridden
// call.
type Renderer struct {
	DisableArtificialLights    bool
	DisableArtificialVehLights bool

	entry AddSceneLightFunc
	lit   []*SceneLight
}

// NewRenderer creates a renderer whose entry point is the original
// AddSceneLight logic.
func NewRenderer() *Renderer {
	r := &Renderer{}
	r.entry = r.addSceneLight
	return r
}

// InstallAddSceneLightHook swaps the live AddSceneLight entry point and
// returns the previous one, the way a detour library hands back the
// trampoline. Must be called before the first frame.
func (r *Renderer) InstallAddSceneLightHook(fn AddSceneLightFunc) AddSceneLightFunc {
	prev := r.entry
	r.entry = fn
	return prev
}

// BeginFrame resets the frame's accepted light list. Called once per frame
// on the render goroutine.
func (r *Renderer) BeginFrame() {
	r.lit = r.lit[:0]
}

// Lit returns the scene lights accepted so far this frame.
func (r *Renderer) Lit() []*SceneLight {
	return r.lit
}

// AddSceneLight dispatches through the live entry point. Called once per
// light-producing entity per frame.
func (r *Renderer) AddSceneLight(src *SceneLight, le *LightEntity, addToPrevious bool) bool {
	return r.entry(unsafe.Pointer(src), unsafe.Pointer(le), addToPrevious)
}

// addSceneLight is the original logic: accept the light unless the relevant
// blackout switch is set.
func (r *Renderer) addSceneLight(sceneLight, lightEntity unsafe.Pointer, addToPrevious bool) bool {
	src := (*SceneLight)(sceneLight)
	le := (*LightEntity)(lightEntity)

	vehicle := le != nil && le.Parent() != nil && le.Parent().Vehicle
	if vehicle {
		if r.DisableArtificialVehLights {
			return false
		}
	} else if r.DisableArtificialLights {
		return false
	}

	if src != nil {
		r.lit = append(r.lit, src)
	}
	return true
}
