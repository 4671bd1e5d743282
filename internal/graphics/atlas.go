package graphics

import "fmt"

// Layer separates texture id spaces.
type Layer int

const (
	LayerWall Layer = iota
	LayerFloor
	LayerCeiling
	LayerSprite
	layerCount
)

func (l Layer) String() string {
	switch l {
	case LayerWall:
		return "walls"
	case LayerFloor:
		return "floors"
	case LayerCeiling:
		return "ceilings"
	case LayerSprite:
		return "sprites"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

// Atlas resolves texture ids to textures. It is filled before rendering
// starts and only read afterwards, so lookups need no locking.
type Atlas struct {
	layers      [layerCount]map[int]*Texture
	placeholder *Texture
}

// NewAtlas returns an empty atlas. A nil placeholder uses Placeholder(16).
func NewAtlas(placeholder *Texture) *Atlas {
	if placeholder == nil {
		placeholder = Placeholder(16)
	}
	a := &Atlas{placeholder: placeholder}
	for i := range a.layers {
		a.layers[i] = make(map[int]*Texture)
	}
	return a
}

// Set stores a texture under (layer, id).
func (a *Atlas) Set(layer Layer, id int, t *Texture) {
	a.layers[layer][id] = t
}

// Lookup returns the texture and whether it exists.
func (a *Atlas) Lookup(layer Layer, id int) (*Texture, bool) {
	t, ok := a.layers[layer][id]
	return t, ok
}

// Placeholder is the texture drawn for unknown ids.
func (a *Atlas) Placeholder() *Texture {
	return a.placeholder
}

// Len returns the number of textures in a layer.
func (a *Atlas) Len(layer Layer) int {
	return len(a.layers[layer])
}
