package scene

import (
	"fmt"

	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/engine/geometry"
)

// ComponentManager owns every Component and controls creation, access and
// removal. Components are referenced by index everywhere else; a
// component's ID is always its position in Components.
type ComponentManager struct {
	Counter    Index        `yaml:"counter"`
	Components []*Component `yaml:"components"`
}

func NewComponentManager() *ComponentManager {
	return &ComponentManager{Components: []*Component{}}
}

// Create stores a component with the given type and data and returns its id.
func (cm *ComponentManager) Create(componentType ComponentType, data ComponentData) Index {
	id := Index(len(cm.Components))
	cm.Components = append(cm.Components, &Component{
		ID:   id,
		Type: componentType,
		Data: data,
	})
	cm.Counter = Index(len(cm.Components))
	return id
}

func (cm *ComponentManager) Get(id Index) (*Component, error) {
	if id < 0 || int(id) >= len(cm.Components) {
		return nil, fmt.Errorf("%w: component %d", core.ErrIndex, id)
	}
	return cm.Components[id], nil
}

// AddEntityComponent attaches the component at index to entity.
func (cm *ComponentManager) AddEntityComponent(entity Index, em *EntityManager, index Index) error {
	if _, err := cm.Get(index); err != nil {
		return err
	}
	e, err := em.Get(entity)
	if err != nil {
		return err
	}
	e.Components = append(e.Components, index)
	return nil
}

// EntityComponentsOfType returns the ids of the entity's components of the
// requested type.
func (cm *ComponentManager) EntityComponentsOfType(entity Index, em *EntityManager, componentType ComponentType) ([]Index, error) {
	e, err := em.Get(entity)
	if err != nil {
		return nil, err
	}
	out := []Index{}
	for _, index := range e.Components {
		c, err := cm.Get(index)
		if err != nil {
			return nil, err
		}
		if c.Type == componentType {
			out = append(out, index)
		}
	}
	return out, nil
}

// ComponentsOfType returns the ids of every component of the given type.
func (cm *ComponentManager) ComponentsOfType(componentType ComponentType) []Index {
	out := []Index{}
	for _, c := range cm.Components {
		if c.Type == componentType {
			out = append(out, c.ID)
		}
	}
	return out
}

// RemoveEntityComponent detaches a component from an entity. The component
// itself stays in the manager.
func (cm *ComponentManager) RemoveEntityComponent(em *EntityManager, entity Index, component Index) error {
	e, err := em.Get(entity)
	if err != nil {
		return err
	}
	for i, index := range e.Components {
		if index == component {
			e.Components = append(e.Components[:i], e.Components[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: entity %d has no component %d", core.ErrIndex, entity, component)
}

// KeyboardResponse moves every animated component one step in dir.
func (cm *ComponentManager) KeyboardResponse(dir geometry.Direction) {
	for _, c := range cm.Components {
		if anim, ok := c.Data.(*Animation2DData); ok {
			anim.Movement.Apply(&anim.Transform, dir)
		}
	}
}

func (cm *ComponentManager) normalize() error {
	for i, c := range cm.Components {
		if c == nil {
			return fmt.Errorf("%w: empty component entry at position %d", core.ErrMalformedSceneData, i)
		}
		if c.ID != Index(i) {
			return fmt.Errorf("%w: component at position %d has id %d", core.ErrMalformedSceneData, i, c.ID)
		}
	}
	// Counter always names the next free position.
	cm.Counter = Index(len(cm.Components))
	return nil
}
