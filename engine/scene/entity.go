package scene

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/quadrant/engine/core"
	"gopkg.in/yaml.v3"
)

// EntityType groups entities by what they represent.
type EntityType uint8

const (
	EntityTypeBackground EntityType = iota
	EntityTypeSprite
)

var entityTypeNames = []string{"background", "sprite"}

func (e EntityType) String() string {
	if int(e) < len(entityTypeNames) {
		return entityTypeNames[e]
	}
	return fmt.Sprintf("EntityType(%d)", uint8(e))
}

func (e EntityType) MarshalYAML() (interface{}, error) {
	return e.String(), nil
}

func (e *EntityType) UnmarshalYAML(value *yaml.Node) error {
	for i, name := range entityTypeNames {
		if value.Value == name {
			*e = EntityType(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown entity type %q (line %d)", core.ErrMalformedSceneData, value.Value, value.Line)
}

// Entity is just a bundle of components. ID is its position in the
// manager; GUID stays the same across saves and reloads.
type Entity struct {
	ID         Index      `yaml:"id"`
	GUID       uuid.UUID  `yaml:"guid"`
	Type       EntityType `yaml:"entity_type"`
	Components []Index    `yaml:"components,flow"`
}

func NewEntity(id Index, entityType EntityType) *Entity {
	return &Entity{
		ID:         id,
		GUID:       uuid.New(),
		Type:       entityType,
		Components: []Index{},
	}
}

// EntityManager owns every entity and handles creation and access.
type EntityManager struct {
	Counter  Index     `yaml:"counter"`
	Entities []*Entity `yaml:"entities"`
}

func NewEntityManager() *EntityManager {
	return &EntityManager{Entities: []*Entity{}}
}

// Create appends a new entity and returns its index.
func (em *EntityManager) Create(entityType EntityType) Index {
	id := Index(len(em.Entities))
	em.Entities = append(em.Entities, NewEntity(id, entityType))
	em.Counter = Index(len(em.Entities))
	return id
}

func (em *EntityManager) Get(index Index) (*Entity, error) {
	if index < 0 || int(index) >= len(em.Entities) {
		return nil, fmt.Errorf("%w: entity %d", core.ErrIndex, index)
	}
	return em.Entities[index], nil
}

func (em *EntityManager) EntitiesOfType(entityType EntityType) []Index {
	out := []Index{}
	for _, e := range em.Entities {
		if e.Type == entityType {
			out = append(out, e.ID)
		}
	}
	return out
}

// FindByGUID returns the entity with the given stable identifier.
func (em *EntityManager) FindByGUID(guid uuid.UUID) (*Entity, error) {
	for _, e := range em.Entities {
		if e.GUID == guid {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: entity %s", core.ErrIndex, guid)
}

// normalize mints GUIDs for entities that were written without one and
// checks that IDs match positions.
func (em *EntityManager) normalize() error {
	for i, e := range em.Entities {
		if e == nil {
			return fmt.Errorf("%w: empty entity entry at position %d", core.ErrMalformedSceneData, i)
		}
		if e.ID != Index(i) {
			return fmt.Errorf("%w: entity at position %d has id %d", core.ErrMalformedSceneData, i, e.ID)
		}
		if e.GUID == uuid.Nil {
			e.GUID = uuid.New()
		}
		if e.Components == nil {
			e.Components = []Index{}
		}
	}
	em.Counter = Index(len(em.Entities))
	return nil
}
