package entity

// Resolver is an immutable snapshot of loaded entities with id-keyed
// lookup. It satisfies the catalog flattener's EntityResolver interface
// without re-reading the entities file per lookup.
type Resolver struct {
	byID   map[string]*Entity
	byName map[string]*Entity
}

// NewResolver builds a Resolver over a loaded entity list.
func NewResolver(entities []Entity) *Resolver {
	r := &Resolver{
		byID:   make(map[string]*Entity, len(entities)),
		byName: make(map[string]*Entity, len(entities)),
	}
	for i := range entities {
		e := &entities[i]
		if e.ID != "" {
			r.byID[e.ID] = e
		}
		r.byName[e.Name] = e
	}
	return r
}

// lookup finds an entity by id, falling back to a name match for configs
// predating explicit entity ids.
func (r *Resolver) lookup(id string) *Entity {
	if e, ok := r.byID[id]; ok {
		return e
	}
	return r.byName[id]
}

// Has reports whether the id resolves to a known entity.
func (r *Resolver) Has(id string) bool {
	return r.lookup(id) != nil
}

// EntityName returns the display name for an entity id, or "".
func (r *Resolver) EntityName(id string) string {
	if e := r.lookup(id); e != nil {
		return e.Name
	}
	return ""
}

// EntityURL returns the source URL for an entity id, or "".
func (r *Resolver) EntityURL(id string) string {
	if e := r.lookup(id); e != nil {
		return e.URL
	}
	return ""
}
