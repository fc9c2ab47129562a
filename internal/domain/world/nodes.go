package world

import (
	"github.com/mlange-42/ark/ecs"
)

type NodeKind string

const (
	NodeTree     NodeKind = "tree"
	NodeRock     NodeKind = "rock"
	NodeSnowPile NodeKind = "snow_pile"
	NodeMeat     NodeKind = "meat"
)

// Node is the component stored for every harvestable or collectable thing.
type Node struct {
	Kind   NodeKind
	Zone   Zone
	Health Health
}

// NodeRef is a weak reference into the node table. The zero value refers to nothing.
// A ref to a removed node stays detectable because ark entities carry a generation.
type NodeRef struct {
	entity ecs.Entity
	set    bool
}

func (r NodeRef) Valid() bool { return r.set }

type NodeView struct {
	Kind     NodeKind `json:"kind"`
	Zone     Zone     `json:"zone"`
	Position Point    `json:"position"`
	Health   int      `json:"health"`
	MaxHP    int      `json:"max_health"`
}

// Nodes is the live-entity table for resource nodes.
type Nodes struct {
	world  *ecs.World
	mapper *ecs.Map2[Point, Node]
	filter *ecs.Filter2[Point, Node]
}

func NewNodes() *Nodes {
	w := ecs.NewWorld()
	return &Nodes{
		world:  w,
		mapper: ecs.NewMap2[Point, Node](w),
		filter: ecs.NewFilter2[Point, Node](w),
	}
}

func (n *Nodes) Spawn(kind NodeKind, zone Zone, at Point, health int) NodeRef {
	pos := at
	node := Node{Kind: kind, Zone: zone, Health: NewHealth(health)}
	e := n.mapper.NewEntity(&pos, &node)
	return NodeRef{entity: e, set: true}
}

// Alive reports whether ref still points at a node that can be acted on.
func (n *Nodes) Alive(ref NodeRef) bool {
	if !ref.set || !n.world.Alive(ref.entity) {
		return false
	}
	_, node := n.mapper.Get(ref.entity)
	return !node.Health.Consuming
}

func (n *Nodes) Position(ref NodeRef) (Point, bool) {
	if !n.Alive(ref) {
		return Point{}, false
	}
	pos, _ := n.mapper.Get(ref.entity)
	return *pos, true
}

func (n *Nodes) Get(ref NodeRef) (Point, Node, bool) {
	if !ref.set || !n.world.Alive(ref.entity) {
		return Point{}, Node{}, false
	}
	pos, node := n.mapper.Get(ref.entity)
	return *pos, *node, true
}

// Hit applies one hit to the node. It reports destroyed=true exactly once per node.
func (n *Nodes) Hit(ref NodeRef) bool {
	if !ref.set || !n.world.Alive(ref.entity) {
		return false
	}
	_, node := n.mapper.Get(ref.entity)
	return node.Health.Hit()
}

// Remove deletes the node. Removing a stale ref is a no-op.
func (n *Nodes) Remove(ref NodeRef) bool {
	if !ref.set || !n.world.Alive(ref.entity) {
		return false
	}
	n.world.RemoveEntity(ref.entity)
	return true
}

// Nearest returns the closest live node of one of kinds within radius (<= 0 unbounded).
func (n *Nodes) Nearest(from Point, radius float64, kinds ...NodeKind) (NodeRef, Point, bool) {
	candidates := make([]Candidate[ecs.Entity], 0, 16)
	query := n.filter.Query()
	for query.Next() {
		pos, node := query.Get()
		if !matchKind(node.Kind, kinds) {
			continue
		}
		candidates = append(candidates, Candidate[ecs.Entity]{
			ID:    query.Entity(),
			Pos:   *pos,
			Alive: !node.Health.Consuming,
		})
	}
	best, _, ok := Nearest(from, candidates, radius)
	if !ok {
		return NodeRef{}, Point{}, false
	}
	return NodeRef{entity: best.ID, set: true}, best.Pos, true
}

// Overlapping returns live nodes of the given kinds within radius of p.
func (n *Nodes) Overlapping(p Point, radius float64, kinds ...NodeKind) []NodeRef {
	var out []NodeRef
	query := n.filter.Query()
	for query.Next() {
		pos, node := query.Get()
		if node.Health.Consuming || !matchKind(node.Kind, kinds) {
			continue
		}
		if p.Dist(*pos) <= radius {
			out = append(out, NodeRef{entity: query.Entity(), set: true})
		}
	}
	return out
}

func (n *Nodes) Count(kind NodeKind) int {
	count := 0
	query := n.filter.Query()
	for query.Next() {
		_, node := query.Get()
		if node.Kind == kind {
			count++
		}
	}
	return count
}

func (n *Nodes) Views() []NodeView {
	var out []NodeView
	query := n.filter.Query()
	for query.Next() {
		pos, node := query.Get()
		out = append(out, NodeView{
			Kind:     node.Kind,
			Zone:     node.Zone,
			Position: *pos,
			Health:   node.Health.Current,
			MaxHP:    node.Health.Max,
		})
	}
	return out
}

// Clear removes every node.
func (n *Nodes) Clear() {
	var all []ecs.Entity
	query := n.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		n.world.RemoveEntity(e)
	}
}

func matchKind(kind NodeKind, kinds []NodeKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
