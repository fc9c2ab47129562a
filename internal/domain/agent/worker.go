package agent

import (
	"time"

	"frostfire/internal/domain/survival"
	"frostfire/internal/domain/world"
)

// Role parameterizes the shared Idle, Seeking, Performing, Returning loop.
type Role struct {
	Kind            Kind             `yaml:"-"`
	Speed           float64          `yaml:"speed"`
	Targets         []world.NodeKind `yaml:"-"`
	ArriveDistance  float64          `yaml:"arrive_distance"`
	DropoffDistance float64          `yaml:"dropoff_distance"`
	TaskDuration    time.Duration    `yaml:"task_duration"`
	StuckTimeout    time.Duration    `yaml:"stuck_timeout"`
	MinDisplacement float64          `yaml:"min_displacement"`
	Yield           survival.Item    `yaml:"-"`
	DepositHeat     float64          `yaml:"deposit_heat"`
}

func GathererRole() Role {
	return Role{
		Kind:            KindGatherer,
		Speed:           60,
		Targets:         []world.NodeKind{world.NodeTree},
		ArriveDistance:  30,
		DropoffDistance: 60,
		TaskDuration:    2 * time.Second,
		StuckTimeout:    2 * time.Second,
		MinDisplacement: 1,
		Yield:           survival.ItemWood,
		DepositHeat:     survival.AgentWoodHeat,
	}
}

func QuarryWorkerRole() Role {
	return Role{
		Kind:            KindQuarryWorker,
		Speed:           50,
		Targets:         []world.NodeKind{world.NodeRock},
		ArriveDistance:  30,
		DropoffDistance: 50,
		TaskDuration:    2 * time.Second,
		StuckTimeout:    3 * time.Second,
		MinDisplacement: 1,
		Yield:           survival.ItemStone,
	}
}

type Worker struct {
	ID        int
	Role      Role
	Position  world.Point
	Dropoff   world.Point
	State     State
	Target    world.NodeRef
	Carrying  int
	TaskTimer time.Duration
	stuck     StuckDetector
}

func NewWorker(id int, role Role, at, dropoff world.Point) *Worker {
	w := &Worker{ID: id, Role: role, Position: at, Dropoff: dropoff, State: StateIdle}
	w.stuck = StuckDetector{Timeout: role.StuckTimeout, MinDisplacement: role.MinDisplacement}
	return w
}

// Update advances the worker by one tick. A retained target is re-validated
// before every use; a dead one sends the worker back to Idle.
func (w *Worker) Update(dt time.Duration, env Env) Outcome {
	out := Outcome{From: w.State}
	switch w.State {
	case StateIdle:
		w.idle(env)
	case StateSeeking:
		w.seek(dt, env, &out)
	case StatePerforming:
		w.perform(dt, env, &out)
	case StateReturning:
		w.returnHome(dt, env, &out)
	default:
		w.enter(StateIdle)
	}
	out.To = w.State
	return out
}

func (w *Worker) idle(env Env) {
	if w.Carrying > 0 {
		w.enter(StateReturning)
		return
	}
	ref, _, ok := env.Nodes.Nearest(w.Position, 0, w.Role.Targets...)
	if !ok {
		return
	}
	w.Target = ref
	w.enter(StateSeeking)
}

func (w *Worker) seek(dt time.Duration, env Env, out *Outcome) {
	pos, ok := env.Nodes.Position(w.Target)
	if !ok {
		w.drop()
		return
	}
	if w.Position.Dist(pos) < w.Role.ArriveDistance {
		w.TaskTimer = 0
		w.enter(StatePerforming)
		return
	}
	w.move(pos, dt, env.Terrain)
	if w.stuck.Observe(w.Position, dt) {
		out.Stuck = true
		w.drop()
	}
}

func (w *Worker) perform(dt time.Duration, env Env, out *Outcome) {
	pos, node, ok := env.Nodes.Get(w.Target)
	if !ok || node.Health.Consuming {
		w.drop()
		return
	}
	w.TaskTimer += dt
	if w.TaskTimer < w.Role.TaskDuration {
		return
	}
	w.TaskTimer = 0
	if !env.Nodes.Hit(w.Target) {
		return
	}
	env.Nodes.Remove(w.Target)
	out.Harvested = true
	out.HarvestedKind = node.Kind
	out.HarvestedZone = node.Zone
	out.HarvestedAt = pos
	w.Carrying = 1
	w.Target = world.NodeRef{}
	w.enter(StateReturning)
}

func (w *Worker) returnHome(dt time.Duration, env Env, out *Outcome) {
	if w.Position.Dist(w.Dropoff) < w.Role.DropoffDistance {
		env.Economy.Deposit(w.Role.Yield, w.Carrying)
		if w.Role.DepositHeat > 0 {
			env.Economy.Refuel(w.Role.DepositHeat)
		}
		out.Deposited = w.Carrying
		out.DepositedItem = w.Role.Yield
		w.Carrying = 0
		w.enter(StateIdle)
		return
	}
	w.move(w.Dropoff, dt, env.Terrain)
	if w.stuck.Observe(w.Position, dt) {
		out.Stuck = true
		w.enter(StateIdle)
	}
}

func (w *Worker) move(to world.Point, dt time.Duration, terrain world.Terrain) {
	next := w.Position.MoveToward(to, w.Role.Speed*dt.Seconds())
	w.Position = terrain.Constrain(w.Position, next, false)
}

func (w *Worker) drop() {
	w.Target = world.NodeRef{}
	w.TaskTimer = 0
	w.enter(StateIdle)
}

func (w *Worker) enter(s State) {
	w.State = s
	w.stuck.Reset(w.Position)
}

func (w *Worker) View() View {
	return View{ID: w.ID, Kind: w.Role.Kind, State: w.State, Position: w.Position, Carrying: w.Carrying}
}
