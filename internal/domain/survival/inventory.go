package survival

// Inventory is the player's personal pack. Only capped items count toward Capacity.
type Inventory struct {
	Items    map[Item]int `json:"items"`
	Capacity int          `json:"capacity"`
	capped   map[Item]bool
}

func NewInventory(capacity int, capped ...Item) Inventory {
	inv := Inventory{Items: map[Item]int{}, Capacity: capacity, capped: map[Item]bool{}}
	for _, it := range capped {
		inv.capped[it] = true
	}
	return inv
}

func (i Inventory) IsCapped(item Item) bool { return i.capped[item] }

func (i Inventory) Count(item Item) int { return i.Items[item] }

// Load is the sum of capped items.
func (i Inventory) Load() int {
	total := 0
	for item, n := range i.Items {
		if i.capped[item] {
			total += n
		}
	}
	return total
}

func (i Inventory) Free() int {
	if free := i.Capacity - i.Load(); free > 0 {
		return free
	}
	return 0
}

// TryAdd adds amount of item unless that would push a capped item over capacity.
// On failure nothing changes.
func (i *Inventory) TryAdd(item Item, amount int) bool {
	if amount <= 0 || item == "" {
		return false
	}
	if i.capped[item] && i.Load()+amount > i.Capacity {
		return false
	}
	if i.Items == nil {
		i.Items = map[Item]int{}
	}
	i.Items[item] += amount
	return true
}

func (i *Inventory) Remove(item Item, amount int) bool {
	if amount <= 0 || item == "" || i.Items == nil {
		return false
	}
	current := i.Items[item]
	if current < amount {
		return false
	}
	i.Items[item] = current - amount
	return true
}

// Take removes every unit of item and returns how many there were.
func (i *Inventory) Take(item Item) int {
	n := i.Items[item]
	if n > 0 {
		i.Items[item] = 0
	}
	return n
}

func (i Inventory) Snapshot() map[Item]int {
	out := make(map[Item]int, len(i.Items))
	for k, v := range i.Items {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}
