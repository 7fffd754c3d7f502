package scalar

import (
	"math"
	"sync"

	"github.com/coxswain-io/coxswain/model"
)

// resourceEpsilon is the minimum meaningful difference between two
// scalar quantities.
const resourceEpsilon = 1e-6

// Resources is a non-thread safe helper struct holding recognized
// scalar resources.
type Resources struct {
	CPU  float64
	Mem  float64
	Disk float64
	GPU  float64
}

// a safe less than or equal to comparator which takes epsilon into
// consideration.
func lessThanOrEqual(f1, f2 float64) bool {
	v := f1 - f2
	if math.Abs(v) < resourceEpsilon {
		return true
	}
	return v < 0
}

// HasGPU is a special condition to ensure exclusive protection for GPU.
func (r *Resources) HasGPU() bool {
	return math.Abs(r.GPU) > resourceEpsilon
}

// Contains determines whether current Resources is large enough to
// contain the other one.
func (r *Resources) Contains(other *Resources) bool {
	return lessThanOrEqual(other.CPU, r.CPU) &&
		lessThanOrEqual(other.Mem, r.Mem) &&
		lessThanOrEqual(other.Disk, r.Disk) &&
		lessThanOrEqual(other.GPU, r.GPU)
}

// Add adds another scalar resources onto current one and returns a new
// copy of the result.
func (r *Resources) Add(other *Resources) *Resources {
	return &Resources{
		CPU:  r.CPU + other.CPU,
		Mem:  r.Mem + other.Mem,
		Disk: r.Disk + other.Disk,
		GPU:  r.GPU + other.GPU,
	}
}

// TrySubtract attempts to subtract another scalar resources from
// current one, but returns nil if other has more resources.
func (r *Resources) TrySubtract(other *Resources) *Resources {
	if !r.Contains(other) {
		return nil
	}
	return r.Subtract(other)
}

// Subtract another scalar resources from current one and return a new
// copy of the result.
func (r *Resources) Subtract(other *Resources) *Resources {
	return &Resources{
		CPU:  r.CPU - other.CPU,
		Mem:  r.Mem - other.Mem,
		Disk: r.Disk - other.Disk,
		GPU:  r.GPU - other.GPU,
	}
}

// HasNegativeFields returns whether any scalar quantity dropped below
// zero, which indicates an offer was overcommitted.
func (r *Resources) HasNegativeFields() bool {
	return !lessThanOrEqual(0, r.CPU) ||
		!lessThanOrEqual(0, r.Mem) ||
		!lessThanOrEqual(0, r.Disk) ||
		!lessThanOrEqual(0, r.GPU)
}

// NonEmptyFields returns resource names for fields which are not empty.
func (r *Resources) NonEmptyFields() []string {
	var nonEmptyFields []string
	if math.Abs(r.CPU) > resourceEpsilon {
		nonEmptyFields = append(nonEmptyFields, model.ResourceCPUs)
	}
	if math.Abs(r.Mem) > resourceEpsilon {
		nonEmptyFields = append(nonEmptyFields, model.ResourceMem)
	}
	if math.Abs(r.Disk) > resourceEpsilon {
		nonEmptyFields = append(nonEmptyFields, model.ResourceDisk)
	}
	if math.Abs(r.GPU) > resourceEpsilon {
		nonEmptyFields = append(nonEmptyFields, model.ResourceGPUs)
	}

	return nonEmptyFields
}

// Empty returns whether all fields are empty now.
func (r Resources) Empty() bool {
	return len(r.NonEmptyFields()) == 0
}

// FromResource returns the scalar Resources from a single resource
// entry. Non-scalar entries such as ports contribute nothing.
func FromResource(resource *model.Resource) (r Resources) {
	switch resource.Name {
	case model.ResourceCPUs:
		r.CPU += resource.Value
	case model.ResourceMem:
		r.Mem += resource.Value
	case model.ResourceDisk:
		r.Disk += resource.Value
	case model.ResourceGPUs:
		r.GPU += resource.Value
	}
	return r
}

// FromResources returns the scalar Resources from a list of resource
// entries.
func FromResources(resources []model.Resource) (r Resources) {
	for i := range resources {
		tmp := FromResource(&resources[i])
		r = *(r.Add(&tmp))
	}

	return r
}

// FromOffer returns the scalar Resources from an offer.
func FromOffer(offer *model.Offer) (r Resources) {
	return FromResources(offer.Resources)
}

// Minimum returns minimum amount of resources in each type.
func Minimum(r1, r2 Resources) (m Resources) {
	m.CPU = math.Min(r1.CPU, r2.CPU)
	m.Mem = math.Min(r1.Mem, r2.Mem)
	m.Disk = math.Min(r1.Disk, r2.Disk)
	m.GPU = math.Min(r1.GPU, r2.GPU)
	return m
}

// AtomicResources is a wrapper around `Resources` providing thread
// safety.
type AtomicResources struct {
	sync.RWMutex

	resources Resources
}

// Get returns a copy of current value.
func (a *AtomicResources) Get() Resources {
	a.RLock()
	defer a.RUnlock()
	return a.resources
}

// Set sets value to r.
func (a *AtomicResources) Set(r Resources) {
	a.Lock()
	defer a.Unlock()
	a.resources = r
}
