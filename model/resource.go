package model

// Well-known resource names understood by the scheduling core.
const (
	ResourceCPUs  = "cpus"
	ResourceMem   = "mem"
	ResourceDisk  = "disk"
	ResourceGPUs  = "gpus"
	ResourcePorts = "ports"
)

// ReservationInfo tags a resource as reserved for a principal. Labels
// carry enough information to recover which instance owns the
// reservation (see common/reservation).
type ReservationInfo struct {
	Principal string
	Labels    map[string]string
}

// DiskInfo marks a disk resource as backing a persistent volume.
type DiskInfo struct {
	Volume        VolumeID
	ContainerPath string
}

// Resource is a named quantity offered by a cluster node. Scalar
// resources (cpus, mem, disk, gpus) use Value; set resources (ports)
// use Ports. Role, Reservation and Disk refine ownership.
type Resource struct {
	Name        string
	Role        string
	Value       float64
	Ports       []uint64
	Reservation *ReservationInfo
	Disk        *DiskInfo
}

// IsReserved returns whether the resource carries a reservation.
func (r *Resource) IsReserved() bool {
	return r.Reservation != nil
}

// clone returns a value copy with its own ports slice and label map so
// consumption never aliases the input.
func (r Resource) clone() Resource {
	if r.Ports != nil {
		ports := make([]uint64, len(r.Ports))
		copy(ports, r.Ports)
		r.Ports = ports
	}
	if r.Reservation != nil {
		res := *r.Reservation
		if res.Labels != nil {
			labels := make(map[string]string, len(res.Labels))
			for k, v := range res.Labels {
				labels[k] = v
			}
			res.Labels = labels
		}
		r.Reservation = &res
	}
	if r.Disk != nil {
		disk := *r.Disk
		r.Disk = &disk
	}
	return r
}

// matches returns whether two resources refer to the same offer entry
// for consumption purposes: same name, same role, and the same
// reservation identity. Two reservations for different instances are
// distinct entries even under the same name and role, so consuming one
// never drains the other.
func (r *Resource) matches(other *Resource) bool {
	return r.Name == other.Name &&
		r.Role == other.Role &&
		reservationEqual(r.Reservation, other.Reservation)
}

func reservationEqual(a, b *ReservationInfo) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if a.Principal != b.Principal || len(a.Labels) != len(b.Labels) {
		return false
	}
	for k, v := range a.Labels {
		if b.Labels[k] != v {
			return false
		}
	}
	return true
}

// ConsumeResources subtracts used from have, entry by entry, and
// returns a new slice. Scalar quantities are subtracted without
// clamping; port sets are reduced by set difference. Used entries
// with no matching offer entry are ignored, which makes chained
// consumption across already-adjusted views safe. The result is
// independent of the order entries are consumed in.
func ConsumeResources(have, used []Resource) []Resource {
	result := make([]Resource, 0, len(have))
	for _, h := range have {
		result = append(result, h.clone())
	}
	for ui := range used {
		u := &used[ui]
		for hi := range result {
			h := &result[hi]
			if !h.matches(u) {
				continue
			}
			if h.Name == ResourcePorts {
				h.Ports = subtractPorts(h.Ports, u.Ports)
			} else {
				h.Value -= u.Value
			}
			break
		}
	}
	return result
}

func subtractPorts(have, used []uint64) []uint64 {
	if len(used) == 0 {
		return have
	}
	drop := make(map[uint64]struct{}, len(used))
	for _, p := range used {
		drop[p] = struct{}{}
	}
	remaining := make([]uint64, 0, len(have))
	for _, p := range have {
		if _, ok := drop[p]; !ok {
			remaining = append(remaining, p)
		}
	}
	return remaining
}
