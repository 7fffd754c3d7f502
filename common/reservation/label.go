package reservation

import "fmt"

const (
	_runSpecKey  = "run_spec"
	_instanceKey = "instance"
	_hostnameKey = "hostname"
)

// CreateLabels creates reservation labels for a stateful placement, so
// the reserved resources can later be matched back to the instance
// that owns them.
func CreateLabels(
	runSpecID, instanceID, hostname string) map[string]string {
	return map[string]string{
		_runSpecKey:  runSpecID,
		_instanceKey: instanceID,
		_hostnameKey: hostname,
	}
}

// ParseLabels parses the run spec id and instance id from given
// reservation labels.
func ParseLabels(labels map[string]string) (string, string, error) {
	runSpecID := labels[_runSpecKey]
	instanceID := labels[_instanceKey]
	// runSpecID and instanceID are required in reservation labels.
	if len(runSpecID) == 0 || len(instanceID) == 0 {
		return runSpecID, instanceID, fmt.Errorf("invalid reservation labels: %v", labels)
	}
	return runSpecID, instanceID, nil
}
