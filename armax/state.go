package armax

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrOrderMismatch reports that the parameter names grouped by the
	// naming convention do not match the declared model order.
	ErrOrderMismatch = errors.New("parameter groups do not match declared order")

	// ErrEndogenousCardinality reports that the endogenous variable is
	// not exactly one column.
	ErrEndogenousCardinality = errors.New("the endogenous variable must be unique")

	// ErrNoParams reports an empty parameter mapping.
	ErrNoParams = errors.New("no fitted parameters supplied")
)

// Group tags a state component as autoregressive, moving-average, or
// exogenous.
type Group int

const (
	GroupAR Group = iota
	GroupMA
	GroupExog
)

// String returns the group tag name.
func (g Group) String() string {
	switch g {
	case GroupAR:
		return "ar"
	case GroupMA:
		return "ma"
	case GroupExog:
		return "exog"
	}
	return "unknown"
}

// Component is one named scalar state entry with its group tag and lag
// index. Exogenous components have Lag 0.
type Component struct {
	Name  string
	Group Group
	Lag   int
}

// StateVector is the ordered state layout of an ARMA-X state-space
// model: AR components by lag 1..p, then MA components by lag 1..q,
// then exogenous components in declared order. It is computed once and
// threaded everywhere row and column order matters, so masks can never
// drift out of step with the layout.
type StateVector struct {
	comps    []Component
	coeffs   []float64
	excluded []string
}

// Extract partitions fitted parameters into ordered AR, MA, and
// exogenous groups and validates the group sizes against the declared
// order. Parameter names that match none of the groups (for example
// the intercept "const" or "sigma2") are deliberately excluded from
// the state vector; the excluded names are retained and can be read
// back via Excluded so the omission is visible rather than silent.
func Extract(order Order, exog []string, params map[string]float64) (*StateVector, error) {
	if len(params) == 0 {
		return nil, ErrNoParams
	}

	exogSet := make(map[string]bool, len(exog))
	for _, name := range exog {
		exogSet[name] = true
	}

	var ar, ma []Component
	var excluded []string
	for name := range params {
		switch {
		case strings.Contains(name, ARMarker):
			lag, ok := parseLag(name, ARMarker)
			if !ok {
				excluded = append(excluded, name)
				continue
			}
			ar = append(ar, Component{Name: name, Group: GroupAR, Lag: lag})
		case strings.Contains(name, MAMarker):
			lag, ok := parseLag(name, MAMarker)
			if !ok {
				excluded = append(excluded, name)
				continue
			}
			ma = append(ma, Component{Name: name, Group: GroupMA, Lag: lag})
		case exogSet[name]:
			// Handled below in declared order.
		default:
			excluded = append(excluded, name)
		}
	}

	// Lag order within each group defines the state layout.
	sort.Slice(ar, func(i, j int) bool { return ar[i].Lag < ar[j].Lag })
	sort.Slice(ma, func(i, j int) bool { return ma[i].Lag < ma[j].Lag })

	var exo []Component
	for _, name := range exog {
		if _, ok := params[name]; ok {
			exo = append(exo, Component{Name: name, Group: GroupExog})
		}
	}

	if len(ar) != order.P {
		return nil, fmt.Errorf("%w: %d AR parameters for p=%d", ErrOrderMismatch, len(ar), order.P)
	}
	if len(ma) != order.Q {
		return nil, fmt.Errorf("%w: %d MA parameters for q=%d", ErrOrderMismatch, len(ma), order.Q)
	}
	if len(exo) != order.D {
		return nil, fmt.Errorf("%w: %d exogenous parameters for d=%d", ErrOrderMismatch, len(exo), order.D)
	}

	// Lags must be contiguous 1..p and 1..q; a gap or duplicate would
	// leave a state slot with no matching component.
	for i, c := range ar {
		if c.Lag != i+1 {
			return nil, fmt.Errorf("%w: AR lags are not contiguous 1..%d (found %s)", ErrOrderMismatch, order.P, c.Name)
		}
	}
	for i, c := range ma {
		if c.Lag != i+1 {
			return nil, fmt.Errorf("%w: MA lags are not contiguous 1..%d (found %s)", ErrOrderMismatch, order.Q, c.Name)
		}
	}

	comps := make([]Component, 0, order.NoParams())
	comps = append(comps, ar...)
	comps = append(comps, ma...)
	comps = append(comps, exo...)

	coeffs := make([]float64, len(comps))
	for i, c := range comps {
		coeffs[i] = params[c.Name]
	}

	sort.Strings(excluded)

	return &StateVector{
		comps:    comps,
		coeffs:   coeffs,
		excluded: excluded,
	}, nil
}

// parseLag extracts the lag index following a group marker.
func parseLag(name, marker string) (int, bool) {
	suffix := name[strings.Index(name, marker)+len(marker):]
	lag, err := strconv.Atoi(suffix)
	if err != nil || lag < 1 {
		return 0, false
	}
	return lag, true
}

// Len returns the state dimension p+q+d.
func (sv *StateVector) Len() int {
	return len(sv.comps)
}

// Components returns the ordered state components.
func (sv *StateVector) Components() []Component {
	comps := make([]Component, len(sv.comps))
	copy(comps, sv.comps)
	return comps
}

// Names returns the ordered state-variable names, used for labeling
// filter outputs.
func (sv *StateVector) Names() []string {
	names := make([]string, len(sv.comps))
	for i, c := range sv.comps {
		names[i] = c.Name
	}
	return names
}

// Coeffs returns the fitted coefficients in state-vector order.
func (sv *StateVector) Coeffs() []float64 {
	coeffs := make([]float64, len(sv.coeffs))
	copy(coeffs, sv.coeffs)
	return coeffs
}

// Excluded returns the parameter names left out of the state vector,
// sorted. Typically the intercept and the innovation variance.
func (sv *StateVector) Excluded() []string {
	names := make([]string, len(sv.excluded))
	copy(names, sv.excluded)
	return names
}

// Mask returns a boolean mask over the state vector selecting the
// given group. The mask shares the state vector's ordering, so it can
// select and assign sub-slices of state and observation vectors.
func (sv *StateVector) Mask(g Group) []bool {
	mask := make([]bool, len(sv.comps))
	for i, c := range sv.comps {
		mask[i] = c.Group == g
	}
	return mask
}

// First returns the index of the group's first component, or -1 if the
// group is empty.
func (sv *StateVector) First(g Group) int {
	for i, c := range sv.comps {
		if c.Group == g {
			return i
		}
	}
	return -1
}

// LagIndex returns the state index of the group component with the
// given lag, or -1 if absent.
func (sv *StateVector) LagIndex(g Group, lag int) int {
	for i, c := range sv.comps {
		if c.Group == g && c.Lag == lag {
			return i
		}
	}
	return -1
}
