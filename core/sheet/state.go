package sheet

import (
	"strings"

	"github.com/pkg/errors"
)

type State int

const (
	Collapsed State = iota
	HalfExpanded
	Expanded
	Dragging
	Settling
)

func (st State) String() string {
	switch st {
	case Collapsed:
		return "collapsed"
	case HalfExpanded:
		return "half-expanded"
	case Expanded:
		return "expanded"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	}
	return "state(?)"
}

// Stable states are the ones a panel can rest at.
func (st State) Stable() bool {
	return st == Collapsed || st == HalfExpanded || st == Expanded
}

func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "collapsed":
		return Collapsed, nil
	case "half-expanded", "halfexpanded", "half":
		return HalfExpanded, nil
	case "expanded":
		return Expanded, nil
	case "dragging":
		return Dragging, nil
	case "settling":
		return Settling, nil
	}
	return 0, errors.Wrapf(ErrInvalidState, "%q", s)
}

//----------

var (
	ErrInvalidState     = errors.New("invalid state")
	ErrStateUnsupported = errors.New("state not supported")
	ErrInvalidConfig    = errors.New("invalid config")
)
