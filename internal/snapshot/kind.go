package snapshot

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is a cell's type tag. The numeric values follow the simulator's
// CellType enum so integer-coded snapshots parse the same as named ones.
type Kind int

const (
	KindNone Kind = iota
	KindTmp
	KindDead
	KindWorker
	KindTarget
	KindSender
	KindReceiver
	KindEnemy
)

var kindNames = [...]string{"NONE", "TMP", "DEAD", "WORKER", "TARGET", "SENDER", "RECEIVER", "ENEMY"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Visible reports whether cells of this kind are drawn. NONE and TMP cells
// keep their id but never reach the canvas.
func (k Kind) Visible() bool {
	return k != KindNone && k != KindTmp
}

// ParseKind accepts either a type name or its integer code.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= len(kindNames) {
		return KindNone, fmt.Errorf("unknown cell type %q", s)
	}
	return Kind(n), nil
}
