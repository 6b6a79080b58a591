package fswatcher

import (
	"strings"
)

type Event struct {
	Op   Op
	Name string // watched file
}

//----------

const (
	Attrib Op = 1 << iota
	Create
	Modify // write, truncate
	Remove
	Rename

	AllOps Op = Attrib | Create | Modify | Remove | Rename
)

// Ops that change the content of a file, including saves done by writing a new file and renaming it over the old one.
const ContentOps = Create | Modify | Rename

//----------

func opsMap() map[Op]string {
	return map[Op]string{
		Attrib: "attrib",
		Create: "create",
		Remove: "remove",
		Modify: "modify",
		Rename: "rename",
	}
}

//----------

type Op uint16

func (op Op) HasAny(op2 Op) bool { return op&op2 != 0 }
func (op *Op) Add(op2 Op)        { *op |= op2 }

func (op Op) String() string {
	m := opsMap()
	u := []string{}
	o := Op(1)
	for i := 0; i < len(m); i++ {
		if op.HasAny(o) {
			u = append(u, m[o])
		}
		o <<= 1
	}
	return strings.Join(u, "|")
}
