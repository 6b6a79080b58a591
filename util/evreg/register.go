package evreg

import "container/list"

// The zero register is empty and ready for use.
type Register struct {
	m           map[int]*list.List
	dispatching int
}

//----------

// Remove is done via *Regist.Unregister().
func (reg *Register) Add(evId int, fn func(any)) *Regist {
	return reg.AddCallback(evId, &Callback{fn})
}

func (reg *Register) AddCallback(evId int, cb *Callback) *Regist {
	if reg.m == nil {
		reg.m = map[int]*list.List{}
	}
	l, ok := reg.m[evId]
	if !ok {
		l = list.New()
		reg.m[evId] = l
	}
	l.PushBack(cb)
	return &Regist{reg, evId, cb}
}

func (reg *Register) RemoveCallback(evId int, cb *Callback) {
	l, ok := reg.m[evId]
	if !ok {
		return
	}
	for e := l.Front(); e != nil; e = e.Next() {
		if e.Value.(*Callback) == cb {
			// element is only marked, callbacks running might be holding it
			e.Value = removedCallback
			break
		}
	}
	if reg.dispatching == 0 {
		reg.compact(evId)
	}
}

func (reg *Register) compact(evId int) {
	l, ok := reg.m[evId]
	if !ok {
		return
	}
	for e := l.Front(); e != nil; {
		next := e.Next()
		if e.Value.(*Callback) == removedCallback {
			l.Remove(e)
		}
		e = next
	}
	if l.Len() == 0 {
		delete(reg.m, evId)
	}
}

//----------

// Returns number of callbacks done. Callbacks can add/remove callbacks while running: added callbacks are run in the same dispatch, removed ones are not.
func (reg *Register) RunCallbacks(evId int, ev any) int {
	l, ok := reg.m[evId]
	if !ok {
		return 0
	}
	reg.dispatching++
	defer func() {
		reg.dispatching--
		if reg.dispatching == 0 {
			for id := range reg.m {
				reg.compact(id)
			}
		}
	}()
	c := 0
	for e := l.Front(); e != nil; e = e.Next() {
		cb := e.Value.(*Callback)
		if cb == removedCallback {
			continue
		}
		cb.F(ev)
		c++
	}
	return c
}

// Reports whether callbacks are currently running.
func (reg *Register) Dispatching() bool {
	return reg.dispatching > 0
}

// Number of registered callbacks for an event id.
func (reg *Register) NCallbacks(evId int) int {
	l, ok := reg.m[evId]
	if !ok {
		return 0
	}
	n := 0
	for e := l.Front(); e != nil; e = e.Next() {
		if e.Value.(*Callback) != removedCallback {
			n++
		}
	}
	return n
}

//----------

type Callback struct {
	F func(ev any)
}

var removedCallback = &Callback{}

//----------

type Regist struct {
	evReg *Register
	id    int
	cb    *Callback
}

func (reg *Regist) Unregister() {
	reg.evReg.RemoveCallback(reg.id, reg.cb)
}

//----------

// Utility to unregister big number of regists.
type Unregister struct {
	v []*Regist
}

func (unr *Unregister) Add(u ...*Regist) {
	unr.v = append(unr.v, u...)
}
func (unr *Unregister) UnregisterAll() {
	for _, e := range unr.v {
		e.Unregister()
	}
	unr.v = nil
}
