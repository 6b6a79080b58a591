package sheet

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

type logf func(string, ...any)

var Logf logf = func(string, ...any) {}
var Dump = func(...any) {}
var Debug = false

func LogDebug() {
	Debug = true
	Dump = spew.Dump
	Logf = CallerLogf
}

func CallerLogf(f string, a ...any) {
	fname := ""
	fpcs := make([]uintptr, 1) // num of callers to get
	n := runtime.Callers(2, fpcs)
	if n != 0 {
		fun := runtime.FuncForPC(fpcs[0] - 1) // get info
		if fun != nil {
			s := fun.Name()
			i := strings.LastIndex(s, ".")
			if i >= 0 {
				s = s[i+1:]
			}
			fname = s + ": "
		}
	}
	fmt.Printf("sheet: "+fname+f+"\n", a...)
}
