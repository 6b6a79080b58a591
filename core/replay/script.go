// Package replay runs scripted input against a sheet controller and produces a transcript of its callbacks.
package replay

import (
	"bufio"
	"bytes"
	"image"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Script struct {
	Filename string
	Cmds     []*Cmd
}

type Cmd struct {
	Line int // 1-based
	Args []string
}

func ParseScript(src []byte, filename string) (*Script, error) {
	sc := &Script{Filename: filename}
	scanner := bufio.NewScanner(bytes.NewReader(src))
	line := 0
	for scanner.Scan() {
		line++
		txt := scanner.Text()
		// comments
		if i := strings.Index(txt, "#"); i >= 0 {
			txt = txt[:i]
		}
		args := strings.Fields(txt)
		if len(args) == 0 {
			continue
		}
		if _, ok := commands[args[0]]; !ok {
			return nil, sc.error(line, errors.Errorf("unknown command: %v", args[0]))
		}
		sc.Cmds = append(sc.Cmds, &Cmd{Line: line, Args: args})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, filename)
	}
	return sc, nil
}

func (sc *Script) error(line int, err error) error {
	return errors.Wrapf(err, "%s:%d", sc.Filename, line)
}

//----------

// "x,y"
func parsePoint(s string) (image.Point, error) {
	u, err := parseInts(s, ",", 2)
	if err != nil {
		return image.Point{}, errors.Wrapf(err, "point %q", s)
	}
	return image.Pt(u[0], u[1]), nil
}

// "WxH"
func parseSize(s string) (image.Point, error) {
	u, err := parseInts(s, "x", 2)
	if err != nil {
		return image.Point{}, errors.Wrapf(err, "size %q", s)
	}
	return image.Pt(u[0], u[1]), nil
}

// "x0,y0,x1,y1"
func parseRect(s string) (image.Rectangle, error) {
	u, err := parseInts(s, ",", 4)
	if err != nil {
		return image.Rectangle{}, errors.Wrapf(err, "rect %q", s)
	}
	return image.Rect(u[0], u[1], u[2], u[3]), nil
}

func parseInts(s, sep string, n int) ([]int, error) {
	a := strings.Split(s, sep)
	if len(a) != n {
		return nil, errors.Errorf("expecting %v values", n)
	}
	u := make([]int, n)
	for i, v := range a {
		k, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		u[i] = k
	}
	return u, nil
}

func parseFloats(s string) ([]float64, error) {
	a := strings.Split(s, ",")
	u := make([]float64, len(a))
	for i, v := range a {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, err
		}
		u[i] = f
	}
	return u, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func expectArgs(args []string, min, max int) error {
	if len(args) < min || len(args) > max {
		if min == max {
			return errors.Errorf("expecting %v args, got %v", min, len(args))
		}
		return errors.Errorf("expecting %v to %v args, got %v", min, max, len(args))
	}
	return nil
}
