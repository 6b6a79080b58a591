package replay

import (
	"bytes"
	"strings"

	"github.com/jmigpin/sheet/core/sheetconf"
	"github.com/pkg/errors"
	"golang.org/x/tools/txtar"
)

// Scenario archives are txtar files with "<name>.in" scripts and "<name>.out" expected transcripts. The archive comment is a toml config shared by all scripts.
type Case struct {
	Name string
	Line int // line of the script file header
	In   []byte
	Out  []byte // nil if the archive has no transcript for the script
}

type CaseResult struct {
	Case *Case
	Got  []byte
	Err  error
}

func ParseArchive(src []byte) (*txtar.Archive, []*Case) {
	ar := txtar.Parse(src)
	outs := map[string]int{}
	for i, f := range ar.Files {
		if strings.HasSuffix(f.Name, ".out") {
			outs[strings.TrimSuffix(f.Name, ".out")] = i
		}
	}

	cases := []*Case{}
	line := countLines(ar.Comment)
	for _, f := range ar.Files {
		line++ // file header line
		if name, ok := strings.CutSuffix(f.Name, ".in"); ok {
			c := &Case{Name: name, Line: line, In: f.Data}
			if i, ok := outs[name]; ok {
				c.Out = ar.Files[i].Data
			}
			cases = append(cases, c)
		}
		line += countLines(f.Data)
	}
	return ar, cases
}

// Runs every script of the archive and compares the transcripts.
func CheckArchive(src []byte, filename string) ([]*CaseResult, error) {
	ar, cases := ParseArchive(src)
	cfg, err := sheetconf.Parse(ar.Comment)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: archive config", filename)
	}
	res := []*CaseResult{}
	for _, c := range cases {
		// script lines are relative to the file header
		sfn := filename + ":" + c.Name
		got, err := RunScript(c.In, sfn, cfg)
		cr := &CaseResult{Case: c, Got: got, Err: err}
		if err == nil {
			if c.Out == nil {
				cr.Err = errors.Errorf("%s:%d: missing %v.out", filename, c.Line, c.Name)
			} else if err := CompareTranscripts(got, c.Out); err != nil {
				cr.Err = errors.Wrapf(err, "%s:%d: %v", filename, c.Line, c.Name)
			}
		}
		res = append(res, cr)
	}
	return res, nil
}

// Compares ignoring surrounding spaces and empty lines.
func CompareTranscripts(got, want []byte) error {
	g, w := transcriptLines(got), transcriptLines(want)
	for i := 0; i < len(g) || i < len(w); i++ {
		var a, b string
		if i < len(g) {
			a = g[i]
		}
		if i < len(w) {
			b = w[i]
		}
		if a != b {
			return errors.Errorf("transcript line %d: got %q, expecting %q", i+1, a, b)
		}
	}
	return nil
}

func transcriptLines(b []byte) []string {
	u := []string{}
	for _, s := range strings.Split(string(b), "\n") {
		if s = strings.TrimSpace(s); s != "" {
			u = append(u, s)
		}
	}
	return u
}

func countLines(b []byte) int {
	return bytes.Count(b, []byte("\n"))
}

// Runs every script of the archive and returns the archive with the transcripts replaced (or added after their scripts).
func UpdateArchive(src []byte, filename string) ([]byte, error) {
	ar, cases := ParseArchive(src)
	cfg, err := sheetconf.Parse(ar.Comment)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: archive config", filename)
	}
	outs := map[string][]byte{}
	for _, c := range cases {
		got, err := RunScript(c.In, filename+":"+c.Name, cfg)
		if err != nil {
			return nil, err
		}
		outs[c.Name] = got
	}

	files := []txtar.File{}
	for _, f := range ar.Files {
		if name, ok := strings.CutSuffix(f.Name, ".out"); ok {
			if _, ok := outs[name]; ok {
				continue // added after the script
			}
		}
		files = append(files, f)
		if name, ok := strings.CutSuffix(f.Name, ".in"); ok {
			files = append(files, txtar.File{Name: name + ".out", Data: outs[name]})
		}
	}
	ar.Files = files
	return txtar.Format(ar), nil
}
