// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pathdata

import (
	"log/slog"
	"strconv"
	"strings"

	"cogentcore.org/svganim/math32"
)

// Parse tokenizes the given path data string into an ordered point
// sequence. Absolute and relative forms of M, L, H, V, C, Q, and Z
// are decoded; H and V become [Line] points. A, S, and T commands are
// skipped with a debug log, consuming their arguments and advancing
// the current point to their end point.
func Parse(d string, log *slog.Logger) ([]PathPoint, error) {
	if log == nil {
		log = slog.Default()
	}
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, ErrEmptyPath
	}
	p := parser{log: log}
	for _, seg := range splitCommands(d) {
		p.command(seg.cmd, seg.args)
	}
	if len(p.pts) == 0 {
		return nil, ErrBadPathData
	}
	return p.pts, nil
}

type segment struct {
	cmd  byte
	args []float32
}

// splitCommands splits path data into per-command-letter segments
// with their scanned numeric arguments.
func splitCommands(d string) []segment {
	var segs []segment
	start := -1
	var cmd byte
	flush := func(end int) {
		if start < 0 {
			return
		}
		segs = append(segs, segment{cmd: cmd, args: scanFloats(d[start:end])})
		start = -1
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			// e and E inside numbers are exponents, not commands
			if (c == 'e' || c == 'E') && i > 0 && isNumByte(d[i-1]) {
				continue
			}
			flush(i)
			cmd = c
			start = i + 1
		}
	}
	flush(len(d))
	return segs
}

func isNumByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

// scanFloats scans SVG path numbers: comma/whitespace separated,
// with sign characters also acting as separators ("10-5" is 10, -5).
func scanFloats(s string) []float32 {
	var vals []float32
	i := 0
	for i < len(s) {
		c := s[i]
		if c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}
		j := i
		if s[j] == '+' || s[j] == '-' {
			j++
		}
		dot := false
		for j < len(s) {
			c := s[j]
			if c >= '0' && c <= '9' {
				j++
				continue
			}
			if c == '.' && !dot {
				dot = true
				j++
				continue
			}
			if (c == 'e' || c == 'E') && j+1 < len(s) {
				k := j + 1
				if s[k] == '+' || s[k] == '-' {
					k++
				}
				if k < len(s) && s[k] >= '0' && s[k] <= '9' {
					j = k
					continue
				}
			}
			break
		}
		if j == i || (j == i+1 && (s[i] == '+' || s[i] == '-')) {
			i++
			continue
		}
		f, err := strconv.ParseFloat(s[i:j], 32)
		if err == nil {
			vals = append(vals, float32(f))
		}
		i = j
	}
	return vals
}

type parser struct {
	log   *slog.Logger
	pts   []PathPoint
	cur   math32.Vector2
	start math32.Vector2
}

func (p *parser) command(cmd byte, args []float32) {
	rel := cmd >= 'a'
	switch cmd {
	case 'M', 'm':
		for i := 0; i+1 < len(args); i += 2 {
			pt := p.resolve(rel, args[i], args[i+1])
			if i == 0 {
				p.add(PathPoint{X: pt.X, Y: pt.Y, Cmd: Move})
				p.start = pt
			} else {
				// implicit lineto after the initial moveto pair
				p.add(PathPoint{X: pt.X, Y: pt.Y, Cmd: Line})
			}
		}
	case 'L', 'l':
		for i := 0; i+1 < len(args); i += 2 {
			pt := p.resolve(rel, args[i], args[i+1])
			p.add(PathPoint{X: pt.X, Y: pt.Y, Cmd: Line})
		}
	case 'H', 'h':
		for _, x := range args {
			nx := x
			if rel {
				nx += p.cur.X
			}
			p.add(PathPoint{X: nx, Y: p.cur.Y, Cmd: Line})
		}
	case 'V', 'v':
		for _, y := range args {
			ny := y
			if rel {
				ny += p.cur.Y
			}
			p.add(PathPoint{X: p.cur.X, Y: ny, Cmd: Line})
		}
	case 'C', 'c':
		for i := 0; i+5 < len(args); i += 6 {
			c1 := p.resolve(rel, args[i], args[i+1])
			c2 := p.resolve(rel, args[i+2], args[i+3])
			pt := p.resolve(rel, args[i+4], args[i+5])
			p.add(PathPoint{X: pt.X, Y: pt.Y, Cmd: CubicCurve,
				Ctrl: []math32.Vector2{c1, c2}})
		}
	case 'Q', 'q':
		for i := 0; i+3 < len(args); i += 4 {
			c1 := p.resolve(rel, args[i], args[i+1])
			pt := p.resolve(rel, args[i+2], args[i+3])
			p.add(PathPoint{X: pt.X, Y: pt.Y, Cmd: QuadraticCurve,
				Ctrl: []math32.Vector2{c1}})
		}
	case 'Z', 'z':
		p.add(PathPoint{X: p.start.X, Y: p.start.Y, Cmd: Close})
	case 'A', 'a':
		p.skip("arc", rel, args, 7)
	case 'S', 's':
		p.skip("shorthand cubic", rel, args, 4)
	case 'T', 't':
		p.skip("shorthand quadratic", rel, args, 2)
	default:
		p.log.Debug("pathdata: unknown path command", "cmd", string(cmd))
	}
}

func (p *parser) resolve(rel bool, x, y float32) math32.Vector2 {
	if rel {
		return math32.Vec2(p.cur.X+x, p.cur.Y+y)
	}
	return math32.Vec2(x, y)
}

func (p *parser) add(pt PathPoint) {
	p.pts = append(p.pts, pt)
	p.cur = math32.Vec2(pt.X, pt.Y)
}

// skip drops an unsupported command's points while consuming its
// arguments and tracking the current point, so that subsequent
// relative commands stay anchored.
func (p *parser) skip(name string, rel bool, args []float32, arity int) {
	p.log.Debug("pathdata: unsupported path command dropped", "cmd", name)
	for i := 0; i+arity-1 < len(args); i += arity {
		p.cur = p.resolve(rel, args[i+arity-2], args[i+arity-1])
	}
}
