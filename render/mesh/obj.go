// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// OBJ reader errors.
var (
	errIndexCount = errors.New("mesh: index count not a multiple of 3")
	errIndexRange = errors.New("mesh: index out of range")

	// ErrEmptyOBJ is returned when an OBJ stream contains no faces.
	ErrEmptyOBJ = errors.New("mesh: obj contains no faces")
)

// LoadOBJ reads a Wavefront OBJ mesh. Supported directives: v, vn, vt
// and f with triangular or fan-triangulated polygonal faces. Face corners
// may use any of the v, v/vt, v//vn and v/vt/vn index forms, including
// negative (relative) indices. Material and group directives are ignored.
func LoadOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
	)
	m := &Mesh{}
	// Corner spec -> deduplicated vertex index.
	seen := make(map[string]uint32)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("mesh: obj line %d: %w", lineNo, err)
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("mesh: obj line %d: %w", lineNo, err)
			}
			normals = append(normals, v)
		case "vt":
			v, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("mesh: obj line %d: %w", lineNo, err)
			}
			uvs = append(uvs, v)
		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				return nil, fmt.Errorf("mesh: obj line %d: face with %d corners", lineNo, len(corners))
			}
			idx := make([]uint32, len(corners))
			for i, c := range corners {
				id, err := cornerIndex(m, seen, positions, normals, uvs, c)
				if err != nil {
					return nil, fmt.Errorf("mesh: obj line %d: %w", lineNo, err)
				}
				idx[i] = id
			}
			// Fan triangulation.
			for i := 1; i+1 < len(idx); i++ {
				m.Indices = append(m.Indices, idx[0], idx[i], idx[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mesh: reading obj: %w", err)
	}
	if len(m.Indices) == 0 {
		return nil, ErrEmptyOBJ
	}
	return m, nil
}

// cornerIndex resolves one face corner spec ("7", "7/2", "7//3", "7/2/3")
// to a vertex index, deduplicating identical corners.
func cornerIndex(m *Mesh, seen map[string]uint32, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2, spec string) (uint32, error) {
	if id, ok := seen[spec]; ok {
		return id, nil
	}

	parts := strings.Split(spec, "/")
	if len(parts) > 3 {
		return 0, fmt.Errorf("bad face corner %q", spec)
	}

	var v Vertex
	pi, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return 0, fmt.Errorf("bad face corner %q: %w", spec, err)
	}
	v.Position = positions[pi]

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(uvs))
		if err != nil {
			return 0, fmt.Errorf("bad face corner %q: %w", spec, err)
		}
		v.UV = uvs[ti]
	}
	if len(parts) > 2 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], len(normals))
		if err != nil {
			return 0, fmt.Errorf("bad face corner %q: %w", spec, err)
		}
		v.Normal = normals[ni]
	}

	id := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v)
	seen[spec] = id
	return id, nil
}

// resolveIndex converts a 1-based (or negative relative) OBJ index into
// a 0-based slice index.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range (have %d)", i, n)
	}
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(fields) < 3 {
		return v, fmt.Errorf("want 3 components, have %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseVec2(fields []string) (mgl32.Vec2, error) {
	var v mgl32.Vec2
	if len(fields) < 2 {
		return v, fmt.Errorf("want 2 components, have %d", len(fields))
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}
