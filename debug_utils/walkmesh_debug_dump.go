package debug_utils

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gorustyt/gowalkmesh/common"
	"github.com/gorustyt/gowalkmesh/common/rw"
	"github.com/gorustyt/gowalkmesh/walkmesh"
)

// DumpWalkMeshToObj writes the mesh as a Wavefront OBJ: one v line per
// vertex, one vn line per triangle normal and one f line per triangle.
func DumpWalkMeshToObj(mesh *walkmesh.SurfaceMesh, w *rw.ReaderWriter) error {
	if w == nil {
		return errors.New("DumpWalkMeshToObj: output is nil")
	}
	if mesh == nil {
		return walkmesh.ErrEmptyMesh
	}
	w.WriteString("# Walk mesh\n")
	w.WriteString("o WalkMesh\n")

	w.WriteString("\n")

	for i := 0; i < mesh.VertexCount(); i++ {
		v := mesh.Vertex(uint32(i))
		w.WriteString(fmt.Sprintf("v %f %f %f\n", v[0], v[1], v[2]))
	}

	w.WriteString("\n")

	for i := 0; i < mesh.TriangleCount(); i++ {
		n := mesh.Normal(i)
		w.WriteString(fmt.Sprintf("vn %f %f %f\n", n[0], n[1], n[2]))
	}

	w.WriteString("\n")

	for i := 0; i < mesh.TriangleCount(); i++ {
		t := mesh.Triangle(i)
		w.WriteString(fmt.Sprintf("f %d//%d %d//%d %d//%d\n", t[0]+1, i+1, t[1]+1, i+1, t[2]+1, i+1))
	}
	return nil
}

// ReadWalkMeshFromObj parses the triangles of an OBJ file. Faces with more
// than three corners are fanned. A face normal is taken from its first
// corner's vn reference, or from the winding when the face has none.
func ReadWalkMeshFromObj(data []byte) (*walkmesh.MeshData, error) {
	var (
		res     = &walkmesh.MeshData{}
		normals []common.Vec3
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v", "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", line, err)
			}
			if fields[0] == "v" {
				res.Vertices = append(res.Vertices, v)
			} else {
				normals = append(normals, v)
			}
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs three corners", line)
			}
			idx := make([]uint32, 0, len(fields)-1)
			normal := -1
			for k, f := range fields[1:] {
				parts := strings.Split(f, "/")
				vi, err := objIndex(parts[0], len(res.Vertices))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				idx = append(idx, uint32(vi))
				if k == 0 && len(parts) == 3 && parts[2] != "" {
					if normal, err = objIndex(parts[2], len(normals)); err != nil {
						return nil, fmt.Errorf("obj line %d: %w", line, err)
					}
				}
			}
			for k := 2; k < len(idx); k++ {
				tri := [3]uint32{idx[0], idx[k-1], idx[k]}
				n := common.Vec3{}
				if normal >= 0 {
					n = normals[normal]
				} else {
					v := res.Vertices
					n = common.TriFaceNormal(v[tri[0]], v[tri[1]], v[tri[2]])
				}
				res.Triangles = append(res.Triangles, tri)
				res.Normals = append(res.Normals, n)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func parseVec3(fields []string) (v common.Vec3, err error) {
	if len(fields) < 3 {
		return v, fmt.Errorf("want 3 coordinates, got %d", len(fields))
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

// objIndex resolves a one based, possibly negative OBJ reference.
func objIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range 1..%d", s, n)
	}
	return i, nil
}
