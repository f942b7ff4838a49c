package debug_utils

import (
	"image"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/gorustyt/gowalkmesh/common"
	"github.com/gorustyt/gowalkmesh/walkmesh"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

var (
	backgroundCol = DuRGBA(32, 32, 40, 255)
	walkableCol   = DuRGBA(0, 192, 255, 255)
	boundaryCol   = DuRGBA(255, 96, 64, 255)
)

// Trail is a polyline of world positions drawn over the mesh.
type Trail struct {
	Points []common.Vec3
	Color  Colorb
}

type DrawParams struct {
	Size        int     // output width and height in pixels
	Supersample int     // render this many times larger, then scale down; 0 or 1 for none
	Margin      float32 // empty border in output pixels
	LineWidth   float32 // trail and rim width in output pixels
}

func DefaultDrawParams() DrawParams {
	return DrawParams{Size: 512, Supersample: 2, Margin: 8, LineWidth: 2}
}

// topDown maps world XZ onto image pixels, +X right and +Z down.
type topDown struct {
	min   common.Vec3
	scale float32
	off   float32
}

func (t topDown) at(p common.Vec3) (float32, float32) {
	return (p[0]-t.min[0])*t.scale + t.off, (p[2]-t.min[2])*t.scale + t.off
}

// / Renders a top-down view of the walk mesh and the trails over it.
// / Triangles are shaded by how level they are; triangles on the mesh rim
// / are tinted and rim edges are outlined.
func DrawWalkMesh(mesh *walkmesh.SurfaceMesh, trails []Trail, params DrawParams) *image.RGBA {
	if params.Size <= 0 {
		params.Size = DefaultDrawParams().Size
	}
	ss := max(params.Supersample, 1)
	size := params.Size * ss
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundCol.RGBA()), image.Point{}, draw.Src)
	if mesh == nil {
		return downsample(img, params.Size)
	}

	bmin, bmax := mesh.Bounds()
	for _, tr := range trails {
		for _, p := range tr.Points {
			common.Vmin(&bmin, p)
			common.Vmax(&bmax, p)
		}
	}
	extent := max(bmax[0]-bmin[0], bmax[2]-bmin[2])
	margin := params.Margin * float32(ss)
	view := topDown{min: bmin, off: margin, scale: 1}
	if extent > 0 {
		view.scale = (float32(size) - 2*margin) / extent
	}
	width := max(params.LineWidth, 1) * float32(ss)

	z := vector.NewRasterizer(size, size)
	fill := func(col Colorb) {
		z.Draw(img, img.Bounds(), image.NewUniform(col.RGBA()), image.Point{})
		z.Reset(size, size)
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		tri := mesh.Triangle(i)
		col := walkableCol
		if mesh.IsBoundaryTriangle(i) {
			col = DuLerpCol(walkableCol, boundaryCol, 96)
		}
		slope := common.Clamp(mesh.Normal(i)[1], 0, 1)
		col = duMultCol(col, uint8(128+127*slope))
		for k, v := range tri {
			x, y := view.at(mesh.Vertex(v))
			if k == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
		fill(col)
	}

	for _, e := range mesh.BoundaryEdges() {
		segment(z, view, mesh.Vertex(e.Tail), mesh.Vertex(e.Head), width/2)
	}
	fill(DuDarkenCol(boundaryCol))

	for _, tr := range trails {
		for i := 1; i < len(tr.Points); i++ {
			segment(z, view, tr.Points[i-1], tr.Points[i], width/2)
			fill(tr.Color)
		}
		if n := len(tr.Points); n > 0 {
			square(z, view, tr.Points[n-1], width*1.5)
			fill(tr.Color)
		}
	}
	return downsample(img, params.Size)
}

// segment adds a quad of half width hw around ab to the rasterizer path.
func segment(z *vector.Rasterizer, view topDown, a, b common.Vec3, hw float32) {
	x0, y0 := view.at(a)
	x1, y1 := view.at(b)
	dx, dy := x1-x0, y1-y0
	l := float32(common.Sqrt(float64(common.Sqr(dx) + common.Sqr(dy))))
	if l == 0 {
		square(z, view, a, hw)
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func square(z *vector.Rasterizer, view topDown, p common.Vec3, hw float32) {
	x, y := view.at(p)
	z.MoveTo(x-hw, y-hw)
	z.LineTo(x+hw, y-hw)
	z.LineTo(x+hw, y+hw)
	z.LineTo(x-hw, y+hw)
	z.ClosePath()
}

func downsample(img *image.RGBA, size int) *image.RGBA {
	if img.Bounds().Dx() == size {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// WriteWebP encodes img as a lossless WebP.
func WriteWebP(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}
